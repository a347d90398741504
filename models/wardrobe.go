package models

// Wardrobe represents a user's wardrobe with its box labels
type Wardrobe struct {
	ID        int      `json:"id"`
	UserID    string   `json:"userId"`
	Name      string   `json:"name"`
	Labels    []string `json:"labels"`
	IsActive  bool     `json:"isActive"`
	CreatedAt string   `json:"createdAt"`
}

// CreateWardrobeRequest is the request body for creating a wardrobe
type CreateWardrobeRequest struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Labels []string `json:"labels"`
}
