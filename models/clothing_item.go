package models

// ClothingItem represents a clothing item stored inside a wardrobe box
type ClothingItem struct {
	ID           int    `json:"id"`
	WardrobeID   int    `json:"wardrobeId"`
	Box          string `json:"box"`
	ClothingType string `json:"clothingType"`
	OutfitType   string `json:"outfitType"`
	Detail       string `json:"detail"`
	Colour       string `json:"colour"`
	Stuff        string `json:"stuff"`
	ImageURL     string `json:"imageUrl"`
	CreatedAt    string `json:"createdAt"`
}

// SaveClothingItemRequest is the request body for creating or updating a clothing item
type SaveClothingItemRequest struct {
	Box          string `json:"box"`
	ClothingType string `json:"clothing_type"`
	OutfitType   string `json:"outfit_type"`
	Detail       string `json:"detail"`
	Colour       string `json:"colour"`
	Stuff        string `json:"stuff"`
	ImageURL     string `json:"image_url"`
}
