package models

// SavedSuggestion is a persisted copy of an accepted outfit candidate,
// keyed by a storage-assigned identifier and scoped to the owning user
type SavedSuggestion struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  string            `json:"createdAt"`
}
