package repository

import (
	"context"

	"groomify-backend/models"
)

// SuggestionRepositoryInterface defines the contract for saved suggestion storage
type SuggestionRepositoryInterface interface {
	ReplaceForUser(ctx context.Context, userID string, suggestions []map[string]string) error
	ListByUser(ctx context.Context, userID string) ([]models.SavedSuggestion, error)
	Delete(ctx context.Context, userID string, suggestionID string) error
}

// FeedbackRepositoryInterface defines the contract for outfit feedback storage
type FeedbackRepositoryInterface interface {
	Insert(ctx context.Context, outfit map[string]string, verdict models.FeedbackVerdict) error
	RejectedOutfits(ctx context.Context) ([]map[string]string, error)
}

// WardrobeRepositoryInterface defines the contract for wardrobe storage
type WardrobeRepositoryInterface interface {
	Insert(ctx context.Context, req models.CreateWardrobeRequest) (*models.Wardrobe, error)
	ListActiveByUser(ctx context.Context, userID string) ([]models.Wardrobe, error)
	GetByID(ctx context.Context, id int) (*models.Wardrobe, error)
	Deactivate(ctx context.Context, id int) error
}

// ClothingItemRepositoryInterface defines the contract for clothing item storage
type ClothingItemRepositoryInterface interface {
	Insert(ctx context.Context, wardrobeID int, req models.SaveClothingItemRequest) (*models.ClothingItem, error)
	Update(ctx context.Context, id int, req models.SaveClothingItemRequest) (*models.ClothingItem, error)
	ListByWardrobe(ctx context.Context, wardrobeID int) ([]models.ClothingItem, error)
	Delete(ctx context.Context, id int) error
}

// EventRepositoryInterface defines the contract for calendar event storage
type EventRepositoryInterface interface {
	Insert(ctx context.Context, req models.CreateEventRequest) (*models.Event, error)
	ListByUser(ctx context.Context, userID string) ([]models.Event, error)
	Delete(ctx context.Context, userID string, id int) error
}
