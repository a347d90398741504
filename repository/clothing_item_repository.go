package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"groomify-backend/db"
	"groomify-backend/models"
)

// ClothingItemRepository handles database operations for clothing items
type ClothingItemRepository struct{}

// NewClothingItemRepository creates a new ClothingItemRepository
func NewClothingItemRepository() *ClothingItemRepository {
	return &ClothingItemRepository{}
}

// Ensure ClothingItemRepository implements ClothingItemRepositoryInterface
var _ ClothingItemRepositoryInterface = (*ClothingItemRepository)(nil)

// Insert creates a clothing item inside a wardrobe box
func (r *ClothingItemRepository) Insert(ctx context.Context, wardrobeID int, req models.SaveClothingItemRequest) (*models.ClothingItem, error) {
	query := `
		INSERT INTO clothing_items (wardrobe_id, box, clothing_type, outfit_type, detail, colour, stuff, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	item := &models.ClothingItem{
		WardrobeID:   wardrobeID,
		Box:          req.Box,
		ClothingType: req.ClothingType,
		OutfitType:   req.OutfitType,
		Detail:       req.Detail,
		Colour:       req.Colour,
		Stuff:        req.Stuff,
		ImageURL:     req.ImageURL,
	}
	var createdAt time.Time
	err := db.DB.QueryRowContext(ctx, query,
		wardrobeID, req.Box, req.ClothingType, req.OutfitType, req.Detail, req.Colour, req.Stuff, req.ImageURL,
	).Scan(&item.ID, &createdAt)
	if err != nil {
		log.Printf("❌ Error inserting clothing item: %v", err)
		return nil, fmt.Errorf("failed to insert clothing item: %w", err)
	}
	item.CreatedAt = createdAt.Format(time.RFC3339)

	log.Printf("✓ Clothing item created: id=%d, type=%s, box=%s", item.ID, item.ClothingType, item.Box)
	return item, nil
}

// Update replaces the details of an existing clothing item
func (r *ClothingItemRepository) Update(ctx context.Context, id int, req models.SaveClothingItemRequest) (*models.ClothingItem, error) {
	query := `
		UPDATE clothing_items
		SET box = $2, clothing_type = $3, outfit_type = $4, detail = $5, colour = $6, stuff = $7, image_url = $8
		WHERE id = $1
		RETURNING id, wardrobe_id, box, clothing_type, outfit_type, detail, colour, stuff, image_url, created_at
	`

	row := db.DB.QueryRowContext(ctx, query,
		id, req.Box, req.ClothingType, req.OutfitType, req.Detail, req.Colour, req.Stuff, req.ImageURL)
	item, err := scanClothingItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("clothing item with id %d does not exist", id)
		}
		log.Printf("❌ Error updating clothing item %d: %v", id, err)
		return nil, fmt.Errorf("failed to update clothing item: %w", err)
	}

	log.Printf("✓ Clothing item %d updated", id)
	return item, nil
}

// ListByWardrobe retrieves the clothing items of a wardrobe
func (r *ClothingItemRepository) ListByWardrobe(ctx context.Context, wardrobeID int) ([]models.ClothingItem, error) {
	query := `
		SELECT id, wardrobe_id, box, clothing_type, outfit_type, detail, colour, stuff, image_url, created_at
		FROM clothing_items
		WHERE wardrobe_id = $1
		ORDER BY created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query, wardrobeID)
	if err != nil {
		log.Printf("❌ Error listing clothing items: %v", err)
		return nil, fmt.Errorf("failed to list clothing items: %w", err)
	}
	defer rows.Close()

	var items []models.ClothingItem
	for rows.Next() {
		item, err := scanClothingItem(rows.Scan)
		if err != nil {
			log.Printf("❌ Error scanning clothing item: %v", err)
			continue
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clothing items: %w", err)
	}

	log.Printf("✓ Loaded %d clothing items for wardrobe %d", len(items), wardrobeID)
	return items, nil
}

// Delete removes a clothing item
func (r *ClothingItemRepository) Delete(ctx context.Context, id int) error {
	if _, err := db.DB.ExecContext(ctx, `DELETE FROM clothing_items WHERE id = $1`, id); err != nil {
		log.Printf("❌ Error deleting clothing item %d: %v", id, err)
		return fmt.Errorf("failed to delete clothing item: %w", err)
	}
	log.Printf("✓ Clothing item %d deleted", id)
	return nil
}

// scanClothingItem scans one clothing item row
func scanClothingItem(scan func(dest ...interface{}) error) (*models.ClothingItem, error) {
	var (
		item      models.ClothingItem
		createdAt time.Time
	)
	err := scan(&item.ID, &item.WardrobeID, &item.Box, &item.ClothingType, &item.OutfitType,
		&item.Detail, &item.Colour, &item.Stuff, &item.ImageURL, &createdAt)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = createdAt.Format(time.RFC3339)
	return &item, nil
}
