package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"groomify-backend/db"
	"groomify-backend/models"
)

// WardrobeRepository handles database operations for wardrobes
type WardrobeRepository struct{}

// NewWardrobeRepository creates a new WardrobeRepository
func NewWardrobeRepository() *WardrobeRepository {
	return &WardrobeRepository{}
}

// Ensure WardrobeRepository implements WardrobeRepositoryInterface
var _ WardrobeRepositoryInterface = (*WardrobeRepository)(nil)

// Insert creates a new wardrobe for a user
func (r *WardrobeRepository) Insert(ctx context.Context, req models.CreateWardrobeRequest) (*models.Wardrobe, error) {
	labels := req.Labels
	if labels == nil {
		labels = []string{}
	}
	payload, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("failed to encode labels: %w", err)
	}

	query := `
		INSERT INTO wardrobes (user_id, name, labels, is_active, created_at)
		VALUES ($1, $2, $3, true, NOW())
		RETURNING id, created_at
	`

	wardrobe := &models.Wardrobe{
		UserID:   req.UserID,
		Name:     req.Name,
		Labels:   labels,
		IsActive: true,
	}
	var createdAt time.Time
	err = db.DB.QueryRowContext(ctx, query, req.UserID, req.Name, payload).Scan(&wardrobe.ID, &createdAt)
	if err != nil {
		log.Printf("❌ Error inserting wardrobe: %v", err)
		return nil, fmt.Errorf("failed to insert wardrobe: %w", err)
	}
	wardrobe.CreatedAt = createdAt.Format(time.RFC3339)

	log.Printf("✓ Wardrobe created: id=%d, name=%s, user=%s", wardrobe.ID, wardrobe.Name, wardrobe.UserID)
	return wardrobe, nil
}

// ListActiveByUser retrieves the active wardrobes of a user
func (r *WardrobeRepository) ListActiveByUser(ctx context.Context, userID string) ([]models.Wardrobe, error) {
	query := `
		SELECT id, user_id, name, labels, is_active, created_at
		FROM wardrobes
		WHERE user_id = $1 AND is_active = true
		ORDER BY created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		log.Printf("❌ Error listing wardrobes: %v", err)
		return nil, fmt.Errorf("failed to list wardrobes: %w", err)
	}
	defer rows.Close()

	var wardrobes []models.Wardrobe
	for rows.Next() {
		wardrobe, err := scanWardrobe(rows.Scan)
		if err != nil {
			log.Printf("❌ Error scanning wardrobe: %v", err)
			continue
		}
		wardrobes = append(wardrobes, *wardrobe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wardrobes: %w", err)
	}

	log.Printf("✓ Loaded %d wardrobes for user %s", len(wardrobes), userID)
	return wardrobes, nil
}

// GetByID retrieves a single wardrobe
func (r *WardrobeRepository) GetByID(ctx context.Context, id int) (*models.Wardrobe, error) {
	query := `
		SELECT id, user_id, name, labels, is_active, created_at
		FROM wardrobes
		WHERE id = $1
	`

	row := db.DB.QueryRowContext(ctx, query, id)
	wardrobe, err := scanWardrobe(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wardrobe with id %d does not exist", id)
		}
		return nil, fmt.Errorf("failed to get wardrobe: %w", err)
	}
	return wardrobe, nil
}

// Deactivate soft-deletes a wardrobe
func (r *WardrobeRepository) Deactivate(ctx context.Context, id int) error {
	if _, err := db.DB.ExecContext(ctx, `UPDATE wardrobes SET is_active = false WHERE id = $1`, id); err != nil {
		log.Printf("❌ Error deactivating wardrobe %d: %v", id, err)
		return fmt.Errorf("failed to deactivate wardrobe: %w", err)
	}
	log.Printf("✓ Wardrobe %d deactivated", id)
	return nil
}

// scanWardrobe scans one wardrobe row, decoding the labels JSON
func scanWardrobe(scan func(dest ...interface{}) error) (*models.Wardrobe, error) {
	var (
		wardrobe  models.Wardrobe
		payload   []byte
		createdAt time.Time
	)
	if err := scan(&wardrobe.ID, &wardrobe.UserID, &wardrobe.Name, &payload, &wardrobe.IsActive, &createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &wardrobe.Labels); err != nil {
		return nil, fmt.Errorf("failed to decode wardrobe labels: %w", err)
	}
	wardrobe.CreatedAt = createdAt.Format(time.RFC3339)
	return &wardrobe, nil
}
