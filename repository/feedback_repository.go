package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"groomify-backend/db"
	"groomify-backend/models"
)

// FeedbackRepository handles database operations for outfit feedback
type FeedbackRepository struct{}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

// Ensure FeedbackRepository implements FeedbackRepositoryInterface
var _ FeedbackRepositoryInterface = (*FeedbackRepository)(nil)

// Insert stores one feedback record
func (r *FeedbackRepository) Insert(ctx context.Context, outfit map[string]string, verdict models.FeedbackVerdict) error {
	payload, err := json.Marshal(outfit)
	if err != nil {
		return fmt.Errorf("failed to encode outfit: %w", err)
	}

	query := `
		INSERT INTO outfit_feedback (outfit, feedback_type, created_at)
		VALUES ($1, $2, NOW())
	`
	if _, err := db.DB.ExecContext(ctx, query, payload, string(verdict)); err != nil {
		log.Printf("❌ Error inserting feedback: %v", err)
		return fmt.Errorf("failed to insert feedback: %w", err)
	}

	log.Printf("✓ Feedback recorded: %s", verdict)
	return nil
}

// RejectedOutfits returns the outfits of all rejected feedback records.
// The engine uses these to avoid proposing the same combination again.
func (r *FeedbackRepository) RejectedOutfits(ctx context.Context) ([]map[string]string, error) {
	query := `
		SELECT outfit
		FROM outfit_feedback
		WHERE feedback_type = $1
	`

	rows, err := db.DB.QueryContext(ctx, query, string(models.FeedbackRejected))
	if err != nil {
		return nil, fmt.Errorf("failed to query rejected outfits: %w", err)
	}
	defer rows.Close()

	var outfits []map[string]string
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			log.Printf("❌ Error scanning feedback row: %v", err)
			continue
		}
		var outfit map[string]string
		if err := json.Unmarshal(payload, &outfit); err != nil {
			log.Printf("❌ Error decoding feedback outfit: %v", err)
			continue
		}
		outfits = append(outfits, outfit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rejected outfits: %w", err)
	}

	return outfits, nil
}
