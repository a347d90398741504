package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"groomify-backend/db"
	"groomify-backend/models"
)

// SuggestionRepository handles database operations for saved suggestions
type SuggestionRepository struct{}

// NewSuggestionRepository creates a new SuggestionRepository
func NewSuggestionRepository() *SuggestionRepository {
	return &SuggestionRepository{}
}

// Ensure SuggestionRepository implements SuggestionRepositoryInterface
var _ SuggestionRepositoryInterface = (*SuggestionRepository)(nil)

// ReplaceForUser deletes all previously saved suggestions for the user and
// inserts the given set, in one transaction. Saving is a destructive
// overwrite of the prior set, not an append.
func (r *SuggestionRepository) ReplaceForUser(ctx context.Context, userID string, suggestions []map[string]string) error {
	log.Printf("💾 ReplaceForUser: user=%s, suggestions=%d", userID, len(suggestions))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Remove all previous saved suggestions before saving new ones
	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_suggestions WHERE user_id = $1`, userID); err != nil {
		log.Printf("❌ Error clearing previous suggestions: %v", err)
		return fmt.Errorf("failed to clear previous suggestions: %w", err)
	}

	queryInsert := `
		INSERT INTO saved_suggestions (user_id, attributes, created_at)
		VALUES ($1, $2, NOW())
	`
	for _, attrs := range suggestions {
		payload, err := json.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("failed to encode suggestion attributes: %w", err)
		}
		if _, err := tx.ExecContext(ctx, queryInsert, userID, payload); err != nil {
			log.Printf("❌ Error inserting suggestion: %v", err)
			return fmt.Errorf("failed to insert suggestion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✓ Successfully saved %d suggestions for user %s", len(suggestions), userID)
	return nil
}

// ListByUser retrieves the saved suggestions for a user, most recently
// inserted first
func (r *SuggestionRepository) ListByUser(ctx context.Context, userID string) ([]models.SavedSuggestion, error) {
	query := `
		SELECT id, user_id, attributes, created_at
		FROM saved_suggestions
		WHERE user_id = $1
		ORDER BY id DESC
	`

	rows, err := db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		log.Printf("❌ Error listing suggestions: %v", err)
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []models.SavedSuggestion
	for rows.Next() {
		var (
			id        int64
			payload   []byte
			createdAt time.Time
			s         models.SavedSuggestion
		)
		if err := rows.Scan(&id, &s.UserID, &payload, &createdAt); err != nil {
			log.Printf("❌ Error scanning suggestion: %v", err)
			continue
		}
		if err := json.Unmarshal(payload, &s.Attributes); err != nil {
			log.Printf("❌ Error decoding suggestion attributes: %v", err)
			continue
		}
		s.ID = strconv.FormatInt(id, 10)
		s.CreatedAt = createdAt.Format(time.RFC3339)
		suggestions = append(suggestions, s)
	}

	if err := rows.Err(); err != nil {
		log.Printf("❌ Error iterating suggestions: %v", err)
		return nil, fmt.Errorf("failed to iterate suggestions: %w", err)
	}

	log.Printf("✓ Loaded %d saved suggestions for user %s", len(suggestions), userID)
	return suggestions, nil
}

// Delete removes exactly one saved suggestion by identifier. Deleting an
// identifier that no longer exists (or never did) is not an error.
func (r *SuggestionRepository) Delete(ctx context.Context, userID string, suggestionID string) error {
	id, err := strconv.ParseInt(suggestionID, 10, 64)
	if err != nil {
		// An unknown identifier shape can't reference an existing row,
		// treat it like an already-deleted record
		log.Printf("⏭️  Delete: non-numeric suggestion id %q, nothing to do", suggestionID)
		return nil
	}

	result, err := db.DB.ExecContext(ctx,
		`DELETE FROM saved_suggestions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		log.Printf("❌ Error deleting suggestion %s: %v", suggestionID, err)
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		log.Printf("⏭️  Delete: suggestion %s already gone for user %s", suggestionID, userID)
		return nil
	}

	log.Printf("✓ Deleted suggestion %s for user %s", suggestionID, userID)
	return nil
}
