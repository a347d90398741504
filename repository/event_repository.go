package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"groomify-backend/db"
	"groomify-backend/models"
)

// EventRepository handles database operations for calendar events
type EventRepository struct{}

// NewEventRepository creates a new EventRepository
func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

// Ensure EventRepository implements EventRepositoryInterface
var _ EventRepositoryInterface = (*EventRepository)(nil)

// Insert creates a planned event
func (r *EventRepository) Insert(ctx context.Context, req models.CreateEventRequest) (*models.Event, error) {
	query := `
		INSERT INTO events (user_id, title, event_date, reminder_minutes, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	event := &models.Event{
		UserID:          req.UserID,
		Title:           req.Title,
		Date:            req.Date,
		ReminderMinutes: req.ReminderMinutes,
	}
	var createdAt time.Time
	err := db.DB.QueryRowContext(ctx, query, req.UserID, req.Title, req.Date, req.ReminderMinutes).
		Scan(&event.ID, &createdAt)
	if err != nil {
		log.Printf("❌ Error inserting event: %v", err)
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}
	event.CreatedAt = createdAt.Format(time.RFC3339)

	log.Printf("✓ Event created: id=%d, title=%s, date=%s", event.ID, event.Title, event.Date.Format(time.RFC3339))
	return event, nil
}

// ListByUser retrieves a user's planned events, soonest first
func (r *EventRepository) ListByUser(ctx context.Context, userID string) ([]models.Event, error) {
	query := `
		SELECT id, user_id, title, event_date, reminder_minutes, created_at
		FROM events
		WHERE user_id = $1
		ORDER BY event_date ASC
	`

	rows, err := db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		log.Printf("❌ Error listing events: %v", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var (
			event     models.Event
			createdAt time.Time
		)
		if err := rows.Scan(&event.ID, &event.UserID, &event.Title, &event.Date, &event.ReminderMinutes, &createdAt); err != nil {
			log.Printf("❌ Error scanning event: %v", err)
			continue
		}
		event.CreatedAt = createdAt.Format(time.RFC3339)
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	log.Printf("✓ Loaded %d events for user %s", len(events), userID)
	return events, nil
}

// Delete removes a planned event belonging to the user
func (r *EventRepository) Delete(ctx context.Context, userID string, id int) error {
	if _, err := db.DB.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1 AND id = $2`, userID, id); err != nil {
		log.Printf("❌ Error deleting event %d: %v", id, err)
		return fmt.Errorf("failed to delete event: %w", err)
	}
	log.Printf("✓ Event %d deleted for user %s", id, userID)
	return nil
}
