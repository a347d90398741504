package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"groomify-backend/models"
	"groomify-backend/repository"
)

// EventController handles HTTP requests for planned events
type EventController struct {
	repository repository.EventRepositoryInterface
}

// NewEventController creates a new EventController
func NewEventController(repo repository.EventRepositoryInterface) *EventController {
	return &EventController{
		repository: repo,
	}
}

// Create handles POST /events
// Plans an event with a reminder. The event date must be in the future.
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateEvent: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateEvent: Failed to decode request body: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		writeErrorJSON(w, http.StatusBadRequest, "user_id cannot be empty")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeErrorJSON(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	if req.Date.Before(time.Now()) {
		writeErrorJSON(w, http.StatusBadRequest, "event date must be in the future")
		return
	}
	if req.ReminderMinutes < 0 {
		writeErrorJSON(w, http.StatusBadRequest, "reminder_minutes cannot be negative")
		return
	}

	ctx := context.Background()
	event, err := c.repository.Insert(ctx, req)
	if err != nil {
		log.Printf("❌ CreateEvent: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to create event: %v", err))
		return
	}

	event.FillReminder(time.Now())
	log.Printf("✅ CreateEvent: Event %d planned for %s, reminder at %s", event.ID, event.Date, event.ReminderAt)
	writeJSON(w, http.StatusCreated, event)
}

// List handles GET /events?user_id=...
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListEvents: Received %s request to %s", r.Method, r.URL.Path)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "user_id is required")
		return
	}

	ctx := context.Background()
	events, err := c.repository.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("❌ ListEvents: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list events: %v", err))
		return
	}

	now := time.Now()
	for i := range events {
		events[i].FillReminder(now)
	}

	writeJSON(w, http.StatusOK, events)
}

// Delete handles DELETE /events/:id?user_id=...
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteEvent: Received %s request to %s", r.Method, r.URL.Path)

	path := strings.TrimPrefix(r.URL.Path, "/events/")
	id, err := strconv.Atoi(strings.Split(path, "/")[0])
	if err != nil || id <= 0 {
		writeErrorJSON(w, http.StatusBadRequest, "invalid event id")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "user_id is required")
		return
	}

	ctx := context.Background()
	if err := c.repository.Delete(ctx, userID, id); err != nil {
		log.Printf("❌ DeleteEvent: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete event: %v", err))
		return
	}

	log.Printf("✅ DeleteEvent: Event %d deleted for user %s", id, userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}
