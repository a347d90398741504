package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"groomify-backend/models"
	"groomify-backend/service"
)

// SuggestionController handles HTTP requests for saved suggestions
type SuggestionController struct {
	suggestions *service.SuggestionService
	lookbook    *service.LookbookService
}

// NewSuggestionController creates a new SuggestionController
func NewSuggestionController(suggestions *service.SuggestionService, lookbook *service.LookbookService) *SuggestionController {
	return &SuggestionController{
		suggestions: suggestions,
		lookbook:    lookbook,
	}
}

// List handles GET /suggestions?user_id=...
// Returns the user's saved suggestions, newest first.
func (c *SuggestionController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListSuggestions: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListSuggestions: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	ctx := context.Background()

	saved, err := c.suggestions.LoadSaved(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			log.Printf("❌ ListSuggestions: Missing user_id")
			writeErrorJSON(w, http.StatusUnauthorized, "user_id is required")
			return
		}
		log.Printf("❌ ListSuggestions: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load suggestions: %v", err))
		return
	}

	log.Printf("✅ ListSuggestions: Returning %d suggestions for user %s", len(saved), userID)
	writeJSON(w, http.StatusOK, saved)
}

// Delete handles DELETE /suggestions/:id?user_id=...&confirm=true
// The confirm flag is required; without it nothing is deleted.
func (c *SuggestionController) Delete(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteSuggestion: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodDelete {
		log.Printf("❌ DeleteSuggestion: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	suggestionID := strings.TrimPrefix(r.URL.Path, "/suggestions/")
	if suggestionID == "" {
		writeErrorJSON(w, http.StatusBadRequest, "suggestion id is required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	confirmed := r.URL.Query().Get("confirm") == "true"

	ctx := context.Background()
	err := c.suggestions.DeleteSaved(ctx, userID, suggestionID, confirmed)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			log.Printf("❌ DeleteSuggestion: Missing user_id")
			writeErrorJSON(w, http.StatusUnauthorized, "user_id is required")
		case errors.Is(err, service.ErrConfirmationRequired):
			log.Printf("⚠️ DeleteSuggestion: Unconfirmed delete for suggestion %s", suggestionID)
			writeErrorJSON(w, http.StatusBadRequest, "Pass confirm=true to delete this suggestion.")
		default:
			log.Printf("❌ DeleteSuggestion: %v", err)
			writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete suggestion: %v", err))
		}
		return
	}

	log.Printf("✅ DeleteSuggestion: Suggestion %s deleted for user %s", suggestionID, userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Suggestion deleted"})
}

// Watch handles GET /suggestions/watch?user_id=...
// Streams the user's saved list as server-sent events: one snapshot on
// connect and another after every save or delete, until the client
// disconnects.
func (c *SuggestionController) Watch(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 WatchSuggestions: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ WatchSuggestions: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeErrorJSON(w, http.StatusUnauthorized, "user_id is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Printf("❌ WatchSuggestions: Response writer does not support streaming")
		writeErrorJSON(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// The listener must never block the notifier; a slow client just
	// skips intermediate snapshots.
	snapshots := make(chan []models.SavedSuggestion, 8)
	unsubscribe := c.suggestions.Subscribe(userID, func(s []models.SavedSuggestion) {
		select {
		case snapshots <- s:
		default:
		}
	})
	defer unsubscribe()

	log.Printf("✓ WatchSuggestions: Streaming for user %s", userID)
	for {
		select {
		case <-r.Context().Done():
			log.Printf("📋 WatchSuggestions: Client for user %s disconnected", userID)
			return
		case snapshot := <-snapshots:
			payload, err := json.Marshal(snapshot)
			if err != nil {
				log.Printf("❌ WatchSuggestions: Failed to encode snapshot: %v", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

// RenderLookbook handles GET /suggestions/lookbook/render?user_id=...
// Serves the lookbook HTML page that the PDF printer loads.
func (c *SuggestionController) RenderLookbook(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RenderLookbook: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	ctx := context.Background()

	html, err := c.lookbook.RenderHTML(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			writeErrorJSON(w, http.StatusUnauthorized, "user_id is required")
			return
		}
		log.Printf("❌ RenderLookbook: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to render lookbook: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// DownloadLookbook handles GET /suggestions/lookbook?user_id=...
// Generates and streams the lookbook PDF.
func (c *SuggestionController) DownloadLookbook(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DownloadLookbook: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeErrorJSON(w, http.StatusUnauthorized, "user_id is required")
		return
	}

	ctx := context.Background()
	pdf, err := c.lookbook.GeneratePDF(ctx, userID)
	if err != nil {
		log.Printf("❌ DownloadLookbook: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate lookbook: %v", err))
		return
	}

	log.Printf("✅ DownloadLookbook: PDF generated for user %s (%d bytes)", userID, len(pdf))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="lookbook.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
