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

// ReviewController handles the outfit review workflow: generating a
// batch of candidates, accepting and rejecting them, and saving the
// accepted ones.
type ReviewController struct {
	recommender *service.RecommenderClient
	sessions    *service.SessionStore
	suggestions *service.SuggestionService
}

// NewReviewController creates a new ReviewController
func NewReviewController(recommender *service.RecommenderClient, sessions *service.SessionStore, suggestions *service.SuggestionService) *ReviewController {
	return &ReviewController{
		recommender: recommender,
		sessions:    sessions,
		suggestions: suggestions,
	}
}

type generateRequest struct {
	UserID string `json:"user_id"`
	models.RecommendationCriteria
}

type candidateView struct {
	Attributes map[string]string      `json:"attributes"`
	Display    map[string]string      `json:"display"`
	Status     models.CandidateStatus `json:"status"`
}

type sessionView struct {
	SessionID  string          `json:"session_id"`
	Candidates []candidateView `json:"candidates"`
	CanSave    bool            `json:"can_save"`
}

func viewOf(session *service.ReviewSession) sessionView {
	candidates := session.Candidates()
	views := make([]candidateView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, candidateView{
			Attributes: c.Attributes,
			Display:    service.VisibleAttributes(c.Attributes),
			Status:     c.Status,
		})
	}
	return sessionView{
		SessionID:  session.ID,
		Candidates: views,
		CanSave:    session.CanSave(),
	}
}

// Generate handles POST /recommendations/generate
// Fetches candidates from the recommender and opens a review session.
func (c *ReviewController) Generate(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Generate: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Generate: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Generate: Failed to decode request body: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Every session belongs to a user; their next generate replaces
	// it, which keeps the store bounded.
	if strings.TrimSpace(req.UserID) == "" {
		log.Printf("❌ Generate: Missing user_id")
		writeErrorJSON(w, http.StatusUnauthorized, "user_id is required")
		return
	}

	ctx := context.Background()
	candidates, err := c.recommender.Fetch(ctx, req.RecommendationCriteria)
	if err != nil {
		c.writeFetchError(w, err)
		return
	}

	session := c.sessions.Create(req.UserID, candidates, c.recommender)
	log.Printf("✅ Generate: Session %s ready with %d candidates", session.ID, len(candidates))
	writeJSON(w, http.StatusCreated, viewOf(session))
}

// writeFetchError maps fetch failures to HTTP responses. Each class
// carries a message the client can show as-is.
func (c *ReviewController) writeFetchError(w http.ResponseWriter, err error) {
	var serverErr *service.ServerError
	var connErr *service.ConnectivityError

	switch {
	case errors.Is(err, service.ErrMissingFields):
		log.Printf("❌ Generate: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoResults):
		log.Printf("🔍 Generate: No matching outfits")
		writeErrorJSON(w, http.StatusNotFound, "No matching outfits found. Try different criteria.")
	case errors.As(err, &serverErr):
		log.Printf("❌ Generate: Recommender error: %v", err)
		message := serverErr.Message
		if message == "" {
			message = "The recommendation service reported an error."
		}
		writeErrorJSON(w, http.StatusBadGateway, message)
	case errors.As(err, &connErr):
		log.Printf("❌ Generate: Recommender unreachable: %v", err)
		writeErrorJSON(w, http.StatusServiceUnavailable, "Could not reach the recommendation service. Check your connection.")
	default:
		log.Printf("❌ Generate: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch recommendations: %v", err))
	}
}

// GetSession handles GET /recommendations/sessions/:id
func (c *ReviewController) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := c.sessionFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(session))
}

// Accept handles POST /recommendations/sessions/:id/accept
func (c *ReviewController) Accept(w http.ResponseWriter, r *http.Request) {
	c.applyVerdict(w, r, "Accept", func(session *service.ReviewSession, index int) error {
		return session.Accept(index)
	})
}

// Reject handles POST /recommendations/sessions/:id/reject
// The rejected candidate is removed from the session.
func (c *ReviewController) Reject(w http.ResponseWriter, r *http.Request) {
	c.applyVerdict(w, r, "Reject", func(session *service.ReviewSession, index int) error {
		return session.Reject(index)
	})
}

func (c *ReviewController) applyVerdict(w http.ResponseWriter, r *http.Request, name string, apply func(*service.ReviewSession, int) error) {
	log.Printf("📥 %s: Received %s request to %s", name, r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ %s: Method not allowed: %s", name, r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, ok := c.sessionFromPath(w, r)
	if !ok {
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ %s: Failed to decode request body: %v", name, err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := apply(session, req.Index); err != nil {
		if errors.Is(err, service.ErrIndexOutOfRange) {
			log.Printf("❌ %s: %v", name, err)
			writeErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("❌ %s: %v", name, err)
		writeErrorJSON(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Printf("✅ %s: Candidate %d in session %s", name, req.Index, session.ID)
	writeJSON(w, http.StatusOK, viewOf(session))
}

// Save handles POST /recommendations/sessions/:id/save
// Persists the accepted candidates, replacing the user's saved batch.
func (c *ReviewController) Save(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Save: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Save: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, ok := c.sessionFromPath(w, r)
	if !ok {
		return
	}

	ctx := context.Background()
	err := c.suggestions.SaveAccepted(ctx, session.UserID, session.Accepted())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			log.Printf("❌ Save: User not logged in")
			writeErrorJSON(w, http.StatusUnauthorized, "You must be logged in to save suggestions.")
		case errors.Is(err, service.ErrNothingAccepted):
			log.Printf("❌ Save: Nothing accepted in session %s", session.ID)
			writeErrorJSON(w, http.StatusBadRequest, "Accept at least one outfit before saving.")
		default:
			log.Printf("❌ Save: %v", err)
			writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save suggestions: %v", err))
		}
		return
	}

	log.Printf("✅ Save: Session %s saved for user %s", session.ID, session.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Suggestions saved"})
}

// DeleteSession handles DELETE /recommendations/sessions/:id
func (c *ReviewController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteSession: Received %s request to %s", r.Method, r.URL.Path)

	id := sessionIDFromPath(r.URL.Path)
	c.sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// sessionFromPath resolves the review session named in the URL,
// writing a 404 if it does not exist.
func (c *ReviewController) sessionFromPath(w http.ResponseWriter, r *http.Request) (*service.ReviewSession, bool) {
	id := sessionIDFromPath(r.URL.Path)
	if id == "" {
		writeErrorJSON(w, http.StatusBadRequest, "session id is required")
		return nil, false
	}

	session, err := c.sessions.Get(id)
	if err != nil {
		log.Printf("❌ Session not found: %s", id)
		writeErrorJSON(w, http.StatusNotFound, fmt.Sprintf("Session not found: %s", id))
		return nil, false
	}
	return session, true
}

// sessionIDFromPath extracts the session ID from paths like
// /recommendations/sessions/:id and /recommendations/sessions/:id/accept
func sessionIDFromPath(path string) string {
	path = strings.TrimPrefix(path, "/recommendations/sessions/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
