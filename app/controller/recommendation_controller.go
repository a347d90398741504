package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"groomify-backend/engine"
	"groomify-backend/models"
	"groomify-backend/repository"
)

// RecommendationController exposes the recommendation engine over HTTP
type RecommendationController struct {
	engine   *engine.Engine
	feedback repository.FeedbackRepositoryInterface
}

// NewRecommendationController creates a new RecommendationController
func NewRecommendationController(eng *engine.Engine, feedback repository.FeedbackRepositoryInterface) *RecommendationController {
	return &RecommendationController{
		engine:   eng,
		feedback: feedback,
	}
}

// Recommend handles POST /recommend
// Returns up to three outfit suggestions as a JSON array. A request
// that matches nothing returns a JSON object with an error field.
func (c *RecommendationController) Recommend(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Recommend: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Recommend: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var criteria models.RecommendationCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		log.Printf("❌ Recommend: Failed to decode request body: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if missing := criteria.MissingFields(); len(missing) > 0 {
		log.Printf("❌ Recommend: Missing fields: %v", missing)
		writeErrorJSON(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	gender := strings.ToLower(strings.TrimSpace(criteria.Gender))
	if gender != "male" && gender != "female" {
		log.Printf("❌ Recommend: Invalid gender: %s", criteria.Gender)
		writeErrorJSON(w, http.StatusBadRequest, "Gender must be male or female.")
		return
	}

	if !c.engine.DatasetLoaded() {
		log.Printf("❌ Recommend: Dataset not loaded")
		writeErrorJSON(w, http.StatusInternalServerError, "Recommendation dataset not loaded.")
		return
	}

	ctx := context.Background()
	outfits, err := c.engine.Recommend(ctx, criteria)
	if err != nil {
		log.Printf("❌ Recommend: Engine error: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate recommendations: %v", err))
		return
	}

	if len(outfits) == 0 {
		log.Printf("🔍 Recommend: No matching outfits for %s/%s", criteria.Event, criteria.Gender)
		writeJSON(w, http.StatusOK, map[string]string{"error": "No matching outfits found."})
		return
	}

	log.Printf("✅ Recommend: Returning %d outfits", len(outfits))
	writeJSON(w, http.StatusOK, outfits)
}

// Feedback handles POST /feedback
// Records an accept or reject verdict for an outfit.
func (c *RecommendationController) Feedback(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Feedback: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Feedback: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Feedback: Failed to decode request body: %v", err)
		writeErrorJSON(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if len(req.Outfit) == 0 {
		log.Printf("❌ Feedback: Empty outfit")
		writeErrorJSON(w, http.StatusBadRequest, "outfit cannot be empty")
		return
	}
	if req.Feedback != models.FeedbackAccepted && req.Feedback != models.FeedbackRejected {
		log.Printf("❌ Feedback: Invalid verdict: %s", req.Feedback)
		writeErrorJSON(w, http.StatusBadRequest, "feedback must be accepted or rejected")
		return
	}

	ctx := context.Background()
	if err := c.feedback.Insert(ctx, req.Outfit, req.Feedback); err != nil {
		log.Printf("❌ Feedback: Failed to store feedback: %v", err)
		writeErrorJSON(w, http.StatusInternalServerError, fmt.Sprintf("Failed to store feedback: %v", err))
		return
	}

	log.Printf("✅ Feedback: Recorded %s verdict", req.Feedback)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback recorded"})
}

// Status handles GET /
// Reports engine status, mirroring the recommender's landing banner.
func (c *RecommendationController) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "Groomify Recommendation API",
		"status":  c.engine.Describe(),
	})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// writeErrorJSON writes an error payload with the given status code
func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
