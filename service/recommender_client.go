package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"groomify-backend/models"
)

// Sentinel errors returned by Fetch so callers can tell a validation
// problem apart from an empty result set.
var (
	ErrMissingFields = errors.New("missing required criteria fields")
	ErrNoResults     = errors.New("no matching outfits found")
)

// ServerError is returned when the recommender answered with a non-2xx
// status. Message carries the backend-provided error text when present.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("recommender returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("recommender returned status %d", e.StatusCode)
}

// ConnectivityError is returned when the request never produced a
// response (network down, recommender not running).
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("could not reach recommender: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// RecommenderClient talks to the recommendation backend over HTTP.
type RecommenderClient struct {
	baseURL string
	client  *http.Client
}

func NewRecommenderClient(baseURL string) *RecommenderClient {
	return &RecommenderClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Fetch posts the criteria to the recommender and returns the candidate
// outfits, each marked pending. All five criteria fields must be set
// before any request goes out.
func (c *RecommenderClient) Fetch(ctx context.Context, criteria models.RecommendationCriteria) ([]models.OutfitCandidate, error) {
	if missing := criteria.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	payload, err := json.Marshal(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to encode criteria: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/recommend", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build recommend request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recommend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: extractErrorMessage(body)}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		// The recommender reports "nothing matched" as an object with
		// an error field instead of an empty array.
		log.Printf("🔍 Recommender returned no results: %s", extractErrorMessage(body))
		return nil, ErrNoResults
	}

	var outfits []map[string]string
	if err := json.Unmarshal(trimmed, &outfits); err != nil {
		return nil, fmt.Errorf("failed to decode recommend response: %w", err)
	}
	if len(outfits) == 0 {
		return nil, ErrNoResults
	}

	candidates := make([]models.OutfitCandidate, 0, len(outfits))
	for _, attrs := range outfits {
		candidates = append(candidates, models.OutfitCandidate{
			Attributes: attrs,
			Status:     models.StatusPending,
		})
	}
	log.Printf("✓ Fetched %d outfit candidates from recommender", len(candidates))
	return candidates, nil
}

// SendFeedback reports an accept or reject verdict for a single outfit.
// Only the outfit attributes travel, never any review state.
func (c *RecommenderClient) SendFeedback(ctx context.Context, outfit map[string]string, verdict models.FeedbackVerdict) error {
	payload, err := json.Marshal(models.FeedbackRequest{Outfit: outfit, Feedback: verdict})
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/feedback", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build feedback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &ConnectivityError{Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ServerError{StatusCode: resp.StatusCode}
	}
	return nil
}

func extractErrorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
