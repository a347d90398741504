package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomify-backend/models"
	"groomify-backend/repository"
	"groomify-backend/service"
)

type memorySuggestionRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string][]models.SavedSuggestion
}

var _ repository.SuggestionRepositoryInterface = (*memorySuggestionRepo)(nil)

func newMemorySuggestionRepo() *memorySuggestionRepo {
	return &memorySuggestionRepo{nextID: 1, rows: make(map[string][]models.SavedSuggestion)}
}

func (r *memorySuggestionRepo) ReplaceForUser(ctx context.Context, userID string, suggestions []map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[userID] = nil
	for _, attrs := range suggestions {
		r.rows[userID] = append([]models.SavedSuggestion{{
			ID:         strconv.FormatInt(r.nextID, 10),
			UserID:     userID,
			Attributes: attrs,
		}}, r.rows[userID]...)
		r.nextID++
	}
	return nil
}

func (r *memorySuggestionRepo) ListByUser(ctx context.Context, userID string) ([]models.SavedSuggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.SavedSuggestion(nil), r.rows[userID]...), nil
}

func (r *memorySuggestionRepo) Delete(ctx context.Context, userID, suggestionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[userID][:0]
	for _, s := range r.rows[userID] {
		if s.ID != suggestionID {
			kept = append(kept, s)
		}
	}
	r.rows[userID] = kept
	return nil
}

// fakeRecommender serves /recommend and /feedback the way the real
// recommendation API does.
func fakeRecommender(t *testing.T, outfits []map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recommend":
			if len(outfits) == 0 {
				json.NewEncoder(w).Encode(map[string]string{"error": "No matching outfits found."})
				return
			}
			json.NewEncoder(w).Encode(outfits)
		case "/feedback":
			json.NewEncoder(w).Encode(map[string]string{"message": "Feedback recorded"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
}

func newReviewSetup(t *testing.T, outfits []map[string]string) (*ReviewController, *memorySuggestionRepo, func()) {
	server := fakeRecommender(t, outfits)
	repo := newMemorySuggestionRepo()
	ctrl := NewReviewController(
		service.NewRecommenderClient(server.URL),
		service.NewSessionStore(),
		service.NewSuggestionService(repo),
	)
	return ctrl, repo, server.Close
}

func generateBody() string {
	return `{"user_id":"user-1","event":"Nikah","outfit":"Formal","time":"Night","gender":"Female","weather":"25"}`
}

func doGenerate(t *testing.T, ctrl *ReviewController) sessionView {
	req := httptest.NewRequest(http.MethodPost, "/recommendations/generate", strings.NewReader(generateBody()))
	rec := httptest.NewRecorder()
	ctrl.Generate(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var view sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestGenerateCreatesSession(t *testing.T) {
	ctrl, _, cleanup := newReviewSetup(t, []map[string]string{
		{"Dress Type": "Maxi", "Upper Layer": "N/A"},
		{"Dress Type": "Frock"},
	})
	defer cleanup()

	view := doGenerate(t, ctrl)
	assert.NotEmpty(t, view.SessionID)
	require.Len(t, view.Candidates, 2)
	assert.False(t, view.CanSave)

	assert.Equal(t, models.StatusPending, view.Candidates[0].Status)
	assert.Equal(t, "Maxi", view.Candidates[0].Attributes["Dress Type"])
	// Placeholder values are filtered from the display map only.
	assert.NotContains(t, view.Candidates[0].Display, "Upper Layer")
	assert.Contains(t, view.Candidates[0].Attributes, "Upper Layer")
}

func TestGenerateNoResults(t *testing.T) {
	ctrl, _, cleanup := newReviewSetup(t, nil)
	defer cleanup()

	req := httptest.NewRequest(http.MethodPost, "/recommendations/generate", strings.NewReader(generateBody()))
	rec := httptest.NewRecorder()
	ctrl.Generate(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No matching outfits")
}

func TestGenerateRequiresUser(t *testing.T) {
	ctrl, _, cleanup := newReviewSetup(t, []map[string]string{{"Dress Type": "Maxi"}})
	defer cleanup()

	body := `{"event":"Nikah","outfit":"Formal","time":"Night","gender":"Female","weather":"25"}`
	req := httptest.NewRequest(http.MethodPost, "/recommendations/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ctrl.Generate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateMissingFields(t *testing.T) {
	ctrl, _, cleanup := newReviewSetup(t, nil)
	defer cleanup()

	body := `{"user_id":"user-1","event":"Nikah"}`
	req := httptest.NewRequest(http.MethodPost, "/recommendations/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ctrl.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAcceptRejectSaveFlow(t *testing.T) {
	ctrl, repo, cleanup := newReviewSetup(t, []map[string]string{
		{"Dress Type": "Maxi"},
		{"Dress Type": "Frock"},
		{"Dress Type": "Kurta"},
	})
	defer cleanup()

	view := doGenerate(t, ctrl)
	base := "/recommendations/sessions/" + view.SessionID

	// Saving before accepting anything is refused.
	rec := httptest.NewRecorder()
	ctrl.Save(rec, httptest.NewRequest(http.MethodPost, base+"/save", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Accept the first candidate.
	rec = httptest.NewRecorder()
	ctrl.Accept(rec, httptest.NewRequest(http.MethodPost, base+"/accept", strings.NewReader(`{"index":0}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var after sessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Equal(t, models.StatusAccepted, after.Candidates[0].Status)
	assert.True(t, after.CanSave)

	// Reject the second; the list shrinks and order holds.
	rec = httptest.NewRecorder()
	ctrl.Reject(rec, httptest.NewRequest(http.MethodPost, base+"/reject", strings.NewReader(`{"index":1}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	require.Len(t, after.Candidates, 2)
	assert.Equal(t, "Maxi", after.Candidates[0].Attributes["Dress Type"])
	assert.Equal(t, "Kurta", after.Candidates[1].Attributes["Dress Type"])

	// Save persists only the accepted candidate.
	rec = httptest.NewRecorder()
	ctrl.Save(rec, httptest.NewRequest(http.MethodPost, base+"/save", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	saved, err := repo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Maxi", saved[0].Attributes["Dress Type"])
}

func TestVerdictOnUnknownSession(t *testing.T) {
	ctrl, _, cleanup := newReviewSetup(t, nil)
	defer cleanup()

	rec := httptest.NewRecorder()
	ctrl.Accept(rec, httptest.NewRequest(http.MethodPost, "/recommendations/sessions/ghost/accept", strings.NewReader(`{"index":0}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerdictIndexOutOfRange(t *testing.T) {
	ctrl, _, cleanup := newReviewSetup(t, []map[string]string{{"Dress Type": "Maxi"}})
	defer cleanup()

	view := doGenerate(t, ctrl)
	rec := httptest.NewRecorder()
	ctrl.Accept(rec, httptest.NewRequest(http.MethodPost,
		"/recommendations/sessions/"+view.SessionID+"/accept", strings.NewReader(`{"index":5}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteSessionThenGet(t *testing.T) {
	ctrl, _, cleanup := newReviewSetup(t, []map[string]string{{"Dress Type": "Maxi"}})
	defer cleanup()

	view := doGenerate(t, ctrl)
	base := "/recommendations/sessions/" + view.SessionID

	rec := httptest.NewRecorder()
	ctrl.DeleteSession(rec, httptest.NewRequest(http.MethodDelete, base, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	ctrl.GetSession(rec, httptest.NewRequest(http.MethodGet, base, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
