package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomify-backend/models"
	"groomify-backend/repository"
)

// fakeSuggestionRepo is an in-memory stand-in for the Postgres
// repository. Newest-first ordering matches the real implementation.
type fakeSuggestionRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string][]models.SavedSuggestion
}

var _ repository.SuggestionRepositoryInterface = (*fakeSuggestionRepo)(nil)

func newFakeSuggestionRepo() *fakeSuggestionRepo {
	return &fakeSuggestionRepo{nextID: 1, rows: make(map[string][]models.SavedSuggestion)}
}

func (r *fakeSuggestionRepo) ReplaceForUser(ctx context.Context, userID string, suggestions []map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[userID] = nil
	for _, attrs := range suggestions {
		copied := make(map[string]string, len(attrs))
		for k, v := range attrs {
			copied[k] = v
		}
		saved := models.SavedSuggestion{
			ID:         strconv.FormatInt(r.nextID, 10),
			UserID:     userID,
			Attributes: copied,
		}
		r.nextID++
		r.rows[userID] = append([]models.SavedSuggestion{saved}, r.rows[userID]...)
	}
	return nil
}

func (r *fakeSuggestionRepo) ListByUser(ctx context.Context, userID string) ([]models.SavedSuggestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.SavedSuggestion, len(r.rows[userID]))
	copy(out, r.rows[userID])
	return out, nil
}

func (r *fakeSuggestionRepo) Delete(ctx context.Context, userID, suggestionID string) error {
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

func TestSaveAcceptedRequiresUser(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepo())
	err := svc.SaveAccepted(context.Background(), "", []map[string]string{{"Dress Type": "Maxi"}})
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestSaveAcceptedRequiresOutfits(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepo())
	err := svc.SaveAccepted(context.Background(), "user-1", nil)
	assert.True(t, errors.Is(err, ErrNothingAccepted))
}

func TestSaveAcceptedReplacesPreviousBatch(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepo())
	ctx := context.Background()

	require.NoError(t, svc.SaveAccepted(ctx, "user-1", []map[string]string{
		{"Dress Type": "Maxi"},
		{"Dress Type": "Frock"},
	}))
	require.NoError(t, svc.SaveAccepted(ctx, "user-1", []map[string]string{
		{"Dress Type": "Kurta"},
	}))

	saved, err := svc.LoadSaved(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Kurta", saved[0].Attributes["Dress Type"])
}

func TestSaveAcceptedSanitizesKeys(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepo())
	ctx := context.Background()

	require.NoError(t, svc.SaveAccepted(ctx, "user-1", []map[string]string{
		{"Dress.Type": "Maxi", "Shoes/Color": "Red"},
	}))

	saved, err := svc.LoadSaved(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Maxi", saved[0].Attributes["Dress_Type"])
	assert.Equal(t, "Red", saved[0].Attributes["Shoes_Color"])
}

func TestLoadSavedRequiresUser(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepo())
	_, err := svc.LoadSaved(context.Background(), "")
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestDeleteSavedRequiresConfirmation(t *testing.T) {
	repo := newFakeSuggestionRepo()
	svc := NewSuggestionService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SaveAccepted(ctx, "user-1", []map[string]string{{"Dress Type": "Maxi"}}))
	saved, err := svc.LoadSaved(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)

	err = svc.DeleteSaved(ctx, "user-1", saved[0].ID, false)
	assert.True(t, errors.Is(err, ErrConfirmationRequired))

	saved, err = svc.LoadSaved(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	require.NoError(t, svc.DeleteSaved(ctx, "user-1", saved[0].ID, true))
	saved, err = svc.LoadSaved(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestDeleteSavedIsIdempotent(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepo())
	err := svc.DeleteSaved(context.Background(), "user-1", "404", true)
	assert.NoError(t, err)
}

func TestSubscribeDeliversSnapshots(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepo())
	ctx := context.Background()

	snapshots := make(chan []models.SavedSuggestion, 8)
	unsubscribe := svc.Subscribe("user-1", func(s []models.SavedSuggestion) {
		snapshots <- s
	})
	defer unsubscribe()

	// Initial snapshot arrives without any change.
	assert.Empty(t, waitForSnapshot(t, snapshots))

	require.NoError(t, svc.SaveAccepted(ctx, "user-1", []map[string]string{{"Dress Type": "Maxi"}}))
	assert.Len(t, waitForSnapshot(t, snapshots), 1)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	svc := NewSuggestionService(newFakeSuggestionRepo())
	ctx := context.Background()

	snapshots := make(chan []models.SavedSuggestion, 8)
	unsubscribe := svc.Subscribe("user-1", func(s []models.SavedSuggestion) {
		snapshots <- s
	})
	waitForSnapshot(t, snapshots)
	unsubscribe()

	require.NoError(t, svc.SaveAccepted(ctx, "user-1", []map[string]string{{"Dress Type": "Maxi"}}))

	select {
	case <-snapshots:
		t.Fatal("received snapshot after unsubscribe")
	case <-time.After(200 * time.Millisecond):
	}
}

func waitForSnapshot(t *testing.T, ch chan []models.SavedSuggestion) []models.SavedSuggestion {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}
