package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groomify-backend/models"
)

type recordedFeedback struct {
	outfit  map[string]string
	verdict models.FeedbackVerdict
}

type feedbackRecorder struct {
	sent chan recordedFeedback
}

func newFeedbackRecorder() *feedbackRecorder {
	return &feedbackRecorder{sent: make(chan recordedFeedback, 16)}
}

func (r *feedbackRecorder) SendFeedback(ctx context.Context, outfit map[string]string, verdict models.FeedbackVerdict) error {
	r.sent <- recordedFeedback{outfit: outfit, verdict: verdict}
	return nil
}

func (r *feedbackRecorder) waitForOne(t *testing.T) recordedFeedback {
	t.Helper()
	select {
	case fb := <-r.sent:
		return fb
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feedback")
		return recordedFeedback{}
	}
}

func testCandidates() []models.OutfitCandidate {
	return []models.OutfitCandidate{
		{Attributes: map[string]string{"Dress Type": "Maxi"}},
		{Attributes: map[string]string{"Dress Type": "Frock"}},
		{Attributes: map[string]string{"Dress Type": "Kurta"}},
	}
}

func TestCreateResetsStatuses(t *testing.T) {
	store := NewSessionStore()
	candidates := testCandidates()
	candidates[1].Status = models.StatusAccepted

	session := store.Create("user-1", candidates, nil)
	for _, c := range session.Candidates() {
		assert.Equal(t, models.StatusPending, c.Status)
	}
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "user-1", session.UserID)
}

func TestAcceptMarksInPlace(t *testing.T) {
	recorder := newFeedbackRecorder()
	store := NewSessionStore()
	session := store.Create("user-1", testCandidates(), recorder)

	require.NoError(t, session.Accept(1))

	got := session.Candidates()
	require.Len(t, got, 3)
	assert.Equal(t, models.StatusPending, got[0].Status)
	assert.Equal(t, models.StatusAccepted, got[1].Status)
	assert.Equal(t, models.StatusPending, got[2].Status)

	fb := recorder.waitForOne(t)
	assert.Equal(t, models.FeedbackAccepted, fb.verdict)
	assert.Equal(t, "Frock", fb.outfit["Dress Type"])
}

func TestRejectRemovesPreservingOrder(t *testing.T) {
	recorder := newFeedbackRecorder()
	store := NewSessionStore()
	session := store.Create("user-1", testCandidates(), recorder)
	require.NoError(t, session.Accept(0))
	recorder.waitForOne(t)

	require.NoError(t, session.Reject(1))

	got := session.Candidates()
	require.Len(t, got, 2)
	assert.Equal(t, "Maxi", got[0].Attributes["Dress Type"])
	assert.Equal(t, models.StatusAccepted, got[0].Status)
	assert.Equal(t, "Kurta", got[1].Attributes["Dress Type"])

	fb := recorder.waitForOne(t)
	assert.Equal(t, models.FeedbackRejected, fb.verdict)
	assert.Equal(t, "Frock", fb.outfit["Dress Type"])
}

func TestAcceptRejectOutOfRange(t *testing.T) {
	store := NewSessionStore()
	session := store.Create("user-1", testCandidates(), nil)

	assert.True(t, errors.Is(session.Accept(-1), ErrIndexOutOfRange))
	assert.True(t, errors.Is(session.Accept(3), ErrIndexOutOfRange))
	assert.True(t, errors.Is(session.Reject(99), ErrIndexOutOfRange))
	assert.Len(t, session.Candidates(), 3)
}

func TestCanSaveAndAccepted(t *testing.T) {
	store := NewSessionStore()
	session := store.Create("user-1", testCandidates(), nil)
	assert.False(t, session.CanSave())
	assert.Empty(t, session.Accepted())

	require.NoError(t, session.Accept(2))
	require.NoError(t, session.Accept(0))
	assert.True(t, session.CanSave())

	accepted := session.Accepted()
	require.Len(t, accepted, 2)
	assert.Equal(t, "Maxi", accepted[0]["Dress Type"])
	assert.Equal(t, "Kurta", accepted[1]["Dress Type"])

	// Mutating the returned maps must not touch session state.
	accepted[0]["Dress Type"] = "changed"
	assert.Equal(t, "Maxi", session.Candidates()[0].Attributes["Dress Type"])
}

func TestRejectAllDisablesSave(t *testing.T) {
	recorder := newFeedbackRecorder()
	store := NewSessionStore()
	session := store.Create("user-1", testCandidates()[:1], recorder)

	require.NoError(t, session.Accept(0))
	recorder.waitForOne(t)
	require.NoError(t, session.Reject(0))
	recorder.waitForOne(t)

	assert.False(t, session.CanSave())
	assert.Empty(t, session.Candidates())
}

func TestCreateReplacesPreviousSessionForUser(t *testing.T) {
	store := NewSessionStore()
	first := store.Create("user-1", testCandidates(), nil)
	other := store.Create("user-2", testCandidates(), nil)
	second := store.Create("user-1", testCandidates(), nil)

	_, err := store.Get(first.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	_, err = store.Get(second.ID)
	assert.NoError(t, err)
	_, err = store.Get(other.ID)
	assert.NoError(t, err)
}

func TestStoreGetAndDelete(t *testing.T) {
	store := NewSessionStore()
	session := store.Create("user-1", testCandidates(), nil)

	got, err := store.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	_, err = store.Get("nope")
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	store.Delete(session.ID)
	_, err = store.Get(session.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	store.Delete("nope")
}

func TestVisibleAttributes(t *testing.T) {
	attrs := map[string]string{
		"Dress Type":        "Maxi",
		"Upper Layer":       "N/A",
		"Upper Layer Color": "",
		"Shoes Type":        "Not Required",
		"Dress Color":       "Red",
	}

	visible := VisibleAttributes(attrs)
	assert.Equal(t, map[string]string{
		"Dress Type":  "Maxi",
		"Dress Color": "Red",
	}, visible)
}

// Values that merely resemble placeholders stay visible.
func TestVisibleAttributesKeepsLiteralValues(t *testing.T) {
	attrs := map[string]string{
		"Upper Layer": "None",
		"Dress Color": "na",
		"Shoes Type":  "N/A",
	}

	visible := VisibleAttributes(attrs)
	assert.Equal(t, map[string]string{
		"Upper Layer": "None",
		"Dress Color": "na",
	}, visible)
}
