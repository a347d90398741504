package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"groomify-backend/models"
)

var (
	ErrIndexOutOfRange = errors.New("candidate index out of range")
	ErrSessionNotFound = errors.New("review session not found")
)

// FeedbackSender reports accept/reject verdicts to the recommendation
// backend. Satisfied by RecommenderClient.
type FeedbackSender interface {
	SendFeedback(ctx context.Context, outfit map[string]string, verdict models.FeedbackVerdict) error
}

// ReviewSession holds one batch of fetched outfit candidates while the
// user accepts and rejects them. A fresh fetch always starts a fresh
// session, so review state never leaks between batches.
type ReviewSession struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	mu         sync.Mutex
	candidates []models.OutfitCandidate
	feedback   FeedbackSender
}

// Candidates returns a snapshot of the current candidate list.
func (s *ReviewSession) Candidates() []models.OutfitCandidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.OutfitCandidate, len(s.candidates))
	copy(out, s.candidates)
	return out
}

// Accept marks the candidate at index as accepted in place and reports
// the verdict to the recommender in the background.
func (s *ReviewSession) Accept(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.candidates) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	s.candidates[index].Status = models.StatusAccepted
	s.reportAsync(s.candidates[index].Attributes, models.FeedbackAccepted)
	return nil
}

// Reject removes the candidate at index from the session and reports
// the verdict to the recommender in the background. Remaining
// candidates keep their order and statuses.
func (s *ReviewSession) Reject(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.candidates) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	rejected := s.candidates[index]
	s.candidates = append(s.candidates[:index], s.candidates[index+1:]...)
	s.reportAsync(rejected.Attributes, models.FeedbackRejected)
	return nil
}

// CanSave reports whether at least one candidate has been accepted.
func (s *ReviewSession) CanSave() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.candidates {
		if c.Status == models.StatusAccepted {
			return true
		}
	}
	return false
}

// Accepted returns the attribute maps of all accepted candidates, in
// list order. The maps are copies.
func (s *ReviewSession) Accepted() []map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []map[string]string
	for _, c := range s.candidates {
		if c.Status == models.StatusAccepted {
			out = append(out, copyAttributes(c.Attributes))
		}
	}
	return out
}

// reportAsync sends feedback without blocking the caller. A failed
// report is logged and otherwise ignored; the local review state is
// already final. Caller must hold s.mu.
func (s *ReviewSession) reportAsync(attrs map[string]string, verdict models.FeedbackVerdict) {
	if s.feedback == nil {
		return
	}
	outfit := copyAttributes(attrs)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.feedback.SendFeedback(ctx, outfit, verdict); err != nil {
			log.Printf("⚠️ Failed to report %s feedback: %v", verdict, err)
		}
	}()
}

func copyAttributes(attrs map[string]string) map[string]string {
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// VisibleAttributes filters an attribute map down to the pairs worth
// showing. Only empty values and the exact placeholders "N/A" and
// "Not Required" (case-insensitive) are dropped; anything else is a
// real attribute value.
func VisibleAttributes(attrs map[string]string) map[string]string {
	out := make(map[string]string)
	for k, v := range attrs {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "n/a", "not required":
			continue
		}
		out[k] = v
	}
	return out
}

// SessionStore keeps live review sessions in memory, keyed by ID.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*ReviewSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*ReviewSession)}
}

// Create starts a new review session for the given candidates,
// replacing any existing session of the same user. Every candidate
// starts out pending regardless of what the caller passed.
func (st *SessionStore) Create(userID string, candidates []models.OutfitCandidate, feedback FeedbackSender) *ReviewSession {
	session := &ReviewSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now(),
		feedback:  feedback,
	}
	session.candidates = make([]models.OutfitCandidate, len(candidates))
	copy(session.candidates, candidates)
	for i := range session.candidates {
		session.candidates[i].Status = models.StatusPending
	}

	st.mu.Lock()
	if userID != "" {
		for id, existing := range st.sessions {
			if existing.UserID == userID {
				delete(st.sessions, id)
			}
		}
	}
	st.sessions[session.ID] = session
	st.mu.Unlock()

	log.Printf("🆕 Review session %s started with %d candidates", session.ID, len(candidates))
	return session
}

// Get looks up a session by ID.
func (st *SessionStore) Get(id string) (*ReviewSession, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	session, ok := st.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Delete discards a session. Deleting an unknown ID is a no-op.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
