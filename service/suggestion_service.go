package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"groomify-backend/models"
	"groomify-backend/repository"
	"groomify-backend/utils"
)

var (
	ErrUnauthenticated      = errors.New("user not logged in")
	ErrNothingAccepted      = errors.New("no accepted outfits to save")
	ErrConfirmationRequired = errors.New("delete requires confirmation")
)

// SuggestionService owns the saved-suggestion lifecycle: persisting a
// batch of accepted outfits, listing them, deleting them, and notifying
// subscribers whenever a user's saved list changes.
type SuggestionService struct {
	repository repository.SuggestionRepositoryInterface

	mu        sync.Mutex
	listeners map[string]map[int]func([]models.SavedSuggestion)
	nextID    int
}

func NewSuggestionService(repo repository.SuggestionRepositoryInterface) *SuggestionService {
	return &SuggestionService{
		repository: repo,
		listeners:  make(map[string]map[int]func([]models.SavedSuggestion)),
	}
}

// SaveAccepted persists the accepted outfits for a user, replacing any
// previously saved batch. Attribute keys are sanitized before storage.
func (s *SuggestionService) SaveAccepted(ctx context.Context, userID string, accepted []map[string]string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if len(accepted) == 0 {
		return ErrNothingAccepted
	}

	sanitized := make([]map[string]string, 0, len(accepted))
	for _, attrs := range accepted {
		sanitized = append(sanitized, utils.SanitizeKeys(attrs))
	}

	if err := s.repository.ReplaceForUser(ctx, userID, sanitized); err != nil {
		return fmt.Errorf("failed to save suggestions: %w", err)
	}

	log.Printf("💾 Saved %d suggestions for user %s", len(sanitized), userID)
	s.notify(userID)
	return nil
}

// LoadSaved returns the user's saved suggestions, newest first.
func (s *SuggestionService) LoadSaved(ctx context.Context, userID string) ([]models.SavedSuggestion, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	suggestions, err := s.repository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved suggestions: %w", err)
	}
	return suggestions, nil
}

// DeleteSaved removes one saved suggestion. The caller must set
// confirmed; an unconfirmed delete never touches storage. Deleting an
// already-deleted suggestion succeeds quietly.
func (s *SuggestionService) DeleteSaved(ctx context.Context, userID, suggestionID string, confirmed bool) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if !confirmed {
		return ErrConfirmationRequired
	}

	if err := s.repository.Delete(ctx, userID, suggestionID); err != nil {
		return fmt.Errorf("failed to delete suggestion: %w", err)
	}

	s.notify(userID)
	return nil
}

// Subscribe registers a listener for changes to a user's saved list.
// The listener receives the current snapshot immediately and again
// after every save or delete. The returned function unsubscribes.
func (s *SuggestionService) Subscribe(userID string, onChange func([]models.SavedSuggestion)) func() {
	s.mu.Lock()
	if s.listeners[userID] == nil {
		s.listeners[userID] = make(map[int]func([]models.SavedSuggestion))
	}
	id := s.nextID
	s.nextID++
	s.listeners[userID][id] = onChange
	s.mu.Unlock()

	go s.deliver(userID, onChange)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners[userID], id)
	}
}

// notify pushes a fresh snapshot to every listener for the user.
func (s *SuggestionService) notify(userID string) {
	s.mu.Lock()
	targets := make([]func([]models.SavedSuggestion), 0, len(s.listeners[userID]))
	for _, fn := range s.listeners[userID] {
		targets = append(targets, fn)
	}
	s.mu.Unlock()

	for _, fn := range targets {
		go s.deliver(userID, fn)
	}
}

func (s *SuggestionService) deliver(userID string, fn func([]models.SavedSuggestion)) {
	snapshot, err := s.repository.ListByUser(context.Background(), userID)
	if err != nil {
		log.Printf("⚠️ Failed to load snapshot for subscriber of user %s: %v", userID, err)
		return
	}
	fn(snapshot)
}
