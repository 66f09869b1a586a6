package session

import (
	"errors"
	"fmt"
	"sync"

	"dentaldesk/internal/models"
)

// Durable storage keys, written and cleared together.
const (
	KeyToken  = "token"
	KeyRole   = "userRole"
	KeyUserID = "userId"
)

var ErrNoSession = errors.New("no active session")

// Store holds the current session in memory and mirrors it to Storage.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	current models.Session
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load restores the session from storage. A partial set of keys is treated
// as no session and cleared.
func (s *Store) Load() (models.Session, bool) {
	token, okT := s.storage.Get(KeyToken)
	role, okR := s.storage.Get(KeyRole)
	uid, okU := s.storage.Get(KeyUserID)

	sess := models.Session{Token: token, Role: models.Role(role), UserID: uid}
	if !okT || !okR || !okU || !sess.Valid() {
		_ = s.Clear()
		return models.Session{}, false
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return sess, true
}

// Save persists sess and makes it current.
func (s *Store) Save(sess models.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("save session: %w", ErrNoSession)
	}
	for _, kv := range [][2]string{
		{KeyToken, sess.Token},
		{KeyRole, string(sess.Role)},
		{KeyUserID, sess.UserID},
	} {
		if err := s.storage.Set(kv[0], kv[1]); err != nil {
			return fmt.Errorf("persist %s: %w", kv[0], err)
		}
	}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return nil
}

// Clear removes the session from memory and storage. Safe to call repeatedly.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = models.Session{}
	s.mu.Unlock()

	var errs []error
	for _, k := range []string{KeyToken, KeyRole, KeyUserID} {
		if err := s.storage.Delete(k); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.current.Valid()
}

// Token satisfies gateway.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}
