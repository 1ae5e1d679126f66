// Package storage persists pastes either in memory for the lifetime of the
// process or in a JSON file on disk, selected by the resolved storage
// location.
package storage

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound indicates the paste does not exist or has expired.
	ErrNotFound = errors.New("paste not found")
	// ErrEmptyID indicates a paste was stored without an identifier.
	ErrEmptyID = errors.New("paste id must not be empty")
)

// Paste is a stored paste. A zero ExpiresAt means the paste never expires.
type Paste struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt,omitzero"`
}

// Protected reports whether reading the paste requires a password.
func (p Paste) Protected() bool {
	return p.PasswordHash != ""
}

// expired reports whether the paste lifetime has elapsed at now.
func (p Paste) expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt)
}

// Store provides access to pastes. Expired pastes are purged on read.
type Store interface {
	Put(paste Paste) error
	Get(id string) (Paste, error)
	Delete(id string) error
	Len() (int, error)
}

// MemoryStore keeps pastes in-memory and guards access with a RWMutex.
type MemoryStore struct {
	mu     sync.RWMutex
	pastes map[string]Paste
	now    func() time.Time
}

// Option configures a store.
type Option func(*MemoryStore)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *MemoryStore) {
		s.now = clock
	}
}

// NewMemoryStore initialises an empty in-memory paste store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		pastes: make(map[string]Paste),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores or replaces a paste.
func (s *MemoryStore) Put(paste Paste) error {
	if paste.ID == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	s.pastes[paste.ID] = paste
	s.mu.Unlock()

	return nil
}

// Get returns the paste with the given id. An expired paste is removed and
// reported as not found.
func (s *MemoryStore) Get(id string) (Paste, error) {
	s.mu.RLock()
	paste, ok := s.pastes[id]
	s.mu.RUnlock()

	if !ok {
		return Paste{}, ErrNotFound
	}

	if paste.expired(s.now()) {
		s.mu.Lock()
		delete(s.pastes, id)
		s.mu.Unlock()
		return Paste{}, ErrNotFound
	}

	return paste, nil
}

// Delete removes the paste with the given id.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pastes[id]; !ok {
		return ErrNotFound
	}
	delete(s.pastes, id)
	return nil
}

// Len returns the number of stored pastes, including not yet purged ones.
func (s *MemoryStore) Len() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pastes), nil
}
