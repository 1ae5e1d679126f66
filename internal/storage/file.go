package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"
)

// FileStore keeps pastes in memory and mirrors every mutation to a JSON file,
// so pastes survive process restarts. The file is written atomically via a
// temp file and rename.
type FileStore struct {
	*MemoryStore
	path string
	mu   sync.Mutex
}

// NewFileStore loads the paste file at path, creating it lazily on first
// write. A missing file is treated as an empty store; a corrupt file is an
// error.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	memory := NewMemoryStore(opts...)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// First run, nothing to load.
	case err != nil:
		return nil, fmt.Errorf("read paste file: %w", err)
	default:
		var pastes []Paste
		if err := json.Unmarshal(data, &pastes); err != nil {
			return nil, fmt.Errorf("parse paste file %s: %w", path, err)
		}
		for _, paste := range pastes {
			memory.pastes[paste.ID] = paste
		}
	}

	return &FileStore{MemoryStore: memory, path: path}, nil
}

// Put stores the paste and flushes the file.
func (s *FileStore) Put(paste Paste) error {
	if err := s.MemoryStore.Put(paste); err != nil {
		return err
	}
	return s.flush()
}

// Get returns the paste, flushing when an expired paste was purged.
func (s *FileStore) Get(id string) (Paste, error) {
	before, _ := s.MemoryStore.Len()
	paste, err := s.MemoryStore.Get(id)
	if after, _ := s.MemoryStore.Len(); after != before {
		if flushErr := s.flush(); flushErr != nil {
			return Paste{}, flushErr
		}
	}
	return paste, err
}

// Delete removes the paste and flushes the file.
func (s *FileStore) Delete(id string) error {
	if err := s.MemoryStore.Delete(id); err != nil {
		return err
	}
	return s.flush()
}

func (s *FileStore) flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.MemoryStore.mu.RLock()
	pastes := make([]Paste, 0, len(s.MemoryStore.pastes))
	for _, paste := range s.MemoryStore.pastes {
		pastes = append(pastes, paste)
	}
	s.MemoryStore.mu.RUnlock()

	sort.Slice(pastes, func(i, j int) bool {
		return pastes[i].CreatedAt.Before(pastes[j].CreatedAt)
	})

	data, err := json.MarshalIndent(pastes, "", "  ")
	if err != nil {
		return fmt.Errorf("encode paste file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write paste file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace paste file: %w", err)
	}
	return nil
}
