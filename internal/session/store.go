package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Storage keys for the six durable session fields. The presence of
// KeyAccessToken together with KeyUserRole is the sole "is logged in"
// signal consumed by Initialize.
const (
	KeyAccessToken = "access_token"
	KeyUserID      = "user_id"
	KeyUserRole    = "user_role"
	KeyUserEmail   = "user_email"
	KeyUserName    = "user_name"
	KeyLoginTime   = "login_time"
)

// Fields holds the durable session fields as string key-value pairs.
type Fields map[string]string

// Store persists session fields across process restarts. Writes replace the
// full field set so storage never holds a partial session.
type Store interface {
	Read() (Fields, error)
	Write(Fields) error
	Clear() error
}

const sessionFileName = "session.json"

// FileStore keeps the session fields in a JSON file on the local filesystem.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a file-backed session store.
// If baseDir is empty, uses ~/.rideshare/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".rideshare")
	}

	// Create directory with 0700 permissions
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("session store initialized")

	return &FileStore{baseDir: baseDir}, nil
}

// Read returns the stored fields. A missing file yields an empty field set,
// not an error.
func (s *FileStore) Read() (Fields, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return Fields{}, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	if fields == nil {
		fields = Fields{}
	}

	return fields, nil
}

// Write replaces the stored fields atomically.
func (s *FileStore) Write(fields Fields) error {
	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write to temp file first
	path := s.path()
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save session file: %w", err)
	}

	return nil
}

// Clear removes the stored fields. Clearing an empty store is a no-op.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.baseDir, sessionFileName)
}

// MemoryStore is an in-memory Store for tests and embedding.
type MemoryStore struct {
	mu     sync.Mutex
	fields Fields
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{fields: Fields{}}
}

func (s *MemoryStore) Read() (Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(Fields, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Write(fields Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fields = make(Fields, len(fields))
	for k, v := range fields {
		s.fields[k] = v
	}
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fields = Fields{}
	return nil
}
