// Package token holds the session credential. The store is deliberately
// dumb: get, save, clear. Everything that needs authorization reads it
// through the Store interface so tests can swap in a MemStore.
package token

import (
	"errors"
	"os"
	"strings"
	"sync"
)

type Store interface {
	// Token returns the saved credential and whether one exists.
	Token() (string, bool)
	Save(token string) error
	Clear() error
}

// MemStore keeps the token in memory for the life of the process.
type MemStore struct {
	mu  sync.Mutex
	tok string
	set bool
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok, s.set
}

func (s *MemStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok, s.set = token, true
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok, s.set = "", false
	return nil
}

// FileStore persists the token to a single file so the CLI stays logged
// in across invocations. The file holds nothing but the token.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	tok := strings.TrimSpace(string(b))
	return tok, tok != ""
}

func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
