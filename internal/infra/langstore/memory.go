package langstore

import (
	"context"
	"sync"

	"github.com/aidassist/healthqa/internal/domain/chat"
)

// MemoryStore keeps sender language preferences in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	langs map[string]string
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{langs: make(map[string]string)}
}

// Get implements chat.LanguageStore.
func (s *MemoryStore) Get(_ context.Context, sender string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.langs[sender], nil
}

// Set implements chat.LanguageStore.
func (s *MemoryStore) Set(_ context.Context, sender, code string) error {
	if sender == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.langs[sender] = code
	return nil
}

var _ chat.LanguageStore = (*MemoryStore)(nil)
