package audiostore

import (
	"context"
	"sync"

	"github.com/aidassist/healthqa/internal/domain/chat"
	apperrors "github.com/aidassist/healthqa/pkg/errors"
)

type memoryObject struct {
	data     []byte
	mimeType string
}

// MemoryStore keeps audio in process memory for tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

// Put implements chat.AudioStore.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte, mimeType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{
		data:     append([]byte(nil), data...),
		mimeType: mimeType,
	}
	return "/api/v1/audio/" + key, nil
}

// Get implements chat.AudioStore.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return nil, "", apperrors.Wrap("not_found", "audio object not found", nil)
	}
	return obj.data, obj.mimeType, nil
}

var _ chat.AudioStore = (*MemoryStore)(nil)
