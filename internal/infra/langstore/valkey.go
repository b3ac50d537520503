package langstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/aidassist/healthqa/internal/domain/chat"
)

// ValkeyStore persists per-sender language preferences in a
// Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "lang"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get returns the stored language code for a sender, or empty when unset.
func (s *ValkeyStore) Get(ctx context.Context, sender string) (string, error) {
	if sender == "" {
		return "", nil
	}
	cmd := s.client.B().Get().Key(s.key(sender)).Build()
	code, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", nil
		}
		return "", err
	}
	return code, nil
}

// Set records the language code for a sender.
func (s *ValkeyStore) Set(ctx context.Context, sender, code string) error {
	if sender == "" {
		return nil
	}
	cmd := s.client.B().Set().Key(s.key(sender)).Value(code).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(sender string) string {
	return fmt.Sprintf("%s:%s", s.prefix, sender)
}

var _ chat.LanguageStore = (*ValkeyStore)(nil)
