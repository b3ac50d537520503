package langstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	code, err := store.Get(ctx, "whatsapp:+1555")
	require.NoError(t, err)
	require.Empty(t, code)

	require.NoError(t, store.Set(ctx, "whatsapp:+1555", "hi"))

	code, err = store.Get(ctx, "whatsapp:+1555")
	require.NoError(t, err)
	require.Equal(t, "hi", code)
}

func TestMemoryStoreIgnoresEmptySender(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "", "es"))

	code, err := store.Get(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, code)
}
