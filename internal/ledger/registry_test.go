package ledger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolvesOwnedHolding(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	a := seedAccount(t, store, "owner-1", "12.00")

	reg := NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	u, err := store.Begin(ctx)
	require.NoError(t, err)
	defer u.Rollback(ctx)

	h, err := reg.Resolve(ctx, u, "owner-1", KindAccount, a)
	require.NoError(t, err)
	assert.Equal(t, a, h.ID)
	assert.True(t, h.Balance.Equal(dec(t, "12.00")))
}

func TestRegistryMasksForeignHoldingAsNotFound(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	a := seedAccount(t, store, "owner-1", "12.00")

	reg := NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
	u, err := store.Begin(ctx)
	require.NoError(t, err)
	defer u.Rollback(ctx)

	_, err = reg.Resolve(ctx, u, "owner-2", KindAccount, a)
	require.ErrorIs(t, err, ErrNotFound)
	assert.NotContains(t, err.Error(), "owner", "error must not mention ownership")
}
