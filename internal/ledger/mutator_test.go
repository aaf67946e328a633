package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDeltaRejectsOverdraftWithoutWriting(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	a := seedAccount(t, store, "owner-1", "30.00")

	u, err := store.Begin(ctx)
	require.NoError(t, err)

	_, err = ApplyDelta(ctx, u, KindAccount, a, dec(t, "-30.01"))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// Even if the caller commits the unit anyway, nothing was staged.
	require.NoError(t, u.Commit(ctx))
	assert.True(t, accountBalance(t, store, a).Equal(dec(t, "30.00")))
}

func TestApplyDeltaDebitToExactlyZero(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	a := seedAccount(t, store, "owner-1", "30.00")

	u, err := store.Begin(ctx)
	require.NoError(t, err)
	h, err := ApplyDelta(ctx, u, KindAccount, a, dec(t, "-30.00"))
	require.NoError(t, err)
	assert.True(t, h.Balance.IsZero())
	require.NoError(t, u.Commit(ctx))
	assert.True(t, accountBalance(t, store, a).IsZero())
}

func TestApplyDeltaAppliesTwiceWithinOneUnit(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	a := seedAccount(t, store, "owner-1", "0.00")

	u, err := store.Begin(ctx)
	require.NoError(t, err)
	_, err = ApplyDelta(ctx, u, KindAccount, a, dec(t, "10.00"))
	require.NoError(t, err)
	_, err = ApplyDelta(ctx, u, KindAccount, a, dec(t, "10.00"))
	require.NoError(t, err)
	require.NoError(t, u.Commit(ctx))

	assert.True(t, accountBalance(t, store, a).Equal(dec(t, "20.00")))
}

func TestValidAmount(t *testing.T) {
	cases := map[string]bool{
		"10.00":  true,
		"0.01":   true,
		"100":    true,
		"0":      false,
		"-1.00":  false,
		"0.001":  false,
		"99.999": false,
	}
	for in, ok := range cases {
		err := ValidAmount(dec(t, in))
		if ok {
			assert.NoError(t, err, in)
		} else {
			assert.ErrorIs(t, err, ErrInvalidAmount, in)
		}
	}
}
