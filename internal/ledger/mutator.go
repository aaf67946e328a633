package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplyDelta applies one signed amount to one holding inside an open
// unit. A debit that would leave the balance negative returns
// ErrInsufficientFunds without writing anything; the caller still owns
// the decision to roll the whole unit back.
func ApplyDelta(ctx context.Context, u Unit, kind HoldingKind, id uuid.UUID, delta decimal.Decimal) (*Holding, error) {
	h, err := u.Holding(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	next := h.Balance.Add(delta)
	if delta.IsNegative() && next.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, h.Balance, delta.Abs())
	}

	h.Balance = next
	if err := u.PutHolding(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ValidAmount enforces the wire rule for money: strictly positive, at
// most two fractional digits.
func ValidAmount(a decimal.Decimal) error {
	if !a.IsPositive() || !a.Equal(a.Round(2)) {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, a)
	}
	return nil
}
