package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Unit groups reads and writes into one atomic operation. Between Begin
// and Commit the unit holds the holdings it has read against concurrent
// writers; Rollback releases everything and discards pending writes.
// Rollback after a successful Commit is a no-op, so it is safe to defer.
type Unit interface {
	// Holding reads the current state of a holding and locks it for the
	// lifetime of the unit. Returns ErrNotFound for unknown ids and
	// ErrConflict when the lock cannot be acquired within the bounded
	// wait.
	Holding(ctx context.Context, kind HoldingKind, id uuid.UUID) (*Holding, error)

	// PutHolding stages the new state of a previously read holding.
	PutHolding(ctx context.Context, h *Holding) error

	// InsertTransaction stages one audit record.
	InsertTransaction(ctx context.Context, t *Transaction) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Store is the durable ledger. Mutations of balances go through a Unit;
// everything else reads committed state or inserts standalone rows.
type Store interface {
	Begin(ctx context.Context) (Unit, error)

	CreateAccount(ctx context.Context, ownerID string, t AccountType) (*Account, error)
	ListAccounts(ctx context.Context, ownerID string) ([]Account, error)

	CreateInvestment(ctx context.Context, inv *Investment) error
	ListInvestments(ctx context.Context, ownerID string) ([]Investment, error)

	CreateLoan(ctx context.Context, loan *Loan) error
	ListLoans(ctx context.Context, ownerID string) ([]Loan, error)

	// ListTransactions returns one page of the owner's audit records,
	// newest first, plus the total count.
	ListTransactions(ctx context.Context, ownerID string, page, size int) ([]Transaction, int, error)
	RecentTransactions(ctx context.Context, ownerID string, limit int) ([]Transaction, error)
	Summary(ctx context.Context, ownerID string, since time.Time) (*Summary, error)
}
