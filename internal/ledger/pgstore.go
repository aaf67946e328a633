package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PGStore is the production ledger on Postgres. A unit is a pgx
// transaction; holding reads take row locks (FOR UPDATE) so two units
// touching the same holding serialize at the database. lock_timeout
// bounds the wait, and timed-out or serialization-failed units surface
// as ErrConflict for the orchestrator to retry.
type PGStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PGStore)(nil)

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Begin(ctx context.Context) (Unit, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '2s'"); err != nil {
		_ = tx.Rollback(ctx)
		return nil, mapPgErr(err)
	}
	return &pgUnit{tx: tx}, nil
}

type pgUnit struct {
	tx pgx.Tx
}

func (u *pgUnit) Holding(ctx context.Context, kind HoldingKind, id uuid.UUID) (*Holding, error) {
	h := &Holding{ID: id, Kind: kind}
	var err error
	switch kind {
	case KindAccount:
		err = u.tx.QueryRow(ctx,
			"SELECT owner_id, balance FROM accounts WHERE id = $1 FOR UPDATE", id,
		).Scan(&h.OwnerID, &h.Balance)
	case KindInvestment:
		err = u.tx.QueryRow(ctx,
			"SELECT owner_id, amount, status FROM investments WHERE id = $1 FOR UPDATE", id,
		).Scan(&h.OwnerID, &h.Balance, &h.Status)
	case KindLoan:
		err = u.tx.QueryRow(ctx,
			"SELECT owner_id, amount, status FROM loans WHERE id = $1 FOR UPDATE", id,
		).Scan(&h.OwnerID, &h.Balance, &h.Status)
	default:
		return nil, fmt.Errorf("unknown holding kind %q", kind)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
		}
		return nil, mapPgErr(err)
	}
	return h, nil
}

func (u *pgUnit) PutHolding(ctx context.Context, h *Holding) error {
	var err error
	switch h.Kind {
	case KindAccount:
		_, err = u.tx.Exec(ctx,
			"UPDATE accounts SET balance = $1 WHERE id = $2", h.Balance, h.ID)
	case KindInvestment:
		_, err = u.tx.Exec(ctx,
			"UPDATE investments SET amount = $1, status = $2 WHERE id = $3", h.Balance, h.Status, h.ID)
	case KindLoan:
		_, err = u.tx.Exec(ctx,
			"UPDATE loans SET amount = $1, status = $2 WHERE id = $3", h.Balance, h.Status, h.ID)
	default:
		return fmt.Errorf("unknown holding kind %q", h.Kind)
	}
	return mapPgErr(err)
}

func (u *pgUnit) InsertTransaction(ctx context.Context, t *Transaction) error {
	_, err := u.tx.Exec(ctx, `
		INSERT INTO transactions (id, owner_id, from_holding_id, to_holding_id, amount, kind, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.OwnerID, t.FromHoldingID, t.ToHoldingID, t.Amount, t.Kind, t.Description, t.Timestamp,
	)
	return mapPgErr(err)
}

func (u *pgUnit) Commit(ctx context.Context) error {
	if err := u.tx.Commit(ctx); err != nil {
		return mapPgErr(err)
	}
	return nil
}

func (u *pgUnit) Rollback(ctx context.Context) error {
	err := u.tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return mapPgErr(err)
}

// mapPgErr folds Postgres failure modes into the ledger taxonomy:
// serialization failures, deadlocks and lock timeouts are retryable
// conflicts, everything else passes through.
func mapPgErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return err
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func (s *PGStore) CreateAccount(ctx context.Context, ownerID string, t AccountType) (*Account, error) {
	acc := &Account{OwnerID: ownerID, Type: t}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO accounts (owner_id, account_type, balance)
		VALUES ($1, $2, 0)
		RETURNING id, balance, created_at`,
		ownerID, t,
	).Scan(&acc.ID, &acc.Balance, &acc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return acc, nil
}

func (s *PGStore) ListAccounts(ctx context.Context, ownerID string) ([]Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, account_type, balance, created_at
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Type, &a.Balance, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PGStore) CreateInvestment(ctx context.Context, inv *Investment) error {
	if inv.Status == "" {
		inv.Status = InvestmentActive
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO investments (owner_id, investment_type, amount, interest_rate, term_months, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		inv.OwnerID, inv.Type, inv.Amount, inv.InterestRate, inv.TermMonths, inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt)
}

func (s *PGStore) ListInvestments(ctx context.Context, ownerID string) ([]Investment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, investment_type, amount, interest_rate, term_months, status, created_at
		FROM investments
		WHERE owner_id = $1
		ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Investment
	for rows.Next() {
		var i Investment
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Type, &i.Amount, &i.InterestRate, &i.TermMonths, &i.Status, &i.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (s *PGStore) CreateLoan(ctx context.Context, loan *Loan) error {
	if loan.Status == "" {
		loan.Status = LoanPending
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO loans (owner_id, loan_type, amount, interest_rate, term_months, purpose, status, next_due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		loan.OwnerID, loan.Type, loan.Amount, loan.InterestRate, loan.TermMonths, loan.Purpose, loan.Status, loan.NextDueDate,
	).Scan(&loan.ID, &loan.CreatedAt)
}

func (s *PGStore) ListLoans(ctx context.Context, ownerID string) ([]Loan, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, loan_type, amount, interest_rate, term_months, purpose, status, created_at, next_due_date
		FROM loans
		WHERE owner_id = $1
		ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Loan
	for rows.Next() {
		var l Loan
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Type, &l.Amount, &l.InterestRate, &l.TermMonths, &l.Purpose, &l.Status, &l.CreatedAt, &l.NextDueDate); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PGStore) ListTransactions(ctx context.Context, ownerID string, page, size int) ([]Transaction, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM transactions WHERE owner_id = $1", ownerID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, from_holding_id, to_holding_id, amount, kind, description, created_at
		FROM transactions
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`,
		ownerID, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *PGStore) RecentTransactions(ctx context.Context, ownerID string, limit int) ([]Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, from_holding_id, to_holding_id, amount, kind, description, created_at
		FROM transactions
		WHERE owner_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`,
		ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (s *PGStore) Summary(ctx context.Context, ownerID string, since time.Time) (*Summary, error) {
	sum := &Summary{MonthlyIncome: decimal.Zero, MonthlySpending: decimal.Zero}
	err := s.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'Deposit' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'Withdrawal' THEN amount ELSE 0 END), 0),
			COUNT(*)
		FROM transactions
		WHERE owner_id = $1 AND created_at >= $2`,
		ownerID, since,
	).Scan(&sum.MonthlyIncome, &sum.MonthlySpending, &sum.RecentCount)
	if err != nil {
		return nil, err
	}
	return sum, nil
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.FromHoldingID, &t.ToHoldingID, &t.Amount, &t.Kind, &t.Description, &t.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
