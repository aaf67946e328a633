package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Orchestrator is the only component allowed to compose balance legs
// across holdings. Every operation runs as: begin unit, ownership
// checks, debit leg, credit leg, one audit record, commit. The first
// error aborts the unit and nothing becomes visible.
type Orchestrator struct {
	store    Store
	registry *Registry
	log      *slog.Logger
	maxTries uint
	initWait time.Duration
}

func NewOrchestrator(store Store, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		store:    store,
		registry: NewRegistry(log),
		log:      log,
		maxTries: 3,
		initWait: 25 * time.Millisecond,
	}
}

// run executes fn inside a fresh unit, appends the audit record fn
// returns, and commits. Unit collisions (ErrConflict) are retried with
// exponential backoff up to the retry budget; every other error is
// permanent and surfaces verbatim.
func (o *Orchestrator) run(ctx context.Context, op string, fn func(Unit) (*Transaction, error)) (uuid.UUID, error) {
	attempt := func() (uuid.UUID, error) {
		u, err := o.store.Begin(ctx)
		if err != nil {
			return uuid.Nil, backoff.Permanent(err)
		}
		defer u.Rollback(ctx)

		rec, err := fn(u)
		if err != nil {
			return uuid.Nil, classify(err)
		}
		if err := u.InsertTransaction(ctx, rec); err != nil {
			return uuid.Nil, classify(err)
		}
		if err := u.Commit(ctx); err != nil {
			return uuid.Nil, classify(err)
		}
		return rec.ID, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = o.initWait

	id, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(o.maxTries),
	)
	if err != nil {
		o.log.Warn("ledger operation aborted", "op", op, "error", err)
		return uuid.Nil, err
	}
	o.log.Info("ledger operation committed", "op", op, "transaction_id", id)
	return id, nil
}

// classify marks everything except unit collisions as non-retryable.
func classify(err error) error {
	if errors.Is(err, ErrConflict) {
		return err
	}
	return backoff.Permanent(err)
}

func (o *Orchestrator) record(ownerID string, from, to *uuid.UUID, amount decimal.Decimal, kind TransactionKind, description string) *Transaction {
	return &Transaction{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		FromHoldingID: from,
		ToHoldingID:   to,
		Amount:        amount,
		Kind:          kind,
		Description:   description,
		Timestamp:     time.Now().UTC(),
	}
}

// Transfer moves amount between two accounts. The source must belong to
// the caller; the destination only has to exist, so paying another user
// is allowed.
func (o *Orchestrator) Transfer(ctx context.Context, ownerID string, fromID, toID uuid.UUID, amount decimal.Decimal, description string) (uuid.UUID, error) {
	if err := ValidAmount(amount); err != nil {
		return uuid.Nil, err
	}
	if description == "" {
		description = "Money Transfer"
	}
	return o.run(ctx, "transfer", func(u Unit) (*Transaction, error) {
		if _, err := o.registry.Resolve(ctx, u, ownerID, KindAccount, fromID); err != nil {
			return nil, err
		}
		if _, err := ApplyDelta(ctx, u, KindAccount, fromID, amount.Neg()); err != nil {
			return nil, err
		}
		if _, err := ApplyDelta(ctx, u, KindAccount, toID, amount); err != nil {
			return nil, err
		}
		return o.record(ownerID, &fromID, &toID, amount, TxTransfer, description), nil
	})
}

// Deposit credits an account the caller owns.
func (o *Orchestrator) Deposit(ctx context.Context, ownerID string, toID uuid.UUID, amount decimal.Decimal, description string) (uuid.UUID, error) {
	if err := ValidAmount(amount); err != nil {
		return uuid.Nil, err
	}
	if description == "" {
		description = "Deposit"
	}
	return o.run(ctx, "deposit", func(u Unit) (*Transaction, error) {
		if _, err := o.registry.Resolve(ctx, u, ownerID, KindAccount, toID); err != nil {
			return nil, err
		}
		if _, err := ApplyDelta(ctx, u, KindAccount, toID, amount); err != nil {
			return nil, err
		}
		return o.record(ownerID, nil, &toID, amount, TxDeposit, description), nil
	})
}

// Withdraw debits an account the caller owns.
func (o *Orchestrator) Withdraw(ctx context.Context, ownerID string, fromID uuid.UUID, amount decimal.Decimal, description string) (uuid.UUID, error) {
	if err := ValidAmount(amount); err != nil {
		return uuid.Nil, err
	}
	if description == "" {
		description = "Withdrawal"
	}
	return o.run(ctx, "withdraw", func(u Unit) (*Transaction, error) {
		if _, err := o.registry.Resolve(ctx, u, ownerID, KindAccount, fromID); err != nil {
			return nil, err
		}
		if _, err := ApplyDelta(ctx, u, KindAccount, fromID, amount.Neg()); err != nil {
			return nil, err
		}
		return o.record(ownerID, &fromID, nil, amount, TxWithdrawal, description), nil
	})
}

// FundInvestment moves amount from an owned account into an owned
// investment.
func (o *Orchestrator) FundInvestment(ctx context.Context, ownerID string, accountID, investmentID uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	if err := ValidAmount(amount); err != nil {
		return uuid.Nil, err
	}
	return o.run(ctx, "fund_investment", func(u Unit) (*Transaction, error) {
		if _, err := o.registry.Resolve(ctx, u, ownerID, KindAccount, accountID); err != nil {
			return nil, err
		}
		if _, err := o.registry.Resolve(ctx, u, ownerID, KindInvestment, investmentID); err != nil {
			return nil, err
		}
		if _, err := ApplyDelta(ctx, u, KindAccount, accountID, amount.Neg()); err != nil {
			return nil, err
		}
		if _, err := ApplyDelta(ctx, u, KindInvestment, investmentID, amount); err != nil {
			return nil, err
		}
		return o.record(ownerID, &accountID, &investmentID, amount, TxTransfer, "Investment deposit"), nil
	})
}

// WithdrawInvestment drains amount from an owned investment back into an
// owned account.
func (o *Orchestrator) WithdrawInvestment(ctx context.Context, ownerID string, investmentID, accountID uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	if err := ValidAmount(amount); err != nil {
		return uuid.Nil, err
	}
	return o.run(ctx, "withdraw_investment", func(u Unit) (*Transaction, error) {
		if _, err := o.registry.Resolve(ctx, u, ownerID, KindInvestment, investmentID); err != nil {
			return nil, err
		}
		if _, err := o.registry.Resolve(ctx, u, ownerID, KindAccount, accountID); err != nil {
			return nil, err
		}
		if _, err := ApplyDelta(ctx, u, KindInvestment, investmentID, amount.Neg()); err != nil {
			return nil, err
		}
		if _, err := ApplyDelta(ctx, u, KindAccount, accountID, amount); err != nil {
			return nil, err
		}
		return o.record(ownerID, &investmentID, &accountID, amount, TxWithdrawal, "Investment withdrawal"), nil
	})
}

// DisburseLoan pays an approved loan's principal into an owned account
// and activates the loan. Repayment is not implemented.
func (o *Orchestrator) DisburseLoan(ctx context.Context, ownerID string, loanID, accountID uuid.UUID) (uuid.UUID, error) {
	return o.run(ctx, "disburse_loan", func(u Unit) (*Transaction, error) {
		loan, err := o.registry.Resolve(ctx, u, ownerID, KindLoan, loanID)
		if err != nil {
			return nil, err
		}
		if loan.Status != LoanPending && loan.Status != LoanApproved {
			return nil, fmt.Errorf("%w: loan %s is %s", ErrLoanState, loanID, loan.Status)
		}
		if _, err := o.registry.Resolve(ctx, u, ownerID, KindAccount, accountID); err != nil {
			return nil, err
		}

		principal := loan.Balance
		if err := ValidAmount(principal); err != nil {
			return nil, err
		}
		if _, err := ApplyDelta(ctx, u, KindAccount, accountID, principal); err != nil {
			return nil, err
		}

		loan.Status = LoanActive
		if err := u.PutHolding(ctx, loan); err != nil {
			return nil, err
		}
		return o.record(ownerID, &loanID, &accountID, principal, TxDeposit, "Loan disbursement"), nil
	})
}

// ListTransactions reads one page of committed audit records, newest
// first. Pure read, no unit.
func (o *Orchestrator) ListTransactions(ctx context.Context, ownerID string, page, size int) ([]Transaction, int, error) {
	return o.store.ListTransactions(ctx, ownerID, page, size)
}
