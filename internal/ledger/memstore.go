package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemStore keeps the whole ledger in process memory behind a lock per
// holding. Units buffer their writes and apply them on Commit, so an
// aborted unit leaves no trace. A unit that cannot take a holding's
// lock within lockWait fails with ErrConflict instead of blocking
// forever, which also breaks lock-order deadlocks between opposing
// transfers.
type MemStore struct {
	mu          sync.RWMutex
	accounts    map[uuid.UUID]*Account
	investments map[uuid.UUID]*Investment
	loans       map[uuid.UUID]*Loan
	txs         []Transaction

	lockMu   sync.Mutex
	locks    map[uuid.UUID]*sync.Mutex
	lockWait time.Duration
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		accounts:    make(map[uuid.UUID]*Account),
		investments: make(map[uuid.UUID]*Investment),
		loans:       make(map[uuid.UUID]*Loan),
		locks:       make(map[uuid.UUID]*sync.Mutex),
		lockWait:    250 * time.Millisecond,
	}
}

func (s *MemStore) lockFor(id uuid.UUID) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lk, ok := s.locks[id]
	if !ok {
		lk = &sync.Mutex{}
		s.locks[id] = lk
	}
	return lk
}

type memUnit struct {
	s       *MemStore
	held    map[uuid.UUID]*sync.Mutex
	pending map[uuid.UUID]Holding
	txs     []Transaction
	done    bool
}

func (s *MemStore) Begin(_ context.Context) (Unit, error) {
	return &memUnit{
		s:       s,
		held:    make(map[uuid.UUID]*sync.Mutex),
		pending: make(map[uuid.UUID]Holding),
	}, nil
}

func (u *memUnit) Holding(ctx context.Context, kind HoldingKind, id uuid.UUID) (*Holding, error) {
	if u.done {
		return nil, errors.New("unit already finished")
	}
	if h, ok := u.pending[id]; ok {
		if h.Kind != kind {
			return nil, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
		}
		cp := h
		return &cp, nil
	}
	if _, ok := u.held[id]; ok {
		return u.s.snapshot(kind, id)
	}

	lk := u.s.lockFor(id)
	deadline := time.Now().Add(u.s.lockWait)
	for !lk.TryLock() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: holding %s is locked", ErrConflict, id)
		}
		time.Sleep(time.Millisecond)
	}
	u.held[id] = lk

	h, err := u.s.snapshot(kind, id)
	if err != nil {
		lk.Unlock()
		delete(u.held, id)
		return nil, err
	}
	return h, nil
}

func (s *MemStore) snapshot(kind HoldingKind, id uuid.UUID) (*Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch kind {
	case KindAccount:
		if a, ok := s.accounts[id]; ok {
			return &Holding{ID: a.ID, OwnerID: a.OwnerID, Kind: kind, Balance: a.Balance}, nil
		}
	case KindInvestment:
		if i, ok := s.investments[id]; ok {
			return &Holding{ID: i.ID, OwnerID: i.OwnerID, Kind: kind, Balance: i.Amount, Status: i.Status}, nil
		}
	case KindLoan:
		if l, ok := s.loans[id]; ok {
			return &Holding{ID: l.ID, OwnerID: l.OwnerID, Kind: kind, Balance: l.Amount, Status: l.Status}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

func (u *memUnit) PutHolding(_ context.Context, h *Holding) error {
	if u.done {
		return errors.New("unit already finished")
	}
	if _, ok := u.held[h.ID]; !ok {
		return fmt.Errorf("holding %s not locked by this unit", h.ID)
	}
	u.pending[h.ID] = *h
	return nil
}

func (u *memUnit) InsertTransaction(_ context.Context, t *Transaction) error {
	if u.done {
		return errors.New("unit already finished")
	}
	u.txs = append(u.txs, *t)
	return nil
}

func (u *memUnit) Commit(_ context.Context) error {
	if u.done {
		return errors.New("unit already finished")
	}
	u.s.mu.Lock()
	for _, h := range u.pending {
		switch h.Kind {
		case KindAccount:
			if a, ok := u.s.accounts[h.ID]; ok {
				a.Balance = h.Balance
			}
		case KindInvestment:
			if i, ok := u.s.investments[h.ID]; ok {
				i.Amount = h.Balance
				i.Status = h.Status
			}
		case KindLoan:
			if l, ok := u.s.loans[h.ID]; ok {
				l.Amount = h.Balance
				l.Status = h.Status
			}
		}
	}
	u.s.txs = append(u.s.txs, u.txs...)
	u.s.mu.Unlock()
	u.finish()
	return nil
}

func (u *memUnit) Rollback(_ context.Context) error {
	if u.done {
		return nil
	}
	u.finish()
	return nil
}

func (u *memUnit) finish() {
	for _, lk := range u.held {
		lk.Unlock()
	}
	u.held = make(map[uuid.UUID]*sync.Mutex)
	u.pending = make(map[uuid.UUID]Holding)
	u.txs = nil
	u.done = true
}

func (s *MemStore) CreateAccount(_ context.Context, ownerID string, t AccountType) (*Account, error) {
	acc := &Account{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Type:      t,
		Balance:   decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.accounts[acc.ID] = acc
	s.mu.Unlock()
	cp := *acc
	return &cp, nil
}

func (s *MemStore) ListAccounts(_ context.Context, ownerID string) ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Account
	for _, a := range s.accounts {
		if a.OwnerID == ownerID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) CreateInvestment(_ context.Context, inv *Investment) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.Status == "" {
		inv.Status = InvestmentActive
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	cp := *inv
	s.mu.Lock()
	s.investments[cp.ID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *MemStore) ListInvestments(_ context.Context, ownerID string) ([]Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Investment
	for _, i := range s.investments {
		if i.OwnerID == ownerID {
			out = append(out, *i)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) CreateLoan(_ context.Context, loan *Loan) error {
	if loan.ID == uuid.Nil {
		loan.ID = uuid.New()
	}
	if loan.Status == "" {
		loan.Status = LoanPending
	}
	if loan.CreatedAt.IsZero() {
		loan.CreatedAt = time.Now().UTC()
	}
	cp := *loan
	s.mu.Lock()
	s.loans[cp.ID] = &cp
	s.mu.Unlock()
	return nil
}

func (s *MemStore) ListLoans(_ context.Context, ownerID string) ([]Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Loan
	for _, l := range s.loans {
		if l.OwnerID == ownerID {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemStore) ownerTransactions(ownerID string) []Transaction {
	var out []Transaction
	for _, t := range s.txs {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

func (s *MemStore) ListTransactions(_ context.Context, ownerID string, page, size int) ([]Transaction, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.ownerTransactions(ownerID)
	total := len(all)

	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= total {
		return []Transaction{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (s *MemStore) RecentTransactions(_ context.Context, ownerID string, limit int) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.ownerTransactions(ownerID)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *MemStore) Summary(_ context.Context, ownerID string, since time.Time) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := &Summary{MonthlyIncome: decimal.Zero, MonthlySpending: decimal.Zero}
	for _, t := range s.txs {
		if t.OwnerID != ownerID || t.Timestamp.Before(since) {
			continue
		}
		sum.RecentCount++
		switch t.Kind {
		case TxDeposit:
			sum.MonthlyIncome = sum.MonthlyIncome.Add(t.Amount)
		case TxWithdrawal:
			sum.MonthlySpending = sum.MonthlySpending.Add(t.Amount)
		}
	}
	return sum, nil
}
