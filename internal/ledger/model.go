package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HoldingKind string

const (
	KindAccount    HoldingKind = "account"
	KindInvestment HoldingKind = "investment"
	KindLoan       HoldingKind = "loan"
)

// Holding is the balance-bearing view of an account, investment or loan.
// Units read and write holdings; the store maps them back onto the
// underlying tables.
type Holding struct {
	ID      uuid.UUID
	OwnerID string
	Kind    HoldingKind
	Balance decimal.Decimal
	Status  string
}

type AccountType string

const (
	AccountChecking   AccountType = "Checking"
	AccountSavings    AccountType = "Savings"
	AccountInvestment AccountType = "Investment"
)

type Account struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Type      AccountType     `json:"account_type"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

type InvestmentType string

const (
	InvestmentFixedDeposit InvestmentType = "FixedDeposit"
	InvestmentMutualFund   InvestmentType = "MutualFund"
	InvestmentStock        InvestmentType = "Stock"
)

const (
	InvestmentActive  = "Active"
	InvestmentMatured = "Matured"
	InvestmentClosed  = "Closed"
)

type Investment struct {
	ID           uuid.UUID        `json:"id"`
	OwnerID      string           `json:"owner_id"`
	Type         InvestmentType   `json:"investment_type"`
	Amount       decimal.Decimal  `json:"amount"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
	TermMonths   *int             `json:"term_months,omitempty"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

type LoanType string

const (
	LoanHome     LoanType = "Home"
	LoanCar      LoanType = "Car"
	LoanPersonal LoanType = "Personal"
)

const (
	LoanPending  = "Pending"
	LoanApproved = "Approved"
	LoanActive   = "Active"
	LoanClosed   = "Closed"
)

type Loan struct {
	ID           uuid.UUID       `json:"id"`
	OwnerID      string          `json:"owner_id"`
	Type         LoanType        `json:"loan_type"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermMonths   int             `json:"term_months"`
	Purpose      string          `json:"purpose,omitempty"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	NextDueDate  time.Time       `json:"next_due_date"`
}

type TransactionKind string

const (
	TxTransfer   TransactionKind = "Transfer"
	TxDeposit    TransactionKind = "Deposit"
	TxWithdrawal TransactionKind = "Withdrawal"
)

// Transaction is the audit record for one committed operation. Rows are
// inserted once, inside the same unit as the balance changes they
// describe, and never updated afterwards.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       string          `json:"owner_id"`
	FromHoldingID *uuid.UUID      `json:"from_holding_id,omitempty"`
	ToHoldingID   *uuid.UUID      `json:"to_holding_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Kind          TransactionKind `json:"kind"`
	Description   string          `json:"description"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Summary aggregates a month of committed transactions for the dashboard.
type Summary struct {
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlySpending decimal.Decimal `json:"monthly_spending"`
	RecentCount     int             `json:"recent_count"`
}

// InterestRateFor returns the flat rate offered per loan type.
func InterestRateFor(t LoanType) decimal.Decimal {
	switch t {
	case LoanHome:
		return decimal.NewFromFloat(4.5)
	case LoanCar:
		return decimal.NewFromFloat(6.5)
	case LoanPersonal:
		return decimal.NewFromFloat(9.5)
	default:
		return decimal.NewFromFloat(10.0)
	}
}
