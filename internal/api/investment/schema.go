package investment

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInvestmentSchema struct {
	InvestmentType string           `json:"investment_type" validate:"required,oneof=FixedDeposit MutualFund Stock"`
	Amount         *decimal.Decimal `json:"amount" validate:"required"`
	InterestRate   *decimal.Decimal `json:"interest_rate"`
	TermMonths     *int             `json:"term_months"`
}

type FundInvestmentSchema struct {
	InvestmentID *uuid.UUID       `json:"investment_id" validate:"required"`
	AccountID    *uuid.UUID       `json:"account_id" validate:"required"`
	Amount       *decimal.Decimal `json:"amount" validate:"required"`
}

type FundInvestmentResponseSchema struct {
	TransactionID uuid.UUID `json:"transaction_id"`
}
