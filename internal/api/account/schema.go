package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateAccountSchema struct {
	AccountType string `json:"account_type" validate:"required,oneof=Checking Savings Investment"`
}

type TransferSchema struct {
	FromAccountID *uuid.UUID       `json:"from_account_id" validate:"required"`
	ToAccountID   *uuid.UUID       `json:"to_account_id" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	Description   string           `json:"description"`
}

type TransferResponseSchema struct {
	TransactionID uuid.UUID `json:"transaction_id"`
}

type BalanceResponseSchema struct {
	Balance decimal.Decimal `json:"balance"`
}
