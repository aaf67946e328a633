package transaction

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTransactionSchema names its operation kind explicitly instead
// of inferring it from which account ids happen to be present.
type CreateTransactionSchema struct {
	Kind          string           `json:"kind" validate:"required,oneof=transfer deposit withdrawal"`
	FromAccountID *uuid.UUID       `json:"from_account_id" validate:"required_if=Kind transfer,required_if=Kind withdrawal"`
	ToAccountID   *uuid.UUID       `json:"to_account_id" validate:"required_if=Kind transfer,required_if=Kind deposit"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	Description   string           `json:"description"`
}

type CreateTransactionResponseSchema struct {
	TransactionID uuid.UUID `json:"transaction_id"`
}
