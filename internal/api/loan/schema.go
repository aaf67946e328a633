package loan

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ApplyLoanSchema struct {
	LoanType   string           `json:"loan_type" validate:"required,oneof=Home Car Personal"`
	Amount     *decimal.Decimal `json:"amount" validate:"required"`
	TermMonths *int             `json:"term_months" validate:"required,gt=0"`
	Purpose    string           `json:"purpose"`
}

type DisburseLoanSchema struct {
	LoanID    *uuid.UUID `json:"loan_id" validate:"required"`
	AccountID *uuid.UUID `json:"account_id" validate:"required"`
}

type DisburseLoanResponseSchema struct {
	TransactionID uuid.UUID `json:"transaction_id"`
}
