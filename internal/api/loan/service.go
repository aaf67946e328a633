package loan

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/dmuiruri/bankcore/internal/helper"
	"github.com/dmuiruri/bankcore/internal/ledger"
)

func ListLoansHandler(store ledger.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		loans, err := store.ListLoans(c.Context(), helper.OwnerID(c))
		if err != nil {
			return helper.RenderError(c, err)
		}
		if loans == nil {
			loans = []ledger.Loan{}
		}
		return c.JSON(fiber.Map{"loans": loans})
	}
}

func ApplyLoanHandler(store ledger.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input ApplyLoanSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if err := ledger.ValidAmount(*input.Amount); err != nil {
			return helper.RenderError(c, err)
		}

		loanType := ledger.LoanType(input.LoanType)
		loan := &ledger.Loan{
			OwnerID:      helper.OwnerID(c),
			Type:         loanType,
			Amount:       *input.Amount,
			InterestRate: ledger.InterestRateFor(loanType),
			TermMonths:   *input.TermMonths,
			Purpose:      input.Purpose,
			Status:       ledger.LoanPending,
			NextDueDate:  time.Now().UTC().AddDate(0, 1, 0),
		}
		if err := store.CreateLoan(c.Context(), loan); err != nil {
			return helper.RenderError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(loan)
	}
}

func DisburseLoanHandler(orch *ledger.Orchestrator) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input DisburseLoanSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		txID, err := orch.DisburseLoan(c.Context(), helper.OwnerID(c), *input.LoanID, *input.AccountID)
		if err != nil {
			return helper.RenderError(c, err)
		}
		return c.JSON(DisburseLoanResponseSchema{TransactionID: txID})
	}
}
