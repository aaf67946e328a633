package investment

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dmuiruri/bankcore/internal/helper"
	"github.com/dmuiruri/bankcore/internal/ledger"
)

func ListInvestmentsHandler(store ledger.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		investments, err := store.ListInvestments(c.Context(), helper.OwnerID(c))
		if err != nil {
			return helper.RenderError(c, err)
		}
		if investments == nil {
			investments = []ledger.Investment{}
		}
		return c.JSON(fiber.Map{"investments": investments})
	}
}

func CreateInvestmentHandler(store ledger.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input CreateInvestmentSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		// Zero is a valid opening amount, negatives and sub-cent values
		// are not.
		if input.Amount.IsNegative() || !input.Amount.Equal(input.Amount.Round(2)) {
			return helper.RenderError(c, ledger.ErrInvalidAmount)
		}

		inv := &ledger.Investment{
			OwnerID:      helper.OwnerID(c),
			Type:         ledger.InvestmentType(input.InvestmentType),
			Amount:       *input.Amount,
			InterestRate: input.InterestRate,
			TermMonths:   input.TermMonths,
			Status:       ledger.InvestmentActive,
		}
		if err := store.CreateInvestment(c.Context(), inv); err != nil {
			return helper.RenderError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(inv)
	}
}

func AddFundsHandler(orch *ledger.Orchestrator) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input FundInvestmentSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		txID, err := orch.FundInvestment(c.Context(), helper.OwnerID(c), *input.AccountID, *input.InvestmentID, *input.Amount)
		if err != nil {
			return helper.RenderError(c, err)
		}
		return c.JSON(FundInvestmentResponseSchema{TransactionID: txID})
	}
}

func WithdrawHandler(orch *ledger.Orchestrator) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input FundInvestmentSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		txID, err := orch.WithdrawInvestment(c.Context(), helper.OwnerID(c), *input.InvestmentID, *input.AccountID, *input.Amount)
		if err != nil {
			return helper.RenderError(c, err)
		}
		return c.JSON(FundInvestmentResponseSchema{TransactionID: txID})
	}
}
