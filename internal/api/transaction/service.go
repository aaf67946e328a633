package transaction

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/dmuiruri/bankcore/internal/helper"
	"github.com/dmuiruri/bankcore/internal/ledger"
)

func CreateTransactionHandler(orch *ledger.Orchestrator) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input CreateTransactionSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		owner := helper.OwnerID(c)
		var (
			txID = uuid.Nil
			err  error
		)
		switch input.Kind {
		case "transfer":
			txID, err = orch.Transfer(c.Context(), owner, *input.FromAccountID, *input.ToAccountID, *input.Amount, input.Description)
		case "deposit":
			txID, err = orch.Deposit(c.Context(), owner, *input.ToAccountID, *input.Amount, input.Description)
		case "withdrawal":
			txID, err = orch.Withdraw(c.Context(), owner, *input.FromAccountID, *input.Amount, input.Description)
		}
		if err != nil {
			return helper.RenderError(c, err)
		}
		return c.JSON(CreateTransactionResponseSchema{TransactionID: txID})
	}
}

func ListTransactionsHandler(orch *ledger.Orchestrator) fiber.Handler {
	return func(c fiber.Ctx) error {
		pagination := helper.GetPagination[ledger.Transaction](c)

		items, total, err := orch.ListTransactions(c.Context(), helper.OwnerID(c), pagination.Page, pagination.Size)
		if err != nil {
			return helper.RenderError(c, err)
		}
		pagination.Total = &total
		pagination.Items = items
		if pagination.Items == nil {
			pagination.Items = []ledger.Transaction{}
		}
		return c.JSON(pagination)
	}
}

func RecentTransactionsHandler(store ledger.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		items, err := store.RecentTransactions(c.Context(), helper.OwnerID(c), 5)
		if err != nil {
			return helper.RenderError(c, err)
		}
		if items == nil {
			items = []ledger.Transaction{}
		}
		return c.JSON(fiber.Map{"transactions": items})
	}
}

// SummaryHandler aggregates the current calendar month.
func SummaryHandler(store ledger.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		now := time.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

		sum, err := store.Summary(c.Context(), helper.OwnerID(c), monthStart)
		if err != nil {
			return helper.RenderError(c, err)
		}
		return c.JSON(sum)
	}
}
