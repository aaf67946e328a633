package account

import (
	"github.com/gofiber/fiber/v3"
	"github.com/shopspring/decimal"

	"github.com/dmuiruri/bankcore/internal/helper"
	"github.com/dmuiruri/bankcore/internal/ledger"
)

func CreateAccountHandler(store ledger.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input CreateAccountSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		acc, err := store.CreateAccount(c.Context(), helper.OwnerID(c), ledger.AccountType(input.AccountType))
		if err != nil {
			return helper.RenderError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(acc)
	}
}

func ListAccountsHandler(store ledger.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		accounts, err := store.ListAccounts(c.Context(), helper.OwnerID(c))
		if err != nil {
			return helper.RenderError(c, err)
		}
		if accounts == nil {
			accounts = []ledger.Account{}
		}
		return c.JSON(fiber.Map{"accounts": accounts})
	}
}

// BalanceHandler reports the caller's first account balance, zero when
// no account exists yet. Dashboard convenience, mirrors the listing.
func BalanceHandler(store ledger.Store) fiber.Handler {
	return func(c fiber.Ctx) error {
		accounts, err := store.ListAccounts(c.Context(), helper.OwnerID(c))
		if err != nil {
			return helper.RenderError(c, err)
		}
		balance := decimal.Zero
		if len(accounts) > 0 {
			balance = accounts[0].Balance
		}
		return c.JSON(BalanceResponseSchema{Balance: balance})
	}
}

func TransferHandler(orch *ledger.Orchestrator) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input TransferSchema
		if err := c.Bind().Body(&input); err != nil {
			return fiber.ErrBadRequest
		}
		if err := helper.ValidateInput(&input); err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		txID, err := orch.Transfer(c.Context(), helper.OwnerID(c), *input.FromAccountID, *input.ToAccountID, *input.Amount, input.Description)
		if err != nil {
			return helper.RenderError(c, err)
		}
		return c.JSON(TransferResponseSchema{TransactionID: txID})
	}
}
