package account

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dmuiruri/bankcore/internal/ledger"
)

func InitializeRoutes(router fiber.Router, store ledger.Store, orch *ledger.Orchestrator) {
	router.Get("/accounts", ListAccountsHandler(store))
	router.Get("/accounts/balance", BalanceHandler(store))
	router.Post("/accounts/create", CreateAccountHandler(store))
	router.Post("/accounts/transfer", TransferHandler(orch))
}
