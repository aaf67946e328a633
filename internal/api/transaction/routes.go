package transaction

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dmuiruri/bankcore/internal/ledger"
)

func InitializeRoutes(router fiber.Router, store ledger.Store, orch *ledger.Orchestrator) {
	router.Get("/transactions", ListTransactionsHandler(orch))
	router.Get("/transactions/recent", RecentTransactionsHandler(store))
	router.Get("/transactions/summary", SummaryHandler(store))
	router.Post("/transactions/create", CreateTransactionHandler(orch))
}
