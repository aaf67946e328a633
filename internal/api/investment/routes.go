package investment

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dmuiruri/bankcore/internal/ledger"
)

func InitializeRoutes(router fiber.Router, store ledger.Store, orch *ledger.Orchestrator) {
	router.Get("/investments", ListInvestmentsHandler(store))
	router.Post("/investments/create", CreateInvestmentHandler(store))
	router.Post("/investments/add-funds", AddFundsHandler(orch))
	router.Post("/investments/withdraw", WithdrawHandler(orch))
}
