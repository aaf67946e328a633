package loan

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dmuiruri/bankcore/internal/ledger"
)

func InitializeRoutes(router fiber.Router, store ledger.Store, orch *ledger.Orchestrator) {
	router.Get("/loans", ListLoansHandler(store))
	router.Post("/loans/apply", ApplyLoanHandler(store))
	router.Post("/loans/disburse", DisburseLoanHandler(orch))
}
