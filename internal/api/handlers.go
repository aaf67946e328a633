package api

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dmuiruri/bankcore/internal/api/account"
	"github.com/dmuiruri/bankcore/internal/api/investment"
	"github.com/dmuiruri/bankcore/internal/api/loan"
	"github.com/dmuiruri/bankcore/internal/api/middleware"
	"github.com/dmuiruri/bankcore/internal/api/transaction"
	"github.com/dmuiruri/bankcore/internal/ledger"
)

// InitializeRoutes mounts every feature under /api behind the bearer
// token middleware. Identity comes from the token subject; the ledger
// never sees credentials.
func InitializeRoutes(app *fiber.App, jwtSecret string, store ledger.Store, orch *ledger.Orchestrator) {
	api := app.Group("/api", middleware.Protected(jwtSecret))

	account.InitializeRoutes(api, store, orch)
	transaction.InitializeRoutes(api, store, orch)
	investment.InitializeRoutes(api, store, orch)
	loan.InitializeRoutes(api, store, orch)
}
