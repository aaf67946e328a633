package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmuiruri/bankcore/internal/api"
	"github.com/dmuiruri/bankcore/internal/ledger"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) (*fiber.App, *ledger.MemStore) {
	t.Helper()
	store := ledger.NewMemStore()
	orch := ledger.NewOrchestrator(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	app := fiber.New()
	api.InitializeRoutes(app, testSecret, store, orch)
	return app, store
}

func bearer(t *testing.T, owner string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": owner,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRoutesRequireToken(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/accounts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/accounts", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTransferFlow(t *testing.T) {
	app, _ := newTestApp(t)
	token := bearer(t, "+15550001111")

	var from, to ledger.Account
	resp := doJSON(t, app, http.MethodPost, "/api/accounts/create", token, fiber.Map{"account_type": "Checking"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &from)

	resp = doJSON(t, app, http.MethodPost, "/api/accounts/create", token, fiber.Map{"account_type": "Savings"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &to)

	resp = doJSON(t, app, http.MethodPost, "/api/transactions/create", token, fiber.Map{
		"kind": "deposit", "to_account_id": from.ID, "amount": "100.00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/accounts/transfer", token, fiber.Map{
		"from_account_id": from.ID, "to_account_id": to.ID, "amount": "40.00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var transfer struct {
		TransactionID uuid.UUID `json:"transaction_id"`
	}
	decode(t, resp, &transfer)
	assert.NotEqual(t, uuid.Nil, transfer.TransactionID)

	var listing struct {
		Accounts []ledger.Account `json:"accounts"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/accounts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &listing)
	require.Len(t, listing.Accounts, 2)
	balances := map[uuid.UUID]decimal.Decimal{}
	for _, a := range listing.Accounts {
		balances[a.ID] = a.Balance
	}
	assert.True(t, balances[from.ID].Equal(decimal.RequireFromString("60.00")))
	assert.True(t, balances[to.ID].Equal(decimal.RequireFromString("40.00")))

	// Overdrafts report the specific reason.
	resp = doJSON(t, app, http.MethodPost, "/api/accounts/transfer", token, fiber.Map{
		"from_account_id": from.ID, "to_account_id": to.ID, "amount": "1000.00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/accounts/transfer", token, fiber.Map{
		"from_account_id": from.ID, "to_account_id": to.ID, "amount": "-5.00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var page struct {
		Total *int                 `json:"total"`
		Items []ledger.Transaction `json:"items"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/transactions?page=1&size=10", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &page)
	require.NotNil(t, page.Total)
	assert.Equal(t, 2, *page.Total)
}

func TestForeignAccountDebitIs404(t *testing.T) {
	app, _ := newTestApp(t)
	alice := bearer(t, "alice")
	mallory := bearer(t, "mallory")

	var acc ledger.Account
	resp := doJSON(t, app, http.MethodPost, "/api/accounts/create", alice, fiber.Map{"account_type": "Checking"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &acc)

	resp = doJSON(t, app, http.MethodPost, "/api/transactions/create", mallory, fiber.Map{
		"kind": "withdrawal", "from_account_id": acc.ID, "amount": "10.00",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvestmentAndLoanFlow(t *testing.T) {
	app, _ := newTestApp(t)
	token := bearer(t, "owner")

	var acc ledger.Account
	resp := doJSON(t, app, http.MethodPost, "/api/accounts/create", token, fiber.Map{"account_type": "Checking"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &acc)

	resp = doJSON(t, app, http.MethodPost, "/api/transactions/create", token, fiber.Map{
		"kind": "deposit", "to_account_id": acc.ID, "amount": "500.00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var inv ledger.Investment
	resp = doJSON(t, app, http.MethodPost, "/api/investments/create", token, fiber.Map{
		"investment_type": "MutualFund", "amount": "0.00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &inv)

	resp = doJSON(t, app, http.MethodPost, "/api/investments/add-funds", token, fiber.Map{
		"investment_id": inv.ID, "account_id": acc.ID, "amount": "200.00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loan ledger.Loan
	resp = doJSON(t, app, http.MethodPost, "/api/loans/apply", token, fiber.Map{
		"loan_type": "Car", "amount": "5000.00", "term_months": 36, "purpose": "family car",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &loan)
	assert.Equal(t, ledger.LoanPending, loan.Status)
	assert.Equal(t, "family car", loan.Purpose)
	assert.True(t, loan.InterestRate.Equal(decimal.RequireFromString("6.5")))

	var loanListing struct {
		Loans []ledger.Loan `json:"loans"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/loans", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &loanListing)
	require.Len(t, loanListing.Loans, 1)
	assert.Equal(t, "family car", loanListing.Loans[0].Purpose)

	resp = doJSON(t, app, http.MethodPost, "/api/loans/disburse", token, fiber.Map{
		"loan_id": loan.ID, "account_id": acc.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listing struct {
		Accounts []ledger.Account `json:"accounts"`
	}
	resp = doJSON(t, app, http.MethodGet, "/api/accounts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &listing)
	require.Len(t, listing.Accounts, 1)
	assert.True(t, listing.Accounts[0].Balance.Equal(decimal.RequireFromString("5300.00")))

	// Disbursing again conflicts.
	resp = doJSON(t, app, http.MethodPost, "/api/loans/disburse", token, fiber.Map{
		"loan_id": loan.ID, "account_id": acc.ID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var summary ledger.Summary
	resp = doJSON(t, app, http.MethodGet, "/api/transactions/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &summary)
	assert.True(t, summary.MonthlyIncome.Equal(decimal.RequireFromString("5500.00")))
	assert.Equal(t, 3, summary.RecentCount)
}
