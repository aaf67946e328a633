package helper

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/dmuiruri/bankcore/internal/ledger"
)

type Pagination[T any] struct {
	Page  int  `json:"page"`
	Size  int  `json:"size"`
	Total *int `json:"total"`
	Items []T  `json:"items"`
}

func GetPagination[T any](c fiber.Ctx) Pagination[T] {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}

	size, _ := strconv.Atoi(c.Query("size", "10"))
	if size < 1 {
		size = 1
	} else if size > 100 {
		size = 100
	}

	return Pagination[T]{
		Page:  page,
		Size:  size,
		Total: nil,
		Items: []T{},
	}
}

var validate = validator.New()

func ValidateInput(input interface{}) error {
	return validate.Struct(input)
}

// OwnerID returns the authenticated caller identity stored by the auth
// middleware. Empty when the route is not protected.
func OwnerID(c fiber.Ctx) string {
	owner, _ := c.Locals("owner_id").(string)
	return owner
}

// RenderError maps the ledger error taxonomy onto HTTP statuses. The
// body keeps the specific reason so the UI can tell insufficient funds
// from a bad amount.
func RenderError(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		status = fiber.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientFunds):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrConflict), errors.Is(err, ledger.ErrLoanState):
		status = fiber.StatusConflict
	case errors.Is(err, ledger.ErrStoreUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
