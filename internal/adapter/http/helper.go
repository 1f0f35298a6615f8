package http

import (
	"errors"
	"net/http"
	"strings"

	accountDomain "moneylending-backend/internal/domain/account"
	loanDomain "moneylending-backend/internal/domain/loan"
	accountUC "moneylending-backend/internal/usecase/account"

	"github.com/labstack/echo/v4"
)

// writeErr maps the error taxonomy onto HTTP statuses. Every failure path
// ends up here so nothing is swallowed silently.
func writeErr(c echo.Context, err error) error {
	var ve *loanDomain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: ve.Field, Message: ve.Message}},
		})
	case errors.Is(err, accountUC.ErrBadCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, accountUC.ErrBadCode):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, accountDomain.ErrTaken):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, loanDomain.ErrNotFound), errors.Is(err, accountDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, loanDomain.ErrUnauthorized):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, loanDomain.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable, retry later"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func bindErr(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func validationErr(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
}

// ---- test helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
