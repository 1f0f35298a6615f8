package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"moneylending-backend/internal/domain/account"
	"moneylending-backend/internal/infrastructure/cache"
	loanUC "moneylending-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

const actorKey = "auth.actor"

// TokenReader resolves a bearer token to an account id.
type TokenReader interface {
	Lookup(ctx context.Context, token string) (string, error)
}

// SessionAuth authenticates requests with a redis-backed bearer token and
// places the resolved Actor in the echo context for the handlers.
func SessionAuth(tokens TokenReader, accounts account.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(auth, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}
			ctx := c.Request().Context()

			accountID, err := tokens.Lookup(ctx, strings.TrimSpace(token))
			if err != nil {
				if errors.Is(err, cache.ErrNoSession) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session expired"})
				}
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "session store unavailable"})
			}

			a, err := accounts.GetByAccountID(ctx, accountID)
			if err != nil {
				if errors.Is(err, account.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "account no longer exists"})
				}
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "account store unavailable"})
			}

			c.Set(actorKey, loanUC.Actor{AccountID: a.AccountID, DisplayName: a.Username})
			return next(c)
		}
	}
}

// ActorFrom returns the authenticated caller placed by SessionAuth.
func ActorFrom(c echo.Context) (loanUC.Actor, bool) {
	a, ok := c.Get(actorKey).(loanUC.Actor)
	return a, ok
}

// WithActor places an actor directly in the context, bypassing the
// session lookup. Handler tests use it.
func WithActor(c echo.Context, a loanUC.Actor) { c.Set(actorKey, a) }
