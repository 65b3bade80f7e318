package middleware

import (
	"gestaotemplate/internal/apperr"
	"gestaotemplate/internal/session"

	"github.com/labstack/echo/v4"
)

// RequireStore rejects callers that are not attached to a store. It must run
// after the auth middleware.
func RequireStore() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := session.FromContext(c.Request().Context())
			if !ok {
				return apperr.Unauthorized("")
			}
			if !principal.HasStore() {
				return apperr.Forbidden(apperr.MsgNoStore)
			}
			return next(c)
		}
	}
}
