package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireToken verifies the Authorization bearer credential and stores the
// decoded claims on the context. No route logic runs when it fails.
func (m *Middleware) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}

		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}

		claims, err := m.Tokens.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		}

		setClaims(c, claims)
		return next(c)
	}
}
