package auth

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bistroboss/server/internal/models"
)

// AdminOnly permits the request only when the stored role of the verified
// identity is admin. A missing user record gets the same answer as a
// non-admin one, so existence is not leaked. One store read per call.
func (m *Middleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := ClaimsFrom(c)
		if err != nil {
			return err
		}

		var user models.User
		result := m.DB.Where("email = ?", claims.Email).First(&user)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, result.Error.Error())
		}
		if user.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
		}
		return next(c)
	}
}
