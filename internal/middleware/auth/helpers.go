package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/bistroboss/server/internal/token"
)

const claimsContextKey = "claims"

// Middleware holds the ordered authorization checks every protected route
// composes: RequireToken -> BindIdentity -> AdminOnly.
type Middleware struct {
	Tokens *token.TokenService
	DB     *gorm.DB
}

func setClaims(c echo.Context, claims *token.Claims) {
	c.Set(claimsContextKey, claims)
}

// ClaimsFrom returns the verified claims RequireToken stored on the context.
func ClaimsFrom(c echo.Context) (*token.Claims, error) {
	claims, ok := c.Get(claimsContextKey).(*token.Claims)
	if !ok || claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	}
	return claims, nil
}
