package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// IdentitySource extracts the identity a request refers to, so it can be
// compared against the verified claims. An empty result means the request
// carries no identity and the check passes vacuously; only attach a source
// to routes whose contract guarantees the field is present.
type IdentitySource func(c echo.Context) (string, error)

// FromParam reads the identity from a path parameter.
func FromParam(name string) IdentitySource {
	return func(c echo.Context) (string, error) {
		return c.Param(name), nil
	}
}

// FromBody peeks the JSON body for an email field and restores the body so
// the handler can still bind it.
func FromBody() IdentitySource {
	return func(c echo.Context) (string, error) {
		req := c.Request()
		if req.Body == nil {
			return "", nil
		}
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(data))

		var body struct {
			Email     string `json:"email"`
			UserEmail string `json:"userEmail"`
		}
		if err := json.Unmarshal(data, &body); err != nil {
			return "", nil
		}
		if body.Email != "" {
			return body.Email, nil
		}
		return body.UserEmail, nil
	}
}

// BindIdentity rejects requests whose claimed identity differs from the
// identity the route refers to.
func (m *Middleware) BindIdentity(source IdentitySource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := ClaimsFrom(c)
			if err != nil {
				return err
			}

			requested, err := source(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
			}
			if requested != "" && requested != claims.Email {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}
			return next(c)
		}
	}
}
