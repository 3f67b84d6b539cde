package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/auth-system/internal/core/domain"
)

// ClaimsKey is the echo.Context key under which the Auth middleware stores
// the verified *domain.TokenPayload.
const ClaimsKey = "claims"

// ctxClaims extracts the payload injected by the Auth middleware. A missing
// or empty payload means the middleware did not run for this route.
func ctxClaims(c echo.Context) (*domain.TokenPayload, error) {
	claims, _ := c.Get(ClaimsKey).(*domain.TokenPayload)
	if claims == nil || claims.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
