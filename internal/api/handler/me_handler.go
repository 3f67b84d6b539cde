package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type meResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Me returns the identity carried by the caller's token.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /users/me [get]
func Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, meResponse{
		ID:   claims.ID,
		Name: claims.Name,
		Role: claims.Role.String(),
	})
}
