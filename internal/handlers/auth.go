// internal/handlers/auth.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /jwt
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req services.IssueTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.authService.IssueToken(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, response)
}
