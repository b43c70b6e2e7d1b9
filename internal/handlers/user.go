// internal/handlers/user.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// POST /user
func (h *UserHandler) SaveUser(c *gin.Context) {
	var req services.SaveUserRequest
	if !bindJSON(c, &req) {
		return
	}

	result, created, err := h.userService.SaveUser(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if created {
		utils.CreatedResponse(c, result)
		return
	}
	utils.SuccessResponse(c, result)
}

// GET /user/role/:email
func (h *UserHandler) GetRole(c *gin.Context) {
	role, err := h.userService.GetRole(c.Request.Context(), c.Param("email"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"role": role})
}

// GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, users)
}

// PATCH /users/:id/role
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req services.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userService.UpdateRole(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
