// internal/handlers/advertisement.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

type AdvertisementHandler struct {
	advertisementService *services.AdvertisementService
}

func NewAdvertisementHandler(advertisementService *services.AdvertisementService) *AdvertisementHandler {
	return &AdvertisementHandler{
		advertisementService: advertisementService,
	}
}

// POST /advertisements
func (h *AdvertisementHandler) CreateAdvertisement(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req services.CreateAdvertisementRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.advertisementService.CreateAdvertisement(c.Request.Context(), email, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

// GET /advertisements/:email
func (h *AdvertisementHandler) GetVendorAdvertisements(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	ads, err := h.advertisementService.GetVendorAdvertisements(c.Request.Context(), email, c.Param("email"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, ads)
}

// GET /advertisements
func (h *AdvertisementHandler) GetApprovedAdvertisements(c *gin.Context) {
	ads, err := h.advertisementService.GetApprovedAdvertisements(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, ads)
}

// GET /all-advertisements
func (h *AdvertisementHandler) GetAllAdvertisements(c *gin.Context) {
	ads, err := h.advertisementService.GetAllAdvertisements(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, ads)
}

// PUT /advertisements/:id
func (h *AdvertisementHandler) UpdateAdvertisement(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	var req services.UpdateAdvertisementRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.advertisementService.UpdateAdvertisement(c.Request.Context(), email, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// DELETE /advertisements/:id
func (h *AdvertisementHandler) DeleteAdvertisement(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		return
	}

	result, err := h.advertisementService.DeleteAdvertisement(c.Request.Context(), email, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// PATCH /advertisements/status/:id
func (h *AdvertisementHandler) UpdateStatus(c *gin.Context) {
	var req services.UpdateAdvertisementStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.advertisementService.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
