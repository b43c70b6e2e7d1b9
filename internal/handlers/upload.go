// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
	}
}

// POST /upload-image?folder=products|advertisements
func (h *UploadHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileRequired), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(c.Request.Context(), file, header, c.DefaultQuery("folder", "products"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}
