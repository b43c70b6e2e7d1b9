// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

// handleServiceError maps service errors onto the response envelope. Anything
// unrecognised is logged and reported as a generic 500.
func handleServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": utils.GetRequestIDFromContext(c),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
		return
	}

	message := translate(lang, svcErr.Key)
	switch {
	case errors.Is(err, services.ErrValidation):
		if len(svcErr.Details) > 0 {
			utils.ValidationErrorResponse(c, svcErr.Details)
			return
		}
		utils.BadRequestResponse(c, message, nil)
	case errors.Is(err, services.ErrInvalidID):
		utils.BadRequestResponse(c, message, nil)
	case errors.Is(err, services.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message, nil)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, message)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, message)
	default:
		utils.InternalErrorResponse(c, "")
	}
}

func translate(lang, key string) string {
	if key == i18n.KeyValidationInvalid {
		return i18n.T(lang, key, "input")
	}
	return i18n.T(lang, key)
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

// callerEmail returns the verified email; routes using it sit behind AuthRequired.
func callerEmail(c *gin.Context) (string, bool) {
	email, ok := utils.GetEmailFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return email, ok
}
