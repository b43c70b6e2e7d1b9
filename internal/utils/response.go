// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-backend/internal/i18n"
)

// Context keys shared by middleware and handlers.
const (
	ContextKeyLang      = "lang"
	ContextKeyEmail     = "email"
	ContextKeyClaims    = "claims"
	ContextKeyRequestID = "request_id"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// AbortWithError writes the envelope and stops the handler chain.
func AbortWithError(c *gin.Context, statusCode int, code, message string) {
	ErrorResponse(c, statusCode, code, message, nil)
	c.Abort()
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAuthForbidden)
	}
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	lang := GetLangFromContext(c)
	message := i18n.T(lang, resource+".not_found")
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func ConflictResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyResourceConflict)
	}
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message, nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyInternalError)
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	lang := GetLangFromContext(c)
	message := i18n.T(lang, i18n.KeyValidationInvalid, "input")
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, errors)
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get(ContextKeyLang); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

// GetEmailFromContext returns the verified caller email set by the auth middleware.
func GetEmailFromContext(c *gin.Context) (string, bool) {
	if email, exists := c.Get(ContextKeyEmail); exists {
		if emailStr, ok := email.(string); ok && emailStr != "" {
			return emailStr, true
		}
	}
	return "", false
}

func GetClaimsFromContext(c *gin.Context) (*SessionClaims, bool) {
	if claims, exists := c.Get(ContextKeyClaims); exists {
		if sessionClaims, ok := claims.(*SessionClaims); ok {
			return sessionClaims, true
		}
	}
	return nil, false
}

func GetRequestIDFromContext(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
