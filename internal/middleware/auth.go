// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/models"
	"github.com/freshcart/freshcart-backend/internal/services"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

type TokenVerifier interface {
	ValidateJWT(token string) (*utils.SessionClaims, error)
}

// RoleLookup resolves the stored role for a verified email.
type RoleLookup interface {
	GetRole(ctx context.Context, email string) (models.Role, error)
}

// AuthRequired rejects requests without a bearer token with 401 and
// requests whose token does not verify with 403.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if authHeader == "" || token == "" {
			recordAuthRejection("missing_token")
			utils.AbortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", i18n.T(lang, i18n.KeyAuthRequired))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			recordAuthRejection("malformed_header")
			utils.AbortWithError(c, http.StatusForbidden, "FORBIDDEN", i18n.T(lang, i18n.KeyAuthForbidden))
			return
		}

		claims, err := verifier.ValidateJWT(strings.TrimSpace(parts[1]))
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": utils.GetRequestIDFromContext(c),
				"path":       c.Request.URL.Path,
			}).WithError(err).Debug("Rejected bearer token")
			recordAuthRejection("invalid_token")
			utils.AbortWithError(c, http.StatusForbidden, "FORBIDDEN", i18n.T(lang, i18n.KeyAuthForbidden))
			return
		}

		c.Set(utils.ContextKeyEmail, claims.Email)
		c.Set(utils.ContextKeyClaims, claims)
		c.Next()
	}
}

// RoleRequired must run after AuthRequired. Roles are not hierarchical and
// the stored role is never echoed back to the caller.
func RoleRequired(lookup RoleLookup, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		email, ok := utils.GetEmailFromContext(c)
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", i18n.T(lang, i18n.KeyAuthRequired))
			return
		}

		actual, err := lookup.GetRole(c.Request.Context(), email)
		if err != nil && !errors.Is(err, services.ErrNotFound) {
			logrus.WithError(err).WithField("request_id", utils.GetRequestIDFromContext(c)).Error("Failed to look up role")
			utils.AbortWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", i18n.T(lang, i18n.KeyInternalError))
			return
		}

		if err != nil || actual != role {
			logrus.WithFields(logrus.Fields{
				"email":         email,
				"required_role": role,
				"actual_role":   actual,
				"path":          c.Request.URL.Path,
				"request_id":    utils.GetRequestIDFromContext(c),
			}).Warn("Role check failed")
			recordAuthRejection("role_mismatch")
			utils.AbortWithError(c, http.StatusForbidden, "FORBIDDEN", i18n.T(lang, i18n.KeyAuthForbidden))
			return
		}

		c.Next()
	}
}

func VendorRequired(lookup RoleLookup) gin.HandlerFunc {
	return RoleRequired(lookup, models.RoleVendor)
}

func AdminRequired(lookup RoleLookup) gin.HandlerFunc {
	return RoleRequired(lookup, models.RoleAdmin)
}
