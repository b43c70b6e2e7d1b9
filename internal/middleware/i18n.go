// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/freshcart/freshcart-backend/internal/i18n"
	"github.com/freshcart/freshcart-backend/internal/utils"
)

// I18nMiddleware picks the first supported language from Accept-Language.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if defaultLang == "" {
		defaultLang = "en"
	}

	return func(c *gin.Context) {
		c.Set(utils.ContextKeyLang, ResolveLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// ResolveLanguage handles headers like "es-MX,es;q=0.9,en;q=0.8".
func ResolveLanguage(header, defaultLang string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		subtags := strings.FieldsFunc(tag, func(r rune) bool { return r == '-' || r == '_' })
		if len(subtags) == 0 {
			continue
		}
		if base := strings.ToLower(subtags[0]); i18n.IsSupported(base) {
			return base
		}
	}
	return defaultLang
}
