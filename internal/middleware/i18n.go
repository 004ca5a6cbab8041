// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// I18nMiddleware parses Accept-Language and stores the resolved
// locale (en or ar) in the context for handlers and error responses.
func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := "en"

		header := c.GetHeader("Accept-Language")
		if header != "" {
			// Handles forms like "ar-EG,ar;q=0.9,en;q=0.8".
			first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
			switch {
			case first == "ar" || strings.HasPrefix(first, "ar-") || strings.HasPrefix(first, "ar_"):
				lang = "ar"
			default:
				lang = "en"
			}
		}

		c.Set("lang", lang)
		c.Next()
	}
}
