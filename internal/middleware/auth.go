// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alghazaly/autoparts-backend/internal/i18n"
	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

// Authenticate resolves the session from the cookie or bearer header
// and, when valid, stores the user and their derived role in the gin
// context. It never rejects; anonymous requests continue as guest.
func Authenticate(auth *services.AuthService, roles *services.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" {
			c.Set("role", models.RoleGuest)
			c.Next()
			return
		}

		user, err := auth.ResolveSession(token)
		if err != nil {
			logrus.WithError(err).Error("session resolution failed")
		}
		if user == nil {
			c.Set("role", models.RoleGuest)
			c.Next()
			return
		}

		c.Set("user", user)
		c.Set("session_token", token)
		c.Set("role", roles.Resolve(user))
		c.Next()
	}
}

// AuthRequired rejects requests that did not authenticate.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserFromContext(c); !ok {
			lang := utils.GetLangFromContext(c)
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleRequired rejects authenticated requests whose derived role is
// not in the allow-set. It implies AuthRequired.
func RoleRequired(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)
		if _, ok := utils.GetUserFromContext(c); !ok {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			c.Abort()
			return
		}
		if !services.In(utils.GetRoleFromContext(c), allowed...) {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}

// sessionToken pulls the token from the session cookie, falling back
// to "Authorization: Bearer <token>".
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie("session_token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
