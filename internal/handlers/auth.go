// internal/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alghazaly/autoparts-backend/internal/config"
	"github.com/alghazaly/autoparts-backend/internal/i18n"
	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	roleService *services.RoleService
	config      *config.Config
}

func NewAuthHandler(authService *services.AuthService, roleService *services.RoleService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		roleService: roleService,
		config:      cfg,
	}
}

type sessionExchangeRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

// POST /auth/session
func (h *AuthHandler) ExchangeSession(c *gin.Context) {
	var req sessionExchangeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, session, err := h.authService.ExchangeSession(req.SessionID)
	if err != nil {
		serviceError(c, err, "session")
		return
	}

	maxAge := h.config.Auth.SessionExpireDays * 24 * 60 * 60
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("session_token", session.SessionToken, maxAge, "/", h.config.Auth.CookieDomain, true, true)

	utils.SuccessResponse(c, gin.H{
		"user":          user,
		"role":          h.roleService.Resolve(user),
		"session_token": session.SessionToken,
	})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, _ := utils.GetUserFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"user": user,
		"role": utils.GetRoleFromContext(c),
	})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if token, ok := c.Get("session_token"); ok {
		if err := h.authService.Logout(token.(string)); err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("session_token", "", -1, "/", h.config.Auth.CookieDomain, true, true)

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyAuthLogoutSuccess),
	})
}
