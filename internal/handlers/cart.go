// internal/handlers/cart.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alghazaly/autoparts-backend/internal/i18n"
	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	user, _ := utils.GetUserFromContext(c)

	view, err := h.cartService.Get(user.ID)
	if err != nil {
		serviceError(c, err, "cart")
		return
	}
	utils.SuccessResponse(c, view)
}

// POST /cart/add
func (h *CartHandler) Add(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, _ := utils.GetUserFromContext(c)

	var req services.AddItemInput
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.cartService.Add(user.ID, req)
	if err != nil {
		serviceError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded),
		"item":    item,
	})
}

// POST /cart/add-enhanced
func (h *CartHandler) AddEnhanced(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, _ := utils.GetUserFromContext(c)

	var req services.AddEnhancedInput
	if !bindAndValidate(c, &req) {
		return
	}

	item, err := h.cartService.AddEnhanced(user.ID, req)
	if err != nil {
		serviceError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded),
		"item":    item,
	})
}

type cartUpdateRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// PUT /cart/update
func (h *CartHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, _ := utils.GetUserFromContext(c)

	var req cartUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.cartService.Update(user.ID, req.ProductID, req.Quantity); err != nil {
		serviceError(c, err, "cart")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartUpdated),
	})
}

// DELETE /cart/void-bundle/:bundleGroupId
func (h *CartHandler) VoidBundle(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, _ := utils.GetUserFromContext(c)

	if err := h.cartService.VoidBundle(user.ID, c.Param("bundleGroupId")); err != nil {
		serviceError(c, err, "cart")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartBundleVoid),
	})
}

// DELETE /cart/clear
func (h *CartHandler) Clear(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, _ := utils.GetUserFromContext(c)

	if err := h.cartService.Clear(user.ID); err != nil {
		serviceError(c, err, "cart")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
	})
}
