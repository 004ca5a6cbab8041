// internal/handlers/promotion.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

type PromotionHandler struct {
	promotionService *services.PromotionService
}

func NewPromotionHandler(promotionService *services.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

func staffRequest(c *gin.Context) bool {
	return services.In(utils.GetRoleFromContext(c),
		models.RoleOwner, models.RolePartner, models.RoleAdmin)
}

// GET /bundle-offers
func (h *PromotionHandler) ListBundleOffers(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true" && staffRequest(c)

	offers, err := h.promotionService.ListBundleOffers(includeInactive)
	if err != nil {
		serviceError(c, err, "bundle_offers")
		return
	}
	utils.SuccessResponse(c, gin.H{"bundle_offers": offers, "total": len(offers)})
}

// GET /bundle-offers/:id
func (h *PromotionHandler) GetBundleOffer(c *gin.Context) {
	offer, err := h.promotionService.GetBundleOffer(c.Param("id"))
	if err != nil {
		serviceError(c, err, "bundle_offer")
		return
	}
	utils.SuccessResponse(c, offer)
}

// POST /bundle-offers
func (h *PromotionHandler) CreateBundleOffer(c *gin.Context) {
	var req services.BundleOfferInput
	if !bindAndValidate(c, &req) {
		return
	}
	offer, err := h.promotionService.CreateBundleOffer(req)
	if err != nil {
		serviceError(c, err, "bundle_offer")
		return
	}
	utils.CreatedResponse(c, offer)
}

// PUT /bundle-offers/:id
func (h *PromotionHandler) UpdateBundleOffer(c *gin.Context) {
	var req services.BundleOfferInput
	if !bindAndValidate(c, &req) {
		return
	}
	offer, err := h.promotionService.UpdateBundleOffer(c.Param("id"), req)
	if err != nil {
		serviceError(c, err, "bundle_offer")
		return
	}
	utils.SuccessResponse(c, offer)
}

// DELETE /bundle-offers/:id
func (h *PromotionHandler) DeleteBundleOffer(c *gin.Context) {
	if err := h.promotionService.DeleteBundleOffer(c.Param("id")); err != nil {
		serviceError(c, err, "bundle_offer")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Deleted"})
}

// GET /promotions
func (h *PromotionHandler) ListPromotions(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true" && staffRequest(c)

	promotions, err := h.promotionService.ListPromotions(includeInactive)
	if err != nil {
		serviceError(c, err, "promotions")
		return
	}
	utils.SuccessResponse(c, gin.H{"promotions": promotions, "total": len(promotions)})
}

// POST /promotions
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req services.PromotionInput
	if !bindAndValidate(c, &req) {
		return
	}
	promotion, err := h.promotionService.CreatePromotion(req)
	if err != nil {
		serviceError(c, err, "promotion")
		return
	}
	utils.CreatedResponse(c, promotion)
}

// PUT /promotions/:id
func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	var req services.PromotionInput
	if !bindAndValidate(c, &req) {
		return
	}
	promotion, err := h.promotionService.UpdatePromotion(c.Param("id"), req)
	if err != nil {
		serviceError(c, err, "promotion")
		return
	}
	utils.SuccessResponse(c, promotion)
}

type reorderRequest struct {
	Order map[string]float64 `json:"order" validate:"required"`
}

// POST /promotions/reorder
func (h *PromotionHandler) ReorderPromotions(c *gin.Context) {
	var req reorderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.promotionService.ReorderPromotions(req.Order); err != nil {
		serviceError(c, err, "promotions")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Reordered"})
}

// DELETE /promotions/:id
func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	if err := h.promotionService.DeletePromotion(c.Param("id")); err != nil {
		serviceError(c, err, "promotion")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Deleted"})
}
