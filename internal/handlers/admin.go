// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
	cartService  *services.CartService
}

func NewAdminHandler(adminService *services.AdminService, cartService *services.CartService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		cartService:  cartService,
	}
}

// GET /partners
func (h *AdminHandler) ListPartners(c *gin.Context) {
	partners, err := h.adminService.ListPartners()
	if err != nil {
		serviceError(c, err, "partners")
		return
	}
	utils.SuccessResponse(c, gin.H{"partners": partners, "total": len(partners)})
}

// POST /partners
func (h *AdminHandler) AddPartner(c *gin.Context) {
	var req services.RoleMemberInput
	if !bindAndValidate(c, &req) {
		return
	}
	partner, err := h.adminService.AddPartner(req)
	if err != nil {
		serviceError(c, err, "partner")
		return
	}
	utils.CreatedResponse(c, partner)
}

// DELETE /partners/:id
func (h *AdminHandler) RemovePartner(c *gin.Context) {
	if err := h.adminService.RemovePartner(c.Param("id")); err != nil {
		serviceError(c, err, "partner")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Removed"})
}

// GET /admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminService.ListAdmins()
	if err != nil {
		serviceError(c, err, "admins")
		return
	}
	utils.SuccessResponse(c, gin.H{"admins": admins, "total": len(admins)})
}

// POST /admins
func (h *AdminHandler) AddAdmin(c *gin.Context) {
	var req services.RoleMemberInput
	if !bindAndValidate(c, &req) {
		return
	}
	admin, err := h.adminService.AddAdmin(req)
	if err != nil {
		serviceError(c, err, "admin")
		return
	}
	utils.CreatedResponse(c, admin)
}

// DELETE /admins/:id
func (h *AdminHandler) RemoveAdmin(c *gin.Context) {
	if err := h.adminService.RemoveAdmin(c.Param("id")); err != nil {
		serviceError(c, err, "admin")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Removed"})
}

// GET /subscribers
func (h *AdminHandler) ListSubscribers(c *gin.Context) {
	subscribers, err := h.adminService.ListSubscribers()
	if err != nil {
		serviceError(c, err, "subscribers")
		return
	}
	utils.SuccessResponse(c, gin.H{"subscribers": subscribers, "total": len(subscribers)})
}

// POST /subscribers
func (h *AdminHandler) AddSubscriber(c *gin.Context) {
	var req services.RoleMemberInput
	if !bindAndValidate(c, &req) {
		return
	}
	subscriber, err := h.adminService.AddSubscriber(req)
	if err != nil {
		serviceError(c, err, "subscriber")
		return
	}
	utils.CreatedResponse(c, subscriber)
}

// DELETE /subscribers/:id
func (h *AdminHandler) RemoveSubscriber(c *gin.Context) {
	if err := h.adminService.RemoveSubscriber(c.Param("id")); err != nil {
		serviceError(c, err, "subscriber")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Removed"})
}

// GET /customers
func (h *AdminHandler) ListCustomers(c *gin.Context) {
	customers, err := h.adminService.ListCustomers(c.DefaultQuery("sort_by", "created_at"))
	if err != nil {
		serviceError(c, err, "customers")
		return
	}
	utils.SuccessResponse(c, gin.H{"customers": customers, "total": len(customers)})
}

// GET /customers/:id
func (h *AdminHandler) GetCustomer(c *gin.Context) {
	customer, err := h.adminService.GetCustomer(c.Param("id"))
	if err != nil {
		serviceError(c, err, "customer")
		return
	}
	utils.SuccessResponse(c, customer)
}

// GET /admin/customer/:id/cart
func (h *AdminHandler) GetCustomerCart(c *gin.Context) {
	view, err := h.cartService.Get(c.Param("id"))
	if err != nil {
		serviceError(c, err, "cart")
		return
	}
	utils.SuccessResponse(c, view)
}
