// internal/handlers/order.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// POST /orders
func (h *OrderHandler) Create(c *gin.Context) {
	user, _ := utils.GetUserFromContext(c)

	var req services.CheckoutInput
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(user, req)
	if err != nil {
		serviceError(c, err, "order")
		return
	}
	utils.CreatedResponse(c, order)
}

// POST /orders/admin-assisted
func (h *OrderHandler) CreateAdminAssisted(c *gin.Context) {
	admin, _ := utils.GetUserFromContext(c)

	var req services.AdminOrderInput
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.orderService.CreateAdminOrder(admin, req)
	if err != nil {
		serviceError(c, err, "customer")
		return
	}
	utils.CreatedResponse(c, order)
}

// GET /orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	user, _ := utils.GetUserFromContext(c)
	params := utils.GetCursorParams(c, 20, 100)

	page, err := h.orderService.ListUserOrders(user.ID, params)
	if err != nil {
		serviceError(c, err, "orders")
		return
	}
	utils.SuccessResponse(c, page)
}

// GET /orders/all
func (h *OrderHandler) ListAll(c *gin.Context) {
	params := utils.GetCursorParams(c, 50, 200)
	status := models.OrderStatus(c.Query("status"))

	page, err := h.orderService.ListAllOrders(status, params)
	if err != nil {
		serviceError(c, err, "orders")
		return
	}
	utils.SuccessResponse(c, page)
}

// GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	user, _ := utils.GetUserFromContext(c)
	role := utils.GetRoleFromContext(c)

	// Staff see any order, customers only their own.
	requesterID := user.ID
	if services.In(role, models.RoleOwner, models.RolePartner, models.RoleAdmin) {
		requesterID = ""
	}

	order, err := h.orderService.GetOrder(c.Param("id"), requesterID)
	if err != nil {
		serviceError(c, err, "order")
		return
	}
	utils.SuccessResponse(c, order)
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// PATCH /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req statusUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		serviceError(c, err, "order")
		return
	}
	utils.SuccessResponse(c, order)
}

type discountAdjustRequest struct {
	Discount float64 `json:"discount" validate:"gte=0"`
}

// PATCH /orders/:id/discount
func (h *OrderHandler) AdjustDiscount(c *gin.Context) {
	var req discountAdjustRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.orderService.AdjustDiscount(c.Param("id"), req.Discount)
	if err != nil {
		serviceError(c, err, "order")
		return
	}
	utils.SuccessResponse(c, order)
}

// DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orderService.Delete(c.Param("id")); err != nil {
		serviceError(c, err, "order")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Deleted"})
}
