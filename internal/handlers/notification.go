// internal/handlers/notification.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	user, _ := utils.GetUserFromContext(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.notificationService.List(user.ID, limit)
	if err != nil {
		serviceError(c, err, "notifications")
		return
	}
	unread, err := h.notificationService.UnreadCount(user.ID)
	if err != nil {
		serviceError(c, err, "notifications")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"notifications": notifications,
		"total":         len(notifications),
		"unread":        unread,
	})
}

// PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, _ := utils.GetUserFromContext(c)

	if err := h.notificationService.MarkRead(user.ID, c.Param("id")); err != nil {
		serviceError(c, err, "notification")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Marked read"})
}

// POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user, _ := utils.GetUserFromContext(c)

	if err := h.notificationService.MarkAllRead(user.ID); err != nil {
		serviceError(c, err, "notifications")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "All marked read"})
}
