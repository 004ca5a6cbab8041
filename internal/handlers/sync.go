// internal/handlers/sync.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/realtime"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

// SyncHandler serves the offline-first clients: a delta pull endpoint,
// the websocket channel the hub pushes sync signals through, and the
// liveness probe.
type SyncHandler struct {
	db      *gorm.DB
	hub     *realtime.Hub
	version string
}

func NewSyncHandler(db *gorm.DB, hub *realtime.Hub, version string) *SyncHandler {
	return &SyncHandler{db: db, hub: hub, version: version}
}

type syncPullRequest struct {
	Tables       []string `json:"tables"`
	LastPulledAt int64    `json:"last_pulled_at"`
}

var defaultSyncTables = []string{"car_brands", "car_models", "product_brands", "categories", "products"}

// syncModels maps pullable table names to their row types. Tables not
// listed here cannot be pulled.
func syncModels() map[string]func() interface{} {
	return map[string]func() interface{}{
		"car_brands":     func() interface{} { return &[]models.CarBrand{} },
		"car_models":     func() interface{} { return &[]models.CarModel{} },
		"product_brands": func() interface{} { return &[]models.ProductBrand{} },
		"categories":     func() interface{} { return &[]models.Category{} },
		"products":       func() interface{} { return &[]models.Product{} },
		"suppliers":      func() interface{} { return &[]models.Supplier{} },
		"bundle_offers":  func() interface{} { return &[]models.BundleOffer{} },
		"promotions":     func() interface{} { return &[]models.Promotion{} },
	}
}

// POST /sync/pull
//
// last_pulled_at is a millisecond epoch; only rows updated after it
// come back, so repeated pulls transfer deltas.
func (h *SyncHandler) Pull(c *gin.Context) {
	var req syncPullRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "invalid sync request", err.Error())
		return
	}

	tables := req.Tables
	if len(tables) == 0 {
		tables = defaultSyncTables
	}

	registry := syncModels()
	data := gin.H{}
	for _, table := range tables {
		newSlice, ok := registry[table]
		if !ok {
			continue
		}
		rows := newSlice()
		query := h.db
		if req.LastPulledAt > 0 {
			since := time.UnixMilli(req.LastPulledAt).UTC()
			query = query.Where("updated_at > ?", since)
		}
		if err := query.Find(rows).Error; err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		data[table] = rows
	}

	utils.SuccessResponse(c, gin.H{
		"data":      data,
		"timestamp": time.Now().UnixMilli(),
	})
}

// GET /ws
func (h *SyncHandler) WebSocket(c *gin.Context) {
	userID := c.Query("user_id")
	if user, ok := utils.GetUserFromContext(c); ok {
		userID = user.ID
	}
	h.hub.ServeWS(c.Writer, c.Request, userID)
}

// GET /health
func (h *SyncHandler) Health(c *gin.Context) {
	status := "healthy"
	database := "connected"

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		database = "unreachable"
	}

	c.JSON(200, gin.H{
		"status":   status,
		"database": database,
		"version":  h.version,
	})
}
