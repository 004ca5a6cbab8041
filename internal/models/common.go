// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. IDs are generated application-side so
// records keep their ids when exchanged with sync clients.
type BaseModel struct {
	ID        string         `json:"id" gorm:"size:64;primaryKey"`
	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// CursorKey identifies the row to keyset pagination.
func (b BaseModel) CursorKey() string {
	return b.ID
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type Role string

const (
	RoleOwner      Role = "owner"
	RolePartner    Role = "partner"
	RoleAdmin      Role = "admin"
	RoleSubscriber Role = "subscriber"
	RoleUser       Role = "user"
	RoleGuest      Role = "guest"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// ValidOrderStatus reports membership in the finite status set. Any
// status in the set may follow any other; transitions are not forced
// forward-only.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusShipped,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type OrderSource string

const (
	OrderSourceCustomerApp   OrderSource = "customer_app"
	OrderSourceAdminAssisted OrderSource = "admin_assisted"
)

type DiscountType string

const (
	DiscountTypeNone   DiscountType = "none"
	DiscountTypeBundle DiscountType = "bundle"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeSuccess NotificationType = "success"
	NotificationTypeWarning NotificationType = "warning"
)

// DiscountDetails records the provenance of a cart or order line
// discount. Stored as a JSON column.
type DiscountDetails struct {
	Type     DiscountType `json:"discount_type"`
	Amount   float64      `json:"discount_value"`
	SourceID string       `json:"discount_source_id,omitempty"`
}

func (d DiscountDetails) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *DiscountDetails) Scan(value interface{}) error {
	if value == nil {
		*d = DiscountDetails{Type: DiscountTypeNone}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, d)
}
