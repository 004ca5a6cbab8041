// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is the server-side pricing source of truth. One cart per user,
// created lazily on first add and emptied (never deleted) on checkout.
type Cart struct {
	ID        string     `json:"id" gorm:"size:64;primaryKey"`
	UserID    string     `json:"user_id" gorm:"size:64;uniqueIndex;not null"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID"`
	UpdatedAt time.Time  `json:"updated_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CartItem freezes unit prices at add time. Monetary fields are never
// re-derived from the live product price; display joins happen at read
// time only.
type CartItem struct {
	ID                string          `json:"id" gorm:"size:64;primaryKey"`
	CartID            string          `json:"-" gorm:"size:64;index;not null"`
	ProductID         string          `json:"product_id" gorm:"size:64;index;not null"`
	Quantity          int             `json:"quantity" gorm:"not null"`
	OriginalUnitPrice float64         `json:"original_unit_price" gorm:"type:decimal(12,2)"`
	FinalUnitPrice    float64         `json:"final_unit_price" gorm:"type:decimal(12,2)"`
	DiscountDetails   DiscountDetails `json:"discount_details" gorm:"type:jsonb"`
	BundleGroupID     string          `json:"bundle_group_id,omitempty" gorm:"size:64;index"`
	AddedByAdminID    string          `json:"added_by_admin_id,omitempty" gorm:"size:64"`
	AddedAt           time.Time       `json:"added_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	if ci.AddedAt.IsZero() {
		ci.AddedAt = time.Now().UTC()
	}
	return nil
}

// CartView is the read-side aggregate returned to clients. Totals are
// recomputed from the frozen line prices on every read.
type CartView struct {
	UserID        string         `json:"user_id"`
	Items         []CartItemView `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	TotalDiscount float64        `json:"total_discount"`
	Total         float64        `json:"total"`
}

type CartItemView struct {
	CartItem
	ItemSubtotal float64  `json:"item_subtotal"`
	ItemDiscount float64  `json:"item_discount"`
	Product      *Product `json:"product,omitempty"`
}
