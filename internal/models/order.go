// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is an immutable snapshot of a priced cart. After creation only
// status updates and the owner discount adjustment touch it.
type Order struct {
	BaseModel
	OrderNumber      string          `json:"order_number" gorm:"uniqueIndex;size:64;not null"`
	UserID           string          `json:"user_id" gorm:"size:64;index;not null"`
	UserName         string          `json:"user_name" gorm:"size:255"`
	UserEmail        string          `json:"user_email" gorm:"size:255"`
	Phone            string          `json:"phone,omitempty" gorm:"size:50"`
	Items            []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal         float64         `json:"subtotal" gorm:"type:decimal(12,2)"`
	Discount         float64         `json:"discount" gorm:"type:decimal(12,2)"`
	ShippingCost     float64         `json:"shipping_cost" gorm:"type:decimal(12,2)"`
	Total            float64         `json:"total" gorm:"type:decimal(12,2)"`
	Status           OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	OrderSource      OrderSource     `json:"order_source" gorm:"type:varchar(20);default:'customer_app'"`
	CreatedByAdminID string          `json:"created_by_admin_id,omitempty" gorm:"size:64"`
	PaymentMethod    string          `json:"payment_method" gorm:"size:50;default:'cash_on_delivery'"`
	DeliveryAddress  DeliveryAddress `json:"delivery_address" gorm:"type:jsonb"`
	Notes            string          `json:"notes,omitempty" gorm:"type:text"`
}

// OrderItem copies the product display fields and the cart's frozen
// prices at order time.
type OrderItem struct {
	ID                string          `json:"id" gorm:"size:64;primaryKey"`
	OrderID           string          `json:"-" gorm:"size:64;index;not null"`
	ProductID         string          `json:"product_id" gorm:"size:64;index"`
	ProductName       string          `json:"product_name" gorm:"size:255"`
	ProductNameAr     string          `json:"product_name_ar,omitempty" gorm:"size:255"`
	SKU               string          `json:"sku,omitempty" gorm:"size:100"`
	Quantity          int             `json:"quantity"`
	OriginalUnitPrice float64         `json:"original_unit_price" gorm:"type:decimal(12,2)"`
	FinalUnitPrice    float64         `json:"final_unit_price" gorm:"type:decimal(12,2)"`
	DiscountDetails   DiscountDetails `json:"discount_details" gorm:"type:jsonb"`
	BundleGroupID     string          `json:"bundle_group_id,omitempty" gorm:"size:64"`
	AddedByAdminID    string          `json:"added_by_admin_id,omitempty" gorm:"size:64"`
	ImageURL          string          `json:"image_url,omitempty" gorm:"size:512"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}

// DeliveryAddress is stored as a JSON column on the order.
type DeliveryAddress struct {
	StreetAddress        string `json:"street_address"`
	City                 string `json:"city"`
	State                string `json:"state"`
	Country              string `json:"country"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`
}

func (a DeliveryAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *DeliveryAddress) Scan(value interface{}) error {
	if value == nil {
		*a = DeliveryAddress{}
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

	return json.Unmarshal(bytes, a)
}
