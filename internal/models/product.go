// internal/models/product.go
package models

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name           string         `json:"name" gorm:"size:255;not null"`
	NameAr         string         `json:"name_ar" gorm:"size:255"`
	Description    string         `json:"description,omitempty" gorm:"type:text"`
	SKU            string         `json:"sku" gorm:"size:100;index"`
	Price          float64        `json:"price" gorm:"type:decimal(12,2);not null"`
	StockQuantity  int            `json:"stock_quantity" gorm:"default:0"`
	CategoryID     string         `json:"category_id" gorm:"size:64;index"`
	ProductBrandID string         `json:"product_brand_id" gorm:"size:64;index"`
	CarModelIDs    pq.StringArray `json:"car_model_ids" gorm:"type:text[]"`
	ImageURL       string         `json:"image_url,omitempty" gorm:"size:512"`
	HiddenStatus   bool           `json:"hidden_status" gorm:"default:false"`
	Settled        bool           `json:"settled" gorm:"default:false"`
	AddedByAdminID string         `json:"added_by_admin_id,omitempty" gorm:"size:64;index"`
}

// ProductView is a product enriched with display-only reference data
// for listings.
type ProductView struct {
	Product
	ProductBrandName        string `json:"product_brand_name,omitempty"`
	ProductBrandNameAr      string `json:"product_brand_name_ar,omitempty"`
	ManufacturerCountry     string `json:"manufacturer_country,omitempty"`
	ManufacturerCountryAr   string `json:"manufacturer_country_ar,omitempty"`
	CompatibleCarModel      string `json:"compatible_car_model,omitempty"`
	CompatibleCarModelAr    string `json:"compatible_car_model_ar,omitempty"`
	CompatibleCarModelCount int    `json:"compatible_car_models_count,omitempty"`
}
