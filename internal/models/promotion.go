// internal/models/promotion.go
package models

import "github.com/lib/pq"

// BundleOffer is the source of bundle-group discounts: adding its
// products together creates cart lines sharing a generated bundle
// group id and this offer's percentage.
type BundleOffer struct {
	BaseModel
	Name               string         `json:"name" gorm:"size:255;not null"`
	NameAr             string         `json:"name_ar" gorm:"size:255"`
	ProductIDs         pq.StringArray `json:"product_ids" gorm:"type:text[]"`
	DiscountPercentage float64        `json:"discount_percentage" gorm:"type:decimal(5,2)"`
	Active             bool           `json:"active" gorm:"default:true"`
}

type Promotion struct {
	BaseModel
	Title         string  `json:"title" gorm:"size:255;not null"`
	TitleAr       string  `json:"title_ar" gorm:"size:255"`
	PromotionType string  `json:"promotion_type" gorm:"size:50;index"`
	ImageURL      string  `json:"image_url,omitempty" gorm:"size:512"`
	TargetID      string  `json:"target_id,omitempty" gorm:"size:64"`
	SortOrder     float64 `json:"sort_order" gorm:"default:0"`
	Active        bool    `json:"active" gorm:"default:true"`
}
