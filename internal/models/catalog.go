// internal/models/catalog.go
package models

// Reference catalogs consumed by product enrichment. The core reads
// them by id and batched id-in-set lookups; lifecycle is admin CRUD
// with soft delete.

type CarBrand struct {
	BaseModel
	Name   string `json:"name" gorm:"size:255;not null"`
	NameAr string `json:"name_ar" gorm:"size:255"`
	Logo   string `json:"logo,omitempty" gorm:"size:512"`
}

type CarModel struct {
	BaseModel
	BrandID string `json:"brand_id" gorm:"size:64;index"`
	Name    string `json:"name" gorm:"size:255;not null"`
	NameAr  string `json:"name_ar" gorm:"size:255"`
}

type ProductBrand struct {
	BaseModel
	Name              string `json:"name" gorm:"size:255;not null"`
	NameAr            string `json:"name_ar" gorm:"size:255"`
	CountryOfOrigin   string `json:"country_of_origin" gorm:"size:255"`
	CountryOfOriginAr string `json:"country_of_origin_ar" gorm:"size:255"`
}

type Category struct {
	BaseModel
	Name      string `json:"name" gorm:"size:255;not null"`
	NameAr    string `json:"name_ar" gorm:"size:255"`
	Icon      string `json:"icon,omitempty" gorm:"size:100"`
	ParentID  string `json:"parent_id,omitempty" gorm:"size:64;index"`
	SortOrder int    `json:"sort_order" gorm:"default:0"`
}

type Supplier struct {
	BaseModel
	Name    string `json:"name" gorm:"size:255;not null"`
	NameAr  string `json:"name_ar" gorm:"size:255"`
	Phone   string `json:"phone,omitempty" gorm:"size:50"`
	Address string `json:"address,omitempty" gorm:"size:512"`
}
