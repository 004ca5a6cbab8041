// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

// ProductService owns the product catalog: cursor-paginated listings
// with compatibility filters, multi-entity search and admin CRUD.
type ProductService struct {
	db          *gorm.DB
	broadcaster Broadcaster
}

func NewProductService(db *gorm.DB, broadcaster Broadcaster) *ProductService {
	return &ProductService{db: db, broadcaster: broadcaster}
}

// ProductFilter narrows a listing. CategoryID includes the category's
// direct subcategories; CarBrandID expands to the brand's model ids.
type ProductFilter struct {
	CategoryID     string
	ProductBrandID string
	CarModelID     string
	CarBrandID     string
	MinPrice       *float64
	MaxPrice       *float64
	IncludeHidden  bool
}

type ProductInput struct {
	Name           string   `json:"name" validate:"required"`
	NameAr         string   `json:"name_ar"`
	Description    string   `json:"description"`
	SKU            string   `json:"sku"`
	Price          float64  `json:"price" validate:"required,gt=0"`
	StockQuantity  int      `json:"stock_quantity" validate:"gte=0"`
	CategoryID     string   `json:"category_id"`
	ProductBrandID string   `json:"product_brand_id"`
	CarModelIDs    []string `json:"car_model_ids"`
	ImageURL       string   `json:"image_url"`
	HiddenStatus   bool     `json:"hidden_status"`
}

// SearchResult groups per-entity matches for the storefront search
// box.
type SearchResult struct {
	Products      []models.Product      `json:"products"`
	CarBrands     []models.CarBrand     `json:"car_brands"`
	CarModels     []models.CarModel     `json:"car_models"`
	ProductBrands []models.ProductBrand `json:"product_brands"`
	Categories    []models.Category     `json:"categories"`
	Suppliers     []models.Supplier     `json:"suppliers"`
}

// List pages through products matching the filter, newest first.
func (s *ProductService) List(filter ProductFilter, params utils.CursorParams) (*utils.CursorPage[models.Product], error) {
	base := s.db.Model(&models.Product{})

	if !filter.IncludeHidden {
		base = base.Where("hidden_status = ?", false)
	}
	if filter.CategoryID != "" {
		categoryIDs := []string{filter.CategoryID}
		var subcategories []models.Category
		if err := s.db.Where("parent_id = ?", filter.CategoryID).Find(&subcategories).Error; err != nil {
			return nil, fmt.Errorf("loading subcategories: %w", err)
		}
		for _, sub := range subcategories {
			categoryIDs = append(categoryIDs, sub.ID)
		}
		base = base.Where("category_id IN ?", categoryIDs)
	}
	if filter.ProductBrandID != "" {
		base = base.Where("product_brand_id = ?", filter.ProductBrandID)
	}
	if filter.CarModelID != "" {
		base = base.Where("? = ANY(car_model_ids)", filter.CarModelID)
	}
	if filter.CarBrandID != "" {
		var carModels []models.CarModel
		if err := s.db.Where("brand_id = ?", filter.CarBrandID).Find(&carModels).Error; err != nil {
			return nil, fmt.Errorf("loading brand models: %w", err)
		}
		if len(carModels) > 0 {
			modelIDs := make([]string, 0, len(carModels))
			for _, m := range carModels {
				modelIDs = append(modelIDs, m.ID)
			}
			base = base.Where("car_model_ids && ?", pq.StringArray(modelIDs))
		}
	}
	if filter.MinPrice != nil {
		base = base.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		base = base.Where("price <= ?", *filter.MaxPrice)
	}

	return utils.CursorPaginate[models.Product](s.db, base, params)
}

// Search matches the query case-insensitively across products and the
// reference catalogs. Products get the caller's limit; reference
// entities are capped at five each.
func (s *ProductService) Search(query string, limit int) (*SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + query + "%"
	result := &SearchResult{
		Products:      []models.Product{},
		CarBrands:     []models.CarBrand{},
		CarModels:     []models.CarModel{},
		ProductBrands: []models.ProductBrand{},
		Categories:    []models.Category{},
		Suppliers:     []models.Supplier{},
	}

	if err := s.db.Where("name ILIKE ? OR name_ar ILIKE ? OR sku ILIKE ?", pattern, pattern, pattern).
		Limit(limit).Find(&result.Products).Error; err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}

	nameMatch := "name ILIKE ? OR name_ar ILIKE ?"
	if err := s.db.Where(nameMatch, pattern, pattern).Limit(5).Find(&result.CarBrands).Error; err != nil {
		return nil, fmt.Errorf("searching car brands: %w", err)
	}
	if err := s.db.Where(nameMatch, pattern, pattern).Limit(5).Find(&result.CarModels).Error; err != nil {
		return nil, fmt.Errorf("searching car models: %w", err)
	}
	if err := s.db.Where("name ILIKE ?", pattern).Limit(5).Find(&result.ProductBrands).Error; err != nil {
		return nil, fmt.Errorf("searching product brands: %w", err)
	}
	if err := s.db.Where(nameMatch, pattern, pattern).Limit(5).Find(&result.Categories).Error; err != nil {
		return nil, fmt.Errorf("searching categories: %w", err)
	}
	if err := s.db.Where(nameMatch, pattern, pattern).Limit(5).Find(&result.Suppliers).Error; err != nil {
		return nil, fmt.Errorf("searching suppliers: %w", err)
	}

	return result, nil
}

// Get loads a product enriched with its brand, country and compatible
// car model names for display.
func (s *ProductService) Get(productID string) (*models.ProductView, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up product: %w", err)
	}
	view := s.enrich(product)
	return &view, nil
}

// EnrichAll builds display views for a batch of products with two
// reference queries instead of one per product.
func (s *ProductService) EnrichAll(products []models.Product) ([]models.ProductView, error) {
	views := make([]models.ProductView, 0, len(products))

	brandIDs := make([]string, 0, len(products))
	modelIDs := make([]string, 0)
	for _, p := range products {
		if p.ProductBrandID != "" {
			brandIDs = append(brandIDs, p.ProductBrandID)
		}
		modelIDs = append(modelIDs, p.CarModelIDs...)
	}

	brands := map[string]models.ProductBrand{}
	if len(brandIDs) > 0 {
		var rows []models.ProductBrand
		if err := s.db.Where("id IN ?", brandIDs).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("loading product brands: %w", err)
		}
		for _, b := range rows {
			brands[b.ID] = b
		}
	}
	carModels := map[string]models.CarModel{}
	if len(modelIDs) > 0 {
		var rows []models.CarModel
		if err := s.db.Where("id IN ?", modelIDs).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("loading car models: %w", err)
		}
		for _, m := range rows {
			carModels[m.ID] = m
		}
	}

	for _, p := range products {
		view := models.ProductView{Product: p}
		if brand, ok := brands[p.ProductBrandID]; ok {
			view.ProductBrandName = brand.Name
			view.ProductBrandNameAr = brand.NameAr
			view.ManufacturerCountry = brand.CountryOfOrigin
			view.ManufacturerCountryAr = brand.CountryOfOriginAr
		}
		view.CompatibleCarModelCount = len(p.CarModelIDs)
		if len(p.CarModelIDs) > 0 {
			if m, ok := carModels[p.CarModelIDs[0]]; ok {
				view.CompatibleCarModel = m.Name
				view.CompatibleCarModelAr = m.NameAr
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *ProductService) enrich(product models.Product) models.ProductView {
	view := models.ProductView{Product: product}

	if product.ProductBrandID != "" {
		var brand models.ProductBrand
		if err := s.db.First(&brand, "id = ?", product.ProductBrandID).Error; err == nil {
			view.ProductBrandName = brand.Name
			view.ProductBrandNameAr = brand.NameAr
			view.ManufacturerCountry = brand.CountryOfOrigin
			view.ManufacturerCountryAr = brand.CountryOfOriginAr
		}
	}

	view.CompatibleCarModelCount = len(product.CarModelIDs)
	if len(product.CarModelIDs) > 0 {
		var carModel models.CarModel
		if err := s.db.First(&carModel, "id = ?", product.CarModelIDs[0]).Error; err == nil {
			view.CompatibleCarModel = carModel.Name
			view.CompatibleCarModelAr = carModel.NameAr
		}
	}

	return view
}

// Create records a new product. Settlement state starts false; the
// creating admin is tracked for later settlement runs.
func (s *ProductService) Create(input ProductInput, addedByAdminID string) (*models.Product, error) {
	product := &models.Product{
		Name:           input.Name,
		NameAr:         input.NameAr,
		Description:    input.Description,
		SKU:            input.SKU,
		Price:          utils.Round2(input.Price),
		StockQuantity:  input.StockQuantity,
		CategoryID:     input.CategoryID,
		ProductBrandID: input.ProductBrandID,
		CarModelIDs:    pq.StringArray(input.CarModelIDs),
		ImageURL:       input.ImageURL,
		HiddenStatus:   input.HiddenStatus,
		Settled:        false,
		AddedByAdminID: addedByAdminID,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}

	s.broadcaster.Broadcast(SyncEvent("products"))
	return product, nil
}

// Update replaces the mutable product fields. Frozen cart and order
// prices are unaffected; only future adds see the new price.
func (s *ProductService) Update(productID string, input ProductInput) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up product: %w", err)
	}

	updates := map[string]interface{}{
		"name":             input.Name,
		"name_ar":          input.NameAr,
		"description":      input.Description,
		"sku":              input.SKU,
		"price":            utils.Round2(input.Price),
		"stock_quantity":   input.StockQuantity,
		"category_id":      input.CategoryID,
		"product_brand_id": input.ProductBrandID,
		"car_model_ids":    pq.StringArray(input.CarModelIDs),
		"image_url":        input.ImageURL,
		"hidden_status":    input.HiddenStatus,
	}
	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	s.broadcaster.Broadcast(SyncEvent("products"))
	return &product, nil
}

// PatchPrice changes only the price.
func (s *ProductService) PatchPrice(productID string, price float64) error {
	if price <= 0 {
		return ErrInvalidInput
	}
	result := s.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("price", utils.Round2(price))
	if result.Error != nil {
		return fmt.Errorf("updating product price: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.broadcaster.Broadcast(SyncEvent("products"))
	return nil
}

// PatchHidden toggles storefront visibility.
func (s *ProductService) PatchHidden(productID string, hidden bool) error {
	result := s.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("hidden_status", hidden)
	if result.Error != nil {
		return fmt.Errorf("updating product visibility: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.broadcaster.Broadcast(SyncEvent("products"))
	return nil
}

// Delete soft-deletes the product. Existing cart lines keep their
// frozen prices but are skipped at checkout.
func (s *ProductService) Delete(productID string) error {
	result := s.db.Where("id = ?", productID).Delete(&models.Product{})
	if result.Error != nil {
		return fmt.Errorf("deleting product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.broadcaster.Broadcast(SyncEvent("products"))
	return nil
}
