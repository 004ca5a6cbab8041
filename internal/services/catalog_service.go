// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/models"
)

// CatalogService manages the reference collections products hang off:
// car brands and models, product brands, categories and suppliers.
// All of them soft-delete so stale product references stay resolvable
// in order history.
type CatalogService struct {
	db          *gorm.DB
	broadcaster Broadcaster
}

func NewCatalogService(db *gorm.DB, broadcaster Broadcaster) *CatalogService {
	return &CatalogService{db: db, broadcaster: broadcaster}
}

type CarBrandInput struct {
	Name   string `json:"name" validate:"required"`
	NameAr string `json:"name_ar"`
	Logo   string `json:"logo"`
}

type CarModelInput struct {
	BrandID string `json:"brand_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	NameAr  string `json:"name_ar"`
}

type ProductBrandInput struct {
	Name              string `json:"name" validate:"required"`
	NameAr            string `json:"name_ar"`
	CountryOfOrigin   string `json:"country_of_origin"`
	CountryOfOriginAr string `json:"country_of_origin_ar"`
}

type CategoryInput struct {
	Name      string `json:"name" validate:"required"`
	NameAr    string `json:"name_ar"`
	Icon      string `json:"icon"`
	ParentID  string `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
}

type SupplierInput struct {
	Name    string `json:"name" validate:"required"`
	NameAr  string `json:"name_ar"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CategoryNode is a category with its direct children, for the
// storefront navigation tree.
type CategoryNode struct {
	models.Category
	Children []models.Category `json:"children"`
}

func (s *CatalogService) ListCarBrands() ([]models.CarBrand, error) {
	var brands []models.CarBrand
	err := s.db.Order("name ASC").Find(&brands).Error
	return brands, err
}

func (s *CatalogService) CreateCarBrand(input CarBrandInput) (*models.CarBrand, error) {
	brand := &models.CarBrand{Name: input.Name, NameAr: input.NameAr, Logo: input.Logo}
	if err := s.db.Create(brand).Error; err != nil {
		return nil, fmt.Errorf("creating car brand: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("car_brands"))
	return brand, nil
}

func (s *CatalogService) DeleteCarBrand(id string) error {
	if err := s.deleteByID(&models.CarBrand{}, id); err != nil {
		return err
	}
	s.broadcaster.Broadcast(SyncEvent("car_brands"))
	return nil
}

// ListCarModels returns models, optionally restricted to one brand.
func (s *CatalogService) ListCarModels(brandID string) ([]models.CarModel, error) {
	query := s.db.Order("name ASC")
	if brandID != "" {
		query = query.Where("brand_id = ?", brandID)
	}
	var carModels []models.CarModel
	err := query.Find(&carModels).Error
	return carModels, err
}

func (s *CatalogService) CreateCarModel(input CarModelInput) (*models.CarModel, error) {
	var brand models.CarBrand
	if err := s.db.First(&brand, "id = ?", input.BrandID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up car brand: %w", err)
	}

	carModel := &models.CarModel{BrandID: input.BrandID, Name: input.Name, NameAr: input.NameAr}
	if err := s.db.Create(carModel).Error; err != nil {
		return nil, fmt.Errorf("creating car model: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("car_models"))
	return carModel, nil
}

func (s *CatalogService) DeleteCarModel(id string) error {
	if err := s.deleteByID(&models.CarModel{}, id); err != nil {
		return err
	}
	s.broadcaster.Broadcast(SyncEvent("car_models"))
	return nil
}

func (s *CatalogService) ListProductBrands() ([]models.ProductBrand, error) {
	var brands []models.ProductBrand
	err := s.db.Order("name ASC").Find(&brands).Error
	return brands, err
}

func (s *CatalogService) CreateProductBrand(input ProductBrandInput) (*models.ProductBrand, error) {
	brand := &models.ProductBrand{
		Name:              input.Name,
		NameAr:            input.NameAr,
		CountryOfOrigin:   input.CountryOfOrigin,
		CountryOfOriginAr: input.CountryOfOriginAr,
	}
	if err := s.db.Create(brand).Error; err != nil {
		return nil, fmt.Errorf("creating product brand: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("product_brands"))
	return brand, nil
}

func (s *CatalogService) DeleteProductBrand(id string) error {
	if err := s.deleteByID(&models.ProductBrand{}, id); err != nil {
		return err
	}
	s.broadcaster.Broadcast(SyncEvent("product_brands"))
	return nil
}

// ListCategories returns categories ordered for display. parentID ""
// returns all, "root" only top-level ones.
func (s *CatalogService) ListCategories(parentID string) ([]models.Category, error) {
	query := s.db.Order("sort_order ASC, name ASC")
	switch parentID {
	case "":
	case "root":
		query = query.Where("parent_id = ?", "")
	default:
		query = query.Where("parent_id = ?", parentID)
	}
	var categories []models.Category
	err := query.Find(&categories).Error
	return categories, err
}

// CategoryTree builds the two-level navigation tree.
func (s *CatalogService) CategoryTree() ([]CategoryNode, error) {
	var categories []models.Category
	if err := s.db.Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}

	childrenOf := map[string][]models.Category{}
	var roots []models.Category
	for _, cat := range categories {
		if cat.ParentID == "" {
			roots = append(roots, cat)
		} else {
			childrenOf[cat.ParentID] = append(childrenOf[cat.ParentID], cat)
		}
	}

	tree := make([]CategoryNode, 0, len(roots))
	for _, root := range roots {
		children := childrenOf[root.ID]
		if children == nil {
			children = []models.Category{}
		}
		tree = append(tree, CategoryNode{Category: root, Children: children})
	}
	return tree, nil
}

func (s *CatalogService) CreateCategory(input CategoryInput) (*models.Category, error) {
	category := &models.Category{
		Name:      input.Name,
		NameAr:    input.NameAr,
		Icon:      input.Icon,
		ParentID:  input.ParentID,
		SortOrder: input.SortOrder,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("categories"))
	return category, nil
}

func (s *CatalogService) DeleteCategory(id string) error {
	if err := s.deleteByID(&models.Category{}, id); err != nil {
		return err
	}
	s.broadcaster.Broadcast(SyncEvent("categories"))
	return nil
}

func (s *CatalogService) ListSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := s.db.Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (s *CatalogService) CreateSupplier(input SupplierInput) (*models.Supplier, error) {
	supplier := &models.Supplier{
		Name:    input.Name,
		NameAr:  input.NameAr,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.db.Create(supplier).Error; err != nil {
		return nil, fmt.Errorf("creating supplier: %w", err)
	}
	s.broadcaster.Broadcast(SyncEvent("suppliers"))
	return supplier, nil
}

func (s *CatalogService) DeleteSupplier(id string) error {
	if err := s.deleteByID(&models.Supplier{}, id); err != nil {
		return err
	}
	s.broadcaster.Broadcast(SyncEvent("suppliers"))
	return nil
}

func (s *CatalogService) deleteByID(model interface{}, id string) error {
	result := s.db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return fmt.Errorf("deleting record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
