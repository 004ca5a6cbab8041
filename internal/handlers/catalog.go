// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /car-brands
func (h *CatalogHandler) ListCarBrands(c *gin.Context) {
	brands, err := h.catalogService.ListCarBrands()
	if err != nil {
		serviceError(c, err, "car_brands")
		return
	}
	utils.SuccessResponse(c, gin.H{"car_brands": brands, "total": len(brands)})
}

// POST /car-brands
func (h *CatalogHandler) CreateCarBrand(c *gin.Context) {
	var req services.CarBrandInput
	if !bindAndValidate(c, &req) {
		return
	}
	brand, err := h.catalogService.CreateCarBrand(req)
	if err != nil {
		serviceError(c, err, "car_brand")
		return
	}
	utils.CreatedResponse(c, brand)
}

// DELETE /car-brands/:id
func (h *CatalogHandler) DeleteCarBrand(c *gin.Context) {
	if err := h.catalogService.DeleteCarBrand(c.Param("id")); err != nil {
		serviceError(c, err, "car_brand")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Deleted"})
}

// GET /car-models
func (h *CatalogHandler) ListCarModels(c *gin.Context) {
	carModels, err := h.catalogService.ListCarModels(c.Query("brand_id"))
	if err != nil {
		serviceError(c, err, "car_models")
		return
	}
	utils.SuccessResponse(c, gin.H{"car_models": carModels, "total": len(carModels)})
}

// POST /car-models
func (h *CatalogHandler) CreateCarModel(c *gin.Context) {
	var req services.CarModelInput
	if !bindAndValidate(c, &req) {
		return
	}
	carModel, err := h.catalogService.CreateCarModel(req)
	if err != nil {
		serviceError(c, err, "car_brand")
		return
	}
	utils.CreatedResponse(c, carModel)
}

// DELETE /car-models/:id
func (h *CatalogHandler) DeleteCarModel(c *gin.Context) {
	if err := h.catalogService.DeleteCarModel(c.Param("id")); err != nil {
		serviceError(c, err, "car_model")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Deleted"})
}

// GET /product-brands
func (h *CatalogHandler) ListProductBrands(c *gin.Context) {
	brands, err := h.catalogService.ListProductBrands()
	if err != nil {
		serviceError(c, err, "product_brands")
		return
	}
	utils.SuccessResponse(c, gin.H{"product_brands": brands, "total": len(brands)})
}

// POST /product-brands
func (h *CatalogHandler) CreateProductBrand(c *gin.Context) {
	var req services.ProductBrandInput
	if !bindAndValidate(c, &req) {
		return
	}
	brand, err := h.catalogService.CreateProductBrand(req)
	if err != nil {
		serviceError(c, err, "product_brand")
		return
	}
	utils.CreatedResponse(c, brand)
}

// DELETE /product-brands/:id
func (h *CatalogHandler) DeleteProductBrand(c *gin.Context) {
	if err := h.catalogService.DeleteProductBrand(c.Param("id")); err != nil {
		serviceError(c, err, "product_brand")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Deleted"})
}

// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	if c.Query("tree") == "true" {
		tree, err := h.catalogService.CategoryTree()
		if err != nil {
			serviceError(c, err, "categories")
			return
		}
		utils.SuccessResponse(c, gin.H{"categories": tree, "total": len(tree)})
		return
	}

	categories, err := h.catalogService.ListCategories(c.Query("parent_id"))
	if err != nil {
		serviceError(c, err, "categories")
		return
	}
	utils.SuccessResponse(c, gin.H{"categories": categories, "total": len(categories)})
}

// POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req services.CategoryInput
	if !bindAndValidate(c, &req) {
		return
	}
	category, err := h.catalogService.CreateCategory(req)
	if err != nil {
		serviceError(c, err, "category")
		return
	}
	utils.CreatedResponse(c, category)
}

// DELETE /categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Param("id")); err != nil {
		serviceError(c, err, "category")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Deleted"})
}

// GET /suppliers
func (h *CatalogHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.catalogService.ListSuppliers()
	if err != nil {
		serviceError(c, err, "suppliers")
		return
	}
	utils.SuccessResponse(c, gin.H{"suppliers": suppliers, "total": len(suppliers)})
}

// POST /suppliers
func (h *CatalogHandler) CreateSupplier(c *gin.Context) {
	var req services.SupplierInput
	if !bindAndValidate(c, &req) {
		return
	}
	supplier, err := h.catalogService.CreateSupplier(req)
	if err != nil {
		serviceError(c, err, "supplier")
		return
	}
	utils.CreatedResponse(c, supplier)
}

// DELETE /suppliers/:id
func (h *CatalogHandler) DeleteSupplier(c *gin.Context) {
	if err := h.catalogService.DeleteSupplier(c.Param("id")); err != nil {
		serviceError(c, err, "supplier")
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Deleted"})
}
