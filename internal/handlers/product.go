// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alghazaly/autoparts-backend/internal/i18n"
	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/services"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	params := utils.GetCursorParams(c, 50, 100)
	role := utils.GetRoleFromContext(c)

	filter := services.ProductFilter{
		CategoryID:     c.Query("category_id"),
		ProductBrandID: c.Query("product_brand_id"),
		CarModelID:     c.Query("car_model_id"),
		CarBrandID:     c.Query("car_brand_id"),
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		filter.MaxPrice = &v
	}
	// Hidden products are staff-only regardless of the query flag.
	if c.Query("include_hidden") == "true" &&
		services.In(role, models.RoleOwner, models.RolePartner, models.RoleAdmin) {
		filter.IncludeHidden = true
	}

	page, err := h.productService.List(filter, params)
	if err != nil {
		serviceError(c, err, "products")
		return
	}

	views, err := h.productService.EnrichAll(page.Items)
	if err != nil {
		serviceError(c, err, "products")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"items":       views,
		"total":       page.Total,
		"next_cursor": page.NextCursor,
		"prev_cursor": page.PrevCursor,
		"has_more":    page.HasMore,
	})
}

// GET /products/search
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "q"), nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.productService.Search(query, limit)
	if err != nil {
		serviceError(c, err, "products")
		return
	}
	utils.SuccessResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	view, err := h.productService.Get(c.Param("id"))
	if err != nil {
		serviceError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, view)
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	user, _ := utils.GetUserFromContext(c)

	var req services.ProductInput
	if !bindAndValidate(c, &req) {
		return
	}

	product, err := h.productService.Create(req, user.ID)
	if err != nil {
		serviceError(c, err, "product")
		return
	}
	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ProductInput
	if !bindAndValidate(c, &req) {
		return
	}

	product, err := h.productService.Update(c.Param("id"), req)
	if err != nil {
		serviceError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

type priceUpdateRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// PATCH /products/:id/price
func (h *ProductHandler) PatchPrice(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req priceUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.productService.PatchPrice(c.Param("id"), req.Price); err != nil {
		serviceError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
	})
}

type hiddenUpdateRequest struct {
	HiddenStatus bool `json:"hidden_status"`
}

// PATCH /products/:id/hidden
func (h *ProductHandler) PatchHidden(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req hiddenUpdateRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.productService.PatchHidden(c.Param("id"), req.HiddenStatus); err != nil {
		serviceError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
	})
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	if err := h.productService.Delete(c.Param("id")); err != nil {
		serviceError(c, err, "product")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// POST /products/upload-image
func (h *ProductHandler) UploadImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "file"), err.Error())
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, header, h.storageService.OptionsFor("products"))
	if err != nil {
		serviceError(c, err, "file")
		return
	}
	utils.CreatedResponse(c, result)
}
