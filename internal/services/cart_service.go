// internal/services/cart_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

// CartService owns the server-side cart. Unit prices freeze at add
// time; a later product price change is visible to new adds only,
// never to existing lines.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddItemInput is a customer add. Bundle fields arrive together when
// the client adds a line through a bundle offer.
type AddItemInput struct {
	ProductID                string  `json:"product_id" validate:"required"`
	Quantity                 int     `json:"quantity" validate:"required,gt=0"`
	BundleDiscountPercentage float64 `json:"bundle_discount_percentage" validate:"gte=0,lte=100"`
	BundleOfferID            string  `json:"bundle_offer_id"`
	BundleGroupID            string  `json:"bundle_group_id"`
}

// AddEnhancedInput is an admin-priced line for assisted orders. Prices
// arrive pre-calculated; zero values fall back to the live product
// price.
type AddEnhancedInput struct {
	ProductID         string                 `json:"product_id" validate:"required"`
	Quantity          int                    `json:"quantity" validate:"required,gt=0"`
	OriginalUnitPrice float64                `json:"original_unit_price" validate:"gte=0"`
	FinalUnitPrice    float64                `json:"final_unit_price" validate:"gte=0"`
	DiscountDetails   models.DiscountDetails `json:"discount_details"`
	BundleGroupID     string                 `json:"bundle_group_id"`
	AddedByAdminID    string                 `json:"added_by_admin_id"`
}

// Add freezes the current product price onto a new cart line, applying
// the bundle percentage when present. A line with the same grouping
// key (product_id alone for plain lines, product_id + bundle_group_id
// for bundle lines) merges by quantity instead of duplicating.
func (s *CartService) Add(userID string, input AddItemInput) (*models.CartItem, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up product: %w", err)
	}

	originalPrice := product.Price
	finalPrice := originalPrice
	discount := models.DiscountDetails{Type: models.DiscountTypeNone}
	if input.BundleDiscountPercentage > 0 {
		finalPrice = utils.ApplyPercentDiscount(originalPrice, input.BundleDiscountPercentage)
		discount = models.DiscountDetails{
			Type:     models.DiscountTypeBundle,
			Amount:   input.BundleDiscountPercentage,
			SourceID: input.BundleOfferID,
		}
	}

	cart, err := s.findOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	var existing models.CartItem
	query := s.db.Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID)
	if input.BundleGroupID != "" {
		query = query.Where("bundle_group_id = ?", input.BundleGroupID)
	} else {
		query = query.Where("bundle_group_id = ?", "")
	}
	err = query.First(&existing).Error
	switch {
	case err == nil:
		result := s.db.Model(&models.CartItem{}).
			Where("id = ?", existing.ID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", input.Quantity))
		if result.Error != nil {
			return nil, fmt.Errorf("merging cart line: %w", result.Error)
		}
		existing.Quantity += input.Quantity
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := &models.CartItem{
			CartID:            cart.ID,
			ProductID:         input.ProductID,
			Quantity:          input.Quantity,
			OriginalUnitPrice: originalPrice,
			FinalUnitPrice:    finalPrice,
			DiscountDetails:   discount,
			BundleGroupID:     input.BundleGroupID,
		}
		if err := s.db.Create(item).Error; err != nil {
			return nil, fmt.Errorf("creating cart line: %w", err)
		}
		return item, nil
	default:
		return nil, fmt.Errorf("looking up cart line: %w", err)
	}
}

// AddEnhanced appends an admin-priced line without merging. The
// product must still exist; its live price only fills unset fields.
func (s *CartService) AddEnhanced(userID string, input AddEnhancedInput) (*models.CartItem, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up product: %w", err)
	}

	originalPrice := input.OriginalUnitPrice
	if originalPrice == 0 {
		originalPrice = product.Price
	}
	finalPrice := input.FinalUnitPrice
	if finalPrice == 0 {
		finalPrice = product.Price
	}

	cart, err := s.findOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	discount := input.DiscountDetails
	if discount.Type == "" {
		discount.Type = models.DiscountTypeNone
	}

	item := &models.CartItem{
		CartID:            cart.ID,
		ProductID:         input.ProductID,
		Quantity:          input.Quantity,
		OriginalUnitPrice: originalPrice,
		FinalUnitPrice:    finalPrice,
		DiscountDetails:   discount,
		BundleGroupID:     input.BundleGroupID,
		AddedByAdminID:    input.AddedByAdminID,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("creating cart line: %w", err)
	}
	return item, nil
}

// Update sets the quantity on every line carrying the product. A
// quantity of zero or less removes the lines. Frozen prices stay
// untouched either way.
func (s *CartService) Update(userID, productID string, quantity int) error {
	cart, err := s.findCart(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}

	if quantity <= 0 {
		return s.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).
			Delete(&models.CartItem{}).Error
	}

	return s.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cart.ID, productID).
		UpdateColumn("quantity", quantity).Error
}

// VoidBundle restores the original price on every line of the group
// and clears its discount metadata. Voiding a group that does not
// exist is a no-op, so the call is idempotent.
func (s *CartService) VoidBundle(userID, bundleGroupID string) error {
	if bundleGroupID == "" {
		return nil
	}
	cart, err := s.findCart(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}

	return s.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND bundle_group_id = ?", cart.ID, bundleGroupID).
		Updates(map[string]interface{}{
			"final_unit_price": gorm.Expr("original_unit_price"),
			"discount_details": models.DiscountDetails{Type: models.DiscountTypeNone},
			"bundle_group_id":  "",
		}).Error
}

// Clear empties the cart's lines. The cart row itself survives.
func (s *CartService) Clear(userID string) error {
	cart, err := s.findCart(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
}

// Get builds the read-side aggregate. Totals come from the frozen line
// prices; the joined product rows are display data only, and lines
// whose product has since disappeared are omitted from the view.
func (s *CartService) Get(userID string) (*models.CartView, error) {
	view := &models.CartView{UserID: userID, Items: []models.CartItemView{}}

	cart, err := s.findCart(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return view, nil
	}

	var items []models.CartItem
	if err := s.db.Where("cart_id = ?", cart.ID).Order("added_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("loading cart lines: %w", err)
	}
	if len(items) == 0 {
		return view, nil
	}

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	var products []models.Product
	if err := s.db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("loading cart products: %w", err)
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		original := decimal.NewFromFloat(item.OriginalUnitPrice)
		final := decimal.NewFromFloat(item.FinalUnitPrice)

		itemSubtotal := final.Mul(qty)
		itemDiscount := original.Sub(final).Mul(qty)
		subtotal = subtotal.Add(original.Mul(qty))
		totalDiscount = totalDiscount.Add(itemDiscount)

		sub, _ := itemSubtotal.Round(2).Float64()
		disc, _ := itemDiscount.Round(2).Float64()
		view.Items = append(view.Items, models.CartItemView{
			CartItem:     item,
			ItemSubtotal: sub,
			ItemDiscount: disc,
			Product:      product,
		})
	}

	view.Subtotal, _ = subtotal.Round(2).Float64()
	view.TotalDiscount, _ = totalDiscount.Round(2).Float64()
	view.Total, _ = subtotal.Sub(totalDiscount).Round(2).Float64()
	return view, nil
}

func (s *CartService) findCart(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("looking up cart: %w", err)
	}
	return &cart, nil
}

func (s *CartService) findOrCreateCart(userID string) (*models.Cart, error) {
	cart, err := s.findCart(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID}
	if err := s.db.Create(cart).Error; err != nil {
		return nil, fmt.Errorf("creating cart: %w", err)
	}
	return cart, nil
}
