// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

// OrderService turns priced carts into immutable order snapshots and
// manages their lifecycle. Checkout deliberately runs as a sequence of
// single-row atomic steps rather than one transaction; the accepted
// partial-failure window is a non-empty cart next to a created order.
type OrderService struct {
	db           *gorm.DB
	carts        *CartService
	notifier     *NotificationService
	broadcaster  Broadcaster
	shippingCost float64
}

func NewOrderService(db *gorm.DB, carts *CartService, notifier *NotificationService, broadcaster Broadcaster, shippingCost float64) *OrderService {
	return &OrderService{
		db:           db,
		carts:        carts,
		notifier:     notifier,
		broadcaster:  broadcaster,
		shippingCost: shippingCost,
	}
}

// CheckoutInput carries the delivery details for a customer checkout.
type CheckoutInput struct {
	FirstName            string `json:"first_name" validate:"required"`
	LastName             string `json:"last_name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone" validate:"required"`
	StreetAddress        string `json:"street_address" validate:"required"`
	City                 string `json:"city"`
	State                string `json:"state"`
	Country              string `json:"country"`
	DeliveryInstructions string `json:"delivery_instructions"`
	PaymentMethod        string `json:"payment_method"`
	Notes                string `json:"notes"`
}

// AdminOrderInput creates an order on behalf of a customer, with
// admin-specified prices instead of a cart.
type AdminOrderInput struct {
	CustomerID      string               `json:"customer_id" validate:"required"`
	Items           []AdminOrderItemSpec `json:"items" validate:"required,min=1,dive"`
	Phone           string               `json:"phone"`
	ShippingAddress string               `json:"shipping_address"`
	Notes           string               `json:"notes"`
}

type AdminOrderItemSpec struct {
	ProductID         string                 `json:"product_id" validate:"required"`
	Quantity          int                    `json:"quantity" validate:"required,gt=0"`
	OriginalUnitPrice float64                `json:"original_unit_price" validate:"gte=0"`
	FinalUnitPrice    float64                `json:"final_unit_price" validate:"gte=0"`
	DiscountDetails   models.DiscountDetails `json:"discount_details"`
	BundleGroupID     string                 `json:"bundle_group_id"`
}

// CreateOrder checks the user's cart out. Lines whose product has been
// deleted since add are skipped rather than failing the checkout.
// Stock decrements are best-effort: each is a conditional single-row
// update, and a shortfall is logged but never rolls the order back.
func (s *OrderService) CreateOrder(user *models.User, input CheckoutInput) (*models.Order, error) {
	cart, err := s.carts.findCart(user.ID)
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	if cart != nil {
		if err := s.db.Where("cart_id = ?", cart.ID).Order("added_at ASC").Find(&items).Error; err != nil {
			return nil, fmt.Errorf("loading cart lines: %w", err)
		}
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	var orderItems []models.OrderItem
	type decrement struct {
		productID string
		qty       int
	}
	var decrements []decrement

	for _, item := range items {
		var product models.Product
		if err := s.db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithField("product_id", item.ProductID).Warn("skipping cart line for missing product")
				continue
			}
			return nil, fmt.Errorf("resolving cart product: %w", err)
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		original := decimal.NewFromFloat(item.OriginalUnitPrice)
		final := decimal.NewFromFloat(item.FinalUnitPrice)
		subtotal = subtotal.Add(original.Mul(qty))
		totalDiscount = totalDiscount.Add(original.Sub(final).Mul(qty))

		orderItems = append(orderItems, models.OrderItem{
			ProductID:         item.ProductID,
			ProductName:       product.Name,
			ProductNameAr:     product.NameAr,
			SKU:               product.SKU,
			Quantity:          item.Quantity,
			OriginalUnitPrice: item.OriginalUnitPrice,
			FinalUnitPrice:    item.FinalUnitPrice,
			DiscountDetails:   item.DiscountDetails,
			BundleGroupID:     item.BundleGroupID,
			AddedByAdminID:    item.AddedByAdminID,
			ImageURL:          product.ImageURL,
		})
		decrements = append(decrements, decrement{productID: item.ProductID, qty: item.Quantity})
	}

	if len(orderItems) == 0 {
		return nil, ErrCartEmpty
	}

	order := &models.Order{
		OrderNumber:   generateOrderNumber("ORD"),
		UserID:        user.ID,
		UserName:      strings.TrimSpace(input.FirstName + " " + input.LastName),
		UserEmail:     input.Email,
		Phone:         input.Phone,
		Items:         orderItems,
		Status:        models.OrderStatusPending,
		OrderSource:   models.OrderSourceCustomerApp,
		PaymentMethod: paymentMethodOrDefault(input.PaymentMethod),
		Notes:         input.Notes,
		DeliveryAddress: models.DeliveryAddress{
			StreetAddress:        input.StreetAddress,
			City:                 input.City,
			State:                input.State,
			Country:              input.Country,
			DeliveryInstructions: input.DeliveryInstructions,
		},
	}
	s.applyTotals(order, subtotal, totalDiscount)

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	if err := s.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("clearing cart after checkout failed")
	}

	for _, d := range decrements {
		result := s.db.Model(&models.Product{}).
			Where("id = ? AND stock_quantity >= ?", d.productID, d.qty).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", d.qty))
		if result.Error != nil {
			logrus.WithError(result.Error).WithField("product_id", d.productID).Error("stock decrement failed")
		} else if result.RowsAffected == 0 {
			logrus.WithField("product_id", d.productID).Warn("stock below ordered quantity, not decremented")
		}
	}

	s.notifyNewOrder(order)
	s.broadcaster.Broadcast(SyncEvent("orders", "products"))

	return order, nil
}

// CreateAdminOrder builds an order directly from admin-specified items
// for phone or in-person sales. Prices come from the payload; the live
// product price only fills unset fields.
func (s *OrderService) CreateAdminOrder(admin *models.User, input AdminOrderInput) (*models.Order, error) {
	var customer models.User
	if err := s.db.First(&customer, "id = ?", input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up customer: %w", err)
	}

	subtotal := decimal.Zero
	totalDiscount := decimal.Zero
	var orderItems []models.OrderItem

	for _, spec := range input.Items {
		var product models.Product
		if err := s.db.First(&product, "id = ?", spec.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithField("product_id", spec.ProductID).Warn("skipping order line for missing product")
				continue
			}
			return nil, fmt.Errorf("resolving order product: %w", err)
		}

		originalPrice := spec.OriginalUnitPrice
		if originalPrice == 0 {
			originalPrice = product.Price
		}
		finalPrice := spec.FinalUnitPrice
		if finalPrice == 0 {
			finalPrice = product.Price
		}

		qty := decimal.NewFromInt(int64(spec.Quantity))
		original := decimal.NewFromFloat(originalPrice)
		final := decimal.NewFromFloat(finalPrice)
		subtotal = subtotal.Add(original.Mul(qty))
		totalDiscount = totalDiscount.Add(original.Sub(final).Mul(qty))

		discount := spec.DiscountDetails
		if discount.Type == "" {
			discount.Type = models.DiscountTypeNone
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:         spec.ProductID,
			ProductName:       product.Name,
			ProductNameAr:     product.NameAr,
			SKU:               product.SKU,
			Quantity:          spec.Quantity,
			OriginalUnitPrice: originalPrice,
			FinalUnitPrice:    finalPrice,
			DiscountDetails:   discount,
			BundleGroupID:     spec.BundleGroupID,
			AddedByAdminID:    admin.ID,
			ImageURL:          product.ImageURL,
		})
	}

	if len(orderItems) == 0 {
		return nil, ErrInvalidInput
	}

	customerName := customer.Name
	if customerName == "" {
		customerName = customer.Email
	}

	order := &models.Order{
		OrderNumber:      generateOrderNumber("ADM"),
		UserID:           customer.ID,
		UserName:         customerName,
		UserEmail:        customer.Email,
		Phone:            input.Phone,
		Items:            orderItems,
		Status:           models.OrderStatusPending,
		OrderSource:      models.OrderSourceAdminAssisted,
		CreatedByAdminID: admin.ID,
		PaymentMethod:    "cash_on_delivery",
		Notes:            input.Notes,
		DeliveryAddress: models.DeliveryAddress{
			StreetAddress: input.ShippingAddress,
		},
	}
	s.applyTotals(order, subtotal, totalDiscount)

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	s.notifyNewOrder(order)
	s.broadcaster.Broadcast(SyncEvent("orders"))

	return order, nil
}

// ListUserOrders returns the user's orders as a cursor page, newest
// first.
func (s *OrderService) ListUserOrders(userID string, params utils.CursorParams) (*utils.CursorPage[models.Order], error) {
	base := s.db.Model(&models.Order{}).Where("user_id = ?", userID).Preload("Items")
	return utils.CursorPaginate[models.Order](s.db, base, params)
}

// ListAllOrders returns every order for the admin dashboard, optionally
// filtered by status.
func (s *OrderService) ListAllOrders(status models.OrderStatus, params utils.CursorParams) (*utils.CursorPage[models.Order], error) {
	base := s.db.Model(&models.Order{}).Preload("Items")
	if status != "" {
		if !models.ValidOrderStatus(status) {
			return nil, ErrInvalidStatus
		}
		base = base.Where("status = ?", status)
	}
	return utils.CursorPaginate[models.Order](s.db, base, params)
}

// GetOrder loads a single order with its items. When requesterID is
// non-empty the order must belong to that user.
func (s *OrderService) GetOrder(orderID, requesterID string) (*models.Order, error) {
	var order models.Order
	query := s.db.Preload("Items").Where("id = ?", orderID)
	if requesterID != "" {
		query = query.Where("user_id = ?", requesterID)
	}
	if err := query.First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("looking up order: %w", err)
	}

	s.refreshItemDisplay(order.Items)
	return &order, nil
}

// refreshItemDisplay overlays the current product name and image onto
// order lines. Prices stay as frozen at checkout; only display fields
// track the live catalog.
func (s *OrderService) refreshItemDisplay(items []models.OrderItem) {
	if len(items) == 0 {
		return
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	var products []models.Product
	if err := s.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		logrus.WithError(err).Warn("refreshing order item display fields")
		return
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for i := range items {
		if p, ok := byID[items[i].ProductID]; ok {
			items[i].ProductName = p.Name
			items[i].ProductNameAr = p.NameAr
			items[i].ImageURL = p.ImageURL
		}
	}
}

// UpdateStatus sets the order status. Any status in the valid set is
// accepted from any prior state; only membership is enforced.
func (s *OrderService) UpdateStatus(orderID string, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.GetOrder(orderID, "")
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}
	order.Status = status

	if status == models.OrderStatusDelivered {
		s.notifyStatus(order)
	}
	s.broadcaster.Broadcast(map[string]interface{}{
		"type":     "order_update",
		"order_id": order.ID,
		"status":   status,
	})

	return order, nil
}

// AdjustDiscount is the owner's manual override. It replaces the
// order-level discount and recomputes the total from the stored
// subtotal and shipping cost, bypassing the item-level discounts.
func (s *OrderService) AdjustDiscount(orderID string, discount float64) (*models.Order, error) {
	if discount < 0 {
		return nil, ErrInvalidInput
	}

	order, err := s.GetOrder(orderID, "")
	if err != nil {
		return nil, err
	}

	total := decimal.NewFromFloat(order.Subtotal).
		Add(decimal.NewFromFloat(order.ShippingCost)).
		Sub(decimal.NewFromFloat(discount))
	totalF, _ := total.Round(2).Float64()

	updates := map[string]interface{}{
		"discount": utils.Round2(discount),
		"total":    totalF,
	}
	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("adjusting order discount: %w", err)
	}
	order.Discount = utils.Round2(discount)
	order.Total = totalF

	s.broadcaster.Broadcast(SyncEvent("orders"))
	return order, nil
}

// Delete removes an order and its items permanently.
func (s *OrderService) Delete(orderID string) error {
	order, err := s.GetOrder(orderID, "")
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(order).Error
	})
	if err != nil {
		return fmt.Errorf("deleting order: %w", err)
	}

	s.broadcaster.Broadcast(SyncEvent("orders"))
	return nil
}

func (s *OrderService) applyTotals(order *models.Order, subtotal, totalDiscount decimal.Decimal) {
	shipping := decimal.NewFromFloat(s.shippingCost)
	total := subtotal.Sub(totalDiscount).Add(shipping)

	order.Subtotal, _ = subtotal.Round(2).Float64()
	order.Discount, _ = totalDiscount.Round(2).Float64()
	order.ShippingCost, _ = shipping.Round(2).Float64()
	order.Total, _ = total.Round(2).Float64()
}

func (s *OrderService) notifyNewOrder(order *models.Order) {
	title := "New Order"
	message := fmt.Sprintf("New order #%s from %s", order.OrderNumber, order.UserName)
	if order.OrderSource == models.OrderSourceAdminAssisted {
		title = "Admin-Assisted Order"
		message = fmt.Sprintf("New admin-assisted order #%s for %s", order.OrderNumber, order.UserName)
	}
	if err := s.notifier.NotifyOwner(title, message, models.NotificationTypeInfo, models.JSONB{"order_id": order.ID}); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("order notification failed")
	}
}

func (s *OrderService) notifyStatus(order *models.Order) {
	message := fmt.Sprintf("Order #%s has been delivered", order.OrderNumber)
	if err := s.notifier.NotifyOwner("Order Delivered", message, models.NotificationTypeSuccess, models.JSONB{"order_id": order.ID}); err != nil {
		logrus.WithError(err).WithField("order_id", order.ID).Error("status notification failed")
	}
}

func paymentMethodOrDefault(method string) string {
	if method == "" {
		return "cash_on_delivery"
	}
	return method
}

// generateOrderNumber builds a human-readable identifier like
// ORD-20250115093042-A1B2. The timestamp plus random tail keeps it
// unique without a counter table.
func generateOrderNumber(prefix string) string {
	tail := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102150405"), tail)
}
