// internal/services/order_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/utils"
)

const testShipping = 150.0

func TestCheckoutScenario(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)

	user := createTestUser(t, db, "buyer@example.com")
	a := createTestProduct(t, db, "Shock Absorber", 100.0, 10)
	b := createTestProduct(t, db, "Bushing", 50.0, 10)

	_, err := carts.Add(user.ID, AddItemInput{ProductID: a.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = carts.Add(user.ID, AddItemInput{
		ProductID:                b.ID,
		Quantity:                 1,
		BundleDiscountPercentage: 20,
		BundleGroupID:            "grp-1",
	})
	require.NoError(t, err)

	order, err := svc.CreateOrder(user, CheckoutInput{
		FirstName:     "Ali",
		LastName:      "Hassan",
		Email:         user.Email,
		Phone:         "+201000000000",
		StreetAddress: "1 Tahrir Sq",
		City:          "Cairo",
		Country:       "Egypt",
	})
	require.NoError(t, err)

	assert.Equal(t, 250.0, order.Subtotal)
	assert.Equal(t, 10.0, order.Discount)
	assert.Equal(t, testShipping, order.ShippingCost)
	assert.Equal(t, 250.0-10.0+testShipping, order.Total)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.OrderSourceCustomerApp, order.OrderSource)
	assert.Equal(t, "Ali Hassan", order.UserName)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	require.Len(t, order.Items, 2)

	// Cart is empty afterward.
	view, err := carts.Get(user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	// Stock was decremented for both lines.
	var pa, pb models.Product
	require.NoError(t, db.First(&pa, "id = ?", a.ID).Error)
	require.NoError(t, db.First(&pb, "id = ?", b.ID).Error)
	assert.Equal(t, 8, pa.StockQuantity)
	assert.Equal(t, 9, pb.StockQuantity)
}

func TestCheckoutTotalInvariant(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)

	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "Gasket", 33.35, 100)

	_, err := carts.Add(user.ID, AddItemInput{
		ProductID:                product.ID,
		Quantity:                 3,
		BundleDiscountPercentage: 12.5,
		BundleGroupID:            "grp-x",
	})
	require.NoError(t, err)

	order, err := svc.CreateOrder(user, CheckoutInput{
		FirstName: "A", LastName: "B", Email: user.Email,
		Phone: "1", StreetAddress: "x",
	})
	require.NoError(t, err)

	assert.InDelta(t, order.Subtotal-order.Discount+order.ShippingCost, order.Total, 0.001)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)
	user := createTestUser(t, db, "buyer@example.com")

	_, err := svc.CreateOrder(user, CheckoutInput{
		FirstName: "A", LastName: "B", Email: user.Email,
		Phone: "1", StreetAddress: "x",
	})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutSkipsDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)

	user := createTestUser(t, db, "buyer@example.com")
	keep := createTestProduct(t, db, "Belt", 40.0, 10)
	gone := createTestProduct(t, db, "Pulley", 60.0, 10)

	_, err := carts.Add(user.ID, AddItemInput{ProductID: keep.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = carts.Add(user.ID, AddItemInput{ProductID: gone.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, db.Delete(gone).Error)

	order, err := svc.CreateOrder(user, CheckoutInput{
		FirstName: "A", LastName: "B", Email: user.Email,
		Phone: "1", StreetAddress: "x",
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, keep.ID, order.Items[0].ProductID)
	assert.Equal(t, 40.0, order.Subtotal)
}

func TestCheckoutInsufficientStockStillCreatesOrder(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)

	user := createTestUser(t, db, "buyer@example.com")
	scarce := createTestProduct(t, db, "Rare Part", 500.0, 1)

	_, err := carts.Add(user.ID, AddItemInput{ProductID: scarce.ID, Quantity: 3})
	require.NoError(t, err)

	order, err := svc.CreateOrder(user, CheckoutInput{
		FirstName: "A", LastName: "B", Email: user.Email,
		Phone: "1", StreetAddress: "x",
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)

	// The conditional decrement did not fire; stock is never negative.
	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", scarce.ID).Error)
	assert.Equal(t, 1, p.StockQuantity)
}

func TestCheckoutNotifiesOwner(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)

	owner := createTestUser(t, db, testOwnerEmail)
	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "Radiator", 80.0, 10)

	_, err := carts.Add(user.ID, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.CreateOrder(user, CheckoutInput{
		FirstName: "A", LastName: "B", Email: user.Email,
		Phone: "1", StreetAddress: "x",
	})
	require.NoError(t, err)

	notifications, err := notifier.List(owner.ID, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "New Order", notifications[0].Title)
}

func TestUpdateStatusMembershipOnly(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)

	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "Muffler", 90.0, 10)
	_, err := carts.Add(user.ID, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := svc.CreateOrder(user, CheckoutInput{
		FirstName: "A", LastName: "B", Email: user.Email,
		Phone: "1", StreetAddress: "x",
	})
	require.NoError(t, err)

	// Any member of the status set is accepted, including moves that
	// are not forward-only.
	updated, err := svc.UpdateStatus(order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	updated, err = svc.UpdateStatus(order.ID, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, updated.Status)

	_, err = svc.UpdateStatus(order.ID, models.OrderStatus("teleported"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAdjustDiscountRecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)

	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "Axle", 400.0, 10)
	_, err := carts.Add(user.ID, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := svc.CreateOrder(user, CheckoutInput{
		FirstName: "A", LastName: "B", Email: user.Email,
		Phone: "1", StreetAddress: "x",
	})
	require.NoError(t, err)
	require.Equal(t, 400.0+testShipping, order.Total)

	adjusted, err := svc.AdjustDiscount(order.ID, 75.0)
	require.NoError(t, err)
	assert.Equal(t, 75.0, adjusted.Discount)
	assert.Equal(t, 400.0+testShipping-75.0, adjusted.Total)
	assert.InDelta(t, adjusted.Subtotal-adjusted.Discount+adjusted.ShippingCost, adjusted.Total, 0.001)

	_, err = svc.AdjustDiscount(order.ID, -5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateAdminOrder(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)

	admin := createTestUser(t, db, "admin@example.com")
	customer := createTestUser(t, db, "cust@example.com")
	product := createTestProduct(t, db, "Starter", 120.0, 10)

	order, err := svc.CreateAdminOrder(admin, AdminOrderInput{
		CustomerID: customer.ID,
		Items: []AdminOrderItemSpec{{
			ProductID:         product.ID,
			Quantity:          2,
			OriginalUnitPrice: 120.0,
			FinalUnitPrice:    100.0,
		}},
		Phone:           "+201111111111",
		ShippingAddress: "5 Nile St",
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderSourceAdminAssisted, order.OrderSource)
	assert.Equal(t, admin.ID, order.CreatedByAdminID)
	assert.Equal(t, customer.ID, order.UserID)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ADM-"))
	assert.Equal(t, 240.0, order.Subtotal)
	assert.Equal(t, 40.0, order.Discount)
	assert.Equal(t, 240.0-40.0+testShipping, order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, admin.ID, order.Items[0].AddedByAdminID)

	_, err = svc.CreateAdminOrder(admin, AdminOrderInput{CustomerID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUserOrdersPaginated(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	notifier := NewNotificationService(db, NopBroadcaster{}, testOwnerEmail)
	svc := NewOrderService(db, carts, notifier, NopBroadcaster{}, testShipping)

	user := createTestUser(t, db, "buyer@example.com")
	product := createTestProduct(t, db, "Filter", 10.0, 100)

	for i := 0; i < 5; i++ {
		_, err := carts.Add(user.ID, AddItemInput{ProductID: product.ID, Quantity: 1})
		require.NoError(t, err)
		_, err = svc.CreateOrder(user, CheckoutInput{
			FirstName: "A", LastName: "B", Email: user.Email,
			Phone: "1", StreetAddress: "x",
		})
		require.NoError(t, err)
	}

	page, err := svc.ListUserOrders(user.ID, utils.CursorParams{Direction: utils.DirectionNext, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)
}
