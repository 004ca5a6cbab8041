// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alghazaly/autoparts-backend/internal/models"
)

func TestAddFreezesPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Brake Pad", 100.0, 10)

	item, err := svc.Add(user.ID, AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 100.0, item.OriginalUnitPrice)
	assert.Equal(t, 100.0, item.FinalUnitPrice)
	assert.Equal(t, models.DiscountTypeNone, item.DiscountDetails.Type)

	// A later price change never reaches the existing line.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		UpdateColumn("price", 175.0).Error)

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 100.0, view.Items[0].OriginalUnitPrice)
	assert.Equal(t, 200.0, view.Items[0].ItemSubtotal)

	// A new add on another account sees the new price.
	other := createTestUser(t, db, "other@example.com")
	fresh, err := svc.Add(other.ID, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 175.0, fresh.OriginalUnitPrice)
}

func TestAddAppliesBundleDiscount(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Oil Filter", 50.0, 10)

	item, err := svc.Add(user.ID, AddItemInput{
		ProductID:                product.ID,
		Quantity:                 1,
		BundleDiscountPercentage: 20,
		BundleOfferID:            "offer-1",
		BundleGroupID:            "grp-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, item.OriginalUnitPrice)
	assert.Equal(t, 40.0, item.FinalUnitPrice)
	assert.Equal(t, models.DiscountTypeBundle, item.DiscountDetails.Type)
	assert.Equal(t, 20.0, item.DiscountDetails.Amount)
	assert.Equal(t, "offer-1", item.DiscountDetails.SourceID)
}

func TestAddMergesByGroupingKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Spark Plug", 25.0, 50)

	_, err := svc.Add(user.ID, AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	merged, err := svc.Add(user.ID, AddItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, merged.Quantity)

	// The same product inside a bundle is a separate line.
	_, err = svc.Add(user.ID, AddItemInput{
		ProductID:                product.ID,
		Quantity:                 1,
		BundleDiscountPercentage: 10,
		BundleGroupID:            "grp-9",
	})
	require.NoError(t, err)

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
}

func TestUpdatePreservesFrozenPrice(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Air Filter", 60.0, 10)

	_, err := svc.Add(user.ID, AddItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		UpdateColumn("price", 99.0).Error)
	require.NoError(t, svc.Update(user.ID, product.ID, 4))

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].Quantity)
	assert.Equal(t, 60.0, view.Items[0].OriginalUnitPrice)
}

func TestUpdateZeroQuantityRemovesLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")
	product := createTestProduct(t, db, "Wiper Blade", 30.0, 10)

	_, err := svc.Add(user.ID, AddItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, svc.Update(user.ID, product.ID, 0))

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestVoidBundleRestoresPricesIdempotently(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")
	a := createTestProduct(t, db, "Battery", 200.0, 5)
	b := createTestProduct(t, db, "Terminal", 20.0, 5)

	for _, p := range []*models.Product{a, b} {
		_, err := svc.Add(user.ID, AddItemInput{
			ProductID:                p.ID,
			Quantity:                 1,
			BundleDiscountPercentage: 15,
			BundleGroupID:            "grp-void",
		})
		require.NoError(t, err)
	}

	require.NoError(t, svc.VoidBundle(user.ID, "grp-void"))

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	for _, item := range view.Items {
		assert.Equal(t, item.OriginalUnitPrice, item.FinalUnitPrice)
		assert.Equal(t, models.DiscountTypeNone, item.DiscountDetails.Type)
		assert.Empty(t, item.BundleGroupID)
	}
	assert.Zero(t, view.TotalDiscount)

	// Voiding again, or voiding an unknown group, stays a no-op.
	require.NoError(t, svc.VoidBundle(user.ID, "grp-void"))
	require.NoError(t, svc.VoidBundle(user.ID, "no-such-group"))
}

func TestGetRecomputesAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")
	a := createTestProduct(t, db, "Rotor", 100.0, 10)
	b := createTestProduct(t, db, "Caliper", 50.0, 10)

	_, err := svc.Add(user.ID, AddItemInput{ProductID: a.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.Add(user.ID, AddItemInput{
		ProductID:                b.ID,
		Quantity:                 1,
		BundleDiscountPercentage: 20,
		BundleGroupID:            "grp-agg",
	})
	require.NoError(t, err)

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, view.Subtotal)
	assert.Equal(t, 10.0, view.TotalDiscount)
	assert.Equal(t, 240.0, view.Total)
}

func TestGetOmitsLinesForDeletedProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")
	keep := createTestProduct(t, db, "Hose", 10.0, 10)
	gone := createTestProduct(t, db, "Clamp", 5.0, 10)

	_, err := svc.Add(user.ID, AddItemInput{ProductID: keep.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Add(user.ID, AddItemInput{ProductID: gone.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, db.Delete(gone).Error)

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, keep.ID, view.Items[0].ProductID)
	assert.Equal(t, 10.0, view.Subtotal)
}

func TestGetEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.UserID)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
}

func TestAddUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "shopper@example.com")

	_, err := svc.Add(user.ID, AddItemInput{ProductID: "missing", Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddEnhancedAppendsAdminLine(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	user := createTestUser(t, db, "customer@example.com")
	product := createTestProduct(t, db, "Alternator", 300.0, 3)

	item, err := svc.AddEnhanced(user.ID, AddEnhancedInput{
		ProductID:         product.ID,
		Quantity:          1,
		OriginalUnitPrice: 300.0,
		FinalUnitPrice:    250.0,
		AddedByAdminID:    "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 250.0, item.FinalUnitPrice)
	assert.Equal(t, "admin-1", item.AddedByAdminID)

	// Enhanced adds never merge, even for the same product.
	_, err = svc.AddEnhanced(user.ID, AddEnhancedInput{
		ProductID: product.ID,
		Quantity:  1,
	})
	require.NoError(t, err)

	view, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
}
