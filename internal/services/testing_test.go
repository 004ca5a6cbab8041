// internal/services/testing_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alghazaly/autoparts-backend/internal/models"
)

// newTestDB opens an isolated in-memory database migrated with the
// full schema. Each test gets its own named database so parallel
// tests cannot see each other's rows.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Partner{},
		&models.Admin{},
		&models.Subscriber{},
		&models.CarBrand{},
		&models.CarModel{},
		&models.ProductBrand{},
		&models.Category{},
		&models.Supplier{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Notification{},
		&models.BundleOffer{},
		&models.Promotion{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: "Test User"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		SKU:           "SKU-" + name,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
