// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alghazaly/autoparts-backend/internal/config"
	"github.com/alghazaly/autoparts-backend/internal/handlers"
	"github.com/alghazaly/autoparts-backend/internal/middleware"
	"github.com/alghazaly/autoparts-backend/internal/models"
	"github.com/alghazaly/autoparts-backend/internal/realtime"
	"github.com/alghazaly/autoparts-backend/internal/services"
)

const version = "1.0.0"

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	hub := realtime.NewHub()

	// Services
	roleService := services.NewRoleService(db, cfg.Auth.PrimaryOwnerEmail)
	authService := services.NewAuthService(db, cfg)
	notificationService := services.NewNotificationService(db, hub, cfg.Auth.PrimaryOwnerEmail)
	cartService := services.NewCartService(db)
	orderService := services.NewOrderService(db, cartService, notificationService, hub, cfg.Checkout.ShippingCost)
	productService := services.NewProductService(db, hub)
	catalogService := services.NewCatalogService(db, hub)
	adminService := services.NewAdminService(db, hub)
	promotionService := services.NewPromotionService(db, hub)
	storageService := services.NewStorageService(cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, roleService, cfg)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(adminService, cartService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	promotionHandler := handlers.NewPromotionHandler(promotionService)
	syncHandler := handlers.NewSyncHandler(db, hub, version)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.Authenticate(authService, roleService))

	r.GET("/health", syncHandler.Health)
	r.GET("/ws", syncHandler.WebSocket)
	r.Static("/uploads", "./uploads")

	// Role allow-sets. Staff is anyone running the store; management
	// decisions stay with owner and partners; partner appointments
	// with the owner alone.
	staff := []models.Role{models.RoleOwner, models.RolePartner, models.RoleAdmin}
	management := []models.Role{models.RoleOwner, models.RolePartner}
	ownerOnly := []models.Role{models.RoleOwner}

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/session", authHandler.ExchangeSession)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/search", productHandler.Search)
			products.GET("/:id", productHandler.Get)

			staffOnly := products.Group("")
			staffOnly.Use(middleware.RoleRequired(staff...))
			{
				staffOnly.POST("", productHandler.Create)
				staffOnly.PUT("/:id", productHandler.Update)
				staffOnly.PATCH("/:id/price", productHandler.PatchPrice)
				staffOnly.PATCH("/:id/hidden", productHandler.PatchHidden)
				staffOnly.DELETE("/:id", productHandler.Delete)
				staffOnly.POST("/upload-image", middleware.UploadRateLimit(), productHandler.UploadImage)
			}
		}

		cart := api.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.Get)
			cart.POST("/add", cartHandler.Add)
			cart.POST("/add-enhanced", middleware.RoleRequired(staff...), cartHandler.AddEnhanced)
			cart.PUT("/update", cartHandler.Update)
			cart.DELETE("/void-bundle/:bundleGroupId", cartHandler.VoidBundle)
			cart.DELETE("/clear", cartHandler.Clear)
		}

		orders := api.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.ListMine)
			orders.GET("/all", middleware.RoleRequired(staff...), orderHandler.ListAll)
			orders.POST("/admin-assisted", middleware.RoleRequired(staff...), orderHandler.CreateAdminAssisted)
			orders.GET("/:id", orderHandler.Get)
			orders.PATCH("/:id/status", middleware.RoleRequired(staff...), orderHandler.UpdateStatus)
			orders.PATCH("/:id/discount", middleware.RoleRequired(ownerOnly...), orderHandler.AdjustDiscount)
			orders.DELETE("/:id", middleware.RoleRequired(ownerOnly...), orderHandler.Delete)
		}

		carBrands := api.Group("/car-brands")
		{
			carBrands.GET("", catalogHandler.ListCarBrands)
			carBrands.POST("", middleware.RoleRequired(staff...), catalogHandler.CreateCarBrand)
			carBrands.DELETE("/:id", middleware.RoleRequired(staff...), catalogHandler.DeleteCarBrand)
		}

		carModels := api.Group("/car-models")
		{
			carModels.GET("", catalogHandler.ListCarModels)
			carModels.POST("", middleware.RoleRequired(staff...), catalogHandler.CreateCarModel)
			carModels.DELETE("/:id", middleware.RoleRequired(staff...), catalogHandler.DeleteCarModel)
		}

		productBrands := api.Group("/product-brands")
		{
			productBrands.GET("", catalogHandler.ListProductBrands)
			productBrands.POST("", middleware.RoleRequired(staff...), catalogHandler.CreateProductBrand)
			productBrands.DELETE("/:id", middleware.RoleRequired(staff...), catalogHandler.DeleteProductBrand)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", catalogHandler.ListCategories)
			categories.POST("", middleware.RoleRequired(staff...), catalogHandler.CreateCategory)
			categories.DELETE("/:id", middleware.RoleRequired(staff...), catalogHandler.DeleteCategory)
		}

		suppliers := api.Group("/suppliers")
		suppliers.Use(middleware.RoleRequired(staff...))
		{
			suppliers.GET("", catalogHandler.ListSuppliers)
			suppliers.POST("", catalogHandler.CreateSupplier)
			suppliers.DELETE("/:id", catalogHandler.DeleteSupplier)
		}

		bundleOffers := api.Group("/bundle-offers")
		{
			bundleOffers.GET("", promotionHandler.ListBundleOffers)
			bundleOffers.GET("/:id", promotionHandler.GetBundleOffer)
			bundleOffers.POST("", middleware.RoleRequired(staff...), promotionHandler.CreateBundleOffer)
			bundleOffers.PUT("/:id", middleware.RoleRequired(staff...), promotionHandler.UpdateBundleOffer)
			bundleOffers.DELETE("/:id", middleware.RoleRequired(staff...), promotionHandler.DeleteBundleOffer)
		}

		promotions := api.Group("/promotions")
		{
			promotions.GET("", promotionHandler.ListPromotions)
			promotions.POST("", middleware.RoleRequired(staff...), promotionHandler.CreatePromotion)
			promotions.PUT("/:id", middleware.RoleRequired(staff...), promotionHandler.UpdatePromotion)
			promotions.POST("/reorder", middleware.RoleRequired(staff...), promotionHandler.ReorderPromotions)
			promotions.DELETE("/:id", middleware.RoleRequired(staff...), promotionHandler.DeletePromotion)
		}

		partners := api.Group("/partners")
		{
			partners.GET("", middleware.RoleRequired(management...), adminHandler.ListPartners)
			partners.POST("", middleware.RoleRequired(ownerOnly...), adminHandler.AddPartner)
			partners.DELETE("/:id", middleware.RoleRequired(ownerOnly...), adminHandler.RemovePartner)
		}

		admins := api.Group("/admins")
		admins.Use(middleware.RoleRequired(management...))
		{
			admins.GET("", adminHandler.ListAdmins)
			admins.POST("", adminHandler.AddAdmin)
			admins.DELETE("/:id", adminHandler.RemoveAdmin)
		}

		subscribers := api.Group("/subscribers")
		subscribers.Use(middleware.RoleRequired(staff...))
		{
			subscribers.GET("", adminHandler.ListSubscribers)
			subscribers.POST("", adminHandler.AddSubscriber)
			subscribers.DELETE("/:id", adminHandler.RemoveSubscriber)
		}

		customers := api.Group("/customers")
		customers.Use(middleware.RoleRequired(management...))
		{
			customers.GET("", adminHandler.ListCustomers)
			customers.GET("/:id", adminHandler.GetCustomer)
		}

		adminTools := api.Group("/admin")
		adminTools.Use(middleware.RoleRequired(staff...))
		{
			adminTools.GET("/customer/:id/cart", adminHandler.GetCustomerCart)
		}

		notifications := api.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.List)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.POST("/read-all", notificationHandler.MarkAllRead)
		}

		api.POST("/sync/pull", syncHandler.Pull)
	}

	return r
}
