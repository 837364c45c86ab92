// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bovita/catalog-backend/internal/config"
	"github.com/bovita/catalog-backend/internal/handlers"
	"github.com/bovita/catalog-backend/internal/middleware"
	"github.com/bovita/catalog-backend/internal/repositories"
	"github.com/bovita/catalog-backend/internal/services"
	"github.com/bovita/catalog-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize collaborators
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	productRepo := repositories.NewGORMProductRepository(db)

	// Initialize services
	catalogService := services.NewCatalogService(productRepo, storageService, cfg.Upload.MaxConcurrency)
	authService := services.NewAuthService(db, cfg)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(catalogService)
	authHandler := handlers.NewAuthHandler(authService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/:id", productHandler.GetProduct)

			// Admin-only mutations
			protected := products.Group("")
			protected.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				protected.POST("", middleware.UploadRateLimit(), productHandler.CreateProduct)
				protected.PUT("/:id", middleware.UploadRateLimit(), productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
			}
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r, nil
}
