package handlers

import (
	"net/http"

	"github.com/davidobi-dev/threadcart-backend/internal/adapters/repository"
	"github.com/davidobi-dev/threadcart-backend/internal/middleware"
	"github.com/davidobi-dev/threadcart-backend/internal/services/auth"
	"github.com/davidobi-dev/threadcart-backend/internal/services/category"
	"github.com/davidobi-dev/threadcart-backend/internal/services/product"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database) {
	logrus.Info("Setting up routes...")

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Server is running!",
			"status":  "ok",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "threadcart-backend",
		})
	})

	if db == nil {
		logrus.Warn("Database not connected - running with limited functionality")
		router.Any("/api/*path", func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Database connection not available",
				"message": "The server is running but could not connect to the database. Please check server logs.",
			})
		})
		return
	}

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)

	categoryService := category.NewService(categoryRepo)
	productService := product.NewService(productRepo, categoryRepo)
	authService := auth.NewService(userRepo)

	categoryHandler := NewCategoryHandler(categoryService)
	productHandler := NewProductHandler(productService)
	authHandler := NewAuthHandler(authService)
	uploadHandler := NewUploadHandler()

	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.GET("/tree", categoryHandler.GetCategoryTree)
		categories.GET("/slug/:slug", categoryHandler.GetCategoryBySlug)
		categories.GET("/:id", categoryHandler.GetCategoryByID)

		adminOnly := categories.Group("")
		adminOnly.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("admin"))
		{
			adminOnly.POST("", categoryHandler.CreateCategory)
			adminOnly.POST("/bulk", categoryHandler.BulkUpsertCategories)
			adminOnly.PUT("/:id", categoryHandler.UpdateCategory)
			adminOnly.DELETE("/:id", categoryHandler.DeleteCategory)
		}
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/:id", productHandler.GetProductByID)

		adminOnly := products.Group("")
		adminOnly.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware("admin"))
		{
			adminOnly.POST("", productHandler.CreateProduct)
			adminOnly.PUT("/:id", productHandler.UpdateProduct)
			adminOnly.DELETE("/:id", productHandler.DeleteProduct)
		}
	}

	api.POST("/upload", middleware.AuthMiddleware(), uploadHandler.UploadImage)
}
