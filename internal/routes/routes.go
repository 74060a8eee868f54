package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orvea_back_end/internal/handlers"
	"orvea_back_end/internal/handlers/product"
	"orvea_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Orvea API en ligne",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	api := r.Group("/api")

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", middleware.LoginRateLimit(), handlers.Login)
		auth.POST("/logout", middleware.AuthRequired(), handlers.Logout)
		auth.GET("/profile", middleware.AuthRequired(), handlers.GetProfile)
		auth.PUT("/profile", middleware.AuthRequired(), handlers.UpdateProfile)
	}

	// Produits
	products := api.Group("/products")
	{
		products.GET("", product.GetProducts)
		products.GET("/search", middleware.SearchRateLimit(), product.SearchProducts)
		products.GET("/:id", product.GetProductByID)
		products.POST("", middleware.AuthRequired(), middleware.RequireAdmin(), product.CreateProduct)
		products.PUT("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), product.UpdateProduct)
		products.DELETE("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), product.DeleteProduct)
		products.POST("/:id/images", middleware.AuthRequired(), middleware.RequireAdmin(), product.UploadProductImage)
		products.POST("/:id/reviews", middleware.AuthRequired(), product.CreateReview)
	}

	// Catégories
	categories := api.Group("/categories")
	{
		categories.GET("", handlers.GetCategories)
		categories.GET("/:id", handlers.GetCategoryByID)
		categories.POST("", middleware.AuthRequired(), middleware.RequireAdmin(), handlers.CreateCategory)
		categories.PUT("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), handlers.UpdateCategory)
		categories.DELETE("/:id", middleware.AuthRequired(), middleware.RequireAdmin(), handlers.DeleteCategory)
	}

	// Commandes
	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired())
	{
		orders.POST("", handlers.CreateOrder)
		orders.GET("/mine", handlers.GetMyOrders)
		orders.GET("/:id", handlers.GetOrderByID)
		orders.POST("/:id/pay", handlers.CreatePaymentIntent)
		orders.GET("", middleware.RequireAdmin(), handlers.GetAllOrders)
		orders.PUT("/:id/status", middleware.RequireAdmin(), handlers.UpdateOrderStatus)
	}

	// Webhook Stripe (signé, pas de JWT)
	api.POST("/payments/webhook", handlers.StripeWebhook)

	// Utilisateurs (admin)
	users := api.Group("/users")
	users.Use(middleware.AuthRequired(), middleware.RequireAdmin())
	{
		users.GET("", handlers.GetUsers)
		users.GET("/:id", handlers.GetUserByID)
		users.PUT("/:id", handlers.UpdateUser)
		users.DELETE("/:id", handlers.DeleteUser)
	}

	// Route inconnue → 404 enveloppé
	r.NoRoute(middleware.NotFoundHandler())
}
