package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopadmin/pkg/logger"
	"shopadmin/pkg/metrics"
)

const serviceName = "admin-service"

// SetupRoutes настраивает все маршруты админки с использованием Gin
func SetupRoutes(
	brandHandler *BrandHandler,
	categoryHandler *CategoryHandler,
	productHandler *ProductHandler,
	customerHandler *CustomerHandler,
	orderHandler *OrderHandler,
	formHandler *FormHandler,
	dashboardHandler *DashboardHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов (ELK Stack)
	router.Use(logger.GinLoggerMiddleware())

	router.Use(metrics.GinPrometheusMiddleware(serviceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Вся админка доступна администраторам и менеджерам,
	// необратимые операции (удаление, восстановление) только администраторам
	api := router.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(authMiddleware.RequireRole(RoleAdmin, RoleManager))

	adminOnly := authMiddleware.RequireRole(RoleAdmin)

	brands := api.Group("/brands")
	{
		brands.GET("", brandHandler.List)
		brands.POST("", brandHandler.Create)
		brands.GET("/:id", brandHandler.Get)
		brands.PUT("/:id", brandHandler.Update)
		brands.DELETE("/:id", adminOnly, brandHandler.Delete)
		brands.POST("/bulk-delete", adminOnly, brandHandler.BulkDelete)
		brands.POST("/:id/restore", adminOnly, brandHandler.Restore)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.POST("", categoryHandler.Create)
		categories.GET("/:id", categoryHandler.Get)
		categories.PUT("/:id", categoryHandler.Update)
		categories.DELETE("/:id", adminOnly, categoryHandler.Delete)
		categories.POST("/bulk-delete", adminOnly, categoryHandler.BulkDelete)
		categories.POST("/:id/restore", adminOnly, categoryHandler.Restore)

		// Товары категории (relation manager)
		categories.GET("/:id/products", categoryHandler.ListProducts)
		categories.POST("/:id/products", categoryHandler.CreateProduct)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/search", productHandler.Search)
		products.GET("/export", productHandler.Export)
		products.POST("", productHandler.Create)
		products.GET("/:id", productHandler.Get)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", adminOnly, productHandler.Delete)
		products.POST("/bulk-delete", adminOnly, productHandler.BulkDelete)
		products.POST("/:id/restore", adminOnly, productHandler.Restore)
	}

	customers := api.Group("/customers")
	{
		customers.GET("", customerHandler.List)
		customers.POST("", customerHandler.Create)
		customers.GET("/:id", customerHandler.Get)
		customers.PUT("/:id", customerHandler.Update)
		customers.DELETE("/:id", adminOnly, customerHandler.Delete)
	}

	orders := api.Group("/orders")
	{
		orders.GET("", orderHandler.List)
		orders.POST("", orderHandler.Create)
		orders.GET("/:id", orderHandler.Get)
		orders.PUT("/:id", orderHandler.Update)
		orders.DELETE("/:id", adminOnly, orderHandler.Delete)
		orders.POST("/bulk-delete", adminOnly, orderHandler.BulkDelete)
		orders.POST("/:id/restore", adminOnly, orderHandler.Restore)
	}

	forms := api.Group("/forms")
	{
		forms.POST("/slug", formHandler.Slug)
		forms.GET("/order/defaults", formHandler.OrderDefaults)
		forms.POST("/order/product-selected", formHandler.ProductSelected)
		forms.POST("/order/quantity-changed", formHandler.QuantityChanged)
		forms.POST("/order/summary", formHandler.Summary)
	}

	api.GET("/options/:resource", dashboardHandler.Options)
	api.GET("/activity", dashboardHandler.Activity)

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/stats", dashboardHandler.Stats)
		dashboard.GET("/badges", dashboardHandler.Badges)
	}

	return router
}
