package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/bar-pos/config"
	"github.com/yeremiapane/bar-pos/controllers"
	"github.com/yeremiapane/bar-pos/invoice"
	"github.com/yeremiapane/bar-pos/middlewares"
	"github.com/yeremiapane/bar-pos/services"
)

func SetupRouter(svc *services.Services, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	r.Use(middlewares.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).RateLimit())

	pdf := invoice.PDFOptions{RestaurantName: cfg.RestaurantName, CurrencySymbol: cfg.CurrencySymbol}

	tableCtrl := controllers.NewTableController(svc, pdf)
	productCtrl := controllers.NewProductController(svc)
	orderCtrl := controllers.NewOrderController(svc)
	invoiceCtrl := controllers.NewInvoiceController(svc, pdf)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// TABLES
	api.GET("/tables", tableCtrl.GetAllTables)
	api.POST("/tables", tableCtrl.CreateTable)
	api.GET("/tables/:table_id", tableCtrl.GetTableByID)
	api.PUT("/tables/:table_id/status", tableCtrl.UpdateTableStatus)
	api.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// SESSIONS
	api.POST("/tables/:table_id/open", tableCtrl.OpenTable)
	api.POST("/tables/:table_id/close", middlewares.InvoiceLoggerMiddleware(), tableCtrl.CloseTable)

	// ORDERS
	api.POST("/orders/table/:table_id", orderCtrl.AddItems)

	// PRODUCTS
	api.GET("/products", productCtrl.GetAllProducts)
	api.POST("/products", productCtrl.CreateProduct)
	api.GET("/products/:product_id", productCtrl.GetProductByID)
	api.PATCH("/products/:product_id", productCtrl.UpdateProduct)
	api.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	// INVOICES
	api.GET("/invoices", invoiceCtrl.GetSummary)
	api.GET("/invoices/:session_id", invoiceCtrl.GetInvoice)
	api.GET("/invoices/:session_id/pdf", invoiceCtrl.GetInvoicePDF)

	return r
}
