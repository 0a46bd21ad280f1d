package http

import (
	"github.com/gin-gonic/gin"
	"github.com/mkarpelev/paymentgate/internal/adapter/config"
	"github.com/mkarpelev/paymentgate/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	checkoutHandler *CheckoutHandler,
	orderHandler *OrderHandler,
	warehouseHandler *WarehouseHandler,
	sessionHandler *SessionHandler) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.POST("/session", sessionHandler.CreateSession)

		checkout := api.Group("/checkout")
		{
			checkout.GET("/draft", checkoutHandler.Draft)
			checkout.POST("/authorize", checkoutHandler.Authorize)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/export", orderHandler.ExportCSV)
			orders.GET("/:order", orderHandler.GetOrder)
		}

		warehouse := api.Group("/warehouse")
		{
			warehouse.Use(authCheck(tokenService))
			warehouse.POST("/orders/:order/settle", warehouseHandler.Settle)
			warehouse.POST("/audit", warehouseHandler.Audit)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
