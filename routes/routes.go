package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mariamadly/loomkids-backend-go/handlers"
	customMiddleware "github.com/mariamadly/loomkids-backend-go/middleware"
)

func SetupRoutes(e *echo.Echo, h *handlers.Handler) {
	e.Use(customMiddleware.MetricsMiddleware)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Public storefront API
	api := e.Group("/api")
	api.POST("/auth/login", h.Login)
	api.GET("/products", h.GetProducts)
	api.GET("/products/:id", h.GetProduct)
	api.POST("/orders", h.CreateOrder)
	api.GET("/orders/:id/status", h.GetOrderStatus)
	api.POST("/payments/paymob/callback", h.PaymobCallback)
	api.POST("/subscribe", h.Subscribe)

	// Admin API
	admin := api.Group("/admin")
	admin.Use(customMiddleware.AdminAuthMiddleware)
	admin.POST("/products", h.CreateProduct)
	admin.GET("/orders", h.ListOrders)
	admin.GET("/orders/live", h.LiveOrders)
	admin.GET("/orders/:id", h.GetOrder)
	admin.GET("/orders/:id/shipping", h.GetShippingAddress)
	admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	admin.DELETE("/orders/:id", h.DeleteOrder)
}
