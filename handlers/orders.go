package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mariamadly/loomkids-backend-go/orders"
)

// CreateOrder is the checkout endpoint: one atomic attempt that verifies and
// decrements stock, writes the order and its shipping address, and returns
// the new order id. On any failure the cart-facing error message is surfaced
// verbatim and nothing is written.
func (h *Handler) CreateOrder(c echo.Context) error {
	var input orders.CreateOrderInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	orderID, err := h.Engine.CreateOrder(ctx, input)
	if err != nil {
		return c.JSON(engineStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]string{"orderId": orderID})
}

// DeleteOrder removes an order and restocks every line item in the same
// atomic attempt.
func (h *Handler) DeleteOrder(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if err := h.Engine.DeleteAndRestock(ctx, c.Param("id")); err != nil {
		return c.JSON(engineStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Order deleted and stock restored"})
}

func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if err := h.Engine.SetStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return c.JSON(engineStatus(err), map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Status updated"})
}

func (h *Handler) GetOrder(c echo.Context) error {
	order, err := h.Orders.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(engineStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, order)
}

// GetOrderStatus backs the storefront success page's polling loop.
func (h *Handler) GetOrderStatus(c echo.Context) error {
	order, err := h.Orders.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(engineStatus(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": string(order.Status)})
}

func (h *Handler) ListOrders(c echo.Context) error {
	list, err := h.Orders.ListOrders(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}
	return c.JSON(http.StatusOK, list)
}

// GetShippingAddress returns the order's shipping sub-document, or null when
// no address is on file.
func (h *Handler) GetShippingAddress(c echo.Context) error {
	addr, err := h.Orders.GetShippingAddress(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch shipping address"})
	}
	return c.JSON(http.StatusOK, addr)
}
