package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	// The admin dashboard is served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveOrders streams the full order list to the admin dashboard over a
// websocket: one snapshot on connect, another after every change. Purely a
// display feed; transactional correctness never depends on it.
func (h *Handler) LiveOrders(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer ws.Close()

	ctx := c.Request().Context()
	snapshots, err := h.Orders.Watch(ctx)
	if err != nil {
		h.Log.Error().Err(err).Msg("live orders: watch failed")
		return nil
	}

	// Drain client frames so close/ping handling keeps working.
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for snapshot := range snapshots {
		if err := ws.WriteJSON(snapshot); err != nil {
			return nil
		}
	}
	return nil
}
