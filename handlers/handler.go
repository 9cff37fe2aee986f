package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mariamadly/loomkids-backend-go/database"
	"github.com/mariamadly/loomkids-backend-go/inventory"
	"github.com/mariamadly/loomkids-backend-go/orders"
)

// Handler carries the injected dependencies for every route. Nothing in this
// package reaches for package-level state.
type Handler struct {
	Store  *database.Store
	Engine *orders.Engine
	Orders *orders.ReadModel
	Log    zerolog.Logger
}

func New(store *database.Store, engine *orders.Engine, readModel *orders.ReadModel, log zerolog.Logger) *Handler {
	return &Handler{Store: store, Engine: engine, Orders: readModel, Log: log}
}

// engineStatus maps engine failures to HTTP codes. The message itself is
// surfaced verbatim so the storefront can show it as-is.
func engineStatus(err error) int {
	var (
		productNotFound *inventory.ProductNotFoundError
		noStock         *inventory.NoStockConfiguredError
		keyNotFound     *inventory.StockKeyNotFoundError
		insufficient    *inventory.InsufficientStockError
		totalsMismatch  *orders.TotalsMismatchError
		badTransition   *orders.InvalidTransitionError
	)
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.As(err, &productNotFound):
		return http.StatusNotFound
	case errors.As(err, &insufficient),
		errors.As(err, &noStock),
		errors.As(err, &keyNotFound),
		errors.As(err, &totalsMismatch):
		return http.StatusBadRequest
	case errors.As(err, &badTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orders.ErrTransactionConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
