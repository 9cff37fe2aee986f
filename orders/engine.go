// Package orders implements the inventory-aware order transaction engine:
// order creation with atomic stock decrement, compensating delete-and-restock,
// validated status updates, and the read model behind the admin screens.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mariamadly/loomkids-backend-go/database"
	"github.com/mariamadly/loomkids-backend-go/inventory"
	"github.com/mariamadly/loomkids-backend-go/models"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodPaymob = "paymob"
	PaymentMethodCOD    = "cod"
)

// Backend is everything the engine needs from the document store: the
// transaction primitive for the two atomic paths, plus bare order access for
// the deliberately non-transactional status writes.
type Backend interface {
	database.TxRunner

	FetchOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	WriteOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, payment models.PaymentStatus) error
}

// Engine orchestrates order transactions against an injected store handle.
type Engine struct {
	store    Backend
	currency string
	log      zerolog.Logger
}

func NewEngine(store Backend, currency string, log zerolog.Logger) *Engine {
	return &Engine{store: store, currency: currency, log: log}
}

// CreateOrderInput is the checkout payload. Items arrive cart-merged by
// (productId, color, size); the engine re-merges defensively before the
// transaction so duplicate lines can never split a decrement.
type CreateOrderInput struct {
	Items           []models.OrderItem     `json:"items"`
	Subtotal        float64                `json:"subtotal"`
	Shipping        float64                `json:"shipping"`
	Total           float64                `json:"total"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

type variantKey struct {
	productID string
	color     string
	size      string
}

// mergeItems folds repeated (productId, color, size) lines into one, resolving
// each compound variant id down to its bare product id. First-appearance
// order is preserved so attempts stay deterministic.
func mergeItems(items []models.OrderItem) []models.OrderItem {
	merged := make([]models.OrderItem, 0, len(items))
	index := make(map[variantKey]int, len(items))

	for _, it := range items {
		productID, color, size := inventory.ResolveVariant(it.ID, it.Color, it.Size)
		k := variantKey{productID: productID, color: color, size: size}
		if i, ok := index[k]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		it.ID = productID
		it.Color = color
		it.Size = size
		index[k] = len(merged)
		merged = append(merged, it)
	}
	return merged
}

// verifyTotals recomputes subtotal and total from the item prices and rejects
// the attempt when the client-supplied figures disagree.
func verifyTotals(in CreateOrderInput) error {
	subtotal := decimal.Zero
	for _, it := range in.Items {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(line)
	}
	if !subtotal.Equal(decimal.NewFromFloat(in.Subtotal)) {
		f, _ := subtotal.Float64()
		return &TotalsMismatchError{Field: "subtotal", Given: in.Subtotal, Computed: f}
	}
	total := subtotal.Add(decimal.NewFromFloat(in.Shipping))
	if !total.Equal(decimal.NewFromFloat(in.Total)) {
		f, _ := total.Float64()
		return &TotalsMismatchError{Field: "total", Given: in.Total, Computed: f}
	}
	return nil
}

// CreateOrder verifies and decrements stock for every item, then writes the
// order and its shipping address, all in one atomic attempt. Either the order
// plus all its decrements commit, or nothing does.
func (e *Engine) CreateOrder(ctx context.Context, in CreateOrderInput) (string, error) {
	if len(in.Items) == 0 {
		return "", errors.New("order has no items")
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return "", fmt.Errorf("invalid quantity %d for item %q", it.Quantity, it.Name)
		}
		if it.Price < 0 {
			return "", fmt.Errorf("invalid price for item %q", it.Name)
		}
	}
	if in.PaymentMethod != PaymentMethodPaymob && in.PaymentMethod != PaymentMethodCOD {
		return "", fmt.Errorf("unsupported payment method %q", in.PaymentMethod)
	}
	if err := verifyTotals(in); err != nil {
		return "", err
	}

	items := mergeItems(in.Items)
	isCOD := in.PaymentMethod == PaymentMethodCOD

	// The order id is minted before the attempt, like the original's
	// pre-created document ref, so retries reuse the same identity.
	orderID := primitive.NewObjectID()

	err := e.store.RunTransaction(ctx, func(ctx context.Context, tx database.Tx) error {
		// Read each distinct product exactly once and open one ledger per
		// product; every item delta folds into that ledger.
		var productIDs []string
		ledgers := make(map[string]*inventory.Ledger)
		for _, it := range items {
			if _, ok := ledgers[it.ID]; ok {
				continue
			}
			product, err := tx.GetProduct(ctx, it.ID)
			if err == database.ErrNotFound {
				return &inventory.ProductNotFoundError{ProductID: it.ID}
			}
			if err != nil {
				return err
			}
			ledgers[it.ID] = inventory.NewLedger(product.ID, product.StockBySize)
			productIDs = append(productIDs, it.ID)
		}

		for _, it := range items {
			if err := ledgers[it.ID].Decrement(it.Name, it.Color, it.Size, it.Quantity); err != nil {
				return err
			}
		}

		// Nothing was written before this point, so any failure above
		// aborts with zero partial effects.
		for _, pid := range productIDs {
			if err := tx.SetProductStock(ctx, pid, ledgers[pid].Stock()); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		order := models.Order{
			ID:       orderID,
			Source:   "client",
			Currency: e.currency,
			Subtotal: in.Subtotal,
			Shipping: in.Shipping,
			Total:    in.Total,

			PaymentMethod: in.PaymentMethod,
			Items:         make([]models.OrderItem, len(items)),
			Customer: models.Customer{
				FullName: in.ShippingAddress.FullName,
				Phone:    in.ShippingAddress.Phone,
				Email:    in.ShippingAddress.Email,
				City:     in.ShippingAddress.City,
				Area:     in.ShippingAddress.Area,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if isCOD {
			order.PaymentProvider = "cash_on_delivery"
			order.PaymentStatus = models.PaymentStatusCOD
			order.Status = models.OrderStatusCashOnDelivery
		} else {
			order.PaymentProvider = "paymob"
			order.PaymentStatus = models.PaymentStatusUnpaid
			order.Status = models.OrderStatusCreated
		}
		for i, it := range items {
			it.LineTotal = it.Price * float64(it.Quantity)
			order.Items[i] = it
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}

		addr := in.ShippingAddress
		addr.OrderID = orderID.Hex()
		addr.CreatedAt = now
		return tx.SetShippingAddress(ctx, &addr)
	})

	if err != nil {
		var insufficient *inventory.InsufficientStockError
		if errors.As(err, &insufficient) {
			stockRejectionsTotal.Inc()
		}
		if database.IsConflict(err) {
			txConflictsTotal.Inc()
			err = ErrTransactionConflict
		}
		e.log.Warn().Err(err).Msg("order creation failed")
		return "", err
	}

	ordersCreatedTotal.Inc()
	e.log.Info().Str("orderId", orderID.Hex()).Str("paymentMethod", in.PaymentMethod).Msg("order created")
	return orderID.Hex(), nil
}

// DeleteAndRestock deletes an order and returns every item's quantity to
// stock in the same atomic attempt, the exact inverse of CreateOrder. The
// order survives untouched when any referenced product is missing, so stock
// is never lost without a matching order removal.
func (e *Engine) DeleteAndRestock(ctx context.Context, orderID string) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return ErrOrderNotFound
	}

	err = e.store.RunTransaction(ctx, func(ctx context.Context, tx database.Tx) error {
		order, err := tx.GetOrder(ctx, oid)
		if err == database.ErrNotFound {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		var productIDs []string
		ledgers := make(map[string]*inventory.Ledger)
		for _, it := range order.Items {
			pid, _, _ := inventory.ResolveVariant(it.ID, it.Color, it.Size)
			if _, ok := ledgers[pid]; ok {
				continue
			}
			product, err := tx.GetProduct(ctx, pid)
			if err == database.ErrNotFound {
				return &inventory.ProductNotFoundError{ProductID: pid}
			}
			if err != nil {
				return err
			}
			ledgers[pid] = inventory.NewLedger(product.ID, product.StockBySize)
			productIDs = append(productIDs, pid)
		}

		for _, it := range order.Items {
			if it.Quantity <= 0 {
				continue
			}
			pid, color, size := inventory.ResolveVariant(it.ID, it.Color, it.Size)
			if err := ledgers[pid].Increment(color, size, it.Quantity); err != nil {
				return err
			}
		}

		for _, pid := range productIDs {
			if err := tx.SetProductStock(ctx, pid, ledgers[pid].Stock()); err != nil {
				return err
			}
		}

		if err := tx.DeleteShippingAddress(ctx, oid.Hex()); err != nil {
			return err
		}
		return tx.DeleteOrder(ctx, oid)
	})

	if err != nil {
		if database.IsConflict(err) {
			txConflictsTotal.Inc()
			err = ErrTransactionConflict
		}
		e.log.Warn().Err(err).Str("orderId", orderID).Msg("order delete failed")
		return err
	}

	ordersDeletedTotal.Inc()
	e.log.Info().Str("orderId", orderID).Msg("order deleted and restocked")
	return nil
}

// SetStatus updates the order status. Deliberately not transactional with
// inventory: status transitions carry no stock implication. The target must
// be a known status and the transition allowed by the table.
func (e *Engine) SetStatus(ctx context.Context, orderID string, target string) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return ErrOrderNotFound
	}
	status := models.OrderStatus(target)
	if !models.KnownStatus(status) {
		return &InvalidTransitionError{To: status}
	}

	order, err := e.store.FetchOrder(ctx, oid)
	if err == database.ErrNotFound {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if !models.CanTransition(order.Status, status) {
		return &InvalidTransitionError{From: order.Status, To: status}
	}
	return e.store.WriteOrderStatus(ctx, oid, status, "")
}

// SetPaymentOutcome records the gateway's verdict for a paymob order.
// Callbacks can be redelivered, so hitting the current status again is a
// no-op success rather than a transition error.
func (e *Engine) SetPaymentOutcome(ctx context.Context, orderID string, success bool) error {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return ErrOrderNotFound
	}

	status, payment := models.OrderStatusFailed, models.PaymentStatusFailed
	if success {
		status, payment = models.OrderStatusPaid, models.PaymentStatusPaid
	}

	order, err := e.store.FetchOrder(ctx, oid)
	if err == database.ErrNotFound {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	if order.Status == status {
		return nil
	}
	if !models.CanTransition(order.Status, status) {
		return &InvalidTransitionError{From: order.Status, To: status}
	}

	e.log.Info().Str("orderId", orderID).Bool("success", success).Msg("payment outcome recorded")
	return e.store.WriteOrderStatus(ctx, oid, status, payment)
}
