package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusCreated        OrderStatus = "created"
	OrderStatusCashOnDelivery OrderStatus = "cash_on_delivery"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusFailed         OrderStatus = "failed"
	OrderStatusFulfilled      OrderStatus = "fulfilled"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusCOD    PaymentStatus = "cod"
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusFailed PaymentStatus = "failed"
)

// statusTransitions is the allowed transition table. Fulfilled and
// cancelled are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:        {OrderStatusPending, OrderStatusPaid, OrderStatusFailed, OrderStatusCancelled},
	OrderStatusPending:        {OrderStatusPaid, OrderStatusFailed, OrderStatusCancelled},
	OrderStatusCashOnDelivery: {OrderStatusFulfilled, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusFulfilled, OrderStatusCancelled},
	OrderStatusFailed:         {OrderStatusPending, OrderStatusCancelled},
	OrderStatusFulfilled:      {},
	OrderStatusCancelled:      {},
}

// KnownStatus reports whether s is one of the closed status values.
func KnownStatus(s OrderStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another. Legacy documents can carry free-text statuses; those are treated
// as pending, the same rule the admin UI uses for unknown values.
func CanTransition(from, to OrderStatus) bool {
	if !KnownStatus(from) {
		from = OrderStatusPending
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem is one line of an order, immutable once written. ID is the bare
// product id for orders written by this backend; older documents may still
// carry a compound "{productId}-{color}-{size}" variant id, which is why the
// restock path runs every id through the variant resolver. Color and Size are
// the authoritative variant fields.
type OrderItem struct {
	ID        string  `bson:"id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
	Color     string  `bson:"color" json:"color"`
	Size      string  `bson:"size" json:"size"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	LineTotal float64 `bson:"lineTotal" json:"lineTotal"`
}

// Customer is the denormalized shipping-identity snapshot kept on the order
// so the admin list renders without fetching the shipping sub-document.
type Customer struct {
	FullName string `bson:"fullName" json:"fullName"`
	Phone    string `bson:"phone" json:"phone"`
	Email    string `bson:"email" json:"email"`
	City     string `bson:"city" json:"city"`
	Area     string `bson:"area" json:"area"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Source          string             `bson:"source" json:"source"`
	Currency        string             `bson:"currency" json:"currency"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Shipping        float64            `bson:"shipping" json:"shipping"`
	Total           float64            `bson:"total" json:"total"`
	PaymentProvider string             `bson:"paymentProvider" json:"paymentProvider"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	Status          OrderStatus        `bson:"status" json:"status"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Customer        Customer           `bson:"customer" json:"customer"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
