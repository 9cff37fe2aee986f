package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mariamadly/loomkids-backend-go/models"
)

// ErrNotFound is returned by transactional reads when the document is absent.
var ErrNotFound = errors.New("document not found")

// Tx is the handle an attempt body uses to read and buffer writes. All reads
// are snapshots taken inside the attempt; writes only become visible if the
// whole attempt commits.
type Tx interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SetProductStock(ctx context.Context, id string, stockBySize map[string]int) error

	GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id primitive.ObjectID) error

	SetShippingAddress(ctx context.Context, addr *models.ShippingAddress) error
	// DeleteShippingAddress tolerates a missing document.
	DeleteShippingAddress(ctx context.Context, orderID string) error
}

// TxRunner runs an attempt body as one atomic unit. The body may be invoked
// several times when the backend aborts on conflicting concurrent writes, so
// it must be pure given its reads: no side effects beyond Tx writes.
type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
