package orders

// An in-memory Backend with buffered writes, commit-time application and
// injectable first-committer-wins conflicts, standing in for the MongoDB
// transaction primitive so the engine's semantics are testable without a
// running cluster.

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mariamadly/loomkids-backend-go/database"
	"github.com/mariamadly/loomkids-backend-go/models"
)

type memStore struct {
	mu       sync.Mutex
	products map[string]models.Product
	orders   map[primitive.ObjectID]models.Order
	shipping map[string]models.ShippingAddress

	// injectConflicts aborts that many otherwise-successful commits with a
	// transient error, forcing the attempt body to be re-run.
	injectConflicts int
	// attempts counts attempt-body invocations across all transactions.
	attempts int
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]models.Product),
		orders:   make(map[primitive.ObjectID]models.Order),
		shipping: make(map[string]models.ShippingAddress),
	}
}

func (m *memStore) putProduct(p models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

func (m *memStore) putOrder(o models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
}

func (m *memStore) stock(productID string) map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyStock(m.products[productID].StockBySize)
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memStore) order(id primitive.ObjectID) (models.Order, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	return o, ok
}

func (m *memStore) shippingFor(orderID string) (models.ShippingAddress, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.shipping[orderID]
	return a, ok
}

func transientErr() error {
	return mongo.CommandError{Code: 112, Message: "WriteConflict", Labels: []string{"TransientTransactionError"}}
}

func (m *memStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx database.Tx) error) error {
	const maxAttempts = 3
	for attempt := 1; ; attempt++ {
		m.mu.Lock()
		tx := newMemTx(m)
		m.attempts++
		if err := fn(ctx, tx); err != nil {
			m.mu.Unlock()
			return err
		}
		if m.injectConflicts > 0 {
			m.injectConflicts--
			m.mu.Unlock()
			if attempt >= maxAttempts {
				return transientErr()
			}
			continue
		}
		tx.commitLocked()
		m.mu.Unlock()
		return nil
	}
}

func (m *memStore) FetchOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &o, nil
}

func (m *memStore) WriteOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, payment models.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return database.ErrNotFound
	}
	o.Status = status
	if payment != "" {
		o.PaymentStatus = payment
	}
	m.orders[id] = o
	return nil
}

// memTx buffers writes; nothing touches the store maps until commitLocked.
type memTx struct {
	store *memStore

	stockWrites  map[string]map[string]int
	orderInserts map[primitive.ObjectID]models.Order
	orderDeletes map[primitive.ObjectID]bool
	shipSets     map[string]models.ShippingAddress
	shipDeletes  map[string]bool
}

func newMemTx(store *memStore) *memTx {
	return &memTx{
		store:        store,
		stockWrites:  make(map[string]map[string]int),
		orderInserts: make(map[primitive.ObjectID]models.Order),
		orderDeletes: make(map[primitive.ObjectID]bool),
		shipSets:     make(map[string]models.ShippingAddress),
		shipDeletes:  make(map[string]bool),
	}
}

func (t *memTx) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, ok := t.store.products[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	p.StockBySize = copyStock(p.StockBySize)
	return &p, nil
}

func (t *memTx) SetProductStock(ctx context.Context, id string, stockBySize map[string]int) error {
	t.stockWrites[id] = copyStock(stockBySize)
	return nil
}

func (t *memTx) GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := t.store.orders[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &o, nil
}

func (t *memTx) CreateOrder(ctx context.Context, order *models.Order) error {
	t.orderInserts[order.ID] = *order
	return nil
}

func (t *memTx) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	t.orderDeletes[id] = true
	return nil
}

func (t *memTx) SetShippingAddress(ctx context.Context, addr *models.ShippingAddress) error {
	t.shipSets[addr.OrderID] = *addr
	return nil
}

func (t *memTx) DeleteShippingAddress(ctx context.Context, orderID string) error {
	t.shipDeletes[orderID] = true
	return nil
}

func (t *memTx) commitLocked() {
	for id, stock := range t.stockWrites {
		p := t.store.products[id]
		p.StockBySize = stock
		t.store.products[id] = p
	}
	for id, o := range t.orderInserts {
		t.store.orders[id] = o
	}
	for id := range t.orderDeletes {
		delete(t.store.orders, id)
	}
	for id, a := range t.shipSets {
		t.store.shipping[id] = a
	}
	for id := range t.shipDeletes {
		delete(t.store.shipping, id)
	}
}

func copyStock(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
