package orders

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mariamadly/loomkids-backend-go/database"
	"github.com/mariamadly/loomkids-backend-go/models"
)

// ReadModel serves order documents for display. It has no transactional
// role; everything here is eventually-consistent UI plumbing.
type ReadModel struct {
	store *database.Store
	log   zerolog.Logger
}

func NewReadModel(store *database.Store, log zerolog.Logger) *ReadModel {
	return &ReadModel{store: store, log: log}
}

func (r *ReadModel) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	order, err := r.store.FetchOrder(ctx, oid)
	if err == database.ErrNotFound {
		return nil, ErrOrderNotFound
	}
	return order, err
}

// GetShippingAddress returns nil without error when no address was written
// at creation time; "no address on file" is a displayable state.
func (r *ReadModel) GetShippingAddress(ctx context.Context, orderID string) (*models.ShippingAddress, error) {
	var addr models.ShippingAddress
	err := r.store.Collection(database.ColShipping).FindOne(ctx, bson.M{"_id": orderID}).Decode(&addr)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

// ListOrders returns the full collection, newest first, the ordering the
// admin screen renders.
func (r *ReadModel) ListOrders(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.store.Collection(database.ColOrders).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Watch emits the full ordered order list once immediately and again after
// every change, backed by a change stream on the orders collection. The
// channel closes when ctx is cancelled or the stream dies; callers resubscribe.
func (r *ReadModel) Watch(ctx context.Context) (<-chan []models.Order, error) {
	stream, err := r.store.Collection(database.ColOrders).Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return nil, err
	}

	out := make(chan []models.Order, 1)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		emit := func() bool {
			orders, err := r.ListOrders(ctx)
			if err != nil {
				r.log.Error().Err(err).Msg("order watch: list failed")
				return false
			}
			select {
			case out <- orders:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for stream.Next(ctx) {
			if !emit() {
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			r.log.Error().Err(err).Msg("order watch: stream closed")
		}
	}()
	return out, nil
}
