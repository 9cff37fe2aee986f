package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/mariamadly/loomkids-backend-go/models"
)

// Collection names.
const (
	ColProducts    = "products"
	ColOrders      = "orders"
	ColShipping    = "shipping_addresses"
	ColSubscribers = "subscribers"
	ColAdmins      = "admins"
)

// Store is an explicitly constructed handle to the document store. It is
// created once in main and passed to everything that needs it; there is no
// package-level connection.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    zerolog.Logger
}

// Connect dials MongoDB, verifies the connection and prepares indexes.
func Connect(ctx context.Context, uri, dbName string, log zerolog.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	s := &Store{client: client, db: client.Database(dbName), log: log}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("db", dbName).Msg("connected to MongoDB")
	return s, nil
}

// Close tears the connection down. Part of the explicit lifecycle owned by main.
func (s *Store) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Collection exposes a raw collection handle for the non-transactional
// surfaces (catalog CRUD, subscribers, admins, read model).
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	// Duplicate signups rely on this unique index to collapse into a no-op.
	_, err := s.db.Collection(ColSubscribers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.db.Collection(ColOrders).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

// RunTransaction executes fn as one MongoDB multi-document transaction with
// snapshot reads and majority writes. The driver re-invokes fn from scratch
// when a concurrent writer invalidates a read snapshot, so fn must stay free
// of side effects beyond its Tx writes.
func (s *Store) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx, &mongoTx{db: s.db})
	}, txnOpts)
	return err
}

// FetchOrder is a plain point read outside any transaction.
func (s *Store) FetchOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.db.Collection(ColOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// WriteOrderStatus is the bare, non-transactional status field write. An
// empty payment status leaves paymentStatus untouched.
func (s *Store) WriteOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, payment models.PaymentStatus) error {
	set := bson.M{"status": status}
	if payment != "" {
		set["paymentStatus"] = payment
	}
	res, err := s.db.Collection(ColOrders).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set, "$currentDate": bson.M{"updatedAt": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IsConflict reports whether err means the backend gave up retrying a
// conflicting transaction.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsTimeout(err) {
		return true
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("TransientTransactionError") ||
			cmdErr.HasErrorLabel("UnknownTransactionCommitResult")
	}
	return false
}

// mongoTx adapts a session-bound database handle to the Tx contract. The ctx
// passed to each method is the session context supplied to the attempt body.
type mongoTx struct {
	db *mongo.Database
}

func (t *mongoTx) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := t.db.Collection(ColProducts).FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (t *mongoTx) SetProductStock(ctx context.Context, id string, stockBySize map[string]int) error {
	_, err := t.db.Collection(ColProducts).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":         bson.M{"stockBySize": stockBySize},
			"$currentDate": bson.M{"updatedAt": true},
		},
	)
	return err
}

func (t *mongoTx) GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := t.db.Collection(ColOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (t *mongoTx) CreateOrder(ctx context.Context, order *models.Order) error {
	_, err := t.db.Collection(ColOrders).InsertOne(ctx, order)
	return err
}

func (t *mongoTx) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	_, err := t.db.Collection(ColOrders).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (t *mongoTx) SetShippingAddress(ctx context.Context, addr *models.ShippingAddress) error {
	opts := options.Replace().SetUpsert(true)
	_, err := t.db.Collection(ColShipping).ReplaceOne(ctx, bson.M{"_id": addr.OrderID}, addr, opts)
	return err
}

func (t *mongoTx) DeleteShippingAddress(ctx context.Context, orderID string) error {
	// DeleteOne on a missing document is a no-op, which is exactly the
	// tolerance the restock path needs.
	_, err := t.db.Collection(ColShipping).DeleteOne(ctx, bson.M{"_id": orderID})
	return err
}
