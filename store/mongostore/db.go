// Package mongostore implements the store contracts on MongoDB.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go-shop/store"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	UsersCollection      = "users"
	CategoriesCollection = "categories"
	ProductsCollection   = "products"
	CartsCollection      = "carts"
	CartItemsCollection  = "cart_items"
	OrdersCollection     = "orders"
	OrderItemsCollection = "order_items"
)

// Options configures Connect
type Options struct {
	URI          string
	Database     string
	Transactions bool
}

// Connect opens a client, provisions collections and returns the store
func Connect(ctx context.Context, opts Options) (*store.Store, error) {
	clientOptions := options.Client().
		ApplyURI(opts.URI).
		SetRegistry(NewRegistry())

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	db := client.Database(opts.Database)
	if err := EnsureSchema(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return New(client, db, opts.Transactions), nil
}

// New wires the repositories on an existing database handle
func New(client *mongo.Client, db *mongo.Database, transactions bool) *store.Store {
	return &store.Store{
		Users: &userRepo{coll: db.Collection(UsersCollection)},
		Catalog: &catalogRepo{
			categories: db.Collection(CategoriesCollection),
			products:   db.Collection(ProductsCollection),
		},
		Carts: &cartRepo{
			carts: db.Collection(CartsCollection),
			items: db.Collection(CartItemsCollection),
		},
		Orders: &orderRepo{
			orders: db.Collection(OrdersCollection),
			items:  db.Collection(OrderItemsCollection),
		},
		Tx: &txRunner{client: client, enabled: transactions},
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Close: client.Disconnect,
	}
}
