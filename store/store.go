// Package store defines the persistence contracts shared by the HTTP layer,
// the checkout engine and the notification worker.
package store

import (
	"context"
	"errors"
	"time"

	"go-shop/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("duplicate record")
	// ErrSchema marks failures caused by an unprovisioned or mismatched schema.
	ErrSchema = errors.New("storage schema not ready")
)

// Users persists accounts
type Users interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// FindUserByLogin matches either the username or the email.
	FindUserByLogin(ctx context.Context, login string) (*models.User, error)
}

// Ordering values accepted by ProductFilter
const (
	OrderByNewest    = "-created_at"
	OrderByOldest    = "created_at"
	OrderByPrice     = "price"
	OrderByPriceDesc = "-price"
)

// ProductFilter narrows ListProducts
type ProductFilter struct {
	CategoryID *primitive.ObjectID
	CreatedBy  *primitive.ObjectID
	ActiveOnly bool
	Search     string
	Ordering   string
}

// Catalog persists categories and products
type Catalog interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	FindCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error

	CreateProduct(ctx context.Context, product *models.Product) error
	FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}

// Carts persists carts and their items
type Carts interface {
	// GetOrCreateCart returns the user's cart, creating an empty one if needed.
	GetOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	FindCartByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	ListCartItems(ctx context.Context, cartID primitive.ObjectID) ([]models.CartItem, error)
	// AddCartItem increments the quantity of the (cart, product) line, creating it if absent.
	AddCartItem(ctx context.Context, cartID, productID primitive.ObjectID, quantity int) (*models.CartItem, error)
	// FindCartItem returns the item only if it belongs to a cart owned by userID.
	FindCartItem(ctx context.Context, userID, itemID primitive.ObjectID) (*models.CartItem, error)
	SetCartItemQuantity(ctx context.Context, itemID primitive.ObjectID, quantity int) error
	DeleteCartItem(ctx context.Context, itemID primitive.ObjectID) error
	ClearCart(ctx context.Context, cartID primitive.ObjectID) error
}

// Orders persists orders and their items
type Orders interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	// DeleteOrder removes the order together with all of its items.
	DeleteOrder(ctx context.Context, id primitive.ObjectID) error
	FindOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListOrderItems(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderItem, error)
	// ListOrdersByUser returns the user's orders in insertion order.
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	// ListAllOrders returns every order, newest first.
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, at time.Time) (*models.Order, error)
}

// Transactor runs fn atomically when the backend supports it. The ctx passed
// to fn must be used for every write that belongs to the transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles every repository of one backend
type Store struct {
	Users   Users
	Catalog Catalog
	Carts   Carts
	Orders  Orders
	Tx      Transactor

	Ping  func(ctx context.Context) error
	Close func(ctx context.Context) error
}

// IsSchemaError reports whether err was caused by the storage schema
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}
