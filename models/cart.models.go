package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart is the per-user basket. Items live in their own collection.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// CartItem represents a product line in a cart, unique per (cart, product)
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CartID    primitive.ObjectID `bson:"cart_id" json:"cart_id"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	AddedAt   time.Time          `bson:"added_at" json:"added_at"`
}

// CartLine is a cart item joined with its product for responses
type CartLine struct {
	ID       primitive.ObjectID `json:"id"`
	Product  *Product           `json:"product"`
	Quantity int                `json:"quantity"`
	Subtotal Money              `json:"subtotal"`
}

// CartView is the serialized cart returned by every cart endpoint
type CartView struct {
	ID     primitive.ObjectID `json:"id"`
	UserID primitive.ObjectID `json:"user_id"`
	Items  []CartLine         `json:"items"`
	Total  Money              `json:"total"`
}
