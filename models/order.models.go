package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderApproved  OrderStatus = "APPROVED"
	OrderPaid      OrderStatus = "PAID"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists every valid status in lifecycle order
var OrderStatuses = []OrderStatus{
	OrderPending, OrderApproved, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled,
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order is the snapshot created at checkout. Only Status changes afterwards.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	TotalPrice      decimal.Decimal    `bson:"total_price" json:"total_price"`
	PaymentMethod   PaymentMethod      `bson:"payment_method" json:"payment_method"`
	PaymentStatus   PaymentStatus      `bson:"payment_status" json:"payment_status"`
	Status          OrderStatus        `bson:"status" json:"status"`
	ShippingAddress string             `bson:"shipping_address" json:"shipping_address"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// OrderItem is an immutable order line. Price is the unit price at purchase time.
type OrderItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID      primitive.ObjectID `bson:"order_id" json:"order_id"`
	ProductID    primitive.ObjectID `bson:"product_id" json:"product_id"`
	ProductTitle string             `bson:"product_title" json:"product_title"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Price        decimal.Decimal    `bson:"price" json:"price"`
}

// Subtotal is price x quantity
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderLine is an order item joined with its product for responses
type OrderLine struct {
	ID           primitive.ObjectID `json:"id"`
	Product      *Product           `json:"product"`
	ProductTitle string             `json:"product_title"`
	Quantity     int                `json:"quantity"`
	Price        Money              `json:"price"`
	Subtotal     Money              `json:"subtotal"`
}

// OrderView is the serialized order
type OrderView struct {
	ID              primitive.ObjectID `json:"id"`
	Status          OrderStatus        `json:"status"`
	TotalPrice      Money              `json:"total_price"`
	TotalAmount     Money              `json:"total_amount"`
	PaymentMethod   PaymentMethod      `json:"payment_method"`
	PaymentStatus   PaymentStatus      `json:"payment_status"`
	ShippingAddress string             `json:"shipping_address"`
	User            *UserSummary       `json:"user"`
	Items           []OrderLine        `json:"items"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
