package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
	Slug string             `bson:"slug" json:"slug"`
}

// Product is a catalog entry. Price is kept with two decimal places.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       decimal.Decimal    `bson:"price" json:"price"`
	CategoryID  primitive.ObjectID `bson:"category_id" json:"category_id"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
	IsActive    bool               `bson:"is_active" json:"is_active"`
}

// VisibleTo reports whether an inactive product may be shown to p
func (p *Product) VisibleTo(principal *Principal) bool {
	if p.IsActive {
		return true
	}
	if principal == nil {
		return false
	}
	return principal.IsAdmin || principal.UserID == p.CreatedBy
}

// EditableBy reports whether p may mutate the product
func (p *Product) EditableBy(principal Principal) bool {
	return principal.IsAdmin || principal.UserID == p.CreatedBy
}
