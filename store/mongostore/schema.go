package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go-shop/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func enumOf[T ~string](values ...T) bson.A {
	out := bson.A{}
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}

// validators are the $jsonSchema rules for collections whose documents the
// checkout path writes. A write rejected by them surfaces as store.ErrSchema.
func validators() map[string]bson.M {
	intType := bson.A{"int", "long"}
	return map[string]bson.M{
		OrdersCollection: {"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"user_id", "total_price", "payment_method", "payment_status", "status", "created_at"},
			"properties": bson.M{
				"user_id":        bson.M{"bsonType": "objectId"},
				"total_price":    bson.M{"bsonType": "decimal"},
				"payment_method": bson.M{"enum": enumOf(models.PaymentCashOnDelivery, models.PaymentMockOnline)},
				"payment_status": bson.M{"enum": enumOf(models.PaymentUnpaid, models.PaymentSuccess, models.PaymentFailed)},
				"status":         bson.M{"enum": enumOf(models.OrderStatuses...)},
			},
		}},
		OrderItemsCollection: {"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"order_id", "product_id", "quantity", "price"},
			"properties": bson.M{
				"order_id":   bson.M{"bsonType": "objectId"},
				"product_id": bson.M{"bsonType": "objectId"},
				"quantity":   bson.M{"bsonType": intType, "minimum": 1},
				"price":      bson.M{"bsonType": "decimal"},
			},
		}},
		CartItemsCollection: {"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"cart_id", "product_id", "quantity"},
			"properties": bson.M{
				"quantity": bson.M{"bsonType": intType, "minimum": 1},
			},
		}},
	}
}

func indexes() map[string][]mongo.IndexModel {
	unique := func(name string) *options.IndexOptions {
		return options.Index().SetUnique(true).SetName(name)
	}
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique("unique_username")},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique("unique_email")},
		},
		CategoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique("unique_name")},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique("unique_slug")},
		},
		ProductsCollection: {
			{Keys: bson.D{{Key: "category_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		CartsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique("unique_user")},
		},
		CartItemsCollection: {
			{Keys: bson.D{{Key: "cart_id", Value: 1}, {Key: "product_id", Value: 1}}, Options: unique("unique_cart_product")},
		},
		OrdersCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		OrderItemsCollection: {
			{Keys: bson.D{{Key: "order_id", Value: 1}}},
		},
	}
}

// EnsureSchema creates collections with validators and indexes. It is safe to
// call on an already provisioned database.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	for name, validator := range validators() {
		err := db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(validator))
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) && cmdErr.Code == codeNamespaceExists {
			err = db.RunCommand(ctx, bson.D{
				{Key: "collMod", Value: name},
				{Key: "validator", Value: validator},
			}).Err()
		}
		if err != nil {
			return fmt.Errorf("provision collection %s: %w", name, err)
		}
	}

	for name, idx := range indexes() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
