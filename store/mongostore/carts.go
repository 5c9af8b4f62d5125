package mongostore

import (
	"context"
	"time"

	"go-shop/models"
	"go-shop/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type cartRepo struct {
	carts *mongo.Collection
	items *mongo.Collection
}

func upsertAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
}

func (r *cartRepo) GetOrCreateCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	filter := bson.M{"user_id": userID}
	update := bson.M{"$setOnInsert": bson.M{"created_at": time.Now().UTC()}}

	var cart models.Cart
	err := r.carts.FindOneAndUpdate(ctx, filter, update, upsertAfter()).Decode(&cart)
	if mongo.IsDuplicateKeyError(err) {
		// lost the upsert race to a concurrent request; the cart exists now
		err = r.carts.FindOne(ctx, filter).Decode(&cart)
	}
	if err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (r *cartRepo) FindCartByUser(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.carts.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (r *cartRepo) ListCartItems(ctx context.Context, cartID primitive.ObjectID) ([]models.CartItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "added_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.items.Find(ctx, bson.M{"cart_id": cartID}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	items := []models.CartItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem relies on the unique (cart_id, product_id) index: the $inc upsert
// either bumps the existing line or inserts a new one with the given quantity.
func (r *cartRepo) AddCartItem(ctx context.Context, cartID, productID primitive.ObjectID, quantity int) (*models.CartItem, error) {
	filter := bson.M{"cart_id": cartID, "product_id": productID}
	update := bson.M{
		"$inc":         bson.M{"quantity": quantity},
		"$setOnInsert": bson.M{"added_at": time.Now().UTC()},
	}

	var item models.CartItem
	err := r.items.FindOneAndUpdate(ctx, filter, update, upsertAfter()).Decode(&item)
	if mongo.IsDuplicateKeyError(err) {
		err = r.items.FindOneAndUpdate(ctx, filter, update, upsertAfter()).Decode(&item)
	}
	if err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *cartRepo) FindCartItem(ctx context.Context, userID, itemID primitive.ObjectID) (*models.CartItem, error) {
	cart, err := r.FindCartByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	if err := r.items.FindOne(ctx, bson.M{"_id": itemID, "cart_id": cart.ID}).Decode(&item); err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

func (r *cartRepo) SetCartItemQuantity(ctx context.Context, itemID primitive.ObjectID, quantity int) error {
	result, err := r.items.UpdateOne(ctx, bson.M{"_id": itemID}, bson.M{"$set": bson.M{"quantity": quantity}})
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *cartRepo) DeleteCartItem(ctx context.Context, itemID primitive.ObjectID) error {
	result, err := r.items.DeleteOne(ctx, bson.M{"_id": itemID})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *cartRepo) ClearCart(ctx context.Context, cartID primitive.ObjectID) error {
	_, err := r.items.DeleteMany(ctx, bson.M{"cart_id": cartID})
	return translate(err)
}
