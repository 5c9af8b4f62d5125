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

type orderRepo struct {
	orders *mongo.Collection
	items  *mongo.Collection
}

func (r *orderRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.orders.InsertOne(ctx, order)
	return translate(err)
}

func (r *orderRepo) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	_, err := r.items.InsertOne(ctx, item)
	return translate(err)
}

func (r *orderRepo) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.items.DeleteMany(ctx, bson.M{"order_id": id}); err != nil {
		return translate(err)
	}
	result, err := r.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *orderRepo) FindOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepo) ListOrderItems(ctx context.Context, orderID primitive.ObjectID) ([]models.OrderItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.items.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	items := []models.OrderItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepo) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return r.find(ctx, bson.M{"user_id": userID}, bson.D{{Key: "_id", Value: 1}})
}

func (r *orderRepo) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
}

func (r *orderRepo) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Order, error) {
	cursor, err := r.orders.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, at time.Time) (*models.Order, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	if err := r.orders.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}
