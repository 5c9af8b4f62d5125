package mongostore

import (
	"context"
	"regexp"
	"strings"

	"go-shop/models"
	"go-shop/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type catalogRepo struct {
	categories *mongo.Collection
	products   *mongo.Collection
}

func (r *catalogRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	_, err := r.categories.InsertOne(ctx, category)
	return translate(err)
}

func (r *catalogRepo) FindCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category
	if err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (r *catalogRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepo) UpdateCategory(ctx context.Context, category *models.Category) error {
	result, err := r.categories.ReplaceOne(ctx, bson.M{"_id": category.ID}, category)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteCategory removes the category and every product filed under it
func (r *catalogRepo) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	_, err = r.products.DeleteMany(ctx, bson.M{"category_id": id})
	return translate(err)
}

func (r *catalogRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	_, err := r.products.InsertOne(ctx, product)
	return translate(err)
}

func (r *catalogRepo) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	if err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *catalogRepo) ListProducts(ctx context.Context, f store.ProductFilter) ([]models.Product, error) {
	filter := bson.M{}
	if f.CategoryID != nil {
		filter["category_id"] = *f.CategoryID
	}
	if f.CreatedBy != nil {
		filter["created_by"] = *f.CreatedBy
	}
	if f.ActiveOnly {
		filter["is_active"] = true
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	cursor, err := r.products.Find(ctx, filter, options.Find().SetSort(productSort(f.Ordering)))
	if err != nil {
		return nil, translate(err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func productSort(ordering string) bson.D {
	switch ordering {
	case store.OrderByOldest:
		return bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	case store.OrderByPrice:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case store.OrderByPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	}
}

func (r *catalogRepo) UpdateProduct(ctx context.Context, product *models.Product) error {
	result, err := r.products.ReplaceOne(ctx, bson.M{"_id": product.ID}, product)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *catalogRepo) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
