package repository

import (
	"context"

	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository interface {
	Insert(ctx context.Context, product models.Product) (models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.Product, int64, error)
	FindFeatured(ctx context.Context, limit int64) ([]models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type MongoProductRepository struct {
	DB *mongo.Database
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &MongoProductRepository{DB: db}
}

func (r *MongoProductRepository) collection() *mongo.Collection {
	return r.DB.Collection("products")
}

func (r *MongoProductRepository) Insert(ctx context.Context, product models.Product) (models.Product, error) {
	res, err := r.collection().InsertOne(ctx, product)
	if err != nil {
		return models.Product{}, err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var product models.Product
	if err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Find returns one page of matches plus the full match count, so the service
// can report pagination totals independent of the page it fetched.
func (r *MongoProductRepository) Find(ctx context.Context, filter bson.M, sort bson.D, skip, limit int64) ([]models.Product, int64, error) {
	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(limit)

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := r.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *MongoProductRepository) FindFeatured(ctx context.Context, limit int64) ([]models.Product, error) {
	filter := bson.M{"isFeatured": true, "isActive": bson.M{"$ne": false}}
	cursor, err := r.collection().Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoProductRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
