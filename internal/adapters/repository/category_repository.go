package repository

import (
	"context"

	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryRepository interface {
	Insert(ctx context.Context, category models.Category) (models.Category, error)
	UpsertManyBySlug(ctx context.Context, categories []models.Category) (models.BulkUpsertResult, error)
	ListByAudience(ctx context.Context, audience models.Audience) ([]models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	FindBySlug(ctx context.Context, slug string) (models.Category, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
	HasChildren(ctx context.Context, id primitive.ObjectID) (bool, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type MongoCategoryRepository struct {
	DB *mongo.Database
}

func NewCategoryRepository(db *mongo.Database) CategoryRepository {
	return &MongoCategoryRepository{DB: db}
}

func (r *MongoCategoryRepository) collection() *mongo.Collection {
	return r.DB.Collection("categories")
}

func (r *MongoCategoryRepository) Insert(ctx context.Context, category models.Category) (models.Category, error) {
	res, err := r.collection().InsertOne(ctx, category)
	if err != nil {
		return models.Category{}, err
	}
	category.ID = res.InsertedID.(primitive.ObjectID)
	return category, nil
}

// UpsertManyBySlug runs one unordered bulk write: each entry replaces the
// record with the same slug or inserts a fresh one. Unordered means a
// constraint failure on one entry does not stop the rest.
func (r *MongoCategoryRepository) UpsertManyBySlug(ctx context.Context, categories []models.Category) (models.BulkUpsertResult, error) {
	ops := make([]mongo.WriteModel, 0, len(categories))
	for _, cat := range categories {
		set := bson.M{
			"name":      cat.Name,
			"slug":      cat.Slug,
			"parentId":  cat.ParentID,
			"audiences": cat.Audiences,
			"order":     cat.Order,
			"updatedAt": cat.UpdatedAt,
		}
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"slug": cat.Slug}).
			SetUpdate(bson.M{
				"$set":         set,
				"$setOnInsert": bson.M{"createdAt": cat.CreatedAt},
			}).
			SetUpsert(true))
	}

	res, err := r.collection().BulkWrite(ctx, ops, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return models.BulkUpsertResult{}, err
	}
	return models.BulkUpsertResult{
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
		Upserted: res.UpsertedCount,
	}, nil
}

// ListByAudience returns plain snapshots sorted by order then name. An empty
// audience returns everything; otherwise categories tagged with the audience
// plus categories with no audience tags at all (visible to everyone).
func (r *MongoCategoryRepository) ListByAudience(ctx context.Context, audience models.Audience) ([]models.Category, error) {
	filter := bson.M{}
	if audience != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"audiences": audience},
			bson.M{"audiences": bson.M{"$size": 0}},
		}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *MongoCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var category models.Category
	if err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (r *MongoCategoryRepository) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	var category models.Category
	if err := r.collection().FindOne(ctx, bson.M{"slug": slug}).Decode(&category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (r *MongoCategoryRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoCategoryRepository) HasChildren(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.collection().CountDocuments(ctx, bson.M{"parentId": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoCategoryRepository) Count(ctx context.Context) (int64, error) {
	return r.collection().EstimatedDocumentCount(ctx)
}

func (r *MongoCategoryRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Category, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var category models.Category
	err := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&category)
	if err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (r *MongoCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
