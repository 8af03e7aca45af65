package product

import (
	"strings"

	"github.com/davidobi-dev/threadcart-backend/internal/core/domain"
	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// BuildFilter composes the listing filter document. The listing is always
// active-only; search is a case-insensitive OR across name, description
// and tags; either price bound is optional; audienceCategories (already
// resolved by the caller) become an inclusion filter on categoryId.
func BuildFilter(q models.ProductQuery, audienceCategories []primitive.ObjectID) (bson.M, error) {
	filter := bson.M{"isActive": bson.M{"$ne": false}}

	if q.CategoryID != "" {
		id, err := primitive.ObjectIDFromHex(q.CategoryID)
		if err != nil {
			return nil, domain.Invalid("invalid categoryId")
		}
		filter["categoryId"] = id
	}
	if q.SubCategory != "" {
		id, err := primitive.ObjectIDFromHex(q.SubCategory)
		if err != nil {
			return nil, domain.Invalid("invalid subCategoryId")
		}
		filter["subCategoryId"] = id
	}
	if audienceCategories != nil {
		filter["categoryId"] = bson.M{"$in": audienceCategories}
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
			bson.M{"tags": bson.M{"$elemMatch": regex}},
		}
	}

	price := bson.M{}
	if q.MinPrice != nil {
		price["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		price["$lte"] = *q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if q.InStock != nil && *q.InStock {
		filter["stock"] = bson.M{"$gt": 0}
	}

	return filter, nil
}

// SortSpec maps the caller's sort choice onto a Mongo sort document,
// defaulting to newest first.
func SortSpec(sortBy, sortOrder string) bson.D {
	field := "createdAt"
	switch sortBy {
	case "price", "name":
		field = sortBy
	}
	dir := -1
	if sortOrder == "asc" {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}}
}

// NormalizePage floors the page at 1 and clamps the page size to
// [1, maxPageSize], defaulting to defaultPageSize when unset.
func NormalizePage(page, limit int) (int, int64) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, int64(limit)
}
