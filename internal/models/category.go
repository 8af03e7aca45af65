package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audience scopes a category (and the products under it) to a storefront
// section. An empty audiences slice means the category is visible everywhere.
type Audience string

const (
	AudienceMen    Audience = "men"
	AudienceWomen  Audience = "women"
	AudienceKids   Audience = "kids"
	AudienceBaby   Audience = "baby"
	AudienceUnisex Audience = "unisex"
)

type Category struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name" validate:"required"`
	Slug      string               `json:"slug" bson:"slug" validate:"required"`
	ParentID  *primitive.ObjectID  `json:"parentId,omitempty" bson:"parentId,omitempty"`
	Audiences []Audience           `json:"audiences" bson:"audiences"`
	Order     int                  `json:"order" bson:"order"`
	Path      string               `json:"path,omitempty" bson:"path,omitempty"`
	Ancestors []primitive.ObjectID `json:"ancestors,omitempty" bson:"ancestors,omitempty"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// CategoryNode is a Category with its resolved children. Built per request by
// the tree endpoint, never persisted.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

type CreateCategoryInput struct {
	Name      string   `json:"name" validate:"required"`
	Slug      string   `json:"slug" validate:"required"`
	ParentID  *string  `json:"parentId" validate:"omitempty,len=24,hexadecimal"`
	Audiences []string `json:"audiences" validate:"omitempty,dive,oneof=men women kids baby unisex"`
	Order     int      `json:"order"`
}

// UpdateCategoryInput uses pointers so the service can tell "field absent"
// apart from "field set to its zero value".
type UpdateCategoryInput struct {
	Name      *string  `json:"name" validate:"omitempty,min=1"`
	Slug      *string  `json:"slug" validate:"omitempty,min=1"`
	ParentID  *string  `json:"parentId" validate:"omitempty,len=24,hexadecimal"`
	Audiences []string `json:"audiences" validate:"omitempty,dive,oneof=men women kids baby unisex"`
	Order     *int     `json:"order"`
}

// BulkUpsertResult mirrors the counters the store reports for an unordered
// bulk write.
type BulkUpsertResult struct {
	Matched  int64 `json:"matched"`
	Modified int64 `json:"modified"`
	Upserted int64 `json:"upserted"`
}

func (in CreateCategoryInput) ToCategory() (Category, error) {
	cat := Category{
		Name:      in.Name,
		Slug:      in.Slug,
		Audiences: toAudiences(in.Audiences),
		Order:     in.Order,
	}
	if in.ParentID != nil {
		pid, err := primitive.ObjectIDFromHex(*in.ParentID)
		if err != nil {
			return Category{}, err
		}
		cat.ParentID = &pid
	}
	return cat, nil
}

func toAudiences(values []string) []Audience {
	audiences := make([]Audience, 0, len(values))
	for _, v := range values {
		audiences = append(audiences, Audience(v))
	}
	return audiences
}
