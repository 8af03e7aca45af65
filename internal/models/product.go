package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VariantOption describes one configurable axis of a product,
// e.g. {Name: "Size", Values: ["S", "M", "L"]}.
type VariantOption struct {
	Name   string   `json:"name" bson:"name"`
	Values []string `json:"values" bson:"values"`
}

// Variant is one sellable combination of options with its own price/stock.
type Variant struct {
	SKU     string            `json:"sku" bson:"sku"`
	Options map[string]string `json:"options" bson:"options"`
	Price   float64           `json:"price" bson:"price"`
	Stock   int               `json:"stock" bson:"stock"`
}

type Product struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name" validate:"required"`
	Slug        string              `json:"slug" bson:"slug" validate:"required"`
	Description string              `json:"description" bson:"description"`
	Images      []string            `json:"images" bson:"images"`
	Videos      []string            `json:"videos" bson:"videos"`
	Price       float64             `json:"price" bson:"price" validate:"gte=0"`
	CategoryID  primitive.ObjectID  `json:"categoryId" bson:"categoryId"`
	SubCategory *primitive.ObjectID `json:"subCategoryId,omitempty" bson:"subCategoryId,omitempty"`
	Stock       int                 `json:"stock" bson:"stock" validate:"gte=0"`
	Variants    []VariantOption     `json:"variants" bson:"variants"`
	Combos      []Variant           `json:"variantCombinations" bson:"variantCombinations"`
	Rating      float64             `json:"rating" bson:"rating"`
	Reviews     int                 `json:"totalReviews" bson:"totalReviews"`
	IsActive    bool                `json:"isActive" bson:"isActive"`
	IsFeatured  bool                `json:"isFeatured" bson:"isFeatured"`
	Tags        []string            `json:"tags" bson:"tags"`
	SKU         string              `json:"sku" bson:"sku"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// CategoryRef is the denormalized category shape attached to a single-product
// fetch for display. Never written back to the store.
type CategoryRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
	Slug string             `json:"slug"`
}

type ProductDetail struct {
	Product
	Category        *CategoryRef `json:"category,omitempty"`
	SubCategoryInfo *CategoryRef `json:"subCategory,omitempty"`
}

type CreateProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Slug        string          `json:"slug" validate:"required"`
	Description string          `json:"description"`
	Price       *float64        `json:"price" validate:"required,gte=0"`
	CategoryID  string          `json:"categoryId" validate:"required,len=24,hexadecimal"`
	SubCategory *string         `json:"subCategoryId" validate:"omitempty,len=24,hexadecimal"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
	Videos      []string        `json:"videos" validate:"omitempty,dive,url"`
	Variants    []VariantOption `json:"variants"`
	Combos      []Variant       `json:"variantCombinations"`
	Tags        []string        `json:"tags"`
	SKU         string          `json:"sku"`
	IsActive    *bool           `json:"isActive"`
	IsFeatured  bool            `json:"isFeatured"`
}

// UpdateProductInput carries only the fields the caller wants changed. nil
// means "leave as stored", which is what lets the service skip reference
// re-validation when categoryId/subCategoryId are untouched.
type UpdateProductInput struct {
	Name        *string         `json:"name" validate:"omitempty,min=1"`
	Slug        *string         `json:"slug" validate:"omitempty,min=1"`
	Description *string         `json:"description"`
	Price       *float64        `json:"price" validate:"omitempty,gte=0"`
	CategoryID  *string         `json:"categoryId" validate:"omitempty,len=24,hexadecimal"`
	SubCategory *string         `json:"subCategoryId" validate:"omitempty,len=24,hexadecimal"`
	Stock       *int            `json:"stock" validate:"omitempty,gte=0"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
	Videos      []string        `json:"videos" validate:"omitempty,dive,url"`
	Variants    []VariantOption `json:"variants"`
	Combos      []Variant       `json:"variantCombinations"`
	Tags        []string        `json:"tags"`
	SKU         *string         `json:"sku"`
	IsActive    *bool           `json:"isActive"`
	IsFeatured  *bool           `json:"isFeatured"`
}

// ProductQuery is bound straight off the listing endpoint's query string.
type ProductQuery struct {
	CategoryID  string   `form:"categoryId" validate:"omitempty,len=24,hexadecimal"`
	SubCategory string   `form:"subCategoryId" validate:"omitempty,len=24,hexadecimal"`
	Search      string   `form:"search"`
	MinPrice    *float64 `form:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice    *float64 `form:"maxPrice" validate:"omitempty,gte=0"`
	SortBy      string   `form:"sortBy" validate:"omitempty,oneof=price name createdAt"`
	SortOrder   string   `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Page        int      `form:"page"`
	Limit       int      `form:"limit"`
	InStock     *bool    `form:"inStock"`
	Audience    string   `form:"audience" validate:"omitempty,oneof=men women kids baby unisex"`
}

// ProductPage is one page of listing results plus the pagination envelope.
type ProductPage struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

func (in CreateProductInput) ToProduct() (Product, error) {
	catID, err := primitive.ObjectIDFromHex(in.CategoryID)
	if err != nil {
		return Product{}, err
	}
	p := Product{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Images:      in.Images,
		Videos:      in.Videos,
		Price:       *in.Price,
		CategoryID:  catID,
		Stock:       in.Stock,
		Variants:    in.Variants,
		Combos:      in.Combos,
		Tags:        in.Tags,
		SKU:         in.SKU,
		IsActive:    true,
		IsFeatured:  in.IsFeatured,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.SubCategory != nil {
		subID, err := primitive.ObjectIDFromHex(*in.SubCategory)
		if err != nil {
			return Product{}, err
		}
		p.SubCategory = &subID
	}
	return p, nil
}
