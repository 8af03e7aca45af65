package product

import (
	"context"
	"errors"
	"time"

	"github.com/davidobi-dev/threadcart-backend/internal/adapters/repository"
	"github.com/davidobi-dev/threadcart-backend/internal/core/domain"
	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

const defaultFeaturedLimit = 20

// Service owns product records and the filtered/sorted/paginated catalog
// listing. Category references are validated against the category store on
// create and on any update that touches them; the audience filter is
// resolved through the same store.
type Service interface {
	Create(ctx context.Context, input models.CreateProductInput) (models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.ProductDetail, error)
	Update(ctx context.Context, id primitive.ObjectID, input models.UpdateProductInput) (models.Product, error)
	Remove(ctx context.Context, id primitive.ObjectID) error
	FindFeatured(ctx context.Context, limit int64) ([]models.Product, error)
	ListFiltered(ctx context.Context, query models.ProductQuery) (models.ProductPage, error)
}

type service struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	v          *validator.Validate
}

func NewService(products repository.ProductRepository, categories repository.CategoryRepository) Service {
	return &service{products: products, categories: categories, v: validator.New()}
}

func (s *service) Create(ctx context.Context, input models.CreateProductInput) (models.Product, error) {
	if err := s.v.Struct(input); err != nil {
		return models.Product{}, domain.Invalid("invalid product payload: %v", err)
	}
	p, err := input.ToProduct()
	if err != nil {
		return models.Product{}, domain.Invalid("invalid category reference")
	}
	if err := s.ensureCategoriesExist(ctx, p.CategoryID, p.SubCategory); err != nil {
		return models.Product{}, err
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.products.Insert(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, domain.Conflict("product with slug %q already exists", p.Slug)
		}
		return models.Product{}, err
	}
	return created, nil
}

// FindByID fetches one product and attaches the name+slug of its category
// and sub-category for display. A reference that no longer resolves is
// simply left unset rather than failing the fetch.
func (s *service) FindByID(ctx context.Context, id primitive.ObjectID) (models.ProductDetail, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProductDetail{}, domain.NotFound("product")
		}
		return models.ProductDetail{}, err
	}

	detail := models.ProductDetail{Product: p}
	if ref, err := s.categoryRef(ctx, p.CategoryID); err != nil {
		return models.ProductDetail{}, err
	} else if ref != nil {
		detail.Category = ref
	}
	if p.SubCategory != nil {
		if ref, err := s.categoryRef(ctx, *p.SubCategory); err != nil {
			return models.ProductDetail{}, err
		} else if ref != nil {
			detail.SubCategoryInfo = ref
		}
	}
	return detail, nil
}

func (s *service) Update(ctx context.Context, id primitive.ObjectID, input models.UpdateProductInput) (models.Product, error) {
	if err := s.v.Struct(input); err != nil {
		return models.Product{}, domain.Invalid("invalid product payload: %v", err)
	}

	set, catID, subID, err := buildUpdate(input)
	if err != nil {
		return models.Product{}, err
	}

	// Reference fields only get re-validated when the payload touches
	// them; a sub-category-only change is checked against the stored
	// categoryId.
	if catID != nil || subID != nil {
		existing, err := s.products.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return models.Product{}, domain.NotFound("product")
			}
			return models.Product{}, err
		}
		effectiveCat := existing.CategoryID
		if catID != nil {
			effectiveCat = *catID
		}
		if err := s.ensureCategoriesExist(ctx, effectiveCat, subID); err != nil {
			return models.Product{}, err
		}
	}

	updated, err := s.products.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, domain.NotFound("product")
		}
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, domain.Conflict("product slug already taken")
		}
		return models.Product{}, err
	}
	return updated, nil
}

func (s *service) Remove(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFound("product")
	}
	return nil
}

func (s *service) FindFeatured(ctx context.Context, limit int64) ([]models.Product, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	return s.products.FindFeatured(ctx, limit)
}

func (s *service) ListFiltered(ctx context.Context, query models.ProductQuery) (models.ProductPage, error) {
	if err := s.v.Struct(query); err != nil {
		return models.ProductPage{}, domain.Invalid("invalid product query: %v", err)
	}

	// Audience only kicks in when no explicit category filter is set:
	// explicit filters always win.
	var audienceCategories []primitive.ObjectID
	if query.Audience != "" && query.CategoryID == "" && query.SubCategory == "" {
		cats, err := s.categories.ListByAudience(ctx, models.Audience(query.Audience))
		if err != nil {
			return models.ProductPage{}, err
		}
		audienceCategories = make([]primitive.ObjectID, 0, len(cats))
		for _, c := range cats {
			audienceCategories = append(audienceCategories, c.ID)
		}
	}

	filter, err := BuildFilter(query, audienceCategories)
	if err != nil {
		return models.ProductPage{}, err
	}

	page, limit := NormalizePage(query.Page, query.Limit)
	skip := int64(page-1) * limit

	products, total, err := s.products.Find(ctx, filter, SortSpec(query.SortBy, query.SortOrder), skip, limit)
	if err != nil {
		return models.ProductPage{}, err
	}

	return models.ProductPage{
		Products:   products,
		Total:      total,
		Page:       page,
		TotalPages: int((total + limit - 1) / limit),
	}, nil
}

// ensureCategoriesExist checks both references against the category store
// concurrently; both must pass.
func (s *service) ensureCategoriesExist(ctx context.Context, categoryID primitive.ObjectID, subCategoryID *primitive.ObjectID) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		exists, err := s.categories.Exists(ctx, categoryID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.Invalid("categoryId not found")
		}
		return nil
	})
	if subCategoryID != nil {
		subID := *subCategoryID
		g.Go(func() error {
			exists, err := s.categories.Exists(ctx, subID)
			if err != nil {
				return err
			}
			if !exists {
				return domain.Invalid("subCategoryId not found")
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *service) categoryRef(ctx context.Context, id primitive.ObjectID) (*models.CategoryRef, error) {
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &models.CategoryRef{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}, nil
}

func buildUpdate(input models.UpdateProductInput) (bson.M, *primitive.ObjectID, *primitive.ObjectID, error) {
	set := bson.M{"updatedAt": time.Now()}
	var catID, subID *primitive.ObjectID

	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Slug != nil {
		set["slug"] = *input.Slug
	}
	if input.Description != nil {
		set["description"] = *input.Description
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Stock != nil {
		set["stock"] = *input.Stock
	}
	if input.CategoryID != nil {
		id, err := primitive.ObjectIDFromHex(*input.CategoryID)
		if err != nil {
			return nil, nil, nil, domain.Invalid("invalid categoryId")
		}
		catID = &id
		set["categoryId"] = id
	}
	if input.SubCategory != nil {
		id, err := primitive.ObjectIDFromHex(*input.SubCategory)
		if err != nil {
			return nil, nil, nil, domain.Invalid("invalid subCategoryId")
		}
		subID = &id
		set["subCategoryId"] = id
	}
	if input.Images != nil {
		set["images"] = input.Images
	}
	if input.Videos != nil {
		set["videos"] = input.Videos
	}
	if input.Variants != nil {
		set["variants"] = input.Variants
	}
	if input.Combos != nil {
		set["variantCombinations"] = input.Combos
	}
	if input.Tags != nil {
		set["tags"] = input.Tags
	}
	if input.SKU != nil {
		set["sku"] = *input.SKU
	}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}
	if input.IsFeatured != nil {
		set["isFeatured"] = *input.IsFeatured
	}
	return set, catID, subID, nil
}
