package category

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
)

// Service owns category records: CRUD with referential guards, the
// seed-friendly bulk upsert, audience-scoped listing and the on-demand
// tree materialization. It holds no state between calls; every operation
// re-reads the store.
type Service interface {
	Create(ctx context.Context, input models.CreateCategoryInput) (models.Category, error)
	UpsertManyBySlug(ctx context.Context, inputs []models.CreateCategoryInput) (models.BulkUpsertResult, error)
	ListByAudience(ctx context.Context, audience models.Audience) ([]models.Category, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	FindBySlug(ctx context.Context, slug string) (models.Category, error)
	Update(ctx context.Context, id primitive.ObjectID, input models.UpdateCategoryInput) (models.Category, error)
	Remove(ctx context.Context, id primitive.ObjectID) error
	BuildTree(ctx context.Context, audience models.Audience) ([]*models.CategoryNode, error)
}

type service struct {
	repo repository.CategoryRepository
	v    *validator.Validate
}

func NewService(repo repository.CategoryRepository) Service {
	return &service{repo: repo, v: validator.New()}
}

func (s *service) Create(ctx context.Context, input models.CreateCategoryInput) (models.Category, error) {
	if err := s.v.Struct(input); err != nil {
		return models.Category{}, domain.Invalid("invalid category payload: %v", err)
	}
	cat, err := input.ToCategory()
	if err != nil {
		return models.Category{}, domain.Invalid("invalid parentId")
	}
	if cat.ParentID != nil {
		if err := s.assertValidParent(ctx, *cat.ParentID, nil); err != nil {
			return models.Category{}, err
		}
	}
	if cat.Audiences == nil {
		cat.Audiences = []models.Audience{}
	}
	now := time.Now()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	created, err := s.repo.Insert(ctx, cat)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Category{}, domain.Conflict("category with slug %q already exists", cat.Slug)
		}
		return models.Category{}, err
	}
	return created, nil
}

// UpsertManyBySlug validates every entry up front, then hands the whole
// batch to the store as one unordered bulk write. Replaying the same batch
// leaves the collection in the same state.
func (s *service) UpsertManyBySlug(ctx context.Context, inputs []models.CreateCategoryInput) (models.BulkUpsertResult, error) {
	if len(inputs) == 0 {
		return models.BulkUpsertResult{}, domain.Invalid("empty category batch")
	}
	now := time.Now()
	categories := make([]models.Category, 0, len(inputs))
	for i, input := range inputs {
		if err := s.v.Struct(input); err != nil {
			return models.BulkUpsertResult{}, domain.Invalid("invalid category at index %d: %v", i, err)
		}
		cat, err := input.ToCategory()
		if err != nil {
			return models.BulkUpsertResult{}, domain.Invalid("invalid parentId at index %d", i)
		}
		if cat.Audiences == nil {
			cat.Audiences = []models.Audience{}
		}
		cat.CreatedAt = now
		cat.UpdatedAt = now
		categories = append(categories, cat)
	}
	return s.repo.UpsertManyBySlug(ctx, categories)
}

func (s *service) ListByAudience(ctx context.Context, audience models.Audience) ([]models.Category, error) {
	return s.repo.ListByAudience(ctx, audience)
}

func (s *service) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Category{}, domain.NotFound("category")
		}
		return models.Category{}, err
	}
	return cat, nil
}

func (s *service) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	cat, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Category{}, domain.NotFound("category")
		}
		return models.Category{}, err
	}
	return cat, nil
}

func (s *service) Update(ctx context.Context, id primitive.ObjectID, input models.UpdateCategoryInput) (models.Category, error) {
	if err := s.v.Struct(input); err != nil {
		return models.Category{}, domain.Invalid("invalid category payload: %v", err)
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Slug != nil {
		set["slug"] = *input.Slug
	}
	if input.Order != nil {
		set["order"] = *input.Order
	}
	if input.Audiences != nil {
		audiences := make([]models.Audience, 0, len(input.Audiences))
		for _, a := range input.Audiences {
			audiences = append(audiences, models.Audience(a))
		}
		set["audiences"] = audiences
	}
	if input.ParentID != nil {
		parentID, err := primitive.ObjectIDFromHex(*input.ParentID)
		if err != nil {
			return models.Category{}, domain.Invalid("invalid parentId")
		}
		if err := s.assertValidParent(ctx, parentID, &id); err != nil {
			return models.Category{}, err
		}
		set["parentId"] = parentID
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Category{}, domain.NotFound("category")
		}
		if mongo.IsDuplicateKeyError(err) {
			return models.Category{}, domain.Conflict("category slug already taken")
		}
		return models.Category{}, err
	}
	return updated, nil
}

// Remove deletes a category unless some other category still points at it
// as parent. The guard is check-then-act, not atomic: a child inserted
// between the check and the delete can slip through.
func (s *service) Remove(ctx context.Context, id primitive.ObjectID) error {
	hasChildren, err := s.repo.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return domain.Conflict("cannot delete category: it still has child categories; re-parent or delete children first")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFound("category")
	}
	return nil
}

func (s *service) BuildTree(ctx context.Context, audience models.Audience) ([]*models.CategoryNode, error) {
	flat, err := s.repo.ListByAudience(ctx, audience)
	if err != nil {
		return nil, err
	}
	return BuildForest(flat), nil
}

// assertValidParent rejects a dangling parent reference, a category
// parented to itself, and, when selfID is known (update path), any
// reassignment that would close a multi-hop cycle. The ancestor walk is
// bounded by the collection size so a pre-existing cycle in stored data
// cannot loop forever.
func (s *service) assertValidParent(ctx context.Context, parentID primitive.ObjectID, selfID *primitive.ObjectID) error {
	if selfID != nil && parentID == *selfID {
		return domain.Invalid("parentId cannot equal the category id")
	}
	exists, err := s.repo.Exists(ctx, parentID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.Invalid("parent category not found")
	}
	if selfID == nil {
		return nil
	}

	bound, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	current := parentID
	for hops := int64(0); hops <= bound; hops++ {
		ancestor, err := s.repo.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil
			}
			return err
		}
		if ancestor.ParentID == nil {
			return nil
		}
		if *ancestor.ParentID == *selfID {
			return domain.Invalid("parentId would create a cycle in the category tree")
		}
		current = *ancestor.ParentID
	}
	return domain.Invalid("category ancestry exceeds collection size; refusing parent reassignment")
}
