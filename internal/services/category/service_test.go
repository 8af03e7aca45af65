package category

import (
	"context"
	"testing"

	"github.com/davidobi-dev/threadcart-backend/internal/core/domain"
	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MockCategoryRepository is a mock implementation of repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Insert(ctx context.Context, category models.Category) (models.Category, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpsertManyBySlug(ctx context.Context, categories []models.Category) (models.BulkUpsertResult, error) {
	args := m.Called(ctx, categories)
	return args.Get(0).(models.BulkUpsertResult), args.Error(1)
}

func (m *MockCategoryRepository) ListByAudience(ctx context.Context, audience models.Audience) ([]models.Category, error) {
	args := m.Called(ctx, audience)
	var cats []models.Category
	if arg0 := args.Get(0); arg0 != nil {
		cats = arg0.([]models.Category)
	}
	return cats, args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) HasChildren(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (models.Category, error) {
	args := m.Called(ctx, id, set)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCreate_Success(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	repo.On("Insert", mock.Anything, mock.MatchedBy(func(c models.Category) bool {
		return c.Name == "Shoes" && c.Slug == "shoes" && !c.CreatedAt.IsZero()
	})).Return(models.Category{ID: primitive.NewObjectID(), Name: "Shoes", Slug: "shoes"}, nil).Once()

	created, err := svc.Create(context.Background(), models.CreateCategoryInput{Name: "Shoes", Slug: "shoes"})
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	repo.AssertExpectations(t)
}

func TestCreate_MissingName(t *testing.T) {
	svc := NewService(new(MockCategoryRepository))

	_, err := svc.Create(context.Background(), models.CreateCategoryInput{Slug: "shoes"})
	assert.True(t, domain.IsValidation(err))
}

func TestCreate_ParentNotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	parentID := primitive.NewObjectID()
	repo.On("Exists", mock.Anything, parentID).Return(false, nil).Once()

	hex := parentID.Hex()
	_, err := svc.Create(context.Background(), models.CreateCategoryInput{
		Name: "Boots", Slug: "boots", ParentID: &hex,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	repo.On("Insert", mock.Anything, mock.Anything).Return(models.Category{}, error(dup)).Once()

	_, err := svc.Create(context.Background(), models.CreateCategoryInput{Name: "Shoes", Slug: "shoes"})
	assert.True(t, domain.IsConflict(err))
}

func TestUpdate_SelfParentRejected(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	id := primitive.NewObjectID()
	hex := id.Hex()
	_, err := svc.Update(context.Background(), id, models.UpdateCategoryInput{ParentID: &hex})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_CycleRejected(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	// a -> b -> c stored; re-parenting a under c would close the loop
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	repo.On("Exists", mock.Anything, c).Return(true, nil).Once()
	repo.On("Count", mock.Anything).Return(int64(3), nil).Once()
	repo.On("FindByID", mock.Anything, c).Return(models.Category{ID: c, ParentID: &b}, nil).Once()
	repo.On("FindByID", mock.Anything, b).Return(models.Category{ID: b, ParentID: &a}, nil).Once()

	hex := c.Hex()
	_, err := svc.Update(context.Background(), a, models.UpdateCategoryInput{ParentID: &hex})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_ReparentToValidAncestor(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	id := primitive.NewObjectID()
	parent := primitive.NewObjectID()

	repo.On("Exists", mock.Anything, parent).Return(true, nil).Once()
	repo.On("Count", mock.Anything).Return(int64(2), nil).Once()
	repo.On("FindByID", mock.Anything, parent).Return(models.Category{ID: parent}, nil).Once()
	repo.On("Update", mock.Anything, id, mock.MatchedBy(func(set bson.M) bool {
		return set["parentId"] == parent
	})).Return(models.Category{ID: id, ParentID: &parent}, nil).Once()

	hex := parent.Hex()
	updated, err := svc.Update(context.Background(), id, models.UpdateCategoryInput{ParentID: &hex})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, parent, *updated.ParentID)
	repo.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	id := primitive.NewObjectID()
	name := "Renamed"
	repo.On("Update", mock.Anything, id, mock.Anything).Return(models.Category{}, mongo.ErrNoDocuments).Once()

	_, err := svc.Update(context.Background(), id, models.UpdateCategoryInput{Name: &name})
	assert.True(t, domain.IsNotFound(err))
}

func TestRemove_BlockedByChildren(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	id := primitive.NewObjectID()
	repo.On("HasChildren", mock.Anything, id).Return(true, nil).Once()

	err := svc.Remove(context.Background(), id)
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRemove_Success(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	id := primitive.NewObjectID()
	repo.On("HasChildren", mock.Anything, id).Return(false, nil).Once()
	repo.On("Delete", mock.Anything, id).Return(true, nil).Once()

	require.NoError(t, svc.Remove(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestRemove_NotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	id := primitive.NewObjectID()
	repo.On("HasChildren", mock.Anything, id).Return(false, nil).Once()
	repo.On("Delete", mock.Anything, id).Return(false, nil).Once()

	assert.True(t, domain.IsNotFound(svc.Remove(context.Background(), id)))
}

func TestFindByID_NotFound(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).Return(models.Category{}, mongo.ErrNoDocuments).Once()

	_, err := svc.FindByID(context.Background(), id)
	assert.True(t, domain.IsNotFound(err))
}

func TestUpsertManyBySlug_EmptyBatch(t *testing.T) {
	svc := NewService(new(MockCategoryRepository))

	_, err := svc.UpsertManyBySlug(context.Background(), nil)
	assert.True(t, domain.IsValidation(err))
}

func TestUpsertManyBySlug_BatchForwarded(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	repo.On("UpsertManyBySlug", mock.Anything, mock.MatchedBy(func(cats []models.Category) bool {
		return len(cats) == 2 && cats[0].Slug == "men" && cats[1].Slug == "women"
	})).Return(models.BulkUpsertResult{Upserted: 2}, nil).Once()

	result, err := svc.UpsertManyBySlug(context.Background(), []models.CreateCategoryInput{
		{Name: "Men", Slug: "men"},
		{Name: "Women", Slug: "women"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Upserted)
	repo.AssertExpectations(t)
}

func TestUpsertManyBySlug_InvalidItemAbortsBeforeWrite(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	_, err := svc.UpsertManyBySlug(context.Background(), []models.CreateCategoryInput{
		{Name: "Men", Slug: "men"},
		{Name: "", Slug: "broken"},
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	repo.AssertNotCalled(t, "UpsertManyBySlug", mock.Anything, mock.Anything)
}

func TestBuildTree_UsesAudienceListing(t *testing.T) {
	repo := new(MockCategoryRepository)
	svc := NewService(repo)

	root := primitive.NewObjectID()
	child := primitive.NewObjectID()
	repo.On("ListByAudience", mock.Anything, models.AudienceKids).Return([]models.Category{
		{ID: root, Name: "Kids", Slug: "kids"},
		{ID: child, Name: "Toys", Slug: "toys", ParentID: &root},
	}, nil).Once()

	tree, err := svc.BuildTree(context.Background(), models.AudienceKids)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Toys", tree[0].Children[0].Name)
	repo.AssertExpectations(t)
}
