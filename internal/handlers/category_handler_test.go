package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davidobi-dev/threadcart-backend/internal/core/domain"
	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubCategoryService lets each test plug in just the calls it needs.
type stubCategoryService struct {
	create    func(ctx context.Context, input models.CreateCategoryInput) (models.Category, error)
	upsert    func(ctx context.Context, inputs []models.CreateCategoryInput) (models.BulkUpsertResult, error)
	list      func(ctx context.Context, audience models.Audience) ([]models.Category, error)
	findByID  func(ctx context.Context, id primitive.ObjectID) (models.Category, error)
	buildTree func(ctx context.Context, audience models.Audience) ([]*models.CategoryNode, error)
	remove    func(ctx context.Context, id primitive.ObjectID) error
}

func (s *stubCategoryService) Create(ctx context.Context, input models.CreateCategoryInput) (models.Category, error) {
	return s.create(ctx, input)
}

func (s *stubCategoryService) UpsertManyBySlug(ctx context.Context, inputs []models.CreateCategoryInput) (models.BulkUpsertResult, error) {
	return s.upsert(ctx, inputs)
}

func (s *stubCategoryService) ListByAudience(ctx context.Context, audience models.Audience) ([]models.Category, error) {
	return s.list(ctx, audience)
}

func (s *stubCategoryService) FindByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	return s.findByID(ctx, id)
}

func (s *stubCategoryService) FindBySlug(ctx context.Context, slug string) (models.Category, error) {
	return models.Category{}, domain.NotFound("category")
}

func (s *stubCategoryService) Update(ctx context.Context, id primitive.ObjectID, input models.UpdateCategoryInput) (models.Category, error) {
	return models.Category{}, domain.NotFound("category")
}

func (s *stubCategoryService) Remove(ctx context.Context, id primitive.ObjectID) error {
	return s.remove(ctx, id)
}

func (s *stubCategoryService) BuildTree(ctx context.Context, audience models.Audience) ([]*models.CategoryNode, error) {
	return s.buildTree(ctx, audience)
}

func categoryRouter(svc *stubCategoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewCategoryHandler(svc)
	router.POST("/categories", h.CreateCategory)
	router.GET("/categories", h.ListCategories)
	router.GET("/categories/tree", h.GetCategoryTree)
	router.GET("/categories/:id", h.GetCategoryByID)
	router.DELETE("/categories/:id", h.DeleteCategory)
	return router
}

func TestCreateCategory_Created(t *testing.T) {
	svc := &stubCategoryService{
		create: func(ctx context.Context, input models.CreateCategoryInput) (models.Category, error) {
			return models.Category{ID: primitive.NewObjectID(), Name: input.Name, Slug: input.Slug}, nil
		},
	}
	router := categoryRouter(svc)

	body, _ := json.Marshal(models.CreateCategoryInput{Name: "Shoes", Slug: "shoes"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "shoes")
}

func TestCreateCategory_ValidationMapsTo400(t *testing.T) {
	svc := &stubCategoryService{
		create: func(ctx context.Context, input models.CreateCategoryInput) (models.Category, error) {
			return models.Category{}, domain.Invalid("parent category not found")
		},
	}
	router := categoryRouter(svc)

	body, _ := json.Marshal(models.CreateCategoryInput{Name: "Shoes", Slug: "shoes"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/categories", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListCategories_RejectsUnknownAudience(t *testing.T) {
	router := categoryRouter(&stubCategoryService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/categories?audience=pets", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategoryByID_BadID(t *testing.T) {
	router := categoryRouter(&stubCategoryService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/categories/not-an-id", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategoryByID_NotFoundMapsTo404(t *testing.T) {
	svc := &stubCategoryService{
		findByID: func(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
			return models.Category{}, domain.NotFound("category")
		},
	}
	router := categoryRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/categories/"+primitive.NewObjectID().Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategory_ConflictMapsTo409(t *testing.T) {
	svc := &stubCategoryService{
		remove: func(ctx context.Context, id primitive.ObjectID) error {
			return domain.Conflict("cannot delete category: it still has child categories")
		},
	}
	router := categoryRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/categories/"+primitive.NewObjectID().Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetCategoryTree_ReturnsForest(t *testing.T) {
	root := models.CategoryNode{
		Category: models.Category{ID: primitive.NewObjectID(), Name: "Kids", Slug: "kids"},
		Children: []*models.CategoryNode{},
	}
	svc := &stubCategoryService{
		buildTree: func(ctx context.Context, audience models.Audience) ([]*models.CategoryNode, error) {
			assert.Equal(t, models.AudienceKids, audience)
			return []*models.CategoryNode{&root}, nil
		},
	}
	router := categoryRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/categories/tree?audience=kids", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"children"`)
	assert.Contains(t, w.Body.String(), "Kids")
}
