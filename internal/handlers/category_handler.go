package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/davidobi-dev/threadcart-backend/internal/models"
	"github.com/davidobi-dev/threadcart-backend/internal/services/category"
	"github.com/davidobi-dev/threadcart-backend/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	created, err := h.service.Create(ctx, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("category created successfully", gin.H{
		"category": created,
	}))
}

func (h *CategoryHandler) BulkUpsertCategories(c *gin.Context) {
	var inputs []models.CreateCategoryInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := h.service.UpsertManyBySlug(ctx, inputs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("categories upserted successfully", result))
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	audience, ok := audienceQuery(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	categories, err := h.service.ListByAudience(ctx, audience)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("categories fetched successfully", gin.H{
		"categories": categories,
	}))
}

func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	audience, ok := audienceQuery(c)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	tree, err := h.service.BuildTree(ctx, audience)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("category tree fetched successfully", gin.H{
		"tree": tree,
	}))
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("invalid category id"))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cat, err := h.service.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("category fetched successfully", gin.H{
		"category": cat,
	}))
}

func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cat, err := h.service.FindBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("category fetched successfully", gin.H{
		"category": cat,
	}))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("invalid category id"))
		return
	}
	var input models.UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	updated, err := h.service.Update(ctx, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("category updated successfully", gin.H{
		"category": updated,
	}))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("invalid category id"))
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.Remove(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("category deleted successfully", nil))
}

// audienceQuery reads and validates the optional ?audience= parameter.
// On a bad value it writes the 400 itself and reports false.
func audienceQuery(c *gin.Context) (models.Audience, bool) {
	raw := c.Query("audience")
	if raw == "" {
		return "", true
	}
	switch a := models.Audience(raw); a {
	case models.AudienceMen, models.AudienceWomen, models.AudienceKids, models.AudienceBaby, models.AudienceUnisex:
		return a, true
	default:
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("invalid audience"))
		return "", false
	}
}
