package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

// CategoryStore lists the catalog's categories with their schemas
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// CategoryHandler handles category catalog HTTP requests
type CategoryHandler struct {
	store  CategoryStore
	logger *zap.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(store CategoryStore, logger *zap.Logger) *CategoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryHandler{store: store, logger: logger}
}

type categoryView struct {
	Name            string                `json:"name"`
	Slug            string                `json:"slug"`
	AttributeSchema model.AttributeSchema `json:"attributeSchema"`
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.store.ListCategories(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	views := make([]categoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, categoryView{
			Name:            category.Name,
			Slug:            category.Slug,
			AttributeSchema: category.AttributeSchema,
		})
	}

	c.JSON(http.StatusOK, gin.H{"categories": views})
}
