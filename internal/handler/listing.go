package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/musavirchukkan/b2b-marketplace-search/internal/model"
)

// ListingStore retrieves single listings; nil, nil means not found
type ListingStore interface {
	GetListingByID(ctx context.Context, id int64) (*model.Listing, error)
}

// ListingHandler handles listing detail HTTP requests
type ListingHandler struct {
	store  ListingStore
	logger *zap.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(store ListingStore, logger *zap.Logger) *ListingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingHandler{store: store, logger: logger}
}

// GetListing handles GET /api/v1/listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing ID"})
		return
	}

	listing, err := h.store.GetListingByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to get listing", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing"})
		return
	}

	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	c.JSON(http.StatusOK, listing)
}
