package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carmarket/internal/listing"
)

// listingHandler holds the listing service and implements HTTP handlers for
// listing operations.
type listingHandler struct {
	service *listing.Service
	logger  *zap.Logger
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(service *listing.Service, logger *zap.Logger) *listingHandler {
	return &listingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *listingHandler) handleCreate(ctx *gin.Context) {
	var l listing.Listing
	if err := ctx.ShouldBindJSON(&l); err != nil {
		h.logger.Warn("failed to bind listing payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	created, err := h.service.Create(ctx.Request.Context(), l)
	if err != nil {
		if errors.Is(err, listing.ErrInvalidPrice) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to create listing", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create listing"})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *listingHandler) handleGet(ctx *gin.Context) {
	id, ok := listingID(ctx)
	if !ok {
		return
	}

	l, err := h.service.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		h.logger.Error("failed to get listing", zap.Int64("listing_id", id), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, l)
}

func (h *listingHandler) handleList(ctx *gin.Context) {
	listings, err := h.service.List(ctx.Request.Context(), 1000)
	if err != nil {
		h.logger.Error("failed to list listings", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": listings})
}

// handleUpdate is the entry point of the listing lifecycle workflow: a full
// update that, on the non-SOLD to SOLD edge, also notifies the transaction
// service. A failed notification never changes the response here.
func (h *listingHandler) handleUpdate(ctx *gin.Context) {
	id, ok := listingID(ctx)
	if !ok {
		return
	}

	var l listing.Listing
	if err := ctx.ShouldBindJSON(&l); err != nil {
		h.logger.Warn("failed to bind listing payload", zap.Int64("listing_id", id), zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	updated, err := h.service.Update(ctx.Request.Context(), id, l)
	if err != nil {
		switch {
		case errors.Is(err, listing.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		case errors.Is(err, listing.ErrIDMismatch), errors.Is(err, listing.ErrInvalidPrice):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to update listing", zap.Int64("listing_id", id), zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *listingHandler) handleDelete(ctx *gin.Context) {
	id, ok := listingID(ctx)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		h.logger.Error("failed to delete listing", zap.Int64("listing_id", id), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func listingID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing ID"})
		return 0, false
	}
	return id, true
}
