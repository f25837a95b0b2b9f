package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carmarket/internal/transaction"
)

// transactionHandler holds the transaction service and implements HTTP
// handlers for transaction operations.
type transactionHandler struct {
	service *transaction.Service
	logger  *zap.Logger
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(service *transaction.Service, logger *zap.Logger) *transactionHandler {
	return &transactionHandler{
		service: service,
		logger:  logger,
	}
}

func (h *transactionHandler) handleCreate(ctx *gin.Context) {
	var t transaction.Transaction
	if err := ctx.ShouldBindJSON(&t); err != nil {
		h.logger.Warn("failed to bind transaction payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	created, err := h.service.Create(ctx.Request.Context(), t)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidAmount) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to create transaction", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create transaction"})
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *transactionHandler) handleGet(ctx *gin.Context) {
	id, ok := transactionID(ctx)
	if !ok {
		return
	}

	t, err := h.service.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		h.logger.Error("failed to get transaction", zap.Int64("transaction_id", id), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *transactionHandler) handleList(ctx *gin.Context) {
	transactions, err := h.service.List(ctx.Request.Context(), 1000)
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"data": transactions})
}

func (h *transactionHandler) handleDelete(ctx *gin.Context) {
	id, ok := transactionID(ctx)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
			return
		}
		h.logger.Error("failed to delete transaction", zap.Int64("transaction_id", id), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func transactionID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return 0, false
	}
	return id, true
}
