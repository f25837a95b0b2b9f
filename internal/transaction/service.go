package transaction

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrInvalidAmount is returned when a transaction carries a negative total.
var ErrInvalidAmount = errors.New("total amount cannot be negative")

// Service provides transaction management on a Storage backend. Transactions
// are written once and never mutated here; the only lifecycle this service
// owns is create, read, and delete.
type Service struct {
	storage Storage
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Create stores a new transaction and returns it with its store-assigned ID.
func (s *Service) Create(ctx context.Context, t Transaction) (*Transaction, error) {
	if t.TotalAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	id, err := s.storage.Insert(ctx, t)
	if err != nil {
		s.logger.Error("failed to create transaction", zap.Error(err))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	t.ID = id
	s.logger.Info("transaction created",
		zap.Int64("transaction_id", id),
		zap.Int64("buyer_id", t.BuyerID),
		zap.Int64("car_id", t.CarID),
	)
	return &t, nil
}

// Get returns a single transaction by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Transaction, error) {
	return s.storage.Get(ctx, id)
}

// List returns up to limit transactions.
func (s *Service) List(ctx context.Context, limit int) ([]Transaction, error) {
	return s.storage.List(ctx, limit)
}

// Delete removes a transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("transaction deleted", zap.Int64("transaction_id", id))
	return nil
}
