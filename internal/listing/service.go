package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"carmarket/internal/metrics"
)

// ErrIDMismatch is returned when the listing ID in the request body
// contradicts the one addressed by the call.
var ErrIDMismatch = errors.New("listing ID mismatch")

// ErrInvalidPrice is returned when a listing carries a negative sale price.
var ErrInvalidPrice = errors.New("sale price cannot be negative")

// TransactionRequest is the payload sent to the transaction service when a
// listing is sold.
type TransactionRequest struct {
	BuyerID         int64
	CarID           int64
	Kind            ListingKind
	TotalAmount     decimal.Decimal
	TransactionDate time.Time
}

// TransactionCreator records a completed sale or rental in the transaction
// domain. Implementations call another service over the network and may fail
// for any reason; the workflow treats every failure the same way.
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, req TransactionRequest) (int64, error)
}

// DefaultDispatchTimeout bounds the transaction-create call when no timeout
// is configured. The bound is independent of the caller's deadline: a slow
// transaction service must not block an update that already committed.
const DefaultDispatchTimeout = 5 * time.Second

// Service provides listing management on a Storage backend. Update carries
// the one piece of cross-service logic in the system: entering the SOLD
// state notifies the transaction service.
type Service struct {
	storage         Storage
	transactions    TransactionCreator
	logger          *zap.Logger
	recorder        metrics.Recorder
	dispatchTimeout time.Duration
}

// NewService creates a new Service.
func NewService(storage Storage, transactions TransactionCreator, logger *zap.Logger, recorder metrics.Recorder) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Service{
		storage:         storage,
		transactions:    transactions,
		logger:          logger,
		recorder:        recorder,
		dispatchTimeout: DefaultDispatchTimeout,
	}
}

// WithDispatchTimeout overrides the bound on the transaction-create call.
func (s *Service) WithDispatchTimeout(d time.Duration) *Service {
	if d > 0 {
		s.dispatchTimeout = d
	}
	return s
}

// Create stores a new listing and returns it with its store-assigned ID. The
// status is whatever the creator supplied; creation never triggers a
// transaction.
func (s *Service) Create(ctx context.Context, l Listing) (*Listing, error) {
	if l.SalePrice.IsNegative() {
		return nil, ErrInvalidPrice
	}
	id, err := s.storage.Insert(ctx, l)
	if err != nil {
		s.logger.Error("failed to create listing", zap.Error(err))
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	l.ID = id
	s.logger.Info("listing created", zap.Int64("listing_id", id))
	return &l, nil
}

// Get returns a single listing by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Listing, error) {
	return s.storage.Get(ctx, id)
}

// List returns up to limit listings.
func (s *Service) List(ctx context.Context, limit int) ([]Listing, error) {
	return s.storage.List(ctx, limit)
}

// Delete removes a listing. Transactions created from earlier sales are left
// untouched.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.storage.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("listing deleted", zap.Int64("listing_id", id))
	return nil
}

// Update replaces every mutable field of the listing and, when the update
// moves it from a non-SOLD status into SOLD, notifies the transaction
// service that a sale happened.
//
// The listing write is the source of truth. It commits before the
// transaction service is contacted, and nothing that happens on that call
// can roll it back: a failed dispatch is logged and counted, and the caller
// still sees success. Two concurrent updates that both observe a non-SOLD
// status can both dispatch; callers that need stronger guarantees must
// serialize their own writes.
func (s *Service) Update(ctx context.Context, id int64, in Listing) (*Listing, error) {
	if in.ID != 0 && in.ID != id {
		return nil, ErrIDMismatch
	}
	if in.SalePrice.IsNegative() {
		return nil, ErrInvalidPrice
	}

	currentStatus, err := s.storage.GetStatus(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("failed to read listing status", zap.Int64("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to read listing status: %w", err)
	}

	// The sold edge is decided on the stored status before the write, so
	// re-submitting SOLD over SOLD never dispatches twice.
	wasSold := currentStatus == StatusSold
	willBeSold := in.Status == StatusSold

	if _, err := s.storage.UpdateFull(ctx, id, in); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Deleted between the status read and the write.
			return nil, ErrNotFound
		}
		s.logger.Error("failed to update listing", zap.Int64("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	in.ID = id

	s.logger.Info("listing updated",
		zap.Int64("listing_id", id),
		zap.String("status", in.Status.String()),
	)

	if !wasSold && willBeSold {
		s.dispatchTransaction(ctx, in)
	}

	return &in, nil
}

// dispatchTransaction sends the best-effort sale notification. It runs after
// the listing write committed and outside any store transaction, on a
// context detached from the caller's cancellation with its own timeout.
func (s *Service) dispatchTransaction(ctx context.Context, l Listing) {
	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.dispatchTimeout)
	defer cancel()

	txID, err := s.transactions.CreateTransaction(dispatchCtx, TransactionRequest{
		BuyerID:         l.UserID,
		CarID:           l.CarID,
		Kind:            l.Kind,
		TotalAmount:     l.SalePrice,
		TransactionDate: time.Now(),
	})
	if err != nil {
		s.logger.Error("failed to create transaction for sold listing",
			zap.Int64("listing_id", l.ID),
			zap.Error(err),
		)
		s.recorder.IncDispatch("error")
		return
	}

	s.logger.Info("created transaction for sold listing",
		zap.Int64("listing_id", l.ID),
		zap.Int64("transaction_id", txID),
	)
	s.recorder.IncDispatch("success")
}
