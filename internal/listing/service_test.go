package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeTransactionCreator records every dispatch the workflow makes and can
// be told to fail, standing in for the remote transaction service.
type fakeTransactionCreator struct {
	mu     sync.Mutex
	calls  []TransactionRequest
	err    error
	nextID int64
}

func (f *fakeTransactionCreator) CreateTransaction(ctx context.Context, req TransactionRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.calls = append(f.calls, req)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeTransactionCreator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestService(t *testing.T) (*Service, *MemoryStorage, *fakeTransactionCreator) {
	storage := NewMemoryStorage()
	creator := &fakeTransactionCreator{}
	svc := NewService(storage, creator, zaptest.NewLogger(t), nil)
	return svc, storage, creator
}

func seedListing(t *testing.T, storage *MemoryStorage, status ListingStatus) int64 {
	t.Helper()
	id, err := storage.Insert(context.Background(), Listing{
		CarID:       1,
		UserID:      1,
		Kind:        KindBuy,
		Description: "Has wheels, nice",
		PostingDate: time.Now(),
		SalePrice:   decimal.RequireFromString("25000.00"),
		Promoted:    false,
		Status:      status,
	})
	require.NoError(t, err)
	return id
}

func TestUpdate_SoldTransitionDispatchesTransaction(t *testing.T) {
	svc, storage, creator := newTestService(t)
	id := seedListing(t, storage, StatusAvailable)

	updated, err := svc.Update(context.Background(), id, Listing{
		CarID:       1,
		UserID:      1,
		Kind:        KindBuy,
		Description: "Has wheels, nice",
		PostingDate: time.Now(),
		SalePrice:   decimal.RequireFromString("25000.00"),
		Status:      StatusSold,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSold, updated.Status)
	assert.Equal(t, id, updated.ID)

	require.Equal(t, 1, creator.callCount(), "expected exactly one transaction dispatch")
	call := creator.calls[0]
	assert.Equal(t, int64(1), call.BuyerID)
	assert.Equal(t, int64(1), call.CarID)
	assert.Equal(t, KindBuy, call.Kind)
	assert.True(t, call.TotalAmount.Equal(decimal.RequireFromString("25000.00")),
		"expected total amount 25000.00, got %s", call.TotalAmount)
	assert.False(t, call.TransactionDate.IsZero())

	stored, err := storage.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusSold, stored.Status)
}

func TestUpdate_SoldResubmissionDoesNotDispatch(t *testing.T) {
	svc, storage, creator := newTestService(t)
	id := seedListing(t, storage, StatusSold)

	updated, err := svc.Update(context.Background(), id, Listing{
		CarID:     1,
		UserID:    1,
		Kind:      KindBuy,
		SalePrice: decimal.RequireFromString("25000.00"),
		Status:    StatusSold,
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSold, updated.Status)
	assert.Equal(t, 0, creator.callCount(), "re-submitting SOLD must not dispatch again")
}

func TestUpdate_SoldFlipBackAndForthDispatchesOnce(t *testing.T) {
	svc, storage, creator := newTestService(t)
	id := seedListing(t, storage, StatusSold)

	base := Listing{
		CarID:     1,
		UserID:    1,
		Kind:      KindBuy,
		SalePrice: decimal.RequireFromString("25000.00"),
	}

	back := base
	back.Status = StatusAvailable
	_, err := svc.Update(context.Background(), id, back)
	require.NoError(t, err)
	assert.Equal(t, 0, creator.callCount(), "leaving SOLD must not dispatch")

	again := base
	again.Status = StatusSold
	_, err = svc.Update(context.Background(), id, again)
	require.NoError(t, err)
	assert.Equal(t, 1, creator.callCount(), "re-entering SOLD must dispatch once")
}

func TestUpdate_DispatchFailureDoesNotFailUpdate(t *testing.T) {
	svc, storage, creator := newTestService(t)
	creator.err = errors.New("transaction service unreachable")
	id := seedListing(t, storage, StatusAvailable)

	updated, err := svc.Update(context.Background(), id, Listing{
		CarID:     1,
		UserID:    1,
		Kind:      KindBuy,
		SalePrice: decimal.RequireFromString("25000.00"),
		Status:    StatusSold,
	})
	require.NoError(t, err, "a failed dispatch must not surface to the caller")
	assert.Equal(t, StatusSold, updated.Status)

	stored, err := storage.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusSold, stored.Status, "the committed write must not be reverted")
}

func TestUpdate_MissingListingReturnsNotFound(t *testing.T) {
	svc, storage, creator := newTestService(t)

	_, err := svc.Update(context.Background(), 999, Listing{
		Status:    StatusSold,
		SalePrice: decimal.New(0, 0),
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, creator.callCount(), "no dispatch for a missing listing")

	listings, err := storage.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, listings, "no write for a missing listing")
}

func TestUpdate_IDMismatchRejectedBeforeStoreAccess(t *testing.T) {
	svc, storage, creator := newTestService(t)
	id := seedListing(t, storage, StatusAvailable)

	_, err := svc.Update(context.Background(), id, Listing{
		ID:        id + 1,
		Status:    StatusSold,
		SalePrice: decimal.New(0, 0),
	})
	assert.ErrorIs(t, err, ErrIDMismatch)
	assert.Equal(t, 0, creator.callCount())

	stored, err := storage.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, stored.Status, "rejected update must not write")
}

func TestUpdate_NegativePriceRejected(t *testing.T) {
	svc, storage, _ := newTestService(t)
	id := seedListing(t, storage, StatusAvailable)

	_, err := svc.Update(context.Background(), id, Listing{
		Status:    StatusAvailable,
		SalePrice: decimal.RequireFromString("-1"),
	})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestUpdate_NonSoldTransitionsDoNotDispatch(t *testing.T) {
	svc, storage, creator := newTestService(t)
	id := seedListing(t, storage, StatusAvailable)

	for _, status := range []ListingStatus{StatusPending, StatusRemoved, StatusAvailable} {
		_, err := svc.Update(context.Background(), id, Listing{
			CarID:     1,
			UserID:    1,
			Kind:      KindBuy,
			SalePrice: decimal.RequireFromString("25000.00"),
			Status:    status,
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 0, creator.callCount())
}

func TestGetStatus_RepeatedReadsAreStable(t *testing.T) {
	_, storage, _ := newTestService(t)
	id := seedListing(t, storage, StatusPending)

	first, err := storage.GetStatus(context.Background(), id)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := storage.GetStatus(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCreate_AssignsIDAndKeepsSuppliedStatus(t *testing.T) {
	svc, _, creator := newTestService(t)

	created, err := svc.Create(context.Background(), Listing{
		CarID:     2,
		UserID:    3,
		Kind:      KindRent,
		SalePrice: decimal.RequireFromString("120.50"),
		Status:    StatusSold,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, StatusSold, created.Status)
	assert.Equal(t, 0, creator.callCount(), "creation never dispatches, whatever the status")
}

func TestDelete_RemovesListingWithoutTouchingTransactions(t *testing.T) {
	svc, storage, creator := newTestService(t)
	id := seedListing(t, storage, StatusAvailable)

	require.NoError(t, svc.Delete(context.Background(), id))
	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, creator.callCount())

	assert.ErrorIs(t, svc.Delete(context.Background(), id), ErrNotFound)
}
