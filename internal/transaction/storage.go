package transaction

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a transaction with the given ID is not found.
var ErrNotFound = errors.New("transaction not found")

// Storage is the durable store for transactions.
type Storage interface {
	Insert(ctx context.Context, t Transaction) (int64, error)
	Get(ctx context.Context, id int64) (*Transaction, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit int) ([]Transaction, error)
}

// MemoryStorage provides an in-memory implementation for storing
// transactions.
type MemoryStorage struct {
	mu     sync.RWMutex
	m      map[int64]Transaction
	nextID int64
}

// NewMemoryStorage instantiates a MemoryStorage with an empty map.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		m:      map[int64]Transaction{},
		nextID: 1,
	}
}

func (s *MemoryStorage) Insert(ctx context.Context, t Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.m[t.ID] = t
	return t.ID, nil
}

func (s *MemoryStorage) Get(ctx context.Context, id int64) (*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return ErrNotFound
	}
	delete(s.m, id)
	return nil
}

func (s *MemoryStorage) List(ctx context.Context, limit int) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	transactions := make([]Transaction, 0, len(s.m))
	for _, t := range s.m {
		transactions = append(transactions, t)
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID < transactions[j].ID })
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}
