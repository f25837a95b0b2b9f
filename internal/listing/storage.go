package listing

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned when a listing with the given ID is not found.
var ErrNotFound = errors.New("listing not found")

// Storage is the durable store for listings. GetStatus and UpdateFull are the
// two calls the update workflow depends on; the rest back the plain CRUD
// endpoints.
type Storage interface {
	Insert(ctx context.Context, l Listing) (int64, error)
	Get(ctx context.Context, id int64) (*Listing, error)
	GetStatus(ctx context.Context, id int64) (ListingStatus, error)
	// UpdateFull overwrites every mutable field of the listing and returns
	// the key iff a row matched, ErrNotFound otherwise.
	UpdateFull(ctx context.Context, id int64, l Listing) (int64, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit int) ([]Listing, error)
}

// MemoryStorage provides an in-memory implementation for storing listings.
// It is the store the binaries fall back to when no database is configured,
// and the one the unit tests run against.
type MemoryStorage struct {
	mu     sync.RWMutex
	m      map[int64]Listing
	nextID int64
}

// NewMemoryStorage instantiates a MemoryStorage with an empty map.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		m:      map[int64]Listing{},
		nextID: 1,
	}
}

func (s *MemoryStorage) Insert(ctx context.Context, l Listing) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.ID = s.nextID
	s.nextID++
	s.m[l.ID] = l
	return l.ID, nil
}

func (s *MemoryStorage) Get(ctx context.Context, id int64) (*Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &l, nil
}

func (s *MemoryStorage) GetStatus(ctx context.Context, id int64) (ListingStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.m[id]
	if !ok {
		return 0, ErrNotFound
	}
	return l.Status, nil
}

func (s *MemoryStorage) UpdateFull(ctx context.Context, id int64, l Listing) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return 0, ErrNotFound
	}
	l.ID = id
	s.m[id] = l
	return id, nil
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

func (s *MemoryStorage) List(ctx context.Context, limit int) ([]Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	listings := make([]Listing, 0, len(s.m))
	for _, l := range s.m {
		listings = append(listings, l)
	}
	sort.Slice(listings, func(i, j int) bool { return listings[i].ID < listings[j].ID })
	if limit > 0 && len(listings) > limit {
		listings = listings[:limit]
	}
	return listings, nil
}
