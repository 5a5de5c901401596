package usecases_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// --- In-memory LocationRepository ---

// memLocationRepo honours the insert-if-absent contract under concurrency.
type memLocationRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[string]domain.LocationRecord
	tables  map[string][]int64 // table -> location_id per row
	inserts atomic.Int32

	lookupErr error
	insertErr error
	// beforeInsert runs inside InsertIfAbsent before the existence check; used to
	// simulate a concurrent writer.
	beforeInsert func(r *memLocationRepo)
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{rows: map[string]domain.LocationRecord{}, tables: map[string][]int64{}}
}

func (m *memLocationRepo) LookupBySearchQuery(ctx context.Context, query string) (*domain.LocationRecord, bool, error) {
	if m.lookupErr != nil {
		return nil, false, m.lookupErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[query]
	if !ok {
		return nil, false, nil
	}
	return &rec, true, nil
}

func (m *memLocationRepo) InsertIfAbsent(ctx context.Context, rec *domain.LocationRecord) (int64, bool, error) {
	if m.insertErr != nil {
		return 0, false, m.insertErr
	}
	if m.beforeInsert != nil {
		m.beforeInsert(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.rows[rec.SearchQuery]; exists {
		return 0, false, nil
	}
	m.nextID++
	stored := *rec
	stored.ID = m.nextID
	m.rows[rec.SearchQuery] = stored
	m.inserts.Add(1)
	return stored.ID, true, nil
}

func (m *memLocationRepo) seed(rec domain.LocationRecord) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	rec.ID = m.nextID
	m.rows[rec.SearchQuery] = rec
	return rec.ID
}

func (m *memLocationRepo) DeleteByLocation(ctx context.Context, table string, locationID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.tables[table]
	if !ok {
		return 0, errors.New("relation does not exist")
	}
	var kept []int64
	var n int64
	for _, id := range rows {
		if id == locationID {
			n++
			continue
		}
		kept = append(kept, id)
	}
	m.tables[table] = kept
	return n, nil
}

// --- Geocoder ---

type mockGeocoder struct {
	calls     atomic.Int32
	geocodeFn func(ctx context.Context, query string) (*domain.GeocodeResult, error)
}

func (m *mockGeocoder) Geocode(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	m.calls.Add(1)
	if m.geocodeFn != nil {
		return m.geocodeFn(ctx, query)
	}
	return &domain.GeocodeResult{FormattedAddress: "Seattle, WA, USA", Latitude: 47.6062095, Longitude: -122.3320708}, nil
}

// --- EventPublisher ---

type mockPublisher struct {
	mu        sync.Mutex
	created   []domain.LocationRecord
	createErr error
}

func (m *mockPublisher) PublishLocationCreated(ctx context.Context, rec *domain.LocationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, *rec)
	return m.createErr
}

func (m *mockPublisher) PublishPurgeRequest(ctx context.Context, req *domain.PurgeRequest) error {
	return nil
}

// --- CacheService ---

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]int
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]int{}}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return nil, errors.New("miss")
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttl int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *memCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func strPtr(s string) *string { return &s }
