package seats

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly/internal/tickets"
	"ticketly/pkg/cache"
)

type stubRepository struct {
	stats      *SeatStats
	statsCalls int
}

func (s *stubRepository) ReserveAndCreate(ctx context.Context, ticket *tickets.Ticket) error {
	return nil
}

func (s *stubRepository) ReleaseAndCancel(ctx context.Context, ticketID uuid.UUID) (*tickets.Ticket, error) {
	return &tickets.Ticket{ID: ticketID, EventID: uuid.New(), Status: tickets.StatusCancelled}, nil
}

func (s *stubRepository) GetSeatStats(ctx context.Context, eventID uuid.UUID) (*SeatStats, error) {
	s.statsCalls++
	return s.stats, nil
}

func (s *stubRepository) GetOccupiedSeats(ctx context.Context, eventID uuid.UUID) ([]SeatInfo, error) {
	return nil, nil
}

// memoryCache is a map-backed stand-in for the Redis cache service.
type memoryCache struct {
	entries map[string][]byte
	deletes []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	m.deletes = append(m.deletes, key)
	return nil
}

func (m *memoryCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func (m *memoryCache) Exists(ctx context.Context, key string) bool {
	_, ok := m.entries[key]
	return ok
}

func (m *memoryCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}
	value, err := fetcher()
	if err != nil {
		return err
	}
	if err := m.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return m.Get(ctx, key, dest)
}

func (m *memoryCache) Ping(ctx context.Context) error { return nil }

func TestGetSeatStatsCachesReads(t *testing.T) {
	eventID := uuid.New()
	repo := &stubRepository{stats: &SeatStats{EventID: eventID.String(), Total: 100, Available: 60, Sold: 40}}
	mem := newMemoryCache()
	svc := NewService(repo, mem, 30*time.Second)

	first, err := svc.GetSeatStats(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 60, first.Available)
	assert.Equal(t, 1, repo.statsCalls)

	// Second read is served from cache.
	second, err := svc.GetSeatStats(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.statsCalls)
}

func TestGetSeatStatsWithoutCache(t *testing.T) {
	eventID := uuid.New()
	repo := &stubRepository{stats: &SeatStats{EventID: eventID.String(), Total: 10, Available: 10}}
	svc := NewService(repo, nil, 0)

	_, err := svc.GetSeatStats(context.Background(), eventID)
	require.NoError(t, err)
	_, err = svc.GetSeatStats(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.statsCalls)
}

func TestReserveInvalidatesStats(t *testing.T) {
	eventID := uuid.New()
	repo := &stubRepository{stats: &SeatStats{EventID: eventID.String(), Total: 100, Available: 60, Sold: 40}}
	mem := newMemoryCache()
	svc := NewService(repo, mem, 30*time.Second)

	_, err := svc.GetSeatStats(context.Background(), eventID)
	require.NoError(t, err)

	err = svc.ReserveAndCreate(context.Background(), &tickets.Ticket{ID: uuid.New(), EventID: eventID})
	require.NoError(t, err)

	assert.Contains(t, mem.deletes, statsCacheKey(eventID))

	// Next read goes back to the repository.
	repo.stats = &SeatStats{EventID: eventID.String(), Total: 100, Available: 59, Sold: 41}
	stats, err := svc.GetSeatStats(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 59, stats.Available)
	assert.Equal(t, 2, repo.statsCalls)
}

func TestReleaseInvalidatesStats(t *testing.T) {
	repo := &stubRepository{stats: &SeatStats{}}
	mem := newMemoryCache()
	svc := NewService(repo, mem, 30*time.Second)

	cancelled, err := svc.ReleaseAndCancel(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Contains(t, mem.deletes, statsCacheKey(cancelled.EventID))
}
