package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipmint/archive-renamer/internal/domain"
)

func makeEntries(n int) []domain.ArchiveEntry {
	entries := make([]domain.ArchiveEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, domain.ArchiveEntry{
			Path: fmt.Sprintf("file%03d.txt", i),
			Size: int64(i),
		})
	}
	return entries
}

// clockStore returns a store whose clock the test controls.
func clockStore(maxSize int, ttl time.Duration) (*Store, *time.Time) {
	store := NewStore(maxSize, ttl)
	current := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	return store, &current
}

func TestNewStore(t *testing.T) {
	store := NewStore(100, time.Hour)
	assert.Equal(t, 100, store.maxSize)
	assert.Equal(t, time.Hour, store.ttl)
	assert.Equal(t, 0, store.size)
	assert.NotNil(t, store.sessions)
	assert.Equal(t, store.tail, store.head.next)
	assert.Equal(t, store.head, store.tail.prev)
}

func TestNewStore_Defaults(t *testing.T) {
	store := NewStore(0, 0)
	assert.Equal(t, 256, store.maxSize)
	assert.Equal(t, time.Hour, store.ttl)
}

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(10, time.Hour)
	ctx := context.Background()

	// Miss before anything is stored
	_, err := store.Get(ctx, "nope")
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrArchiveNotFound, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)

	created, err := store.Create(ctx, "photos.zip", makeEntries(3))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "photos.zip", created.Name)
	assert.Equal(t, 3, created.EntryCount())

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Entries, got.Entries)
	assert.Nil(t, got.Plan)
}

func TestStore_GetReturnsSnapshot(t *testing.T) {
	store := NewStore(10, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "a.zip", makeEntries(1))
	require.NoError(t, err)

	first, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	first.Name = "mutated"
	first.Plan = &domain.RenamePlan{}

	second, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.zip", second.Name)
	assert.Nil(t, second.Plan)
}

func TestStore_Eviction(t *testing.T) {
	store := NewStore(2, time.Hour)
	ctx := context.Background()

	s1, err := store.Create(ctx, "one.zip", makeEntries(1))
	require.NoError(t, err)
	s2, err := store.Create(ctx, "two.zip", makeEntries(1))
	require.NoError(t, err)

	// Touch s1 so s2 becomes least recently used
	_, err = store.Get(ctx, s1.ID)
	require.NoError(t, err)

	s3, err := store.Create(ctx, "three.zip", makeEntries(1))
	require.NoError(t, err)

	_, err = store.Get(ctx, s2.ID)
	assert.Error(t, err) // Evicted

	_, err = store.Get(ctx, s1.ID)
	assert.NoError(t, err)
	_, err = store.Get(ctx, s3.ID)
	assert.NoError(t, err)

	stats := store.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, int64(1), stats.Evictions)
}

func TestStore_AcquireMarksSessionBusy(t *testing.T) {
	store := NewStore(10, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "a.zip", makeEntries(2))
	require.NoError(t, err)

	live, release, err := store.Acquire(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, live)
	assert.Equal(t, created.ID, live.ID)

	_, _, err = store.Acquire(ctx, created.ID)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrArchiveBusy, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)

	release()
	release() // Idempotent

	_, release2, err := store.Acquire(ctx, created.ID)
	require.NoError(t, err)
	release2()
}

func TestStore_BusySessionsAreNotEvicted(t *testing.T) {
	store := NewStore(1, time.Hour)
	ctx := context.Background()

	s1, err := store.Create(ctx, "busy.zip", makeEntries(1))
	require.NoError(t, err)

	_, release, err := store.Acquire(ctx, s1.ID)
	require.NoError(t, err)

	_, err = store.Create(ctx, "blocked.zip", makeEntries(1))
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrSessionsExceeded, appErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode)

	release()

	s3, err := store.Create(ctx, "allowed.zip", makeEntries(1))
	require.NoError(t, err)

	_, err = store.Get(ctx, s1.ID)
	assert.Error(t, err) // Evicted once idle
	_, err = store.Get(ctx, s3.ID)
	assert.NoError(t, err)
}

func TestStore_SavePlan(t *testing.T) {
	store := NewStore(10, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "a.zip", makeEntries(2))
	require.NoError(t, err)

	plan := &domain.RenamePlan{
		Pairs: []domain.RenamePair{
			{OriginalPath: "file000.txt", FinalPath: "renamed.txt"},
		},
		ChangedCount: 1,
	}
	require.NoError(t, store.SavePlan(ctx, created.ID, plan))

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Plan)
	assert.Equal(t, 1, got.Plan.ChangedCount)

	require.NoError(t, store.SavePlan(ctx, created.ID, nil))
	got, err = store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Plan)

	err = store.SavePlan(ctx, "missing", plan)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrArchiveNotFound, appErr.Code)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(10, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "a.zip", makeEntries(1))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Get(ctx, created.ID)
	assert.Error(t, err)

	err = store.Delete(ctx, created.ID)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrArchiveNotFound, appErr.Code)
}

func TestStore_TTLExpiry(t *testing.T) {
	store, clock := clockStore(10, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "a.zip", makeEntries(1))
	require.NoError(t, err)

	*clock = clock.Add(30 * time.Minute)
	_, err = store.Get(ctx, created.ID) // Refreshes LastAccess
	require.NoError(t, err)

	*clock = clock.Add(59 * time.Minute)
	_, err = store.Get(ctx, created.ID)
	require.NoError(t, err)

	*clock = clock.Add(61 * time.Minute)
	_, err = store.Get(ctx, created.ID)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.ErrArchiveNotFound, appErr.Code)

	stats := store.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, int64(1), stats.Expired)
}

func TestStore_SweepRemovesExpiredIdleSessions(t *testing.T) {
	store, clock := clockStore(10, time.Hour)
	ctx := context.Background()

	stale1, err := store.Create(ctx, "stale1.zip", makeEntries(1))
	require.NoError(t, err)
	_, err = store.Create(ctx, "stale2.zip", makeEntries(1))
	require.NoError(t, err)

	*clock = clock.Add(50 * time.Minute)
	fresh, err := store.Create(ctx, "fresh.zip", makeEntries(1))
	require.NoError(t, err)

	*clock = clock.Add(20 * time.Minute)
	assert.Equal(t, 2, store.Sweep())

	_, err = store.Get(ctx, stale1.ID)
	assert.Error(t, err)
	_, err = store.Get(ctx, fresh.ID)
	assert.NoError(t, err)

	stats := store.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, int64(2), stats.Expired)
}

func TestStore_SweepSkipsBusySessions(t *testing.T) {
	store, clock := clockStore(10, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "busy.zip", makeEntries(1))
	require.NoError(t, err)

	_, release, err := store.Acquire(ctx, created.ID)
	require.NoError(t, err)

	*clock = clock.Add(2 * time.Hour)
	assert.Equal(t, 0, store.Sweep())
	assert.Equal(t, 1, store.Stats().Size)

	release()
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Stats().Size)
}

func TestStore_StartSweeper(t *testing.T) {
	store := NewStore(10, time.Hour)
	stop := store.StartSweeper(time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	stop()
}

func TestStore_Stats(t *testing.T) {
	store := NewStore(10, time.Hour)
	ctx := context.Background()

	created, err := store.Create(ctx, "a.zip", makeEntries(1))
	require.NoError(t, err)

	_, err = store.Get(ctx, created.ID)
	require.NoError(t, err)
	_, err = store.Get(ctx, created.ID)
	require.NoError(t, err)
	_, err = store.Get(ctx, "missing")
	require.Error(t, err)

	stats := store.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 10, stats.MaxSize)
	assert.InDelta(t, 2.0/3.0, stats.HitRatio, 0.001)
}

func TestStore_HealthCheck(t *testing.T) {
	store := NewStore(10, time.Hour)
	ctx := context.Background()

	health := store.HealthCheck(ctx)
	assert.Equal(t, domain.HealthStatusHealthy, health.Status)

	for i := 0; i < 9; i++ {
		_, err := store.Create(ctx, fmt.Sprintf("s%d.zip", i), makeEntries(1))
		require.NoError(t, err)
	}

	health = store.HealthCheck(ctx)
	assert.Equal(t, domain.HealthStatusDegraded, health.Status)
	assert.Contains(t, health.Details, "warning")
}

func TestStore_GetStats(t *testing.T) {
	store := NewStore(10, 30*time.Minute)
	stats := store.GetStats(context.Background())

	assert.Equal(t, 10, stats["max_size"])
	assert.Equal(t, float64(1800), stats["ttl_seconds"])
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore(8, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := store.Create(ctx, fmt.Sprintf("s%d.zip", i), makeEntries(2))
			if err != nil {
				return
			}
			if _, release, err := store.Acquire(ctx, created.ID); err == nil {
				release()
			}
			_, _ = store.Get(ctx, created.ID)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, store.Stats().Size, 8)
}

// Feature: github.com/zipmint/archive-renamer, Property 24: Session store size limits
func TestProperty_StoreSizeLimits(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("store never exceeds maximum size", prop.ForAll(
		func(maxSize int, numSessions int) bool {
			store := NewStore(maxSize, time.Hour)
			ctx := context.Background()

			for i := 0; i < numSessions; i++ {
				if _, err := store.Create(ctx, fmt.Sprintf("s%d.zip", i), makeEntries(1)); err != nil {
					return false
				}
				if store.Stats().Size > maxSize {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 50),  // maxSize
		gen.IntRange(0, 100), // numSessions
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
