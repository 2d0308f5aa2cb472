package session

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// node represents a node in the doubly-linked list
type node struct {
	id      string
	session *domain.Session
	runMu   sync.Mutex
	prev    *node
	next    *node
}

// Store implements the SessionRepository interface: an in-memory session
// store with LRU eviction and TTL expiry. Every session carries a run lock
// so rename and analyze runs over the same listing never interleave; the
// lock is only ever try-acquired under the store mutex, so nothing blocks
// on a busy session.
type Store struct {
	maxSize int
	ttl     time.Duration
	size    int

	// Doubly-linked list for LRU ordering
	head *node
	tail *node

	// HashMap for O(1) lookups
	sessions map[string]*node

	// Thread safety
	mutex sync.Mutex

	// Atomic counters for metrics
	hits      int64
	misses    int64
	evictions int64
	expired   int64

	// Health monitoring
	lastHealthCheck time.Time
	healthMutex     sync.RWMutex

	now func() time.Time
}

// NewStore creates a session store holding at most maxSize sessions, each
// expiring ttl after its last access. Non-positive arguments fall back to
// 256 sessions and one hour.
func NewStore(maxSize int, ttl time.Duration) *Store {
	if maxSize <= 0 {
		maxSize = 256
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	// Create dummy head and tail nodes for easier list manipulation
	head := &node{}
	tail := &node{}
	head.next = tail
	tail.prev = head

	return &Store{
		maxSize:         maxSize,
		ttl:             ttl,
		head:            head,
		tail:            tail,
		sessions:        make(map[string]*node),
		lastHealthCheck: time.Now(),
		now:             time.Now,
	}
}

// Create registers a new session for an uploaded listing and returns a
// snapshot of it. When the store is full the least recently used idle
// session is evicted first; if every session is mid-run the store refuses
// the upload.
func (s *Store) Create(ctx context.Context, name string, entries []domain.ArchiveEntry) (*domain.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.size >= s.maxSize && !s.evictIdleLRU() {
		return nil, domain.NewAppError(
			domain.ErrSessionsExceeded,
			"session store is full and every session has a run in progress",
			http.StatusServiceUnavailable,
			map[string]int{"max_sessions": s.maxSize},
		)
	}

	now := s.now()
	newNode := &node{
		id: uuid.NewString(),
		session: &domain.Session{
			Name:       name,
			Entries:    entries,
			CreatedAt:  now,
			LastAccess: now,
		},
	}
	newNode.session.ID = newNode.id

	s.addToFront(newNode)
	s.sessions[newNode.id] = newNode
	s.size++

	return snapshot(newNode), nil
}

// Get returns a snapshot of the session and marks it recently used.
func (s *Store) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	found, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	found.session.LastAccess = s.now()
	s.moveToFront(found)
	return snapshot(found), nil
}

// Acquire returns the live session with its run lock held. A session whose
// lock is already held by another run is reported busy instead of waited
// on. The returned release function is idempotent.
func (s *Store) Acquire(ctx context.Context, id string) (*domain.Session, func(), error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	found, err := s.lookup(id)
	if err != nil {
		return nil, nil, err
	}

	if !found.runMu.TryLock() {
		return nil, nil, domain.NewAppError(
			domain.ErrArchiveBusy,
			"another run is in progress for this archive",
			http.StatusConflict,
			nil,
		)
	}

	found.session.LastAccess = s.now()
	s.moveToFront(found)

	var once sync.Once
	release := func() {
		once.Do(found.runMu.Unlock)
	}
	return found.session, release, nil
}

// SavePlan records the latest rename plan on the session; a nil plan clears
// the recorded one.
func (s *Store) SavePlan(ctx context.Context, id string, plan *domain.RenamePlan) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	found, err := s.lookup(id)
	if err != nil {
		return err
	}

	found.session.Plan = plan
	found.session.LastAccess = s.now()
	s.moveToFront(found)
	return nil
}

// Delete removes the session. A session mid-run is removed immediately; the
// running handler keeps its own reference and its release becomes a no-op
// on an unreachable lock.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	found, exists := s.sessions[id]
	if !exists {
		return notFound(id)
	}

	s.removeSession(found)
	return nil
}

// Sweep removes every expired idle session and returns how many it removed.
func (s *Store) Sweep() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	removed := 0

	// The list is ordered by recency, so the walk from the back can stop at
	// the first live session.
	for n := s.tail.prev; n != s.head; {
		prev := n.prev
		if now.Sub(n.session.LastAccess) <= s.ttl {
			break
		}
		if n.runMu.TryLock() {
			n.runMu.Unlock()
			s.removeSession(n)
			atomic.AddInt64(&s.expired, 1)
			removed++
		}
		n = prev
	}

	return removed
}

// StartSweeper starts a background routine that sweeps expired sessions.
// Returns a stop function to cancel the routine.
func (s *Store) StartSweeper(interval time.Duration) (stop func()) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}

// Stats returns current store statistics
func (s *Store) Stats() domain.StoreStats {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	hits := atomic.LoadInt64(&s.hits)
	misses := atomic.LoadInt64(&s.misses)
	total := hits + misses

	var hitRatio float64
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return domain.StoreStats{
		Hits:      hits,
		Misses:    misses,
		Size:      s.size,
		MaxSize:   s.maxSize,
		HitRatio:  hitRatio,
		Evictions: atomic.LoadInt64(&s.evictions),
		Expired:   atomic.LoadInt64(&s.expired),
	}
}

// GetStats returns store statistics for the metrics endpoint
func (s *Store) GetStats(ctx context.Context) map[string]any {
	stats := s.Stats()
	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"size":        stats.Size,
		"max_size":    stats.MaxSize,
		"hit_ratio":   stats.HitRatio,
		"evictions":   stats.Evictions,
		"expired":     stats.Expired,
		"ttl_seconds": s.ttl.Seconds(),
	}
}

// HealthCheck performs a health check on the session store
func (s *Store) HealthCheck(ctx context.Context) domain.HealthStatus {
	s.healthMutex.Lock()
	defer s.healthMutex.Unlock()

	now := time.Now()
	s.lastHealthCheck = now

	stats := s.Stats()

	status := domain.HealthStatusHealthy
	message := "Session store is operating normally"
	details := map[string]any{
		"size":      stats.Size,
		"max_size":  stats.MaxSize,
		"hit_ratio": stats.HitRatio,
		"evictions": stats.Evictions,
		"expired":   stats.Expired,
	}

	// Check for potential issues
	if stats.Size >= int(float64(stats.MaxSize)*0.9) {
		status = domain.HealthStatusDegraded
		message = "Session store is near capacity"
		details["warning"] = "Store utilization above 90%"
	}

	return domain.HealthStatus{
		Status:    status,
		Message:   message,
		Details:   details,
		Timestamp: now,
	}
}

// lookup finds a live node, expiring it on the spot if its TTL has lapsed.
// Caller must hold the store mutex.
func (s *Store) lookup(id string) (*node, error) {
	found, exists := s.sessions[id]
	if !exists {
		atomic.AddInt64(&s.misses, 1)
		return nil, notFound(id)
	}

	if s.now().Sub(found.session.LastAccess) > s.ttl {
		if found.runMu.TryLock() {
			found.runMu.Unlock()
			s.removeSession(found)
			atomic.AddInt64(&s.expired, 1)
		}
		atomic.AddInt64(&s.misses, 1)
		return nil, notFound(id)
	}

	atomic.AddInt64(&s.hits, 1)
	return found, nil
}

// evictIdleLRU removes the least recently used session that is not mid-run.
// Caller must hold the store mutex. Returns false when every session is busy.
func (s *Store) evictIdleLRU() bool {
	for n := s.tail.prev; n != s.head; n = n.prev {
		if !n.runMu.TryLock() {
			continue
		}
		n.runMu.Unlock()
		s.removeSession(n)
		atomic.AddInt64(&s.evictions, 1)
		return true
	}
	return false
}

// removeSession unlinks a node from both the list and the map.
// Caller must hold the store mutex.
func (s *Store) removeSession(n *node) {
	s.removeNode(n)
	delete(s.sessions, n.id)
	s.size--
}

// snapshot copies the session header so callers never share the live
// struct. The entry slice and plan are immutable once stored, so sharing
// them is safe.
func snapshot(n *node) *domain.Session {
	copied := *n.session
	return &copied
}

func notFound(id string) *domain.AppError {
	return domain.NewAppError(
		domain.ErrArchiveNotFound,
		"archive session not found or expired",
		http.StatusNotFound,
		map[string]string{"id": id},
	)
}

// moveToFront moves a node to the front of the list (most recently used)
func (s *Store) moveToFront(n *node) {
	s.removeNode(n)
	s.addToFront(n)
}

// addToFront adds a node to the front of the list
func (s *Store) addToFront(n *node) {
	n.prev = s.head
	n.next = s.head.next
	s.head.next.prev = n
	s.head.next = n
}

// removeNode removes a node from the list
func (s *Store) removeNode(n *node) {
	n.prev.next = n.next
	n.next.prev = n.prev
}
