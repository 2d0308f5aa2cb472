package middleware

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// limitClass buckets routes by cost. Buckets are keyed per client and class
// rather than per raw path, so archive and preset IDs in the URL do not mint
// fresh buckets.
type limitClass string

const (
	classDefault limitClass = "default" // session and preset operations
	classCompute limitClass = "compute" // stateless rename and analyze
	classUpload  limitClass = "upload"  // multipart archive ingestion
	classSystem  limitClass = "system"  // health and metrics probes
)

// classify maps a request path onto its limit class.
func classify(path string) limitClass {
	switch {
	case path == "/v1/rename" || path == "/v1/analyze":
		return classCompute
	case path == "/v1/archives":
		return classUpload
	case strings.HasPrefix(path, "/v1/archives/"):
		return classDefault
	case path == "/health" || path == "/metrics":
		return classSystem
	}
	return classDefault
}

// classLimit is the bucket shape for one class: burst capacity and the
// steady refill rate in tokens per second.
type classLimit struct {
	capacity int
	refill   int
}

// bucket is a token bucket refilled lazily on each take.
type bucket struct {
	mu       sync.Mutex
	capacity int
	refill   int
	tokens   float64
	last     time.Time
}

func newBucket(capacity, refill int) *bucket {
	return &bucket{
		capacity: capacity,
		refill:   refill,
		tokens:   float64(capacity),
		last:     time.Now(),
	}
}

// take spends one token if available. On refusal it reports how long until
// the next token accrues.
func (b *bucket) take() (ok bool, remaining int, retry time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.last).Seconds()
	b.tokens = math.Min(float64(b.capacity), b.tokens+elapsed*float64(b.refill))
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, int(b.tokens), 0
	}
	wait := time.Duration((1 - b.tokens) / float64(b.refill) * float64(time.Second))
	return false, 0, wait
}

// idleSince reports whether the bucket saw no traffic after the cutoff.
func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last.Before(cutoff)
}

// RateLimiter throttles clients per route class using token buckets.
type RateLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*bucket
	limits  map[limitClass]classLimit
}

// NewRateLimiter derives per-class limits from the configured baseline:
// stateless compute endpoints get double the allowance, archive uploads
// half, and system probes a small fixed budget.
func NewRateLimiter(rps, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limits: map[limitClass]classLimit{
			classDefault: {capacity: burst, refill: rps},
			classCompute: {capacity: burst * 2, refill: rps * 2},
			classUpload:  {capacity: max(burst/2, 1), refill: max(rps/2, 1)},
			classSystem:  {capacity: 20, refill: 2},
		},
	}
}

// bucketFor returns the bucket for a client and class, creating it on first
// use.
func (rl *RateLimiter) bucketFor(clientIP string, class limitClass) *bucket {
	key := clientIP + "|" + string(class)

	rl.mu.RLock()
	b, found := rl.buckets[key]
	rl.mu.RUnlock()
	if found {
		return b
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b, found := rl.buckets[key]; found {
		return b
	}
	limit := rl.limits[class]
	b = newBucket(limit.capacity, limit.refill)
	rl.buckets[key] = b
	return b
}

// Middleware returns a Fiber handler enforcing the per-class limits. Clients
// are identified by IP; the service carries no authentication, so there is
// no stronger identity to key on.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		class := classify(c.Path())
		b := rl.bucketFor(c.IP(), class)
		ok, remaining, retry := b.take()

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.limits[class].capacity))
		if !ok {
			seconds := int(math.Ceil(retry.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Set("Retry-After", strconv.Itoa(seconds))
			c.Set("X-RateLimit-Remaining", "0")

			appErr := domain.NewAppError(
				domain.ErrRateLimit,
				"Rate limit exceeded",
				fiber.StatusTooManyRequests,
				map[string]any{
					"endpoint":   c.Path(),
					"retryAfter": seconds,
				},
			).WithContext(c.Context(), "rate_limit")

			return c.Status(appErr.StatusCode).JSON(map[string]any{
				"status":  "error",
				"code":    appErr.Code,
				"message": appErr.Message,
				"details": appErr.Details,
			})
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		return c.Next()
	}
}

// sweepIdle drops buckets with no traffic since the cutoff and returns how
// many were removed.
func (rl *RateLimiter) sweepIdle(cutoff time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, b := range rl.buckets {
		if b.idleSince(cutoff) {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine sweeps hour-idle buckets every ten minutes. The
// returned stop function cancels the routine.
func (rl *RateLimiter) StartCleanupRoutine() (stop func()) {
	ticker := time.NewTicker(10 * time.Minute)
	done := make(chan struct{})

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.sweepIdle(time.Now().Add(-time.Hour))
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }
}
