package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		want limitClass
	}{
		{"/v1/rename", classCompute},
		{"/v1/analyze", classCompute},
		{"/v1/archives", classUpload},
		{"/v1/archives/123e4567-e89b-12d3-a456-426614174000", classDefault},
		{"/v1/archives/123e4567-e89b-12d3-a456-426614174000/rename", classDefault},
		{"/v1/presets", classDefault},
		{"/v1/presets/camera-cleanup/export", classDefault},
		{"/health", classSystem},
		{"/metrics", classSystem},
		{"/swagger/index.html", classDefault},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.path), "path %s", tt.path)
	}
}

func TestNewRateLimiterClassLimits(t *testing.T) {
	rl := NewRateLimiter(2, 4)

	assert.Equal(t, classLimit{capacity: 4, refill: 2}, rl.limits[classDefault])
	assert.Equal(t, classLimit{capacity: 8, refill: 4}, rl.limits[classCompute])
	assert.Equal(t, classLimit{capacity: 2, refill: 1}, rl.limits[classUpload])
	assert.Equal(t, classLimit{capacity: 20, refill: 2}, rl.limits[classSystem])
}

func TestNewRateLimiterUploadFloor(t *testing.T) {
	// Halving a baseline of one must not produce a dead bucket.
	rl := NewRateLimiter(1, 1)

	assert.Equal(t, classLimit{capacity: 1, refill: 1}, rl.limits[classUpload])
}

func TestBucketTakeAndRefill(t *testing.T) {
	b := newBucket(2, 1)

	ok, remaining, _ := b.take()
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, remaining, _ = b.take()
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	ok, _, retry := b.take()
	assert.False(t, ok)
	assert.Greater(t, retry, time.Duration(0))
	assert.LessOrEqual(t, retry, time.Second)

	// Rewind the refill clock instead of sleeping.
	b.mu.Lock()
	b.last = time.Now().Add(-2 * time.Second)
	b.mu.Unlock()

	ok, _, _ = b.take()
	assert.True(t, ok)
}

func TestBucketRefillCapsAtCapacity(t *testing.T) {
	b := newBucket(2, 10)

	b.mu.Lock()
	b.last = time.Now().Add(-time.Minute)
	b.mu.Unlock()

	ok, remaining, _ := b.take()
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)
}

func TestMiddlewareEnforcesBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	app := fiber.New()
	app.Use(rl.Middleware())
	app.Get("/v1/archives/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Distinct archive IDs share one bucket.
	for _, id := range []string{"first", "second"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/v1/archives/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/archives/third", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	var payload struct {
		Status string `json:"status"`
		Code   string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, "error", payload.Status)
	assert.Equal(t, "RATE_LIMIT", payload.Code)
}

func TestMiddlewareClassIsolation(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	app := fiber.New()
	app.Use(rl.Middleware())
	app.Get("/v1/archives/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	app.Post("/v1/rename", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/archives/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/v1/archives/def", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// The compute class holds its own budget.
	resp, err = app.Test(httptest.NewRequest("POST", "/v1/rename", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSweepIdle(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	rl.bucketFor("1.2.3.4", classDefault)
	rl.bucketFor("1.2.3.4", classCompute)
	rl.bucketFor("5.6.7.8", classDefault)
	require.Len(t, rl.buckets, 3)

	assert.Equal(t, 0, rl.sweepIdle(time.Now().Add(-time.Hour)))
	assert.Len(t, rl.buckets, 3)

	assert.Equal(t, 3, rl.sweepIdle(time.Now().Add(time.Second)))
	assert.Empty(t, rl.buckets)
}

func TestStartCleanupRoutineStops(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	stop := rl.StartCleanupRoutine()
	stop()
}
