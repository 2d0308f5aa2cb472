package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// TestAPIEndpointsIntegration tests all API endpoints work correctly
func TestAPIEndpointsIntegration(t *testing.T) {
	mocks := newHandlerMocks()
	mockExporter := new(MockPresetExporter)

	// Configure mocks for successful operations
	mocks.validator.On("ValidateEntries", mock.Anything).Return(nil)
	mocks.validator.On("ValidateRuleGroups", mock.Anything).Return(nil)
	mocks.renamer.On("Rename", mock.Anything, mock.Anything).Return(samplePlan())
	mocks.analyzer.On("Analyze", mock.Anything).Return(sampleReport())
	mocks.reader.On("ReadListing", mock.Anything, mock.Anything, mock.Anything).Return(sampleEntries(), nil)
	mocks.sessions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(sampleSession("arc-int"), nil)
	mocks.sessions.On("GetStats", mock.Anything).Return(map[string]any{"size": 1})
	mocks.presets.On("GetAllPresets", mock.Anything).Return([]domain.Preset{}, nil)
	mocks.presets.On("GetStats", mock.Anything).Return(map[string]any{"preset_count": 0})
	mockExporter.On("ExportYAML", mock.Anything, "preset-1").Return([]byte("name: photo-cleanup\n"), nil)
	mocks.health.On("CheckHealth", mock.Anything).Return(domain.SystemHealth{
		Status: domain.HealthStatusHealthy,
		Components: map[string]domain.HealthStatus{
			"sessions": {Status: domain.HealthStatusHealthy, Timestamp: time.Now()},
			"presets":  {Status: domain.HealthStatusHealthy, Timestamp: time.Now()},
		},
		Timestamp: time.Now(),
	})

	config := RouterConfig{
		CORSOrigins: []string{},
		BodyLimit:   1048576,
	}
	result := SetupRouterWithDeps(RouterDependencies{
		Renamer:       mocks.renamer,
		Analyzer:      mocks.analyzer,
		Reader:        mocks.reader,
		Sessions:      mocks.sessions,
		Presets:       mocks.presets,
		Validator:     mocks.validator,
		HealthChecker: mocks.health,
		Exporter:      mockExporter,
	}, config)
	defer result.Cleanup()
	app := result.App

	t.Run("Health endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		resp, err := app.Test(req, 5000) // 5 second timeout

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var response map[string]interface{}
		err = json.NewDecoder(resp.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, "healthy", response["status"])
		assert.Contains(t, response, "timestamp")
	})

	t.Run("Metrics endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/metrics", nil)
		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var response SuccessResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, "success", response.Status)

		data, ok := response.Data.(map[string]interface{})
		assert.True(t, ok)
		assert.Contains(t, data, "sessions")
		assert.Contains(t, data, "presets")
		assert.Contains(t, data, "uptime")
	})

	t.Run("Rename endpoint", func(t *testing.T) {
		reqBody := RenameRequest{Entries: sampleEntries(), RuleGroups: sampleGroups()}
		jsonBody, _ := json.Marshal(reqBody)
		req := httptest.NewRequest("POST", "/v1/rename", bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var response SuccessResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, "success", response.Status)

		data, ok := response.Data.(map[string]interface{})
		assert.True(t, ok)
		assert.Contains(t, data, "pairs")
		assert.Contains(t, data, "changedCount")
	})

	t.Run("Analyze endpoint", func(t *testing.T) {
		reqBody := AnalyzeRequest{Entries: sampleEntries()}
		jsonBody, _ := json.Marshal(reqBody)
		req := httptest.NewRequest("POST", "/v1/analyze", bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var response SuccessResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		assert.NoError(t, err)

		data, ok := response.Data.(map[string]interface{})
		assert.True(t, ok)
		assert.Contains(t, data, "report")
	})

	t.Run("Archive upload endpoint", func(t *testing.T) {
		body, contentType := buildArchiveForm(t, "archive", "photos.zip", []byte("zip payload"))
		req := httptest.NewRequest("POST", "/v1/archives", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var response SuccessResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		assert.NoError(t, err)

		data, ok := response.Data.(map[string]interface{})
		assert.True(t, ok)
		assert.Contains(t, data, "archive")
		assert.Contains(t, data, "report")
	})

	t.Run("Presets listing endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/presets", nil)
		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var response SuccessResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		assert.NoError(t, err)

		data, ok := response.Data.(map[string]interface{})
		assert.True(t, ok)
		assert.Contains(t, data, "presets")
		assert.Contains(t, data, "count")
	})

	t.Run("Preset export endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/presets/preset-1/export", nil)
		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "application/x-yaml", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "preset-1.preset.yaml")
	})

	t.Run("Security headers are present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		// Check for required security headers
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
		assert.Equal(t, "1; mode=block", resp.Header.Get("X-XSS-Protection"))
		assert.Contains(t, resp.Header.Get("Strict-Transport-Security"), "max-age=")
		assert.NotEmpty(t, resp.Header.Get("Referrer-Policy"))
		assert.NotEmpty(t, resp.Header.Get("Permissions-Policy"))
	})

	t.Run("Request ID is generated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		requestID := resp.Header.Get("X-Request-ID")
		assert.NotEmpty(t, requestID)
		assert.Len(t, requestID, 36)       // UUID format length
		assert.Contains(t, requestID, "-") // UUID contains hyphens
	})

	// Verify mocks were called
	mocks.renamer.AssertExpectations(t)
	mocks.analyzer.AssertExpectations(t)
	mocks.reader.AssertExpectations(t)
	mockExporter.AssertExpectations(t)
}

// TestConcurrentRequests tests that the API can handle concurrent requests
func TestConcurrentRequests(t *testing.T) {
	mocks := newHandlerMocks()

	mocks.validator.On("ValidateEntries", mock.Anything).Return(nil)
	mocks.validator.On("ValidateRuleGroups", mock.Anything).Return(nil)
	mocks.renamer.On("Rename", mock.Anything, mock.Anything).Return(samplePlan())

	config := RouterConfig{
		CORSOrigins: []string{},
		BodyLimit:   1048576,
	}
	app := SetupRouter(mocks.renamer, mocks.analyzer, mocks.reader, mocks.sessions, mocks.presets, mocks.validator, mocks.health, config)

	// Test concurrent requests
	const numRequests = 10
	results := make(chan int, numRequests)

	for i := 0; i < numRequests; i++ {
		go func() {
			reqBody := RenameRequest{Entries: sampleEntries(), RuleGroups: sampleGroups()}
			jsonBody, _ := json.Marshal(reqBody)
			req := httptest.NewRequest("POST", "/v1/rename", bytes.NewReader(jsonBody))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, 5000)
			if err != nil {
				results <- 0
				return
			}
			results <- resp.StatusCode
		}()
	}

	// Collect results
	successCount := 0
	for i := 0; i < numRequests; i++ {
		statusCode := <-results
		if statusCode == 200 {
			successCount++
		}
	}

	// All requests should succeed
	assert.Equal(t, numRequests, successCount, "All concurrent requests should succeed")
}

// TestErrorHandling tests error responses
func TestErrorHandling(t *testing.T) {
	mocks := newHandlerMocks()

	config := RouterConfig{
		CORSOrigins: []string{},
		BodyLimit:   1048576,
	}
	app := SetupRouter(mocks.renamer, mocks.analyzer, mocks.reader, mocks.sessions, mocks.presets, mocks.validator, mocks.health, config)

	t.Run("Invalid JSON returns 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/v1/rename", bytes.NewReader([]byte("invalid json")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var response ErrorResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, "error", response.Status)
		assert.NotEmpty(t, response.Code)
		assert.NotEmpty(t, response.Message)
	})

	t.Run("Empty listing returns 422", func(t *testing.T) {
		// Configure validator to reject the empty listing
		mocks.validator.On("ValidateEntries", mock.Anything).Return(
			domain.NewAppError(domain.ErrValidationFailed, "Listing must contain at least one entry", 422, nil)).Once()

		jsonBody, _ := json.Marshal(AnalyzeRequest{Entries: []domain.ArchiveEntry{}})
		req := httptest.NewRequest("POST", "/v1/analyze", bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 422, resp.StatusCode)

		var response ErrorResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, "error", response.Status)
		assert.Equal(t, domain.ErrValidationFailed, response.Code)
	})

	t.Run("Unknown archive returns 404", func(t *testing.T) {
		mocks.sessions.On("Get", mock.Anything, "no-such-archive").Return(nil,
			domain.NewAppError(domain.ErrArchiveNotFound, "Archive session not found", 404, nil))

		req := httptest.NewRequest("GET", "/v1/archives/no-such-archive", nil)
		resp, err := app.Test(req, 5000)

		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		var response ErrorResponse
		err = json.NewDecoder(resp.Body).Decode(&response)
		assert.NoError(t, err)
		assert.Equal(t, domain.ErrArchiveNotFound, response.Code)
	})
}
