package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/klauspost/compress/flate"

	"github.com/zipmint/archive-renamer/internal/analyzer"
	"github.com/zipmint/archive-renamer/internal/api"
	"github.com/zipmint/archive-renamer/internal/archive"
	"github.com/zipmint/archive-renamer/internal/config"
	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/health"
	"github.com/zipmint/archive-renamer/internal/preset"
	"github.com/zipmint/archive-renamer/internal/rename"
	"github.com/zipmint/archive-renamer/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		return
	}

	// Initialize components
	presets := preset.NewStore(cfg.Storage.PresetDir)
	ctx := context.Background()
	if err := presets.Load(ctx); err != nil {
		fmt.Printf("Failed to load presets: %v\n", err)
		return
	}

	sessions := session.NewStore(cfg.Session.MaxSessions, cfg.Session.TTL)
	reader := archive.NewReader(cfg.Limits.MaxEntries)
	renamer := rename.NewEngine()
	listingAnalyzer := analyzer.NewAnalyzer()
	validator := domain.NewValidator(cfg.Limits.MaxEntries, cfg.Limits.MaxRuleGroups, cfg.Limits.MaxRulesPerGroup)
	healthChecker := health.NewSystemHealthChecker(sessions, presets)

	// Build a synthetic photo-dump listing for the load test
	entries := buildTestListing(10, 100)
	groups := []domain.RuleGroup{
		{
			ID:         "bench-replace",
			Scope:      domain.ScopeExtension,
			ScopeValue: ".jpg",
			Rules: []domain.Rule{
				{Type: domain.RuleReplace, Find: "IMG_", Replace: "photo_"},
				{Type: domain.RuleLowercase},
			},
		},
		{
			ID:    "bench-clean",
			Scope: domain.ScopeGlobal,
			Rules: []domain.Rule{
				{Type: domain.RuleRemoveSpecial},
			},
		},
	}

	renamePayload, err := json.Marshal(map[string]any{
		"entries":    entries,
		"ruleGroups": groups,
	})
	if err != nil {
		fmt.Printf("Failed to marshal rename payload: %v\n", err)
		return
	}
	analyzePayload, err := json.Marshal(map[string]any{"entries": entries})
	if err != nil {
		fmt.Printf("Failed to marshal analyze payload: %v\n", err)
		return
	}

	// Start HTTP server without a rate limiter so the harness is not throttled
	routerConfig := api.RouterConfig{
		CORSOrigins: cfg.Security.CORSOrigins,
		BodyLimit:   cfg.Server.BodyLimit,
	}
	result := api.SetupRouterWithDeps(api.RouterDependencies{
		Renamer:       renamer,
		Analyzer:      listingAnalyzer,
		Reader:        reader,
		Sessions:      sessions,
		Presets:       presets,
		Validator:     validator,
		HealthChecker: healthChecker,
		Exporter:      presets,
	}, routerConfig)
	app := result.App
	defer result.Cleanup()

	go func() {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			fmt.Printf("Server failed: %v\n", err)
		}
	}()

	// Wait for server to start
	time.Sleep(100 * time.Millisecond)

	renameURL := fmt.Sprintf("http://localhost:%d/v1/rename", cfg.Server.Port)
	analyzeURL := fmt.Sprintf("http://localhost:%d/v1/analyze", cfg.Server.Port)

	// Pre-warm the server before measuring
	fmt.Printf("Pre-warming server...\n")
	client := &http.Client{
		Timeout: 2 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	for i := 0; i < 4; i++ {
		resp, err := client.Post(renameURL, "application/json", bytes.NewReader(renamePayload))
		if err == nil {
			_ = resp.Body.Close()
		}
		resp, err = client.Post(analyzeURL, "application/json", bytes.NewReader(analyzePayload))
		if err == nil {
			_ = resp.Body.Close()
		}
	}

	// Performance test parameters
	const (
		numConcurrentRequests = 50
		numRequestsPerWorker  = 20
		totalRequests         = numConcurrentRequests * numRequestsPerWorker
	)

	fmt.Printf("Starting performance test with %d concurrent workers, %d rename requests each (%d total, %d entries per listing)\n",
		numConcurrentRequests, numRequestsPerWorker, totalRequests, len(entries))

	// Performance metrics
	var (
		successCount int64
		errorCount   int64
		totalLatency time.Duration
		maxLatency   time.Duration
		minLatency   = time.Hour // Initialize to a large value
		mu           sync.Mutex
	)

	startTime := time.Now()
	var wg sync.WaitGroup

	// Launch concurrent workers
	for i := 0; i < numConcurrentRequests; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			client := &http.Client{
				Timeout: 2 * time.Second,
				Transport: &http.Transport{
					MaxIdleConns:        100,
					MaxIdleConnsPerHost: 100,
					IdleConnTimeout:     30 * time.Second,
				},
			}

			for j := 0; j < numRequestsPerWorker; j++ {
				// Measure request latency
				reqStart := time.Now()

				resp, err := client.Post(renameURL, "application/json", bytes.NewReader(renamePayload))

				latency := time.Since(reqStart)

				mu.Lock()
				if err != nil || resp.StatusCode != http.StatusOK {
					errorCount++
					if err == nil {
						_ = resp.Body.Close()
					}
				} else {
					successCount++
					_ = resp.Body.Close()

					totalLatency += latency
					if latency > maxLatency {
						maxLatency = latency
					}
					if latency < minLatency {
						minLatency = latency
					}
				}
				mu.Unlock()
			}
		}(i)
	}

	// Wait for all workers to complete
	wg.Wait()
	totalTime := time.Since(startTime)

	// Calculate metrics
	avgLatency := time.Duration(0)
	if successCount > 0 {
		avgLatency = totalLatency / time.Duration(successCount)
	}

	requestsPerSecond := float64(totalRequests) / totalTime.Seconds()

	// Print results
	fmt.Printf("\n=== Performance Test Results ===\n")
	fmt.Printf("Total time: %v\n", totalTime)
	fmt.Printf("Total requests: %d\n", totalRequests)
	fmt.Printf("Successful requests: %d\n", successCount)
	fmt.Printf("Failed requests: %d\n", errorCount)
	fmt.Printf("Success rate: %.2f%%\n", float64(successCount)/float64(totalRequests)*100)
	fmt.Printf("Requests per second: %.2f\n", requestsPerSecond)
	fmt.Printf("Average latency: %v\n", avgLatency)
	fmt.Printf("Min latency: %v\n", minLatency)
	fmt.Printf("Max latency: %v\n", maxLatency)

	// Exercise the full upload flow: ZIP parse, session create, rename, restore
	fmt.Printf("\n=== Upload Flow Test ===\n")
	uploadTestStart := time.Now()

	zipPayload, err := buildTestZip(entries)
	if err != nil {
		fmt.Printf("Failed to build test archive: %v\n", err)
		return
	}
	fmt.Printf("Test archive: %d entries, %d bytes\n", len(entries), len(zipPayload))

	uploadClient := &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     30 * time.Second,
		},
	}

	archivesURL := fmt.Sprintf("http://localhost:%d/v1/archives", cfg.Server.Port)

	var uploadLatencies []time.Duration
	var lastArchiveID string
	for i := 0; i < 10; i++ {
		body, contentType, err := buildUploadForm(zipPayload)
		if err != nil {
			fmt.Printf("Failed to build upload form: %v\n", err)
			return
		}

		reqStart := time.Now()
		resp, err := uploadClient.Post(archivesURL, contentType, body)
		latency := time.Since(reqStart)

		if err != nil {
			fmt.Printf("Upload failed: %v\n", err)
			continue
		}
		if resp.StatusCode == http.StatusCreated {
			uploadLatencies = append(uploadLatencies, latency)
			lastArchiveID = decodeArchiveID(resp.Body)
		}
		_ = resp.Body.Close()
	}

	if len(uploadLatencies) > 0 {
		var totalUploadLatency time.Duration
		for _, lat := range uploadLatencies {
			totalUploadLatency += lat
		}
		fmt.Printf("Average upload latency: %v\n", totalUploadLatency/time.Duration(len(uploadLatencies)))
	}

	// Run one rename and one restore against the last session
	if lastArchiveID != "" {
		sessionPayload, _ := json.Marshal(map[string]any{"ruleGroups": groups})

		reqStart := time.Now()
		resp, err := uploadClient.Post(
			fmt.Sprintf("%s/%s/rename", archivesURL, lastArchiveID),
			"application/json",
			bytes.NewReader(sessionPayload),
		)
		if err == nil {
			fmt.Printf("Session rename latency: %v (HTTP %d)\n", time.Since(reqStart), resp.StatusCode)
			_ = resp.Body.Close()
		}

		reqStart = time.Now()
		resp, err = uploadClient.Post(
			fmt.Sprintf("%s/%s/restore", archivesURL, lastArchiveID),
			"application/json",
			nil,
		)
		if err == nil {
			fmt.Printf("Session restore latency: %v (HTTP %d)\n", time.Since(reqStart), resp.StatusCode)
			_ = resp.Body.Close()
		}
	}

	uploadTestTime := time.Since(uploadTestStart)
	fmt.Printf("Upload flow test completed in: %v\n", uploadTestTime)

	// Get session store statistics
	stats := sessions.Stats()
	fmt.Printf("Session store size: %d/%d\n", stats.Size, stats.MaxSize)
	fmt.Printf("Session hits: %d\n", stats.Hits)
	fmt.Printf("Session misses: %d\n", stats.Misses)
	if stats.Hits+stats.Misses > 0 {
		hitRate := float64(stats.Hits) / float64(stats.Hits+stats.Misses) * 100
		fmt.Printf("Session hit rate: %.2f%%\n", hitRate)
	}

	// Shutdown server
	if err := app.Shutdown(); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	fmt.Printf("\n=== Performance Requirements Check ===\n")
	if requestsPerSecond >= 100 {
		fmt.Printf("✓ Concurrent request handling: %.2f RPS (target: >100)\n", requestsPerSecond)
	} else {
		fmt.Printf("✗ Concurrent request handling: %.2f RPS (target: >100)\n", requestsPerSecond)
	}

	if avgLatency < 10*time.Millisecond {
		fmt.Printf("✓ Average response time: %v (target: <10ms)\n", avgLatency)
	} else {
		fmt.Printf("✗ Average response time: %v (target: <10ms)\n", avgLatency)
	}

	fmt.Printf("Performance test completed successfully\n")
}

// buildTestListing fabricates a photo-dump style listing: dirCount albums
// holding filesPerDir numbered JPEGs each.
func buildTestListing(dirCount, filesPerDir int) []domain.ArchiveEntry {
	entries := make([]domain.ArchiveEntry, 0, dirCount*(filesPerDir+1))
	for d := 0; d < dirCount; d++ {
		dir := fmt.Sprintf("Album %02d/", d)
		entries = append(entries, domain.ArchiveEntry{Path: dir, IsDirectory: true})
		for f := 0; f < filesPerDir; f++ {
			entries = append(entries, domain.ArchiveEntry{
				Path: fmt.Sprintf("%sIMG_%04d.jpg", dir, f),
				Size: int64(1024 * (f + 1)),
			})
		}
	}
	return entries
}

// buildTestZip writes the listing into an in-memory ZIP container. Member
// content is a single byte; only the central directory matters to the server.
func buildTestZip(entries []domain.ArchiveEntry) ([]byte, error) {
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	for _, entry := range entries {
		if entry.IsDirectory {
			if _, err := zw.Create(entry.Path); err != nil {
				return nil, err
			}
			continue
		}
		w, err := zw.Create(entry.Path)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte{0}); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildUploadForm wraps the ZIP payload in a multipart body
func buildUploadForm(zipPayload []byte) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("archive", "benchmark.zip")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(zipPayload); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

// decodeArchiveID pulls the session id out of an upload response
func decodeArchiveID(body io.Reader) string {
	var response struct {
		Data struct {
			Archive struct {
				ID string `json:"id"`
			} `json:"archive"`
		} `json:"data"`
	}
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return ""
	}
	return response.Data.Archive.ID
}
