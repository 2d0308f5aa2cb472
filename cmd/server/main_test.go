package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipmint/archive-renamer/internal/config"
	"github.com/zipmint/archive-renamer/internal/domain"
	"github.com/zipmint/archive-renamer/internal/preset"
	"github.com/zipmint/archive-renamer/internal/session"
)

func TestGracefulShutdown_SIGINT(t *testing.T) {
	tempDir := t.TempDir()

	store := preset.NewStore(tempDir)

	ctx := context.Background()
	err := store.Load(ctx)
	require.NoError(t, err)

	testPreset := createTestPreset()
	err = store.CreatePreset(ctx, testPreset)
	require.NoError(t, err)

	testGracefulShutdownSignal(t, store, syscall.SIGINT)
}

func TestGracefulShutdown_SIGTERM(t *testing.T) {
	tempDir := t.TempDir()

	store := preset.NewStore(tempDir)

	ctx := context.Background()
	err := store.Load(ctx)
	require.NoError(t, err)

	testPreset := createTestPreset()
	err = store.CreatePreset(ctx, testPreset)
	require.NoError(t, err)

	testGracefulShutdownSignal(t, store, syscall.SIGTERM)
}

func TestPresetPersistenceDuringShutdown(t *testing.T) {
	tempDir := t.TempDir()

	store := preset.NewStore(tempDir)

	ctx := context.Background()
	err := store.Load(ctx)
	require.NoError(t, err)

	testPreset1 := createTestPreset()
	testPreset1.ID = "test-preset-1"
	testPreset1.Name = "camera-cleanup"

	testPreset2 := createTestPreset()
	testPreset2.ID = "test-preset-2"
	testPreset2.Name = "scan-flatten"

	err = store.CreatePreset(ctx, testPreset1)
	require.NoError(t, err)

	err = store.CreatePreset(ctx, testPreset2)
	require.NoError(t, err)

	newStore := preset.NewStore(tempDir)
	err = newStore.Load(ctx)
	require.NoError(t, err)

	presets, err := newStore.GetAllPresets(ctx)
	require.NoError(t, err)
	assert.Len(t, presets, 2)

	presetIDs := make(map[string]bool)
	for _, p := range presets {
		presetIDs[p.ID] = true
	}
	assert.True(t, presetIDs["test-preset-1"])
	assert.True(t, presetIDs["test-preset-2"])
}

func TestSessionSweeperShutdown(t *testing.T) {
	store := session.NewStore(8, time.Hour)
	stop := store.StartSweeper(10 * time.Millisecond)

	ctx := context.Background()
	sess, err := store.Create(ctx, "photos.zip", []domain.ArchiveEntry{
		{Path: "Photos/IMG_001.jpg", Size: 2048},
	})
	require.NoError(t, err)

	stop()

	// Store stays usable after the sweeper is stopped
	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, 1, store.Stats().Size)
}

func TestConnectionHandlingDuringShutdown(t *testing.T) {
	tempDir := t.TempDir()

	cfg := &config.Config{}
	cfg.Server.Port = 0
	cfg.Server.ReadTimeout = 5 * time.Second
	cfg.Server.WriteTimeout = 5 * time.Second
	cfg.Server.BodyLimit = 1048576
	cfg.Session.MaxSessions = 16
	cfg.Storage.PresetDir = tempDir

	store := preset.NewStore(cfg.Storage.PresetDir)

	ctx := context.Background()
	err := store.Load(ctx)
	require.NoError(t, err)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deadline, ok := shutdownCtx.Deadline()
	assert.True(t, ok)
	assert.True(t, time.Until(deadline) > 25*time.Second)
	assert.True(t, time.Until(deadline) <= 30*time.Second)

	testPreset := createTestPreset()
	err = store.CreatePreset(shutdownCtx, testPreset)
	require.NoError(t, err)
}

func testGracefulShutdownSignal(t *testing.T, store *preset.Store, sig os.Signal) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := store.GetAllPresets(ctx)
	assert.NoError(t, err)

	select {
	case <-ctx.Done():
		t.Fatal("Shutdown operations took too long")
	default:
	}
}

func createTestPreset() *domain.Preset {
	return &domain.Preset{
		ID:   "test-preset-id",
		Name: "test-preset",
		Groups: []domain.RuleGroup{
			{
				ID:         "group-1",
				Scope:      domain.ScopeExtension,
				ScopeValue: ".jpg",
				Rules: []domain.Rule{
					{Type: domain.RuleReplace, Find: "IMG_", Replace: "photo_"},
				},
			},
		},
	}
}

func TestStartupLogging(t *testing.T) {
	var logBuffer bytes.Buffer

	originalLogger := log.Logger
	defer func() {
		log.Logger = originalLogger
	}()

	log.Logger = zerolog.New(&logBuffer).With().Timestamp().Logger()

	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = 5 * time.Second
	cfg.Server.WriteTimeout = 5 * time.Second
	cfg.Server.BodyLimit = 67108864
	cfg.Session.MaxSessions = 256
	cfg.Session.TTL = time.Hour
	cfg.Session.SweepInterval = time.Minute
	cfg.Limits.MaxEntries = 10000
	cfg.Limits.MaxRuleGroups = 50
	cfg.Limits.MaxRulesPerGroup = 50
	cfg.Storage.PresetDir = "./data/presets"
	cfg.Security.CORSOrigins = []string{"https://example.com", "https://test.com"}
	cfg.Security.RateLimitRPS = 50
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	logStartupConfig(cfg)

	logOutput := logBuffer.String()
	assert.NotEmpty(t, logOutput)

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(logOutput)), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, "info", logEntry["level"])
	assert.Equal(t, "Configuration loaded successfully", logEntry["message"])

	assert.Equal(t, float64(8080), logEntry["server_port"])
	assert.Equal(t, float64(5000), logEntry["server_read_timeout"])
	assert.Equal(t, float64(5000), logEntry["server_write_timeout"])
	assert.Equal(t, float64(67108864), logEntry["server_body_limit"])
	assert.Equal(t, float64(256), logEntry["session_max_sessions"])
	assert.Equal(t, float64(3600000), logEntry["session_ttl"])
	assert.Equal(t, float64(60000), logEntry["session_sweep_interval"])
	assert.Equal(t, float64(10000), logEntry["limits_max_entries"])
	assert.Equal(t, float64(50), logEntry["limits_max_rule_groups"])
	assert.Equal(t, float64(50), logEntry["limits_max_rules_per_group"])
	assert.Equal(t, "./data/presets", logEntry["storage_preset_dir"])
	assert.Equal(t, float64(50), logEntry["security_rate_limit_rps"])
	assert.Equal(t, "info", logEntry["logging_level"])
	assert.Equal(t, "json", logEntry["logging_format"])

	corsOrigins, ok := logEntry["security_cors_origins"].([]interface{})
	require.True(t, ok)
	assert.Len(t, corsOrigins, 2)
	assert.Contains(t, corsOrigins, "https://example.com")
	assert.Contains(t, corsOrigins, "https://test.com")

	assert.NotNil(t, logEntry["time"])
}

func TestStartupLoggingWithEmptyCORSOrigins(t *testing.T) {
	var logBuffer bytes.Buffer

	originalLogger := log.Logger
	defer func() {
		log.Logger = originalLogger
	}()

	log.Logger = zerolog.New(&logBuffer).With().Timestamp().Logger()

	cfg := &config.Config{}
	cfg.Server.Port = 3000
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 10 * time.Second
	cfg.Server.BodyLimit = 2097152
	cfg.Session.MaxSessions = 32
	cfg.Session.TTL = 30 * time.Minute
	cfg.Session.SweepInterval = 30 * time.Second
	cfg.Limits.MaxEntries = 500
	cfg.Limits.MaxRuleGroups = 10
	cfg.Limits.MaxRulesPerGroup = 10
	cfg.Storage.PresetDir = "/tmp/presets"
	cfg.Security.CORSOrigins = []string{}
	cfg.Security.RateLimitRPS = 100
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "text"

	logStartupConfig(cfg)

	logOutput := logBuffer.String()
	assert.NotEmpty(t, logOutput)

	var logEntry map[string]interface{}
	err := json.Unmarshal([]byte(strings.TrimSpace(logOutput)), &logEntry)
	require.NoError(t, err)

	assert.Equal(t, float64(3000), logEntry["server_port"])
	assert.Equal(t, float64(10000), logEntry["server_read_timeout"])
	assert.Equal(t, float64(10000), logEntry["server_write_timeout"])
	assert.Equal(t, float64(2097152), logEntry["server_body_limit"])
	assert.Equal(t, float64(32), logEntry["session_max_sessions"])
	assert.Equal(t, float64(1800000), logEntry["session_ttl"])
	assert.Equal(t, float64(30000), logEntry["session_sweep_interval"])
	assert.Equal(t, "/tmp/presets", logEntry["storage_preset_dir"])
	assert.Equal(t, float64(100), logEntry["security_rate_limit_rps"])
	assert.Equal(t, "debug", logEntry["logging_level"])
	assert.Equal(t, "text", logEntry["logging_format"])

	corsOrigins, ok := logEntry["security_cors_origins"].([]interface{})
	require.True(t, ok)
	assert.Len(t, corsOrigins, 0)
}
