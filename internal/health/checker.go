package health

import (
	"context"
	"sync"
	"time"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// SystemHealthChecker implements comprehensive system health monitoring
type SystemHealthChecker struct {
	sessions domain.SessionRepository
	presets  domain.PresetRepository

	// Health check configuration
	timeout   time.Duration
	startTime time.Time

	// Cached health status to avoid expensive checks on every request
	lastCheck   time.Time
	lastHealth  domain.SystemHealth
	cacheTTL    time.Duration
	healthMutex sync.RWMutex
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(
	sessions domain.SessionRepository,
	presets domain.PresetRepository,
) *SystemHealthChecker {
	return &SystemHealthChecker{
		sessions:  sessions,
		presets:   presets,
		timeout:   5 * time.Second,
		cacheTTL:  30 * time.Second,
		startTime: time.Now(),
	}
}

// CheckHealth performs a comprehensive system health check
func (h *SystemHealthChecker) CheckHealth(ctx context.Context) domain.SystemHealth {
	h.healthMutex.Lock()
	defer h.healthMutex.Unlock()

	// Return cached result if still valid
	if time.Since(h.lastCheck) < h.cacheTTL {
		return h.lastHealth
	}

	// Create context with timeout for health checks
	checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	now := time.Now()
	components := make(map[string]domain.HealthStatus)
	overallStatus := domain.HealthStatusHealthy

	// Check session store component
	sessionHealth := h.sessions.HealthCheck(checkCtx)
	components["sessions"] = sessionHealth
	if sessionHealth.Status != domain.HealthStatusHealthy {
		overallStatus = h.aggregateStatus(overallStatus, sessionHealth.Status)
	}

	// Check preset storage component
	presetHealth := h.presets.HealthCheck(checkCtx)
	components["presets"] = presetHealth
	if presetHealth.Status != domain.HealthStatusHealthy {
		overallStatus = h.aggregateStatus(overallStatus, presetHealth.Status)
	}

	// Collect system metrics
	metrics := h.collectSystemMetrics(checkCtx)

	systemHealth := domain.SystemHealth{
		Status:     overallStatus,
		Timestamp:  now,
		Components: components,
		Metrics:    metrics,
		Uptime:     time.Since(h.startTime),
	}

	// Cache the result
	h.lastCheck = now
	h.lastHealth = systemHealth

	return systemHealth
}

// CheckComponent performs a health check on a specific component
func (h *SystemHealthChecker) CheckComponent(ctx context.Context, component string) domain.HealthStatus {
	checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	switch component {
	case "sessions":
		return h.sessions.HealthCheck(checkCtx)
	case "presets":
		return h.presets.HealthCheck(checkCtx)
	default:
		return domain.HealthStatus{
			Status:    domain.HealthStatusUnhealthy,
			Message:   "Unknown component",
			Timestamp: time.Now(),
			Details: map[string]any{
				"component": component,
				"error":     "Component not found",
			},
		}
	}
}

// aggregateStatus determines the overall status based on component statuses
func (h *SystemHealthChecker) aggregateStatus(current, componentStatus string) string {
	// Priority: unhealthy > degraded > healthy
	statusPriority := map[string]int{
		domain.HealthStatusHealthy:   0,
		domain.HealthStatusDegraded:  1,
		domain.HealthStatusUnhealthy: 2,
	}

	currentPriority := statusPriority[current]
	componentPriority := statusPriority[componentStatus]

	if componentPriority > currentPriority {
		return componentStatus
	}
	return current
}

// collectSystemMetrics gathers system-wide metrics
func (h *SystemHealthChecker) collectSystemMetrics(ctx context.Context) map[string]any {
	metrics := make(map[string]any)

	// Collect session store metrics
	if sessionStats := h.sessions.GetStats(ctx); sessionStats != nil {
		metrics["sessions"] = sessionStats
	}

	// Collect preset storage metrics
	if presetStats := h.presets.GetStats(ctx); presetStats != nil {
		metrics["presets"] = presetStats
	}

	// Add system-level metrics
	metrics["system"] = map[string]any{
		"uptime_seconds": time.Since(h.startTime).Seconds(),
		"timestamp":      time.Now(),
	}

	return metrics
}

// GetDetailedHealth returns detailed health information for debugging
func (h *SystemHealthChecker) GetDetailedHealth(ctx context.Context) map[string]any {
	systemHealth := h.CheckHealth(ctx)

	detailed := map[string]any{
		"overall_status": systemHealth.Status,
		"timestamp":      systemHealth.Timestamp,
		"components":     systemHealth.Components,
		"metrics":        systemHealth.Metrics,
	}

	// Add additional diagnostic information
	detailed["diagnostics"] = map[string]any{
		"health_check_timeout": h.timeout.String(),
		"cache_ttl":            h.cacheTTL.String(),
		"last_check_age":       time.Since(h.lastCheck).String(),
	}

	return detailed
}

// IsHealthy returns true if the system is healthy
func (h *SystemHealthChecker) IsHealthy(ctx context.Context) bool {
	health := h.CheckHealth(ctx)
	return health.Status == domain.HealthStatusHealthy
}
