package preset

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// Store implements the PresetRepository interface with dual indexing: a map
// for id lookups and a list preserving load order.
type Store struct {
	mu         sync.RWMutex
	presets    map[string]*domain.Preset
	presetList []*domain.Preset
	dir        string

	loader *Loader
	writer *Writer
}

// NewStore creates a new Store backed by the given preset directory
func NewStore(dir string) *Store {
	return &Store{
		presets:    make(map[string]*domain.Preset),
		presetList: make([]*domain.Preset, 0),
		dir:        dir,
		loader:     NewLoader(dir),
		writer:     NewWriter(dir),
	}
}

// Load loads preset documents from the preset directory
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-ctx.Done():
		return domain.NewAppErrorWithCause(
			domain.ErrTimeout,
			"Load cancelled",
			http.StatusRequestTimeout,
			ctx.Err(),
			map[string]any{"operation": "load"},
		)
	default:
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return domain.NewAppErrorWithCause(
			domain.ErrStorageFailed,
			"Failed to create preset directory",
			http.StatusInternalServerError,
			err,
			map[string]any{"dir": s.dir},
		).WithContext(ctx, "load")
	}

	presets, loadErrors, err := s.loader.LoadAll(ctx)
	if err != nil {
		return domain.NewAppErrorWithCause(
			domain.ErrStorageFailed,
			"Failed to load presets from files",
			http.StatusInternalServerError,
			err,
			map[string]any{"errors": len(loadErrors)},
		).WithContext(ctx, "load")
	}

	s.presets = make(map[string]*domain.Preset, len(presets))
	s.presetList = make([]*domain.Preset, 0, len(presets))

	for i := range presets {
		preset := presets[i]
		if _, exists := s.presets[preset.ID]; exists {
			// First document wins on a duplicate id
			continue
		}
		s.presets[preset.ID] = &preset
		s.presetList = append(s.presetList, &preset)
	}

	return nil
}

// Reload reloads presets from storage
func (s *Store) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// GetAllPresets retrieves all presets in load order
func (s *Store) GetAllPresets(ctx context.Context) ([]domain.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Preset, len(s.presetList))
	for i, preset := range s.presetList {
		result[i] = *preset
	}

	return result, nil
}

// GetPresetByID retrieves a preset by its ID
func (s *Store) GetPresetByID(ctx context.Context, id string) (*domain.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	preset, exists := s.presets[id]
	if !exists {
		return nil, notFound(id)
	}

	presetCopy := *preset
	return &presetCopy, nil
}

// CreatePreset creates a new preset and persists its document. A missing id
// is assigned; a taken id or name is a conflict.
func (s *Store) CreatePreset(ctx context.Context, preset *domain.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if preset.ID == "" {
		preset.ID = uuid.NewString()
	}

	if _, exists := s.presets[preset.ID]; exists {
		return domain.NewAppError(
			domain.ErrPresetExists,
			"Preset already exists",
			http.StatusConflict,
			map[string]any{"id": preset.ID},
		)
	}
	if taken, id := s.nameTaken(preset.Name, preset.ID); taken {
		return domain.NewAppError(
			domain.ErrPresetExists,
			"Preset name already taken",
			http.StatusConflict,
			map[string]any{"name": preset.Name, "id": id},
		)
	}

	now := time.Now()
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = now
	}
	if preset.UpdatedAt.IsZero() {
		preset.UpdatedAt = now
	}
	preset.FilePath = filepath.Join(s.dir, preset.ID+Extension)

	presetCopy := *preset

	s.presets[preset.ID] = &presetCopy
	s.presetList = append(s.presetList, &presetCopy)

	if err := s.writer.WritePreset(&presetCopy); err != nil {
		delete(s.presets, preset.ID)
		s.presetList = s.presetList[:len(s.presetList)-1]
		return domain.NewAppErrorWithCause(
			domain.ErrStorageFailed,
			"Failed to write preset file",
			http.StatusInternalServerError,
			err,
			map[string]any{"preset_id": preset.ID},
		)
	}

	return nil
}

// UpdatePreset updates an existing preset and rewrites its document
func (s *Store) UpdatePreset(ctx context.Context, preset *domain.Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.presets[preset.ID]
	if !exists {
		return notFound(preset.ID)
	}
	if taken, id := s.nameTaken(preset.Name, preset.ID); taken {
		return domain.NewAppError(
			domain.ErrPresetExists,
			"Preset name already taken",
			http.StatusConflict,
			map[string]any{"name": preset.Name, "id": id},
		)
	}

	preset.CreatedAt = existing.CreatedAt
	preset.UpdatedAt = time.Now()
	if preset.FilePath == "" {
		preset.FilePath = existing.FilePath
	}

	presetCopy := *preset

	oldPreset := *existing
	var oldIndex int
	for i, p := range s.presetList {
		if p.ID == preset.ID {
			oldIndex = i
			break
		}
	}

	s.presets[preset.ID] = &presetCopy
	s.presetList[oldIndex] = &presetCopy

	if err := s.writer.WritePresetToPath(&presetCopy, presetCopy.FilePath); err != nil {
		s.presets[preset.ID] = &oldPreset
		s.presetList[oldIndex] = &oldPreset
		return domain.NewAppErrorWithCause(
			domain.ErrStorageFailed,
			"Failed to update preset file",
			http.StatusInternalServerError,
			err,
			map[string]any{"preset_id": preset.ID},
		)
	}

	return nil
}

// DeletePreset removes a preset and its document
func (s *Store) DeletePreset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	preset, exists := s.presets[id]
	if !exists {
		return notFound(id)
	}

	if preset.FilePath != "" {
		if err := s.writer.DeletePresetFile(preset.FilePath); err != nil {
			return domain.NewAppErrorWithCause(
				domain.ErrStorageFailed,
				"Failed to delete preset file",
				http.StatusInternalServerError,
				err,
				map[string]any{"preset_id": id},
			)
		}
	} else {
		_ = s.writer.DeletePreset(id)
	}

	delete(s.presets, id)

	for i, p := range s.presetList {
		if p.ID == id {
			s.presetList = append(s.presetList[:i], s.presetList[i+1:]...)
			break
		}
	}

	return nil
}

// ExportYAML serializes a stored preset to its YAML document form
func (s *Store) ExportYAML(ctx context.Context, id string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	preset, exists := s.presets[id]
	if !exists {
		return nil, notFound(id)
	}

	data, err := Export(preset)
	if err != nil {
		return nil, domain.NewAppErrorWithCause(
			domain.ErrExportFailed,
			"Failed to export preset",
			http.StatusInternalServerError,
			err,
			map[string]any{"preset_id": id},
		)
	}
	return data, nil
}

// GetLoadErrors returns any errors from the last load operation
func (s *Store) GetLoadErrors() []domain.LoadError {
	return s.loader.GetLoadErrors()
}

// HealthCheck performs a health check on the preset storage
func (s *Store) HealthCheck(ctx context.Context) domain.HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	status := domain.HealthStatusHealthy
	message := "Preset storage is operating normally"
	details := map[string]any{
		"preset_count": len(s.presetList),
		"preset_dir":   s.dir,
	}

	if _, err := os.Stat(s.dir); err != nil {
		return domain.HealthStatus{
			Status:    domain.HealthStatusUnhealthy,
			Message:   "Preset directory is not accessible",
			Details:   map[string]any{"preset_dir": s.dir, "error": err.Error()},
			Timestamp: now,
		}
	}

	if len(s.presets) != len(s.presetList) {
		status = domain.HealthStatusUnhealthy
		message = "Data structure inconsistency detected"
		details["map_size"] = len(s.presets)
		details["list_size"] = len(s.presetList)
	}

	return domain.HealthStatus{
		Status:    status,
		Message:   message,
		Details:   details,
		Timestamp: now,
	}
}

// GetStats returns preset storage statistics
func (s *Store) GetStats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groupCount := 0
	for _, preset := range s.presetList {
		groupCount += len(preset.Groups)
	}

	return map[string]any{
		"preset_count": len(s.presetList),
		"group_count":  groupCount,
		"preset_dir":   s.dir,
		"load_errors":  len(s.loader.GetLoadErrors()),
	}
}

// nameTaken reports whether another preset already uses the name,
// ignoring case. Caller must hold the store mutex.
func (s *Store) nameTaken(name, selfID string) (bool, string) {
	for _, p := range s.presetList {
		if p.ID != selfID && strings.EqualFold(p.Name, name) {
			return true, p.ID
		}
	}
	return false, ""
}

func notFound(id string) *domain.AppError {
	return domain.NewAppError(
		domain.ErrPresetNotFound,
		"Preset not found",
		http.StatusNotFound,
		map[string]any{"id": id},
	)
}
