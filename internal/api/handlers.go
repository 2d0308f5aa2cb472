package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/zipmint/archive-renamer/internal/domain"
)

// Handlers contains all HTTP handlers for the Archive Renamer API
type Handlers struct {
	renamer       domain.Renamer
	analyzer      domain.Analyzer
	reader        domain.ListingReader
	sessions      domain.SessionRepository
	presets       domain.PresetRepository
	validator     domain.Validator
	healthChecker domain.HealthChecker
}

// NewHandlers creates a new instance of API handlers
func NewHandlers(renamer domain.Renamer, analyzer domain.Analyzer, reader domain.ListingReader, sessions domain.SessionRepository, presets domain.PresetRepository, validator domain.Validator, healthChecker domain.HealthChecker) *Handlers {
	return &Handlers{
		renamer:       renamer,
		analyzer:      analyzer,
		reader:        reader,
		sessions:      sessions,
		presets:       presets,
		validator:     validator,
		healthChecker: healthChecker,
	}
}

// RenameRequest represents the request payload for the stateless rename endpoint
// @Description Request payload for a batch rename run over an explicit listing
type RenameRequest struct {
	Entries    []domain.ArchiveEntry `json:"entries" validate:"required,min=1,dive"`
	RuleGroups []domain.RuleGroup    `json:"ruleGroups" validate:"omitempty,dive"`
}

// AnalyzeRequest represents the request payload for the stateless analysis endpoint
// @Description Request payload for a pre-flight analysis over an explicit listing
type AnalyzeRequest struct {
	Entries []domain.ArchiveEntry `json:"entries" validate:"required,min=1,dive"`
}

// ArchiveRenameRequest represents the request payload for a session rename run.
// RuleGroups and PresetID are mutually exclusive; a preset id resolves to the
// stored preset's groups.
// @Description Request payload for renaming an uploaded archive listing
type ArchiveRenameRequest struct {
	RuleGroups []domain.RuleGroup `json:"ruleGroups,omitempty" validate:"omitempty,dive"`
	PresetID   string             `json:"presetId,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// RenameResponse represents the response payload carrying a computed plan
// @Description Ordered rename pairs for one run
type RenameResponse struct {
	Pairs        []domain.RenamePair `json:"pairs"`
	ChangedCount int                 `json:"changedCount" example:"3"`
}

// ArchiveSummary represents an upload session without its entry listing
// @Description Upload session summary
type ArchiveSummary struct {
	ID         string    `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name       string    `json:"name,omitempty" example:"photos.zip"`
	EntryCount int       `json:"entryCount" example:"42"`
	HasPlan    bool      `json:"hasPlan" example:"false"`
	CreatedAt  time.Time `json:"createdAt"`
	LastAccess time.Time `json:"lastAccess"`
}

// ErrorResponse represents the standard error response format
// @Description Standard error response format
type ErrorResponse struct {
	Status  string `json:"status" example:"error"`
	Code    string `json:"code" example:"VALIDATION_FAILED"`
	Message string `json:"message" example:"Invalid input provided"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse represents the standard success response format
// @Description Standard success response format
type SuccessResponse struct {
	Status string `json:"status" example:"success"`
	Data   any    `json:"data"`
}

// HealthResponse represents the health check response
// @Description Health check response
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp string `json:"timestamp" example:"2024-06-01T12:00:00Z"`
}

// MetricsResponse represents the metrics response
// @Description System metrics response
type MetricsResponse struct {
	Sessions struct {
		Hits      int64   `json:"hits" example:"1500"`
		Misses    int64   `json:"misses" example:"300"`
		Size      int     `json:"size" example:"12"`
		MaxSize   int     `json:"max_size" example:"256"`
		HitRatio  float64 `json:"hit_ratio" example:"0.83"`
		Evictions int64   `json:"evictions" example:"4"`
	} `json:"sessions"`
	Presets struct {
		Count int `json:"preset_count" example:"7"`
	} `json:"presets"`
	Uptime struct {
		Timestamp string `json:"timestamp" example:"2024-06-01T12:00:00Z"`
	} `json:"uptime"`
}

// summarize converts a session into its wire summary
func summarize(sess *domain.Session) ArchiveSummary {
	return ArchiveSummary{
		ID:         sess.ID,
		Name:       sess.Name,
		EntryCount: sess.EntryCount(),
		HasPlan:    sess.Plan != nil,
		CreatedAt:  sess.CreatedAt,
		LastAccess: sess.LastAccess,
	}
}

// RenameHandler handles POST /v1/rename requests
// @Summary      Run a batch rename
// @Description  Applies ordered rule groups to an explicit listing and returns the renamed-path pairs
// @Tags         Rename
// @Accept       json
// @Produce      json
// @Param        request body RenameRequest true "Listing and rule groups"
// @Success      200 {object} SuccessResponse{data=RenameResponse} "Successfully computed rename plan"
// @Failure      400 {object} ErrorResponse "Invalid request payload"
// @Failure      413 {object} ErrorResponse "Listing exceeds the entry limit"
// @Failure      422 {object} ErrorResponse "Validation failed"
// @Router       /v1/rename [post]
func (h *Handlers) RenameHandler(c *fiber.Ctx) error {
	ctx := c.Context()

	var req RenameRequest
	if err := c.BodyParser(&req); err != nil {
		appErr := domain.NewAppError(
			domain.ErrInvalidInput,
			"Invalid JSON payload",
			400,
			map[string]string{"error": err.Error()},
		).WithContext(ctx, "rename_request_parsing")

		return h.sendError(c, appErr)
	}

	if err := h.validator.ValidateEntries(req.Entries); err != nil {
		appErr := err.(*domain.AppError).WithContext(ctx, "rename_entry_validation")
		return h.sendError(c, appErr)
	}

	if err := h.validator.ValidateRuleGroups(req.RuleGroups); err != nil {
		appErr := err.(*domain.AppError).WithContext(ctx, "rename_group_validation")
		return h.sendError(c, appErr)
	}

	plan := h.renamer.Rename(req.Entries, req.RuleGroups)

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"pairs":        plan.Pairs,
			"changedCount": plan.ChangedCount,
		},
	})
}

// AnalyzeHandler handles POST /v1/analyze requests
// @Summary      Analyze a listing
// @Description  Runs the pre-flight detectors over an explicit listing and returns the fresh report
// @Tags         Analyze
// @Accept       json
// @Produce      json
// @Param        request body AnalyzeRequest true "Listing to analyze"
// @Success      200 {object} SuccessResponse{data=object{report=domain.AnalysisReport}} "Successfully analyzed listing"
// @Failure      400 {object} ErrorResponse "Invalid request payload"
// @Failure      413 {object} ErrorResponse "Listing exceeds the entry limit"
// @Failure      422 {object} ErrorResponse "Validation failed"
// @Router       /v1/analyze [post]
func (h *Handlers) AnalyzeHandler(c *fiber.Ctx) error {
	ctx := c.Context()

	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		appErr := domain.NewAppError(
			domain.ErrInvalidInput,
			"Invalid JSON payload",
			400,
			map[string]string{"error": err.Error()},
		).WithContext(ctx, "analyze_request_parsing")

		return h.sendError(c, appErr)
	}

	if err := h.validator.ValidateEntries(req.Entries); err != nil {
		appErr := err.(*domain.AppError).WithContext(ctx, "analyze_entry_validation")
		return h.sendError(c, appErr)
	}

	report := h.analyzer.Analyze(req.Entries)

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"report": report,
		},
	})
}

// UploadArchiveHandler handles POST /v1/archives requests
// @Summary      Upload an archive
// @Description  Reads the ZIP central directory, opens an upload session and returns a fresh analysis report. Archive content is never retained.
// @Tags         Archives
// @Accept       multipart/form-data
// @Produce      json
// @Param        archive formData file true "ZIP archive"
// @Success      201 {object} SuccessResponse{data=object{archive=ArchiveSummary,report=domain.AnalysisReport}} "Successfully created session"
// @Failure      400 {object} ErrorResponse "Missing archive file"
// @Failure      413 {object} ErrorResponse "Listing exceeds the entry limit"
// @Failure      422 {object} ErrorResponse "Container could not be read"
// @Failure      503 {object} ErrorResponse "Session store full"
// @Router       /v1/archives [post]
func (h *Handlers) UploadArchiveHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	requestID := getRequestID(c)

	fileHeader, err := c.FormFile("archive")
	if err != nil {
		appErr := domain.NewAppError(
			domain.ErrInvalidInput,
			"Archive file is required",
			400,
			map[string]string{"field": "archive", "error": err.Error()},
		).WithContext(ctx, "archive_upload_parsing")

		return h.sendError(c, appErr)
	}

	payload, err := fileHeader.Open()
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("filename", fileHeader.Filename).
			Msg("Failed to open uploaded archive")

		return h.sendError(c, domain.NewAppError(
			domain.ErrInternal,
			"Failed to read uploaded archive",
			500,
			nil,
		))
	}
	defer payload.Close()

	// multipart.File is an io.ReaderAt whether spooled to memory or disk
	entries, err := h.reader.ReadListing(ctx, payload, fileHeader.Size)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("filename", fileHeader.Filename).
			Msg("Failed to read archive listing")

		return h.sendFailure(c, err, "archive_listing_read")
	}

	if err := h.validator.ValidateEntries(entries); err != nil {
		appErr := err.(*domain.AppError).WithContext(ctx, "archive_upload_validation")
		return h.sendError(c, appErr)
	}

	sess, err := h.sessions.Create(ctx, fileHeader.Filename, entries)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("filename", fileHeader.Filename).
			Msg("Failed to create upload session")

		return h.sendFailure(c, err, "archive_session_create")
	}

	report := h.analyzer.Analyze(sess.Entries)

	log.Info().
		Str("request_id", requestID).
		Str("archive_id", sess.ID).
		Str("filename", fileHeader.Filename).
		Int("entries", len(entries)).
		Str("severity", string(report.Severity)).
		Msg("Archive session created")

	return c.Status(201).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"archive": summarize(sess),
			"report":  report,
		},
	})
}

// GetArchiveHandler handles GET /v1/archives/:id requests
// @Summary      Get an upload session
// @Description  Returns the session summary and, when a rename run has been recorded, its latest plan
// @Tags         Archives
// @Produce      json
// @Param        id path string true "Archive session ID" format(uuid)
// @Success      200 {object} SuccessResponse{data=object{archive=ArchiveSummary}} "Successfully retrieved session"
// @Failure      404 {object} ErrorResponse "Session expired or never existed"
// @Router       /v1/archives/{id} [get]
func (h *Handlers) GetArchiveHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	archiveID := c.Params("id")

	sess, err := h.sessions.Get(ctx, archiveID)
	if err != nil {
		return h.sendFailure(c, err, "archive_lookup")
	}

	data := map[string]any{
		"archive": summarize(sess),
	}
	if sess.Plan != nil {
		data["plan"] = sess.Plan
	}

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// ArchiveRenameHandler handles POST /v1/archives/:id/rename requests
// @Summary      Rename an uploaded archive listing
// @Description  Applies inline rule groups or a stored preset to the session's listing and records the resulting plan on the session
// @Tags         Archives
// @Accept       json
// @Produce      json
// @Param        id path string true "Archive session ID" format(uuid)
// @Param        request body ArchiveRenameRequest true "Rule groups or preset reference"
// @Success      200 {object} SuccessResponse{data=object{archive=ArchiveSummary,plan=domain.RenamePlan}} "Successfully computed rename plan"
// @Failure      400 {object} ErrorResponse "Invalid request payload"
// @Failure      404 {object} ErrorResponse "Session or preset not found"
// @Failure      409 {object} ErrorResponse "Another run holds the session"
// @Failure      422 {object} ErrorResponse "Validation failed"
// @Router       /v1/archives/{id}/rename [post]
func (h *Handlers) ArchiveRenameHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	requestID := getRequestID(c)
	archiveID := c.Params("id")

	var req ArchiveRenameRequest
	if err := c.BodyParser(&req); err != nil {
		appErr := domain.NewAppError(
			domain.ErrInvalidInput,
			"Invalid JSON payload",
			400,
			map[string]string{"error": err.Error()},
		).WithContext(ctx, "archive_rename_parsing")

		return h.sendError(c, appErr)
	}

	if len(req.RuleGroups) > 0 && req.PresetID != "" {
		return h.sendError(c, domain.NewAppError(
			domain.ErrValidationFailed,
			"Provide either ruleGroups or presetId, not both",
			422,
			map[string]string{"field": "presetId", "reason": "mutually_exclusive"},
		))
	}

	groups := req.RuleGroups
	if req.PresetID != "" {
		preset, err := h.presets.GetPresetByID(ctx, req.PresetID)
		if err != nil {
			return h.sendFailure(c, err, "archive_rename_preset_lookup")
		}
		groups = preset.Groups
	}

	if err := h.validator.ValidateRuleGroups(groups); err != nil {
		appErr := err.(*domain.AppError).WithContext(ctx, "archive_rename_validation")
		return h.sendError(c, appErr)
	}

	sess, release, err := h.sessions.Acquire(ctx, archiveID)
	if err != nil {
		return h.sendFailure(c, err, "archive_rename_acquire")
	}
	defer release()

	plan := h.renamer.Rename(sess.Entries, groups)

	if err := h.sessions.SavePlan(ctx, archiveID, plan); err != nil {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("archive_id", archiveID).
			Msg("Failed to record rename plan")

		return h.sendFailure(c, err, "archive_rename_save")
	}

	log.Info().
		Str("request_id", requestID).
		Str("archive_id", archiveID).
		Int("groups", len(groups)).
		Int("changed", plan.ChangedCount).
		Msg("Rename plan recorded")

	summary := summarize(sess)
	summary.HasPlan = true

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"archive": summary,
			"plan":    plan,
		},
	})
}

// RestoreArchiveHandler handles POST /v1/archives/:id/restore requests
// @Summary      Restore original paths
// @Description  Drops the recorded rename plan and re-analyzes the original listing fresh
// @Tags         Archives
// @Produce      json
// @Param        id path string true "Archive session ID" format(uuid)
// @Success      200 {object} SuccessResponse{data=object{archive=ArchiveSummary,report=domain.AnalysisReport}} "Successfully restored session"
// @Failure      404 {object} ErrorResponse "Session expired or never existed"
// @Failure      409 {object} ErrorResponse "Another run holds the session"
// @Router       /v1/archives/{id}/restore [post]
func (h *Handlers) RestoreArchiveHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	archiveID := c.Params("id")

	sess, release, err := h.sessions.Acquire(ctx, archiveID)
	if err != nil {
		return h.sendFailure(c, err, "archive_restore_acquire")
	}
	defer release()

	if err := h.sessions.SavePlan(ctx, archiveID, nil); err != nil {
		return h.sendFailure(c, err, "archive_restore_clear")
	}

	report := h.analyzer.Analyze(sess.Entries)

	summary := summarize(sess)
	summary.HasPlan = false

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"archive": summary,
			"report":  report,
		},
	})
}

// AnalyzeArchiveHandler handles POST /v1/archives/:id/analyze requests
// @Summary      Re-analyze an uploaded archive
// @Description  Recomputes the pre-flight report over the session's original listing. Reports are never cached.
// @Tags         Archives
// @Produce      json
// @Param        id path string true "Archive session ID" format(uuid)
// @Success      200 {object} SuccessResponse{data=object{report=domain.AnalysisReport}} "Successfully analyzed session"
// @Failure      404 {object} ErrorResponse "Session expired or never existed"
// @Failure      409 {object} ErrorResponse "Another run holds the session"
// @Router       /v1/archives/{id}/analyze [post]
func (h *Handlers) AnalyzeArchiveHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	archiveID := c.Params("id")

	sess, release, err := h.sessions.Acquire(ctx, archiveID)
	if err != nil {
		return h.sendFailure(c, err, "archive_analyze_acquire")
	}
	defer release()

	report := h.analyzer.Analyze(sess.Entries)

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"report": report,
		},
	})
}

// DeleteArchiveHandler handles DELETE /v1/archives/:id requests
// @Summary      Delete an upload session
// @Description  Drops the session immediately, even while a run is in flight
// @Tags         Archives
// @Produce      json
// @Param        id path string true "Archive session ID" format(uuid)
// @Success      200 {object} SuccessResponse{data=object{message=string,archiveId=string}} "Successfully deleted session"
// @Failure      404 {object} ErrorResponse "Session expired or never existed"
// @Router       /v1/archives/{id} [delete]
func (h *Handlers) DeleteArchiveHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	archiveID := c.Params("id")

	if err := h.sessions.Delete(ctx, archiveID); err != nil {
		return h.sendFailure(c, err, "archive_delete")
	}

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"message":   "Archive session deleted",
			"archiveId": archiveID,
		},
	})
}

// HealthHandler handles GET /health requests
// @Summary      Health check
// @Description  Returns the health status of the service
// @Tags         System
// @Produce      json
// @Success      200 {object} HealthResponse "Service is healthy"
// @Router       /health [get]
func (h *Handlers) HealthHandler(c *fiber.Ctx) error {
	ctx := c.Context()

	health := h.healthChecker.CheckHealth(ctx)

	status := 200
	if health.Status != domain.HealthStatusHealthy {
		status = 503 // Service Unavailable
	}

	return c.Status(status).JSON(map[string]any{
		"status":     health.Status,
		"timestamp":  health.Timestamp.Format(time.RFC3339),
		"components": health.Components,
		"uptime":     health.Uptime,
	})
}

// MetricsHandler handles GET /metrics requests
// @Summary      System metrics
// @Description  Returns system metrics including session store and preset store statistics
// @Tags         System
// @Produce      json
// @Success      200 {object} SuccessResponse{data=MetricsResponse} "Successfully retrieved metrics"
// @Router       /metrics [get]
func (h *Handlers) MetricsHandler(c *fiber.Ctx) error {
	ctx := c.Context()

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"sessions": h.sessions.GetStats(ctx),
			"presets":  h.presets.GetStats(ctx),
			"uptime": map[string]any{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		},
	})
}

// sendError sends a standardized error response
func (h *Handlers) sendError(c *fiber.Ctx, appErr *domain.AppError) error {
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Status:  "error",
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// sendFailure maps repository and engine errors onto the error envelope.
// Anything that is not an AppError is masked as an internal failure.
func (h *Handlers) sendFailure(c *fiber.Ctx, err error, operation string) error {
	appErr, ok := err.(*domain.AppError)
	if !ok {
		log.Error().Err(err).Str("operation", operation).Msg("Unexpected error")
		appErr = domain.NewAppError(domain.ErrInternal, "Internal server error", 500, nil)
	}
	return h.sendError(c, appErr.WithContext(c.Context(), operation))
}
