package api

import (
	"context"
	"strings"

	"github.com/zipmint/archive-renamer/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PresetExporter defines the interface for preset export operations
type PresetExporter interface {
	ExportYAML(ctx context.Context, id string) ([]byte, error)
}

// PresetHandlers contains HTTP handlers for preset management
type PresetHandlers struct {
	presets   domain.PresetRepository
	exporter  PresetExporter
	validator domain.Validator
}

// NewPresetHandlers creates a new instance of preset handlers
func NewPresetHandlers(presets domain.PresetRepository, exporter PresetExporter, validator domain.Validator) *PresetHandlers {
	return &PresetHandlers{
		presets:   presets,
		exporter:  exporter,
		validator: validator,
	}
}

// PresetListResponse represents the response for listing presets
// @Description Response containing list of stored presets
type PresetListResponse struct {
	Presets []domain.Preset `json:"presets"`
	Count   int             `json:"count" example:"3"`
}

// ListPresetsHandler handles GET /v1/presets requests
// @Summary      List presets
// @Description  Returns all stored rename presets
// @Tags         Presets
// @Produce      json
// @Success      200 {object} SuccessResponse{data=PresetListResponse} "Successfully retrieved presets"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /v1/presets [get]
func (h *PresetHandlers) ListPresetsHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	requestID := getRequestID(c)

	presets, err := h.presets.GetAllPresets(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Msg("Failed to retrieve presets")

		return h.sendError(c, domain.NewAppError(
			domain.ErrInternal,
			"Failed to retrieve presets",
			500,
			nil,
		))
	}

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"presets": presets,
			"count":   len(presets),
		},
	})
}

// GetPresetHandler handles GET /v1/presets/:id requests
// @Summary      Get a preset
// @Description  Returns a single stored preset by its ID
// @Tags         Presets
// @Produce      json
// @Param        id path string true "Preset ID" format(uuid)
// @Success      200 {object} SuccessResponse{data=object{preset=domain.Preset}} "Successfully retrieved preset"
// @Failure      404 {object} ErrorResponse "Preset not found"
// @Router       /v1/presets/{id} [get]
func (h *PresetHandlers) GetPresetHandler(c *fiber.Ctx) error {
	ctx := c.Context()

	presetID := strings.TrimSpace(c.Params("id"))
	preset, err := h.presets.GetPresetByID(ctx, presetID)
	if err != nil {
		return h.sendFailure(c, err, "preset_lookup")
	}

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"preset": preset,
		},
	})
}

// CreatePresetHandler handles POST /v1/presets requests
// @Summary      Create a preset
// @Description  Stores a named rule-group list as a new preset document
// @Tags         Presets
// @Accept       json
// @Produce      json
// @Param        preset body domain.Preset true "Preset to create"
// @Success      201 {object} SuccessResponse{data=object{preset=domain.Preset}} "Successfully created preset"
// @Failure      400 {object} ErrorResponse "Invalid request payload"
// @Failure      409 {object} ErrorResponse "Preset id or name already taken"
// @Failure      422 {object} ErrorResponse "Validation failed"
// @Failure      500 {object} ErrorResponse "Preset directory unavailable"
// @Router       /v1/presets [post]
func (h *PresetHandlers) CreatePresetHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	requestID := getRequestID(c)

	var preset domain.Preset
	if err := c.BodyParser(&preset); err != nil {
		appErr := domain.NewAppError(
			domain.ErrInvalidInput,
			"Invalid JSON payload",
			400,
			map[string]string{"error": err.Error()},
		).WithContext(ctx, "create_preset_parsing")

		return h.sendError(c, appErr)
	}

	preset.Name = strings.TrimSpace(preset.Name)
	preset.Description = strings.TrimSpace(preset.Description)

	// Auto-generate ID if not provided
	if preset.ID == "" {
		preset.ID = uuid.New().String()
	}

	if err := h.validator.ValidatePreset(&preset); err != nil {
		appErr := err.(*domain.AppError).WithContext(ctx, "create_preset_validation")
		return h.sendError(c, appErr)
	}

	if err := h.presets.CreatePreset(ctx, &preset); err != nil {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("preset_name", preset.Name).
			Msg("Failed to create preset")

		return h.sendFailure(c, err, "create_preset_store")
	}

	return c.Status(201).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"preset": preset,
		},
	})
}

// UpdatePresetHandler handles PUT /v1/presets/:id requests
// @Summary      Update a preset
// @Description  Replaces a stored preset's name, description and groups. The creation timestamp is preserved.
// @Tags         Presets
// @Accept       json
// @Produce      json
// @Param        id path string true "Preset ID" format(uuid)
// @Param        preset body domain.Preset true "Replacement preset document"
// @Success      200 {object} SuccessResponse{data=object{preset=domain.Preset}} "Successfully updated preset"
// @Failure      400 {object} ErrorResponse "Invalid request payload"
// @Failure      404 {object} ErrorResponse "Preset not found"
// @Failure      409 {object} ErrorResponse "Preset name already taken"
// @Failure      422 {object} ErrorResponse "Validation failed"
// @Router       /v1/presets/{id} [put]
func (h *PresetHandlers) UpdatePresetHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	requestID := getRequestID(c)

	presetID := strings.TrimSpace(c.Params("id"))
	if presetID == "" {
		return h.sendError(c, domain.NewAppError(
			domain.ErrValidationFailed,
			"Preset ID is required",
			422,
			map[string]string{"field": "id", "reason": "required"},
		))
	}

	var preset domain.Preset
	if err := c.BodyParser(&preset); err != nil {
		appErr := domain.NewAppError(
			domain.ErrInvalidInput,
			"Invalid JSON payload",
			400,
			map[string]string{"error": err.Error()},
		).WithContext(ctx, "update_preset_parsing")

		return h.sendError(c, appErr)
	}

	// The path parameter owns the identity; a body id is ignored
	preset.ID = presetID
	preset.Name = strings.TrimSpace(preset.Name)
	preset.Description = strings.TrimSpace(preset.Description)

	if err := h.validator.ValidatePreset(&preset); err != nil {
		appErr := err.(*domain.AppError).WithContext(ctx, "update_preset_validation")
		return h.sendError(c, appErr)
	}

	if err := h.presets.UpdatePreset(ctx, &preset); err != nil {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("preset_id", presetID).
			Msg("Failed to update preset")

		return h.sendFailure(c, err, "update_preset_store")
	}

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"preset": preset,
		},
	})
}

// DeletePresetHandler handles DELETE /v1/presets/:id requests
// @Summary      Delete a preset
// @Description  Removes a stored preset and its YAML document
// @Tags         Presets
// @Produce      json
// @Param        id path string true "Preset ID" format(uuid)
// @Success      200 {object} SuccessResponse{data=object{message=string,presetId=string}} "Successfully deleted preset"
// @Failure      404 {object} ErrorResponse "Preset not found"
// @Failure      500 {object} ErrorResponse "Preset directory unavailable"
// @Router       /v1/presets/{id} [delete]
func (h *PresetHandlers) DeletePresetHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	requestID := getRequestID(c)

	presetID := strings.TrimSpace(c.Params("id"))
	if err := h.presets.DeletePreset(ctx, presetID); err != nil {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("preset_id", presetID).
			Msg("Failed to delete preset")

		return h.sendFailure(c, err, "delete_preset_store")
	}

	return c.Status(200).JSON(SuccessResponse{
		Status: "success",
		Data: map[string]any{
			"message":  "Preset deleted successfully",
			"presetId": presetID,
		},
	})
}

// ExportPresetHandler handles GET /v1/presets/:id/export requests
// @Summary      Export a preset
// @Description  Generates a downloadable YAML document for a stored preset
// @Tags         Presets
// @Produce      application/x-yaml
// @Produce      json
// @Param        id path string true "Preset ID" format(uuid)
// @Success      200 {string} string "Preset document content"
// @Failure      404 {object} ErrorResponse "Preset not found"
// @Failure      500 {object} ErrorResponse "Export failed"
// @Router       /v1/presets/{id}/export [get]
func (h *PresetHandlers) ExportPresetHandler(c *fiber.Ctx) error {
	ctx := c.Context()
	requestID := getRequestID(c)

	if h.exporter == nil {
		return h.sendError(c, domain.NewAppError(
			domain.ErrInternal,
			"Preset exporter not configured",
			500,
			nil,
		))
	}

	presetID := strings.TrimSpace(c.Params("id"))
	data, err := h.exporter.ExportYAML(ctx, presetID)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", requestID).
			Str("preset_id", presetID).
			Msg("Failed to export preset")

		return h.sendFailure(c, err, "export_preset")
	}

	c.Set("Content-Type", "application/x-yaml")
	c.Set("Content-Disposition", "attachment; filename="+presetID+".preset.yaml")

	return c.Send(data)
}

// sendError sends a standardized error response
func (h *PresetHandlers) sendError(c *fiber.Ctx, appErr *domain.AppError) error {
	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Status:  "error",
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// sendFailure maps repository errors onto the error envelope. Anything that
// is not an AppError is masked as an internal failure.
func (h *PresetHandlers) sendFailure(c *fiber.Ctx, err error, operation string) error {
	appErr, ok := err.(*domain.AppError)
	if !ok {
		log.Error().Err(err).Str("operation", operation).Msg("Unexpected error")
		appErr = domain.NewAppError(domain.ErrInternal, "Internal server error", 500, nil)
	}
	return h.sendError(c, appErr.WithContext(c.Context(), operation))
}

// getRequestID extracts the request ID from context
func getRequestID(c *fiber.Ctx) string {
	if rid := c.Locals("requestid"); rid != nil {
		return rid.(string)
	}
	return ""
}
