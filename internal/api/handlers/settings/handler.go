package settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	settingsService "github.com/m04kA/SMC-ReservationService/internal/service/settings"
	"github.com/m04kA/SMC-ReservationService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSettings    = "некорректные настройки"
	msgSettingsCorrupted  = "сохраненные настройки повреждены"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, settingsService.ErrSettingsCorrupted) {
			h.logger.Error("GET /settings - Settings corrupted: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgSettingsCorrupted)
			return
		}
		h.logger.Error("GET /settings - Failed to load settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/v1/settings
// Документ заменяется целиком
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.Settings
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /settings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSettings+": "+err.Error())
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, settingsService.ErrInvalidInput) {
			h.logger.Warn("PUT /settings - Invalid settings: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSettings)
			return
		}
		h.logger.Error("PUT /settings - Failed to save settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /settings - Settings updated: timezone=%s", result.Reservations.Timezone)
	handlers.RespondJSON(w, http.StatusOK, result)
}
