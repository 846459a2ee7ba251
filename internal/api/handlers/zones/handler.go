package zones

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	zonesService "github.com/m04kA/SMC-ReservationService/internal/service/zones"
	"github.com/m04kA/SMC-ReservationService/internal/service/zones/models"
)

const (
	msgInvalidID          = "некорректный ID зоны"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные зоны"
	msgNotFound           = "зона не найдена"
	msgDuplicateName      = "зона с таким названием уже существует"
	msgNotEmpty           = "нельзя удалить зону, к которой привязаны столы"
)

// Handler обслуживает CRUD зон зала
type Handler struct {
	service ZoneService
	logger  Logger
}

func NewHandler(service ZoneService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/zones
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, "GET /zones", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &ZoneListResponse{Zones: result, Count: len(result)})
}

// Get GET /api/v1/zones/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /zones/{id} - Invalid zone ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /zones/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/zones
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateZoneRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /zones - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /zones - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /zones", err)
		return
	}

	h.logger.Info("POST /zones - Zone created: zone_id=%d, name=%s", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/zones/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /zones/{id} - Invalid zone ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateZoneRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /zones/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /zones/{id} - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /zones/{id}", err)
		return
	}

	h.logger.Info("PUT /zones/{id} - Zone updated: zone_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/zones/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /zones/{id} - Invalid zone ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		var notEmpty *zonesService.NotEmptyError
		if errors.As(err, &notEmpty) {
			h.logger.Warn("DELETE /zones/{id} - Zone not empty: zone_id=%d, tables=%d", id, notEmpty.TablesCount)
			handlers.RespondJSON(w, http.StatusBadRequest, &ZoneNotEmptyResponse{
				Error:       msgNotEmpty,
				TablesCount: notEmpty.TablesCount,
			})
			return
		}
		h.respondServiceError(w, "DELETE /zones/{id}", err)
		return
	}

	h.logger.Info("DELETE /zones/{id} - Zone deleted: zone_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, zonesService.ErrZoneNotFound):
		h.logger.Warn("%s - Zone not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, zonesService.ErrDuplicateName):
		h.logger.Warn("%s - Duplicate name: %v", route, err)
		handlers.RespondConflict(w, msgDuplicateName)

	case errors.Is(err, zonesService.ErrZoneNotEmpty):
		h.logger.Warn("%s - Zone not empty: %v", route, err)
		handlers.RespondBadRequest(w, msgNotEmpty)

	case errors.Is(err, zonesService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
