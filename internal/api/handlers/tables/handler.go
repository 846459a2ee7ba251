package tables

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	tablesService "github.com/m04kA/SMC-ReservationService/internal/service/tables"
	"github.com/m04kA/SMC-ReservationService/internal/service/tables/models"
)

const (
	msgInvalidID          = "некорректный ID стола"
	msgInvalidQuery       = "некорректные параметры фильтрации"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные стола"
	msgNotFound           = "стол не найден"
	msgDuplicateNumber    = "стол с таким номером уже существует"
	msgZoneNotFound       = "зона не найдена"
)

// Handler обслуживает CRUD столов зала
type Handler struct {
	service TableService
	logger  Logger
}

func NewHandler(service TableService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/tables
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tables - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, "GET /tables", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &TableListResponse{Tables: result, Count: len(result)})
}

// Get GET /api/v1/tables/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /tables/{id} - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, "GET /tables/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/tables
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tables - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /tables - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /tables", err)
		return
	}

	h.logger.Info("POST /tables - Table created: table_id=%d, number=%d", result.ID, result.Number)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/tables/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /tables/{id} - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.UpdateTableRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /tables/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PUT /tables/{id} - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, "PUT /tables/{id}", err)
		return
	}

	h.logger.Info("PUT /tables/{id} - Table updated: table_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/tables/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /tables/{id} - Invalid table ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, "DELETE /tables/{id}", err)
		return
	}

	h.logger.Info("DELETE /tables/{id} - Table deleted: table_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, tablesService.ErrTableNotFound):
		h.logger.Warn("%s - Table not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, tablesService.ErrDuplicateNumber):
		h.logger.Warn("%s - Duplicate number: %v", route, err)
		handlers.RespondConflict(w, msgDuplicateNumber)

	case errors.Is(err, tablesService.ErrZoneNotFound):
		h.logger.Warn("%s - Zone not found: %v", route, err)
		handlers.RespondBadRequest(w, msgZoneNotFound)

	case errors.Is(err, tablesService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
