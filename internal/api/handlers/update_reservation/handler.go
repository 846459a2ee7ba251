package update_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
)

const (
	msgInvalidID          = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgNotEditable        = "бронирование в текущем статусе нельзя изменить"
	msgInvalidInput       = "некорректные данные бронирования"
	msgRulesUnavailable   = "настройки ресторана недоступны, изменение временно невозможно"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(id))
	if err != nil {
		if rej, ok := domain.AsRejection(err); ok {
			h.logger.Warn("PUT /reservations/{id} - Rejected: reservation_id=%d, reason=%s", id, rej.Reason)
			handlers.RespondRejection(w, rej)
			return
		}

		switch {
		case errors.Is(err, updateReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateReservation.ErrNotEditable):
			h.logger.Warn("PUT /reservations/{id} - Not editable: reservation_id=%d", id)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, updateReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateReservation.ErrRulesUnavailable):
			h.logger.Error("PUT /reservations/{id} - Rules unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRulesUnavailable)

		default:
			h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated: reservation_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
