package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный начальный статус бронирования"
	msgInvalidInput       = "некорректные данные бронирования"
	msgRulesUnavailable   = "настройки ресторана недоступны, бронирование временно невозможно"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	channel := middleware.ChannelOf(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(channel))
	if err != nil {
		if rej, ok := domain.AsRejection(err); ok {
			h.logger.Warn("POST /reservations - Rejected: reason=%s, date=%s, time=%s", rej.Reason, req.Date, req.Time)
			handlers.RespondRejection(w, rej)
			return
		}

		switch {
		case errors.Is(err, createReservation.ErrInvalidStatus):
			h.logger.Warn("POST /reservations - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrRulesUnavailable):
			h.logger.Error("POST /reservations - Rules unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRulesUnavailable)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: channel=%s, error=%v", channel, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, table_id=%d, channel=%s",
		result.Reservation.ID, result.Table.ID, channel)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
