package validate_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	validateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgRulesUnavailable   = "настройки ресторана недоступны"
)

type Handler struct {
	useCase ValidateReservationUseCase
	logger  Logger
}

func NewHandler(useCase ValidateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/validate
// Ответ носит рекомендательный характер, при создании все проверки выполняются заново
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		if rej, ok := domain.AsRejection(err); ok {
			h.logger.Info("POST /reservations/validate - Would be rejected: reason=%s", rej.Reason)
			handlers.RespondRejection(w, rej)
			return
		}

		switch {
		case errors.Is(err, validateReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, validateReservation.ErrRulesUnavailable):
			h.logger.Error("POST /reservations/validate - Rules unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRulesUnavailable)

		default:
			h.logger.Error("POST /reservations/validate - Failed to validate reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/validate - Would be accepted: table_id=%d", result.Table.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
