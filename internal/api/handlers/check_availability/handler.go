package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
)

const (
	msgInvalidGuests    = "некорректное количество гостей"
	msgInvalidInput     = "некорректные параметры запроса"
	msgRulesUnavailable = "настройки ресторана недоступны"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tables/availability?date=2026-11-02&time=20:30&guests=4&location=terraza
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /tables/availability - Invalid guests: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuests)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /tables/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkAvailability.ErrRulesUnavailable):
			h.logger.Error("GET /tables/availability - Rules unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRulesUnavailable)

		default:
			h.logger.Error("GET /tables/availability - Failed to check availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tables/availability - date=%s, time=%s, guests=%d, candidates=%d, available=%t",
		result.Date, result.Time, result.PartySize, len(result.CandidateTables), result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
