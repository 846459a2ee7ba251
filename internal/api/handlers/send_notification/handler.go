package send_notification

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	sendNotification "github.com/m04kA/SMC-ReservationService/internal/usecase/send_notification"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные уведомления"
	msgNotFound           = "бронирование не найдено"
	msgDisabled           = "email-уведомления отключены в настройках"
	msgDeliveryFailed     = "не удалось отправить уведомление"
	msgRulesUnavailable   = "настройки ресторана недоступны"
)

type Handler struct {
	useCase SendNotificationUseCase
	logger  Logger
}

func NewHandler(useCase SendNotificationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/notifications/email
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SendNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /notifications/email - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /notifications/email - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInput+": "+err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, sendNotification.ErrInvalidInput):
			h.logger.Warn("POST /notifications/email - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sendNotification.ErrReservationNotFound):
			h.logger.Warn("POST /notifications/email - Reservation not found: reservation_id=%d", req.ReservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sendNotification.ErrNotificationsDisabled):
			h.logger.Warn("POST /notifications/email - Notifications disabled")
			handlers.RespondConflict(w, msgDisabled)

		case errors.Is(err, sendNotification.ErrDeliveryFailed):
			h.logger.Error("POST /notifications/email - Delivery failed: reservation_id=%d, error=%v", req.ReservationID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgDeliveryFailed)

		case errors.Is(err, sendNotification.ErrRulesUnavailable):
			h.logger.Error("POST /notifications/email - Rules unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgRulesUnavailable)

		default:
			h.logger.Error("POST /notifications/email - Failed to send notification: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /notifications/email - Notification sent: reservation_id=%d, type=%s, message_id=%s",
		req.ReservationID, result.Type, result.MessageID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
