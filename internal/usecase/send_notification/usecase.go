package send_notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/engine/lifecycle"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifier"
)

// UseCase use case отправки уведомления гостю по запросу персонала
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	rules           RulesProvider
	sender          Sender
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	rules RulesProvider,
	sender Sender,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		rules:           rules,
		sender:          sender,
		logger:          logger,
	}
}

// Execute отправляет уведомление синхронно и возвращает отправленное сообщение
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SendNotification: type=%s, reservation=%d", req.Type, req.ReservationID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SendNotification: validation failed: %v", err)
		return nil, err
	}

	// 2. Уведомления должны быть включены
	rules, err := uc.rules.Rules(ctx)
	if err != nil {
		uc.logger.Error("SendNotification: failed to load settings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
	}
	if !rules.Notifications.EmailEnabled {
		uc.logger.Warn("SendNotification: email notifications are disabled")
		return nil, ErrNotificationsDisabled
	}

	// 3. Бронирование
	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("SendNotification: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("SendNotification: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if req.Recipient != nil {
		res.CustomerEmail = strings.TrimSpace(*req.Recipient)
	}

	nreq := notifier.Request{
		Type:        lifecycle.NotificationType(req.Type),
		Reservation: res,
		Restaurant:  rules.Restaurant,
		Subject:     strings.TrimSpace(req.Subject),
		Body:        req.Body,
	}
	if res.TableID != nil {
		if table, err := uc.tableRepo.GetByID(ctx, *res.TableID); err == nil {
			nreq.TableNumber = table.Number
		}
	}

	// 4. Отправка
	msg, err := uc.sender.Send(ctx, nreq)
	if err != nil {
		switch {
		case errors.Is(err, notifier.ErrNoRecipient), errors.Is(err, notifier.ErrRender):
			uc.logger.Warn("SendNotification: reservation id=%d: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("SendNotification: reservation id=%d: %v", req.ReservationID, err)
			return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
		}
	}

	uc.logger.Info("SendNotification: message id=%s sent to reservation id=%d", msg.ID, req.ReservationID)

	return &Response{
		MessageID: msg.ID,
		Type:      msg.Type,
		To:        msg.To,
		Subject:   msg.Subject,
		SentAt:    msg.CreatedAt,
	}, nil
}
