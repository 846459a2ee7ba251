package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
	"github.com/m04kA/SMC-ReservationService/internal/engine/assignment"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	"github.com/m04kA/SMC-ReservationService/internal/engine/lifecycle"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/pipeline"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	floor           FloorSync
	pipeline        Pipeline
	rules           RulesProvider
	notifier        Notifier
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	floor FloorSync,
	pipeline Pipeline,
	rules RulesProvider,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		floor:           floor,
		pipeline:        pipeline,
		rules:           rules,
		notifier:        notifier,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &clock.RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: channel=%s, date=%s, time=%s, guests=%d",
		req.Channel, req.Date, req.Time, req.PartySize)

	// 1. Проверка полей, которые не входят в правила приема
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Начальный статус определяется каналом
	status, err := lifecycle.InitialStatus(req.Channel, req.Status)
	if err != nil {
		uc.logger.Warn("CreateReservation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	// 3. Правила ресторана (при ошибке заявка не принимается)
	rules, err := uc.rules.Rules(ctx)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to load rules: %v", err)
		uc.observe(err)
		return nil, fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
	}

	now := uc.timeProvider.Now()

	var (
		created *domain.Reservation
		table   *domain.Table
	)

	// 4. Проверка, подбор стола и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		decision, err := uc.pipeline.Decide(txCtx, toAdmissionRequest(req), rules, now)
		if err != nil {
			return err
		}

		// 4.1. Сохраняем бронирование
		res, err := uc.reservationRepo.Create(txCtx, decision.ToReservation(status))
		if err != nil {
			return mapCreateError(err, decision)
		}

		// 4.2. Состояние стола в зале (только для бронирований на сегодня)
		if err := uc.floor.Reconcile(txCtx, rules.Timezone(), res); err != nil {
			return fmt.Errorf("%w: failed to update table status: %v", ErrInternal, err)
		}

		created = res
		table = decision.Table
		return nil
	})

	uc.observe(err)
	if err != nil {
		return nil, uc.handleError(err)
	}

	uc.logger.Info("CreateReservation: created reservation id=%d, table=%d, status=%s",
		created.ID, table.Number, created.Status)

	// 5. Уведомление уходит после фиксации и не влияет на результат
	uc.notify(ctx, rules, created, table)

	return &Response{Reservation: created, Table: table}, nil
}

func (uc *UseCase) notify(_ context.Context, rules *domain.RulesConfig, res *domain.Reservation, table *domain.Table) {
	effects := lifecycle.CreationEffects(res.Status)
	if effects.Notify == "" || !rules.Notifications.EmailEnabled {
		return
	}

	queued := uc.notifier.Dispatch(notifier.Request{
		Type:        effects.Notify,
		Reservation: res,
		Restaurant:  rules.Restaurant,
		TableNumber: table.Number,
	})
	if !queued {
		uc.logger.Warn("CreateReservation: %s notification for reservation id=%d dropped", effects.Notify, res.ID)
	}
}

func (uc *UseCase) observe(err error) {
	pipeline.Observe(uc.metrics, err)
}

// handleError логирует ошибку и приводит ее к ошибкам use case.
// Отказы по правилам возвращаются как есть
func (uc *UseCase) handleError(err error) error {
	if rej, ok := domain.AsRejection(err); ok {
		uc.logger.Warn("CreateReservation: rejected, reason=%s: %s", rej.Reason, rej.Message)
		return rej
	}
	if errors.Is(err, pipeline.ErrRulesUnavailable) {
		uc.logger.Error("CreateReservation: %v", err)
		return fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
	}
	if errors.Is(err, ErrInternal) {
		uc.logger.Error("CreateReservation: %v", err)
		return err
	}
	uc.logger.Error("CreateReservation: %v", err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// mapCreateError переводит ошибки записи в отказы.
// Уникальный индекс по активным бронированиям стола срабатывает при гонке двух заявок
func mapCreateError(err error, decision *pipeline.Decision) error {
	switch {
	case errors.Is(err, reservationRepo.ErrSlotTaken):
		return domain.NewRejection(assignment.ErrTableConflict, assignment.ReasonTableConflict, msgTableTaken,
			map[string]any{
				"tableId":         decision.Table.ID,
				"conflictingTime": decision.Admitted.Time.String(),
			})
	case errors.Is(err, reservationRepo.ErrTableReference):
		return domain.NewRejection(assignment.ErrTableNotFound, assignment.ReasonTableNotFound, msgTableMissing,
			map[string]any{"tableId": decision.Table.ID})
	}
	return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
}

func toAdmissionRequest(req *Request) *admission.Request {
	return &admission.Request{
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     req.CustomerPhone,
		PartySize:         req.PartySize,
		Date:              req.Date,
		Time:              req.Time,
		TableID:           req.TableID,
		PreferredLocation: req.PreferredLocation,
		SpecialRequests:   req.SpecialRequests,
	}
}
