package update_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
	"github.com/m04kA/SMC-ReservationService/internal/engine/assignment"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/pipeline"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case редактирования бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	floor           FloorSync
	pipeline        Pipeline
	rules           RulesProvider
	metrics         Metrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	floor FloorSync,
	pipeline Pipeline,
	rules RulesProvider,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		floor:           floor,
		pipeline:        pipeline,
		rules:           rules,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &clock.RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case редактирования.
// Контакты и пожелания записываются напрямую; смена даты, времени, количества гостей или стола
// повторно проходит прием и подбор стола без учета самого бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateReservation: id=%d", req.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateReservation: validation failed: %v", err)
		return nil, err
	}

	reschedule := req.Changes.TouchesSchedule()

	// 2. Правила нужны только при повторном приеме
	var rules *domain.RulesConfig
	if reschedule {
		var err error
		rules, err = uc.rules.Rules(ctx)
		if err != nil {
			uc.logger.Error("UpdateReservation: failed to load rules: %v", err)
			pipeline.Observe(uc.metrics, err)
			return nil, fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
		}
	}

	now := uc.timeProvider.Now()

	var (
		updated *domain.Reservation
		table   *domain.Table
	)

	// 3. Чтение, проверка и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование с блокировкой
		res, err := uc.reservationRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 3.2. Редактировать можно только pending и confirmed
		if !res.CanBeEdited() {
			return fmt.Errorf("%w: status is %s", ErrNotEditable, res.Status)
		}

		before := *res

		// 3.3. Контакты и пожелания
		if err := applyContacts(res, req.Changes); err != nil {
			return err
		}

		// 3.4. Повторный прием и подбор стола
		if reschedule {
			decision, err := uc.decide(txCtx, res, req.Changes, rules, now)
			if err != nil {
				return err
			}

			a := decision.Admitted
			tableID := decision.Table.ID
			res.ReservationAt = a.Instant
			res.ReservationDate = a.Date
			res.ReservationTime = a.Time
			res.PartySize = a.PartySize
			res.TableID = &tableID
			table = decision.Table
		}

		// 3.5. Сохраняем
		saved, err := uc.reservationRepo.Update(txCtx, res)
		if err != nil {
			return mapUpdateError(err, res)
		}

		// 3.6. Стол или дата сменились: пересчитываем состояние старого и нового стола
		if reschedule {
			if err := uc.floor.Reconcile(txCtx, rules.Timezone(), &before, saved); err != nil {
				return fmt.Errorf("%w: failed to update table status: %v", ErrInternal, err)
			}
		}

		if table == nil && saved.TableID != nil {
			table, err = uc.tableRepo.GetByID(txCtx, *saved.TableID)
			if err != nil && !errors.Is(err, tableRepo.ErrTableNotFound) {
				return fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
			}
		}

		updated = saved
		return nil
	})

	if reschedule {
		pipeline.Observe(uc.metrics, err)
	}
	if err != nil {
		return nil, uc.handleError(req.ID, err)
	}

	uc.logger.Info("UpdateReservation: reservation id=%d updated", updated.ID)
	return &Response{Reservation: updated, Table: table}, nil
}

// decide прогоняет измененную заявку. Текущий стол сохраняется, пока он свободен
// и вмещает гостей, иначе стол подбирается заново
func (uc *UseCase) decide(
	ctx context.Context,
	res *domain.Reservation,
	changes domain.ReservationChanges,
	rules *domain.RulesConfig,
	now time.Time,
) (*pipeline.Decision, error) {
	areq := &admission.Request{
		CustomerName:         res.CustomerName,
		CustomerEmail:        res.CustomerEmail,
		CustomerPhone:        res.CustomerPhone,
		PartySize:            ptr.Deref(changes.PartySize, res.PartySize),
		Date:                 ptr.Deref(changes.Date, res.ReservationDate),
		Time:                 ptr.Deref(changes.Time, res.ReservationTime.String()),
		SpecialRequests:      res.SpecialRequests,
		ExcludeReservationID: &res.ID,
	}

	if changes.TableID != nil {
		areq.TableID = changes.TableID
		return uc.pipeline.Decide(ctx, areq, rules, now)
	}

	if res.TableID != nil {
		current := *res.TableID
		areq.TableID = &current

		decision, err := uc.pipeline.Decide(ctx, areq, rules, now)
		if err == nil && decision.Table.Capacity >= decision.Admitted.PartySize {
			return decision, nil
		}
		if err != nil && !errors.Is(err, assignment.ErrTableConflict) && !errors.Is(err, assignment.ErrTableNotFound) {
			return nil, err
		}
		uc.logger.Info("UpdateReservation: table id=%d no longer fits reservation id=%d, picking another", current, res.ID)
		areq.TableID = nil
	}

	return uc.pipeline.Decide(ctx, areq, rules, now)
}

func (uc *UseCase) handleError(id int64, err error) error {
	if rej, ok := domain.AsRejection(err); ok {
		uc.logger.Warn("UpdateReservation: reservation id=%d rejected, reason=%s: %s", id, rej.Reason, rej.Message)
		return rej
	}

	switch {
	case errors.Is(err, ErrReservationNotFound), errors.Is(err, ErrNotEditable), errors.Is(err, ErrInvalidInput):
		uc.logger.Warn("UpdateReservation: reservation id=%d: %v", id, err)
		return err
	case errors.Is(err, pipeline.ErrRulesUnavailable):
		uc.logger.Error("UpdateReservation: reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("UpdateReservation: reservation id=%d: %v", id, err)
		return err
	}

	uc.logger.Error("UpdateReservation: reservation id=%d: %v", id, err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

func mapUpdateError(err error, res *domain.Reservation) error {
	switch {
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrReservationNotFound
	case errors.Is(err, reservationRepo.ErrSlotTaken):
		details := map[string]any{"conflictingTime": res.ReservationTime.String()}
		if res.TableID != nil {
			details["tableId"] = *res.TableID
		}
		return domain.NewRejection(assignment.ErrTableConflict, assignment.ReasonTableConflict, msgTableTaken, details)
	}
	return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
}
