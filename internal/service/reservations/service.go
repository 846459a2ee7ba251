package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	"github.com/m04kA/SMC-ReservationService/internal/engine/lifecycle"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с существующими бронированиями
type Service struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	floor           FloorSync
	rules           RulesProvider
	clock           Clock
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	floor FloorSync,
	rules RulesProvider,
	clock Clock,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		floor:           floor,
		rules:           rules,
		clock:           clock,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// List возвращает бронирования по фильтрам.
// Даты трактуются как календарные дни в часовом поясе ресторана
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	filter, err := s.toDomainFilter(ctx, req)
	if err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reservations", len(list))
	return models.FromDomainReservationList(list), nil
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// UpdateStatus переводит бронирование в новый статус по таблице переходов.
// Состояние стола пересчитывается в той же транзакции, уведомление уходит после фиксации
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s", id, req.Status)

	target := domain.ReservationStatus(req.Status)
	if !target.IsValid() {
		s.logger.Warn("UpdateStatus: unknown status=%s for reservation id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	var (
		updated *domain.Reservation
		effects lifecycle.Effects
	)

	tz := s.timezone(ctx)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get reservation: %v", ErrInternal, err)
		}

		effects, err = lifecycle.Transition(res.Status, target)
		if err != nil {
			s.logger.Warn("UpdateStatus: reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, target)
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, id, target); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - update status: %v", ErrInternal, err)
		}
		res.Status = target

		if err := s.floor.Reconcile(txCtx, tz, res); err != nil {
			return fmt.Errorf("%w: UpdateStatus - table status: %v", ErrInternal, err)
		}

		updated = res
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateStatus: reservation id=%d: %v", id, err)
		}
		return nil, err
	}

	if effects.Notify != "" {
		s.notify(ctx, effects.Notify, updated)
	}

	s.logger.Info("UpdateStatus: reservation id=%d is now %s", id, target)
	return models.FromDomainReservation(updated), nil
}

// Delete удаляет бронирование в любом статусе и пересчитывает состояние его стола
func (s *Service) Delete(ctx context.Context, id int64) error {
	tz := s.timezone(ctx)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Delete - get reservation: %v", ErrInternal, err)
		}

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if err := s.floor.Reconcile(txCtx, tz, res); err != nil {
			return fmt.Errorf("%w: Delete - table status: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%d not found", id)
			return err
		}
		s.logger.Error("Delete: reservation id=%d: %v", id, err)
		return err
	}

	s.logger.Info("Delete: reservation id=%d deleted", id)
	return nil
}

// notify ставит уведомление в очередь, если email-уведомления включены
func (s *Service) notify(ctx context.Context, kind lifecycle.NotificationType, res *domain.Reservation) {
	rules, err := s.rules.Rules(ctx)
	if err != nil {
		s.logger.Warn("notify: settings unavailable, %s notification for reservation id=%d skipped: %v", kind, res.ID, err)
		return
	}
	if !rules.Notifications.EmailEnabled {
		return
	}

	req := notifier.Request{Type: kind, Reservation: res, Restaurant: rules.Restaurant}
	if res.TableID != nil {
		if table, err := s.tableRepo.GetByID(ctx, *res.TableID); err == nil {
			req.TableNumber = table.Number
		}
	}
	s.notifier.Dispatch(req)
}

func (s *Service) toDomainFilter(ctx context.Context, req *models.ListReservationsRequest) (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		TableID:       req.TableID,
		NameContains:  nonEmpty(req.Name),
		PhoneContains: nonEmpty(req.Phone),
	}

	if req.Status != nil && *req.Status != "" {
		status := domain.ReservationStatus(*req.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Statuses = []domain.ReservationStatus{status}
	}

	if req.Time != nil && *req.Time != "" {
		at, _, _, err := clock.ParseTimeOfDay(*req.Time)
		if err != nil {
			return filter, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
		}
		filter.Time = &at
	}

	from, to := req.From, req.To
	if req.Date != nil && *req.Date != "" {
		from, to = req.Date, req.Date
	}
	if (from == nil || *from == "") && (to == nil || *to == "") {
		return filter, nil
	}

	rules, err := s.rules.Rules(ctx)
	if err != nil {
		s.logger.Error("List: settings unavailable: %v", err)
		return filter, fmt.Errorf("%w: List - settings: %v", ErrInternal, err)
	}
	tz := rules.Timezone()

	if from != nil && *from != "" {
		start, err := s.dayStart(*from, tz)
		if err != nil {
			return filter, err
		}
		filter.From = &start
	}
	if to != nil && *to != "" {
		start, err := s.dayStart(*to, tz)
		if err != nil {
			return filter, err
		}
		_, end, err := s.clock.DayBounds(start, tz)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, *to)
		}
		filter.To = &end
	}

	return filter, nil
}

// timezone часовой пояс ресторана; без настроек используется пояс по умолчанию
func (s *Service) timezone(ctx context.Context) string {
	rules, err := s.rules.Rules(ctx)
	if err != nil {
		s.logger.Warn("settings unavailable, using default timezone %s: %v", domain.DefaultTimezone, err)
		return domain.DefaultTimezone
	}
	return rules.Timezone()
}

func (s *Service) dayStart(date, tz string) (time.Time, error) {
	start, err := s.clock.Combine(date, 0, 0, tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, date)
	}
	return start, nil
}

func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
