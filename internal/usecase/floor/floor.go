package floor

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/lifecycle"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
)

// ErrStorage ошибка чтения бронирований или записи состояния стола
var ErrStorage = errors.New("floor: storage error")

const dateLayout = "2006-01-02"

// Sync приводит состояние столов в зале к их бронированиям на текущий день.
// Состояние не переписывается по одному бронированию: оно каждый раз выводится
// из всех активных бронирований стола на сегодня
type Sync struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	clock           Clock
	logger          Logger
}

func New(reservationRepo ReservationRepository, tableRepo TableRepository, clock Clock, logger Logger) *Sync {
	return &Sync{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		clock:           clock,
		logger:          logger,
	}
}

// Reconcile пересчитывает состояние столов, затронутых бронированиями.
// Передаются снимки бронирований после изменения (и до него, если сменились стол или дата).
// Бронирования на другие дни и без стола состояние зала не меняют.
// Вызывается внутри транзакции, которая изменила бронирования
func (s *Sync) Reconcile(ctx context.Context, tz string, affected ...*domain.Reservation) error {
	now, err := s.clock.Now(tz)
	if err != nil {
		return fmt.Errorf("%w: Reconcile - current time: %v", ErrStorage, err)
	}
	today := now.Format(dateLayout)

	tableIDs := make([]int64, 0, len(affected))
	seen := make(map[int64]struct{}, len(affected))
	for _, res := range affected {
		if res == nil || res.TableID == nil || res.ReservationDate != today {
			continue
		}
		if _, ok := seen[*res.TableID]; ok {
			continue
		}
		seen[*res.TableID] = struct{}{}
		tableIDs = append(tableIDs, *res.TableID)
	}
	if len(tableIDs) == 0 {
		return nil
	}

	start, end, err := s.clock.DayBounds(now, tz)
	if err != nil {
		return fmt.Errorf("%w: Reconcile - day bounds: %v", ErrStorage, err)
	}

	for _, tableID := range tableIDs {
		id := tableID
		holders, err := s.reservationRepo.List(ctx, domain.ReservationFilter{
			From:     &start,
			To:       &end,
			TableID:  &id,
			Statuses: lifecycle.FloorStatuses,
		})
		if err != nil {
			return fmt.Errorf("%w: Reconcile - list reservations of table id=%d: %v", ErrStorage, id, err)
		}

		status := lifecycle.FloorStatus(holders)
		if err := s.tableRepo.UpdateStatus(ctx, id, status); err != nil {
			if errors.Is(err, tableRepo.ErrTableNotFound) {
				s.logger.Warn("Reconcile: table id=%d no longer exists", id)
				continue
			}
			return fmt.Errorf("%w: Reconcile - update table id=%d: %v", ErrStorage, id, err)
		}
		s.logger.Info("Reconcile: table id=%d is %s (%d reservations today)", id, status, len(holders))
	}

	return nil
}
