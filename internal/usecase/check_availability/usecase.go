package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/assignment"
)

// UseCase use case проверки доступности столов на дату и время
type UseCase struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	rules           RulesProvider
	clock           Clock
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	tableRepo TableRepository,
	rules RulesProvider,
	clock Clock,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		rules:           rules,
		clock:           clock,
		logger:          logger,
	}
}

// Execute возвращает свободные подходящие столы.
// Доступность есть, когда свободных столов больше, чем держится для гостей без брони
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: date=%s, time=%s, guests=%d, location=%s",
		req.Date, req.Time, req.PartySize, req.Location)

	// 1. Валидация входных данных
	in, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Правила ресторана
	rules, err := uc.rules.Rules(ctx)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to load rules: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
	}
	tz := rules.Timezone()

	// 3. Границы дня в часовом поясе ресторана
	instant, err := uc.clock.Combine(in.date, in.hour, in.minute, tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	dayStart, dayEnd, err := uc.clock.DayBounds(instant, tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Доступные столы подходящей вместимости
	filter := domain.TableFilter{AvailableOnly: true, MinCapacity: &req.PartySize}
	if in.location != "" {
		filter.Location = &in.location
	}
	tables, err := uc.tableRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list tables: %v", err)
		return nil, fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
	}

	// 5. Бронирования дня
	dayReservations, err := uc.reservationRepo.ListForDay(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 6. Убираем столы, занятые на это время
	free := assignment.FreeCandidates(tables, req.PartySize, in.location, in.at, dayReservations)
	reserved := rules.Reservations.ReservedTablesAlways

	uc.logger.Info("CheckAvailability: %d free tables, %d held back", len(free), reserved)

	return &Response{
		Available:            len(free) > reserved,
		CandidateTables:      free,
		Date:                 in.date,
		Time:                 in.at,
		PartySize:            req.PartySize,
		ReservedTablesAlways: reserved,
	}, nil
}
