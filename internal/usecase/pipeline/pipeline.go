package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
	"github.com/m04kA/SMC-ReservationService/internal/engine/assignment"
)

var (
	// ErrRulesUnavailable правила отсутствуют или непригодны, заявка не принимается
	ErrRulesUnavailable = errors.New("pipeline: rules unavailable")

	// ErrStorage ошибка чтения бронирований или столов
	ErrStorage = errors.New("pipeline: storage error")
)

// Исходы решения для метрик
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Decision результат успешного прохождения проверок и подбора стола
type Decision struct {
	Admitted *admission.Admitted
	Table    *domain.Table
}

// Pipeline связывает проверку заявки и подбор стола над одним снимком дня
type Pipeline struct {
	reservationRepo ReservationRepository
	tableRepo       TableRepository
	validator       Validator
}

func New(reservationRepo ReservationRepository, tableRepo TableRepository, validator Validator) *Pipeline {
	return &Pipeline{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		validator:       validator,
	}
}

// Decide прогоняет заявку через проверки и подбор стола.
// Отказы возвращаются как *domain.Rejection без обертки.
// Для записи вызывается внутри сериализуемой транзакции, для dry-run - без нее
func (p *Pipeline) Decide(ctx context.Context, req *admission.Request, rules *domain.RulesConfig, now time.Time) (*Decision, error) {
	snapshot := admission.SnapshotFunc(p.reservationRepo.ListForDay)

	admitted, err := p.validator.Validate(ctx, req, rules, now, snapshot)
	if err != nil {
		switch {
		case errors.Is(err, admission.ErrRulesUnavailable):
			return nil, fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
		case errors.Is(err, admission.ErrSnapshot):
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return nil, err
	}

	// Явный стол проверяется без фильтров, автоматический подбор идет только по доступным столам
	filter := domain.TableFilter{AvailableOnly: admitted.TableID == nil}
	tables, err := p.tableRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list tables: %v", ErrStorage, err)
	}

	table, err := assignment.Resolve(assignment.Request{
		TableID:              admitted.TableID,
		PartySize:            admitted.PartySize,
		Time:                 admitted.Time,
		PreferredLocation:    admitted.PreferredLocation,
		ExcludeReservationID: req.ExcludeReservationID,
	}, tables, admitted.DayReservations)
	if err != nil {
		return nil, err
	}

	return &Decision{Admitted: admitted, Table: table}, nil
}

// Outcome исход и код причины для метрик по результату Decide
func Outcome(err error) (string, string) {
	if err == nil {
		return OutcomeAccepted, ""
	}
	if rej, ok := domain.AsRejection(err); ok {
		return OutcomeRejected, rej.Reason
	}
	return OutcomeError, ""
}

// Observe записывает исход в метрики, nil допустим
func Observe(m Metrics, err error) {
	if m == nil {
		return
	}
	m.ObserveAdmission(Outcome(err))
}

// ToReservation собирает новое бронирование из принятой заявки
func (d *Decision) ToReservation(status domain.ReservationStatus) *domain.Reservation {
	a := d.Admitted
	tableID := d.Table.ID
	return &domain.Reservation{
		CustomerName:    a.CustomerName,
		CustomerEmail:   a.CustomerEmail,
		CustomerPhone:   a.CustomerPhone,
		ReservationAt:   a.Instant,
		ReservationDate: a.Date,
		ReservationTime: a.Time,
		PartySize:       a.PartySize,
		TableID:         &tableID,
		Status:          status,
		SpecialRequests: a.SpecialRequests,
	}
}
