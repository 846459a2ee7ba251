package validate_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/pipeline"
)

// UseCase use case предварительной проверки заявки без записи.
// Решение носит рекомендательный характер: при создании проверки выполняются заново
type UseCase struct {
	pipeline     Pipeline
	rules        RulesProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(pipeline Pipeline, rules RulesProvider, logger Logger) *UseCase {
	return &UseCase{
		pipeline:     pipeline,
		rules:        rules,
		timeProvider: &clock.RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidateReservation: date=%s, time=%s, guests=%d", req.Date, req.Time, req.PartySize)

	if req.PreferredLocation != "" && req.PreferredLocation != domain.LocationAny && !req.PreferredLocation.IsValid() {
		return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, req.PreferredLocation)
	}

	rules, err := uc.rules.Rules(ctx)
	if err != nil {
		uc.logger.Error("ValidateReservation: failed to load rules: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
	}

	decision, err := uc.pipeline.Decide(ctx, &admission.Request{
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     req.CustomerPhone,
		PartySize:         req.PartySize,
		Date:              req.Date,
		Time:              req.Time,
		TableID:           req.TableID,
		PreferredLocation: req.PreferredLocation,
		SpecialRequests:   req.SpecialRequests,
	}, rules, uc.timeProvider.Now())
	if err != nil {
		if rej, ok := domain.AsRejection(err); ok {
			uc.logger.Info("ValidateReservation: would be rejected, reason=%s", rej.Reason)
			return nil, rej
		}
		if errors.Is(err, pipeline.ErrRulesUnavailable) {
			uc.logger.Error("ValidateReservation: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
		}
		uc.logger.Error("ValidateReservation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	a := decision.Admitted
	uc.logger.Info("ValidateReservation: would be accepted at table id=%d", decision.Table.ID)

	return &Response{
		Date:                a.Date,
		Time:                a.Time,
		ReservationAt:       a.Instant,
		PartySize:           a.PartySize,
		Table:               decision.Table,
		MaxReservations:     a.MaxReservations,
		CurrentReservations: a.CurrentReservations,
		MaxGuestsTotal:      a.MaxGuestsTotal,
		CurrentGuests:       a.CurrentGuests,
	}, nil
}
