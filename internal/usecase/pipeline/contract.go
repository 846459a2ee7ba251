package pipeline

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
)

// ReservationRepository источник бронирований дня (внутри транзакции читается с FOR UPDATE)
type ReservationRepository interface {
	ListForDay(ctx context.Context, start, end time.Time) ([]*domain.Reservation, error)
}

// TableRepository источник столов для подбора
type TableRepository interface {
	List(ctx context.Context, filter domain.TableFilter) ([]*domain.Table, error)
}

// Validator проверка заявки по правилам ресторана
type Validator interface {
	Validate(
		ctx context.Context,
		req *admission.Request,
		rules *domain.RulesConfig,
		now time.Time,
		snapshot admission.Snapshot,
	) (*admission.Admitted, error)
}

// Metrics счетчики решений по заявкам
type Metrics interface {
	ObserveAdmission(outcome, reason string)
}
