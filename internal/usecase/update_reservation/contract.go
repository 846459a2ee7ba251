package update_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/pipeline"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
}

// FloorSync пересчет состояния столов в зале по бронированиям на сегодня
type FloorSync interface {
	Reconcile(ctx context.Context, tz string, affected ...*domain.Reservation) error
}

// Pipeline проверка заявки и подбор стола
type Pipeline interface {
	Decide(ctx context.Context, req *admission.Request, rules *domain.RulesConfig, now time.Time) (*pipeline.Decision, error)
}

// RulesProvider источник действующих правил ресторана
type RulesProvider interface {
	Rules(ctx context.Context) (*domain.RulesConfig, error)
}

// Metrics счетчики решений по заявкам
type Metrics interface {
	ObserveAdmission(outcome, reason string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
