package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	Delete(ctx context.Context, id int64) error
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
}

// FloorSync пересчет состояния столов в зале по бронированиям на сегодня
type FloorSync interface {
	Reconcile(ctx context.Context, tz string, affected ...*domain.Reservation) error
}

// RulesProvider источник действующих правил ресторана
type RulesProvider interface {
	Rules(ctx context.Context) (*domain.RulesConfig, error)
}

// Clock операции со временем в часовом поясе ресторана
type Clock interface {
	Combine(date string, hour, minute int, tz string) (time.Time, error)
	DayBounds(instant time.Time, tz string) (time.Time, time.Time, error)
}

// Notifier фоновая отправка уведомлений
type Notifier interface {
	Dispatch(req notifier.Request) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
