package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository источник бронирований дня
type ReservationRepository interface {
	ListForDay(ctx context.Context, start, end time.Time) ([]*domain.Reservation, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	List(ctx context.Context, filter domain.TableFilter) ([]*domain.Table, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
