package floor

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository источник бронирований стола
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// TableRepository запись состояния стола
type TableRepository interface {
	UpdateStatus(ctx context.Context, id int64, status domain.TableStatus) error
}

// Clock текущее время и границы дня в часовом поясе ресторана
type Clock interface {
	Now(tz string) (time.Time, error)
	DayBounds(instant time.Time, tz string) (time.Time, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
