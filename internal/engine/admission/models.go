package admission

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request заявка на бронирование в том виде, в каком она пришла от клиента
type Request struct {
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	PartySize         int // 0 означает "не указано"
	Date              string
	Time              string
	TableID           *int64
	PreferredLocation domain.Location
	SpecialRequests   *string

	// ExcludeReservationID бронирование, которое не учитывается в лимитах дня (редактирование)
	ExcludeReservationID *int64
}

// Admitted нормализованная и принятая заявка
type Admitted struct {
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	PartySize         int
	Date              string // YYYY-MM-DD в часовом поясе ресторана
	Time              types.TimeString
	Instant           time.Time
	Weekday           domain.Weekday
	DayStart          time.Time
	DayEnd            time.Time
	TableID           *int64
	PreferredLocation domain.Location
	SpecialRequests   *string

	MaxReservations     int
	MaxGuestsTotal      int
	CurrentReservations int
	CurrentGuests       int

	// DayReservations снимок бронирований дня, по которому принималось решение
	DayReservations []*domain.Reservation
}

// Snapshot источник бронирований за полуоткрытый интервал дня
type Snapshot interface {
	ReservationsForDay(ctx context.Context, start, end time.Time) ([]*domain.Reservation, error)
}

// SnapshotFunc адаптер функции к Snapshot
type SnapshotFunc func(ctx context.Context, start, end time.Time) ([]*domain.Reservation, error)

func (f SnapshotFunc) ReservationsForDay(ctx context.Context, start, end time.Time) ([]*domain.Reservation, error) {
	return f(ctx, start, end)
}

// StaticSnapshot снимок из заранее известного списка (dry-run, тесты)
func StaticSnapshot(reservations []*domain.Reservation) Snapshot {
	return SnapshotFunc(func(context.Context, time.Time, time.Time) ([]*domain.Reservation, error) {
		return reservations, nil
	})
}

// Clock операции со временем, нужные валидатору
type Clock interface {
	Location(tz string) (*time.Location, error)
	Combine(date string, hour, minute int, tz string) (time.Time, error)
	WeekdayOf(instant time.Time, tz string) (domain.Weekday, error)
	DayBounds(instant time.Time, tz string) (time.Time, time.Time, error)
}
