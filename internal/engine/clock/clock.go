package clock

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// TimeProvider источник текущего времени (подменяется в тестах)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// FixedTimeProvider всегда возвращает одно и то же время
type FixedTimeProvider struct {
	At time.Time
}

func (p *FixedTimeProvider) Now() time.Time {
	return p.At
}

// Resolver переводит (дата, время, часовой пояс) в абсолютное время и обратно
// Все вычисления дня недели идут через одну нумерацию 0-6 с воскресенья
type Resolver struct {
	provider TimeProvider

	mu        sync.RWMutex
	locations map[string]*time.Location
}

func NewResolver(provider TimeProvider) *Resolver {
	if provider == nil {
		provider = &RealTimeProvider{}
	}
	return &Resolver{
		provider:  provider,
		locations: make(map[string]*time.Location),
	}
}

// Location загружает часовой пояс с кэшированием
func (r *Resolver) Location(tz string) (*time.Location, error) {
	r.mu.RLock()
	loc, ok := r.locations[tz]
	r.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidTemporalInput, tz)
	}

	r.mu.Lock()
	r.locations[tz] = loc
	r.mu.Unlock()

	return loc, nil
}

// Now текущее время в указанном часовом поясе
func (r *Resolver) Now(tz string) (time.Time, error) {
	loc, err := r.Location(tz)
	if err != nil {
		return time.Time{}, err
	}
	return r.provider.Now().In(loc), nil
}

// Combine собирает абсолютное время из календарной даты и времени суток
func (r *Resolver) Combine(date string, hour, minute int, tz string) (time.Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("%w: time %d:%d out of range", ErrInvalidTemporalInput, hour, minute)
	}

	loc, err := r.Location(tz)
	if err != nil {
		return time.Time{}, err
	}

	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}

	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, loc), nil
}

// WeekdayOf день недели момента в указанном часовом поясе
func (r *Resolver) WeekdayOf(instant time.Time, tz string) (domain.Weekday, error) {
	loc, err := r.Location(tz)
	if err != nil {
		return "", err
	}
	return domain.WeekdayOf(instant.In(loc).Weekday()), nil
}

// DayBounds полуоткрытый интервал [start, end) календарного дня, содержащего instant
func (r *Resolver) DayBounds(instant time.Time, tz string) (time.Time, time.Time, error) {
	loc, err := r.Location(tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	y, m, d := instant.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return start, end, nil
}

// ParseDate разбирает YYYY-MM-DD; для ISO-строки с временем берется только дата
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}

	day, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed date %q", ErrInvalidTemporalInput, s)
	}
	return day, nil
}

// NormalizeDate возвращает дату в формате YYYY-MM-DD
func NormalizeDate(s string) (string, error) {
	day, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return day.Format(domain.DateFormat), nil
}

// ParseTimeOfDay разбирает H:MM/HH:MM и возвращает нормализованное время
func ParseTimeOfDay(s string) (types.TimeString, int, int, error) {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		return "", 0, 0, fmt.Errorf("%w: %v", ErrInvalidTemporalInput, err)
	}
	hour, minute, _ := ts.Parts()
	return ts, hour, minute, nil
}
