package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflow")
)

// TimeString время суток в формате HH:MM (всегда с ведущими нулями)
type TimeString string

// NewTimeString создает TimeString из часов и минут экземпляра time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromParts создает TimeString из часа и минуты
func NewTimeStringFromParts(hour, minute int) (TimeString, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("%w: %d:%d", ErrInvalidTimeString, hour, minute)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", hour, minute)), nil
}

// NewTimeStringFromString разбирает строку "H:MM" или "HH:MM" и нормализует её до "HH:MM"
func NewTimeStringFromString(s string) (TimeString, error) {
	hour, minute, err := parse(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return NewTimeStringFromParts(hour, minute)
}

// Validate проверяет, что строка в нормализованном формате HH:MM
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	_, _, err := parse(string(t))
	return err
}

func (t TimeString) IsZero() bool {
	return t == ""
}

func (t TimeString) String() string {
	return string(t)
}

// Parts возвращает час и минуту
func (t TimeString) Parts() (int, int, error) {
	return parse(string(t))
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	h, m, err := parse(string(t))
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// AddMinutes прибавляет минуты, результат должен остаться в пределах суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s%+d min", ErrTimeOverflow, t, minutes)
	}
	return NewTimeStringFromParts(total/60, total%60)
}

// IsBefore сравнивает нормализованные строки (лексикографический порядок совпадает с хронологическим)
func (t TimeString) IsBefore(other TimeString) bool {
	return t < other
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t > other
}

// Scan реализует sql.Scanner
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeString(normalizeDB(v))
		return nil
	case []byte:
		*t = TimeString(normalizeDB(string(v)))
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, value)
	}
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// normalizeDB обрезает секунды, если колонка хранится как TIME ("20:00:00")
func normalizeDB(s string) string {
	if len(s) >= 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}

func parse(s string) (int, int, error) {
	hourStr, minuteStr, ok := strings.Cut(s, ":")
	if !ok || hourStr == "" || minuteStr == "" || len(hourStr) > 2 || len(minuteStr) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return hour, minute, nil
}
