package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestResolver_Combine(t *testing.T) {
	r := NewResolver(nil)

	got, err := r.Combine("2024-06-01", 20, 30, "Europe/Madrid")
	require.NoError(t, err)

	madrid, _ := time.LoadLocation("Europe/Madrid")
	assert.True(t, got.Equal(time.Date(2024, 6, 1, 20, 30, 0, 0, madrid)))
	assert.Equal(t, time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC), got.UTC())
}

func TestResolver_Combine_AcceptsISODateTime(t *testing.T) {
	r := NewResolver(nil)

	got, err := r.Combine("2024-06-01T00:00:00.000Z", 9, 0, "UTC")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), got)
}

func TestResolver_Combine_InvalidInput(t *testing.T) {
	r := NewResolver(nil)

	cases := []struct {
		name         string
		date         string
		hour, minute int
		tz           string
	}{
		{"hour out of range", "2024-06-01", 24, 0, "UTC"},
		{"minute out of range", "2024-06-01", 10, 60, "UTC"},
		{"negative hour", "2024-06-01", -1, 0, "UTC"},
		{"malformed date", "01/06/2024", 10, 0, "UTC"},
		{"impossible date", "2024-02-30", 10, 0, "UTC"},
		{"unknown timezone", "2024-06-01", 10, 0, "Nowhere/Land"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Combine(tc.date, tc.hour, tc.minute, tc.tz)
			assert.ErrorIs(t, err, ErrInvalidTemporalInput)
		})
	}
}

func TestResolver_WeekdayOf_SundayFirstInZone(t *testing.T) {
	r := NewResolver(nil)

	// 2024-06-01 23:30 UTC is already Sunday in Madrid
	instant := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)

	day, err := r.WeekdayOf(instant, "UTC")
	require.NoError(t, err)
	assert.Equal(t, domain.Saturday, day)

	day, err = r.WeekdayOf(instant, "Europe/Madrid")
	require.NoError(t, err)
	assert.Equal(t, domain.Sunday, day)
}

func TestResolver_DayBounds_HalfOpen(t *testing.T) {
	r := NewResolver(nil)
	madrid, _ := time.LoadLocation("Europe/Madrid")

	instant := time.Date(2024, 6, 1, 20, 0, 0, 0, madrid)
	start, end, err := r.DayBounds(instant, "Europe/Madrid")
	require.NoError(t, err)

	assert.True(t, start.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, madrid)))
	assert.True(t, end.Equal(time.Date(2024, 6, 2, 0, 0, 0, 0, madrid)))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestResolver_DayBounds_DSTDay(t *testing.T) {
	r := NewResolver(nil)
	madrid, _ := time.LoadLocation("Europe/Madrid")

	// 2024-03-31: clocks jump forward, the day is 23h long
	start, end, err := r.DayBounds(time.Date(2024, 3, 31, 12, 0, 0, 0, madrid), "Europe/Madrid")
	require.NoError(t, err)
	assert.Equal(t, 23*time.Hour, end.Sub(start))
}

func TestResolver_Now_UsesProvider(t *testing.T) {
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	r := NewResolver(&FixedTimeProvider{At: at})

	now, err := r.Now("Europe/Madrid")
	require.NoError(t, err)
	assert.True(t, now.Equal(at))
	assert.Equal(t, 12, now.Hour())
}

func TestParseTimeOfDay(t *testing.T) {
	ts, h, m, err := ParseTimeOfDay("9:05")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:05"), ts)
	assert.Equal(t, 9, h)
	assert.Equal(t, 5, m)

	_, _, _, err = ParseTimeOfDay("25:00")
	assert.ErrorIs(t, err, ErrInvalidTemporalInput)
}
