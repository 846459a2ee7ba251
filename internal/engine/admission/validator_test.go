package admission

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Суббота, 2024-06-01 12:00 UTC
var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newValidator() *Validator {
	return NewValidator(clock.NewResolver(&clock.FixedTimeProvider{At: now}))
}

func baseRules() *domain.RulesConfig {
	return domain.DefaultRules("UTC")
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "Ana García",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "+34 600 000 000",
		PartySize:     2,
		Date:          "2024-06-05",
		Time:          "20:00",
	}
}

func reservationAt(id int64, guests int, status domain.ReservationStatus, at time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		PartySize:       guests,
		Status:          status,
		ReservationAt:   at,
		ReservationDate: at.Format(domain.DateFormat),
		ReservationTime: types.NewTimeString(at),
	}
}

func repeat(n, guests int, status domain.ReservationStatus, at time.Time) []*domain.Reservation {
	out := make([]*domain.Reservation, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, reservationAt(int64(i+1), guests, status, at))
	}
	return out
}

func requireRejection(t *testing.T, err error, kind error) *domain.Rejection {
	t.Helper()
	require.ErrorIs(t, err, kind)
	rej, ok := domain.AsRejection(err)
	require.True(t, ok, "expected *domain.Rejection, got %T", err)
	return rej
}

func TestValidate_OneMinuteAheadAccepted(t *testing.T) {
	req := validRequest()
	req.Date = "2024-06-01"
	req.Time = "12:01"

	admitted, err := newValidator().Validate(context.Background(), req, baseRules(), now, StaticSnapshot(nil))

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("12:01"), admitted.Time)
	assert.Equal(t, domain.Saturday, admitted.Weekday)
	assert.Equal(t, domain.LocationAny, admitted.PreferredLocation)
}

func TestValidate_PastDateWinsOverCapacity(t *testing.T) {
	req := validRequest()
	req.Date = "2024-06-01"
	req.Time = "11:59"

	rules := baseRules()
	rules.Reservations.MinAdvanceHours = 48
	full := repeat(50, 2, domain.StatusConfirmed, now.Add(-time.Hour))

	_, err := newValidator().Validate(context.Background(), req, rules, now, StaticSnapshot(full))

	rej := requireRejection(t, err, ErrPastDate)
	assert.Equal(t, ReasonPastDate, rej.Reason)
}

func TestValidate_Idempotent(t *testing.T) {
	v := newValidator()
	snapshot := StaticSnapshot(repeat(3, 4, domain.StatusPending, time.Date(2024, 6, 5, 21, 0, 0, 0, time.UTC)))

	first, err1 := v.Validate(context.Background(), validRequest(), baseRules(), now, snapshot)
	second, err2 := v.Validate(context.Background(), validRequest(), baseRules(), now, snapshot)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestValidate_DisabledWeekdayAlwaysClosed(t *testing.T) {
	rules := baseRules()
	rule := rules.WeekdayRules[domain.Wednesday]
	rule.Enabled = ptr.Ptr(false)
	rules.WeekdayRules[domain.Wednesday] = rule

	for _, at := range []string{"00:00", "09:30", "13:00", "20:00", "23:59"} {
		req := validRequest()
		req.Time = at
		_, err := newValidator().Validate(context.Background(), req, rules, now, StaticSnapshot(nil))
		requireRejection(t, err, ErrClosedOnThisDay)
	}
}

func TestValidate_MissingWeekdayRuleFailsClosed(t *testing.T) {
	rules := baseRules()
	delete(rules.WeekdayRules, domain.Wednesday)

	_, err := newValidator().Validate(context.Background(), validRequest(), rules, now, StaticSnapshot(nil))

	rej := requireRejection(t, err, ErrNoCapacityRuleForDay)
	assert.Equal(t, domain.Wednesday, rej.Details["weekday"])
}

func TestValidate_GuestLimitBoundary(t *testing.T) {
	at := time.Date(2024, 6, 5, 14, 0, 0, 0, time.UTC)
	booked := repeat(49, 2, domain.StatusConfirmed, at) // 98 гостей

	req := validRequest()
	req.PartySize = 2
	_, err := newValidator().Validate(context.Background(), req, baseRules(), now, StaticSnapshot(booked))
	require.NoError(t, err)

	req.PartySize = 3
	_, err = newValidator().Validate(context.Background(), req, baseRules(), now, StaticSnapshot(booked))
	rej := requireRejection(t, err, ErrDailyGuestLimitReached)
	assert.Equal(t, 100, rej.Details["maxGuestsTotal"])
	assert.Equal(t, 98, rej.Details["currentGuests"])
	assert.Equal(t, 3, rej.Details["requestedGuests"])
	assert.Equal(t, 2, rej.Details["availableGuests"])
}

func TestValidate_ReservationLimitReached(t *testing.T) {
	at := time.Date(2024, 6, 5, 14, 0, 0, 0, time.UTC)
	rules := baseRules()
	rules.WeekdayRules[domain.Wednesday] = domain.WeekdayRule{MaxReservations: 3, MaxGuestsTotal: 100}

	_, err := newValidator().Validate(context.Background(), validRequest(), rules, now,
		StaticSnapshot(repeat(3, 1, domain.StatusPending, at)))

	rej := requireRejection(t, err, ErrDailyReservationLimitReached)
	assert.Equal(t, 3, rej.Details["maxReservations"])
	assert.Equal(t, 3, rej.Details["currentReservations"])
	assert.Equal(t, 0, rej.Details["availableSlots"])
}

func TestValidate_InactiveReservationsNotCounted(t *testing.T) {
	at := time.Date(2024, 6, 5, 14, 0, 0, 0, time.UTC)
	snapshot := append(repeat(50, 2, domain.StatusCancelled, at), repeat(10, 2, domain.StatusCompleted, at)...)

	admitted, err := newValidator().Validate(context.Background(), validRequest(), baseRules(), now, StaticSnapshot(snapshot))

	require.NoError(t, err)
	assert.Equal(t, 0, admitted.CurrentReservations)
	assert.Equal(t, 0, admitted.CurrentGuests)
}

func TestValidate_OtherDaysNotCounted(t *testing.T) {
	rules := baseRules()
	rules.WeekdayRules[domain.Wednesday] = domain.WeekdayRule{MaxReservations: 1}
	nextDay := time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC) // граница интервала не входит в день

	_, err := newValidator().Validate(context.Background(), validRequest(), rules, now,
		StaticSnapshot([]*domain.Reservation{reservationAt(1, 2, domain.StatusConfirmed, nextDay)}))

	require.NoError(t, err)
}

func TestValidate_AdvanceDaysBoundary(t *testing.T) {
	req := validRequest()
	req.Date = "2025-06-01"
	req.Time = "12:00"

	_, err := newValidator().Validate(context.Background(), req, baseRules(), now, StaticSnapshot(nil))
	require.NoError(t, err, "exactly 365 days ahead must be accepted")

	req.Date = "2025-06-02"
	_, err = newValidator().Validate(context.Background(), req, baseRules(), now, StaticSnapshot(nil))
	rej := requireRejection(t, err, ErrTooFarInAdvance)
	assert.Equal(t, 365, rej.Details["maxAdvanceDays"])
	assert.Equal(t, 366, rej.Details["requestedAdvanceDays"])
}

func TestValidate_AdvanceDaysRoundUp(t *testing.T) {
	rules := baseRules()
	rules.Reservations.MaxAdvanceDays = 1

	req := validRequest()
	req.Date = "2024-06-02"
	req.Time = "13:00" // 25 часов вперед = 2 дня

	_, err := newValidator().Validate(context.Background(), req, rules, now, StaticSnapshot(nil))
	rej := requireRejection(t, err, ErrTooFarInAdvance)
	assert.Equal(t, 2, rej.Details["requestedAdvanceDays"])
}

func TestValidate_MinAdvanceHours(t *testing.T) {
	req := validRequest()
	req.Date = "2024-06-01"
	req.Time = "12:30"

	for hours, want := range map[int]string{1: "1 час", 3: "3 часа", 5: "5 часов", 21: "21 час"} {
		rules := baseRules()
		rules.Reservations.MinAdvanceHours = hours

		_, err := newValidator().Validate(context.Background(), req, rules, now, StaticSnapshot(nil))
		rej := requireRejection(t, err, ErrInsufficientAdvanceNotice)
		assert.Contains(t, rej.Message, want)
		assert.Equal(t, hours, rej.Details["minAdvanceHours"])
	}

	rules := baseRules()
	rules.Reservations.MinAdvanceHours = 1
	req.Time = "13:00"
	_, err := newValidator().Validate(context.Background(), req, rules, now, StaticSnapshot(nil))
	assert.NoError(t, err, "exactly the minimum notice is enough")
}

func TestValidate_InputChecksInOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{"missing name beats bad party size", func(r *Request) { r.CustomerName = " "; r.PartySize = 50 }, ErrMissingFields},
		{"missing guests", func(r *Request) { r.PartySize = 0 }, ErrMissingFields},
		{"party size too large", func(r *Request) { r.PartySize = 21 }, ErrInvalidPartySize},
		{"negative party size", func(r *Request) { r.PartySize = -1 }, ErrInvalidPartySize},
		{"bad party size beats bad email", func(r *Request) { r.PartySize = 21; r.CustomerEmail = "nope" }, ErrInvalidPartySize},
		{"email without tld", func(r *Request) { r.CustomerEmail = "ana@example" }, ErrInvalidEmail},
		{"email with spaces", func(r *Request) { r.CustomerEmail = "ana maria@example.com" }, ErrInvalidEmail},
		{"bad email beats bad date", func(r *Request) { r.CustomerEmail = "x"; r.Date = "soon" }, ErrInvalidEmail},
		{"malformed date", func(r *Request) { r.Date = "05/06/2024" }, ErrInvalidDateOrTime},
		{"malformed time", func(r *Request) { r.Time = "8pm" }, ErrInvalidDateOrTime},
		{"hour out of range", func(r *Request) { r.Time = "24:00" }, ErrInvalidDateOrTime},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			_, err := newValidator().Validate(context.Background(), req, baseRules(), now, StaticSnapshot(nil))
			requireRejection(t, err, tc.want)
			assert.True(t, IsClientError(err))
		})
	}
}

func TestValidate_NormalizesRequest(t *testing.T) {
	req := validRequest()
	req.Date = "2024-06-05T00:00:00.000Z"
	req.Time = "9:05"
	req.CustomerName = "  Ana  "
	req.SpecialRequests = ptr.Ptr("   ")

	rules := baseRules()
	rules.Reservations.DefaultPreferredLocation = domain.LocationTerraza

	admitted, err := newValidator().Validate(context.Background(), req, rules, now, StaticSnapshot(nil))

	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", admitted.Date)
	assert.Equal(t, types.TimeString("09:05"), admitted.Time)
	assert.Equal(t, "Ana", admitted.CustomerName)
	assert.Nil(t, admitted.SpecialRequests)
	assert.Equal(t, domain.LocationTerraza, admitted.PreferredLocation)
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), admitted.DayStart)
	assert.Equal(t, time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC), admitted.DayEnd)
}

func TestValidate_OperatingHours(t *testing.T) {
	rules := baseRules()
	rules.Reservations.DefaultDurationMinutes = 120
	rules.Schedule = map[domain.Weekday]domain.ScheduleEntry{
		domain.Wednesday: {IsOpen: true, OpenTime: "13:00", CloseTime: "00:00"},
		domain.Thursday:  {IsOpen: false, OpenTime: "13:00", CloseTime: "23:00"},
	}

	cases := []struct {
		date, time string
		want       error
	}{
		{"2024-06-05", "13:00", nil},
		{"2024-06-05", "22:00", nil}, // заканчивается ровно в полночь
		{"2024-06-05", "22:30", ErrOutsideOperatingHours},
		{"2024-06-05", "12:45", ErrOutsideOperatingHours},
		{"2024-06-06", "20:00", ErrClosedOnThisDay}, // закрыто по расписанию
		{"2024-06-07", "20:00", ErrClosedOnThisDay}, // нет записи в расписании
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s %s", tc.date, tc.time), func(t *testing.T) {
			req := validRequest()
			req.Date, req.Time = tc.date, tc.time
			_, err := newValidator().Validate(context.Background(), req, rules, now, StaticSnapshot(nil))
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			requireRejection(t, err, tc.want)
		})
	}
}

func TestValidate_ExcludedReservationNotCounted(t *testing.T) {
	at := time.Date(2024, 6, 5, 20, 0, 0, 0, time.UTC)
	rules := baseRules()
	rules.WeekdayRules[domain.Wednesday] = domain.WeekdayRule{MaxReservations: 1}

	req := validRequest()
	req.ExcludeReservationID = ptr.Ptr(int64(7))

	_, err := newValidator().Validate(context.Background(), req, rules, now,
		StaticSnapshot([]*domain.Reservation{reservationAt(7, 2, domain.StatusConfirmed, at)}))

	require.NoError(t, err)
}

func TestValidate_SnapshotFailureIsInternal(t *testing.T) {
	boom := errors.New("db down")
	failing := SnapshotFunc(func(context.Context, time.Time, time.Time) ([]*domain.Reservation, error) {
		return nil, boom
	})

	_, err := newValidator().Validate(context.Background(), validRequest(), baseRules(), now, failing)

	assert.ErrorIs(t, err, ErrSnapshot)
	_, isRejection := domain.AsRejection(err)
	assert.False(t, isRejection)
}

func TestValidate_InvalidRulesFailClosed(t *testing.T) {
	rules := baseRules()
	rules.Reservations.Timezone = "Atlantis/Capital"

	_, err := newValidator().Validate(context.Background(), validRequest(), rules, now, StaticSnapshot(nil))
	assert.ErrorIs(t, err, ErrRulesUnavailable)

	_, err = newValidator().Validate(context.Background(), validRequest(), nil, now, StaticSnapshot(nil))
	assert.ErrorIs(t, err, ErrRulesUnavailable)
}

func TestPluralRu(t *testing.T) {
	assert.Equal(t, "час", pluralRu(1, "час", "часа", "часов"))
	assert.Equal(t, "часа", pluralRu(24, "час", "часа", "часов"))
	assert.Equal(t, "часов", pluralRu(12, "час", "часа", "часов"))
	assert.Equal(t, "часов", pluralRu(111, "час", "часа", "часов"))
}
