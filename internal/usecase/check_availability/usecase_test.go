package check_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type dayReservations []*domain.Reservation

func (d dayReservations) ListForDay(context.Context, time.Time, time.Time) ([]*domain.Reservation, error) {
	return d, nil
}

type fakeTables struct {
	tables []*domain.Table
	filter domain.TableFilter
}

func (f *fakeTables) List(_ context.Context, filter domain.TableFilter) ([]*domain.Table, error) {
	f.filter = filter
	out := make([]*domain.Table, 0, len(f.tables))
	for _, t := range f.tables {
		if filter.AvailableOnly && !t.IsAvailable {
			continue
		}
		if filter.MinCapacity != nil && t.Capacity < *filter.MinCapacity {
			continue
		}
		if filter.Location != nil && t.Location != *filter.Location {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type staticRules struct {
	rules *domain.RulesConfig
}

func (s staticRules) Rules(context.Context) (*domain.RulesConfig, error) {
	return s.rules, nil
}

func newUseCase(existing dayReservations, reserved int) (*UseCase, *fakeTables) {
	tables := &fakeTables{tables: []*domain.Table{
		{ID: 1, Number: 1, Capacity: 2, Location: domain.LocationInterior, IsAvailable: true},
		{ID: 2, Number: 2, Capacity: 4, Location: domain.LocationInterior, IsAvailable: true},
		{ID: 3, Number: 3, Capacity: 4, Location: domain.LocationTerraza, IsAvailable: true},
		{ID: 4, Number: 4, Capacity: 6, Location: domain.LocationInterior, IsAvailable: false},
	}}

	rules := domain.DefaultRules("Europe/Madrid")
	rules.Reservations.ReservedTablesAlways = reserved

	uc := NewUseCase(existing, tables, staticRules{rules: rules}, clock.NewResolver(nil), nopLogger{})
	return uc, tables
}

func TestExecute_ReturnsFreeTablesBestFirst(t *testing.T) {
	existing := dayReservations{{
		ID: 1, ReservationTime: "20:00", TableID: ptr.Ptr(int64(2)), Status: domain.StatusConfirmed,
	}, {
		ID: 2, ReservationTime: "20:00", TableID: ptr.Ptr(int64(1)), Status: domain.StatusCancelled,
	}}
	uc, tables := newUseCase(existing, 0)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-03-05", Time: "20:00", PartySize: 2})
	require.NoError(t, err)

	require.Len(t, resp.CandidateTables, 2)
	assert.Equal(t, int64(1), resp.CandidateTables[0].ID)
	assert.Equal(t, int64(3), resp.CandidateTables[1].ID)
	assert.True(t, resp.Available)
	assert.True(t, tables.filter.AvailableOnly)
}

func TestExecute_ReservedTablesHeldBack(t *testing.T) {
	uc, _ := newUseCase(nil, 2)

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-03-05", Time: "20:00", PartySize: 4})
	require.NoError(t, err)

	assert.Len(t, resp.CandidateTables, 2)
	assert.False(t, resp.Available)
}

func TestExecute_LocationFilter(t *testing.T) {
	uc, _ := newUseCase(nil, 0)

	resp, err := uc.Execute(context.Background(), &Request{
		Date: "2026-03-05", Time: "9:00", PartySize: 3, Location: domain.LocationTerraza,
	})
	require.NoError(t, err)

	require.Len(t, resp.CandidateTables, 1)
	assert.Equal(t, int64(3), resp.CandidateTables[0].ID)
	assert.Equal(t, "09:00", resp.Time.String())
}

func TestExecute_InvalidInput(t *testing.T) {
	uc, _ := newUseCase(nil, 0)

	cases := []*Request{
		{Date: "05/03/2026", Time: "20:00", PartySize: 2},
		{Date: "2026-03-05", Time: "25:00", PartySize: 2},
		{Date: "2026-03-05", Time: "20:00", PartySize: 0},
		{Date: "2026-03-05", Time: "20:00", PartySize: 2, Location: "roof"},
	}
	for _, req := range cases {
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
