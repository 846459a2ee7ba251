package validate_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
	"github.com/m04kA/SMC-ReservationService/internal/engine/assignment"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/pipeline"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type dayReservations []*domain.Reservation

func (d dayReservations) ListForDay(context.Context, time.Time, time.Time) ([]*domain.Reservation, error) {
	return d, nil
}

type tableList []*domain.Table

func (l tableList) List(context.Context, domain.TableFilter) ([]*domain.Table, error) {
	return l, nil
}

type staticRules struct {
	rules *domain.RulesConfig
	err   error
}

func (s staticRules) Rules(context.Context) (*domain.RulesConfig, error) {
	return s.rules, s.err
}

func newUseCase(t *testing.T, existing dayReservations, rules staticRules) *UseCase {
	t.Helper()

	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	now := &clock.FixedTimeProvider{At: time.Date(2026, 3, 2, 10, 0, 0, 0, madrid)}

	tables := tableList{
		{ID: 7, Number: 7, Capacity: 4, Location: domain.LocationInterior, IsAvailable: true},
	}
	p := pipeline.New(existing, tables, admission.NewValidator(clock.NewResolver(now)))

	uc := NewUseCase(p, rules, nopLogger{})
	uc.timeProvider = now
	return uc
}

func request() *Request {
	return &Request{
		CustomerName:  "Luis",
		CustomerEmail: "luis@example.com",
		CustomerPhone: "600000000",
		PartySize:     2,
		Date:          "2026-03-04",
		Time:          "9:30",
	}
}

func TestExecute_WouldBeAccepted(t *testing.T) {
	uc := newUseCase(t, nil, staticRules{rules: domain.DefaultRules("Europe/Madrid")})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("09:30"), resp.Time)
	assert.Equal(t, int64(7), resp.Table.ID)
	assert.Equal(t, domain.DefaultMaxReservations, resp.MaxReservations)
	assert.Zero(t, resp.CurrentReservations)
}

func TestExecute_WouldBeRejected(t *testing.T) {
	madrid, _ := time.LoadLocation("Europe/Madrid")
	tableID := int64(7)
	existing := dayReservations{{
		ID:              1,
		ReservationAt:   time.Date(2026, 3, 4, 9, 30, 0, 0, madrid),
		ReservationTime: "09:30",
		PartySize:       2,
		TableID:         &tableID,
		Status:          domain.StatusConfirmed,
	}}
	uc := newUseCase(t, existing, staticRules{rules: domain.DefaultRules("Europe/Madrid")})

	_, err := uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, assignment.ErrNoAvailableTable)
}

func TestExecute_RulesUnavailable(t *testing.T) {
	uc := newUseCase(t, nil, staticRules{err: errors.New("boom")})

	_, err := uc.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrRulesUnavailable)
}
