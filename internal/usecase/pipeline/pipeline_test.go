package pipeline

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
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type dayReservations struct {
	items []*domain.Reservation
	err   error
}

func (d dayReservations) ListForDay(context.Context, time.Time, time.Time) ([]*domain.Reservation, error) {
	return d.items, d.err
}

type recordingTables struct {
	tables  []*domain.Table
	filters []domain.TableFilter
}

func (r *recordingTables) List(_ context.Context, filter domain.TableFilter) ([]*domain.Table, error) {
	r.filters = append(r.filters, filter)
	return r.tables, nil
}

type countingMetrics struct {
	outcome, reason string
}

func (m *countingMetrics) ObserveAdmission(outcome, reason string) {
	m.outcome, m.reason = outcome, reason
}

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newPipeline(days dayReservations, tables *recordingTables) *Pipeline {
	validator := admission.NewValidator(clock.NewResolver(&clock.FixedTimeProvider{At: now}))
	return New(days, tables, validator)
}

func request() *admission.Request {
	return &admission.Request{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "600",
		PartySize:     2,
		Date:          "2026-03-05",
		Time:          "20:00",
	}
}

func TestDecide_AutoModeUsesAvailableTablesOnly(t *testing.T) {
	tables := &recordingTables{tables: []*domain.Table{{ID: 1, Number: 1, Capacity: 2, IsAvailable: true}}}
	p := newPipeline(dayReservations{}, tables)

	decision, err := p.Decide(context.Background(), request(), domain.DefaultRules("UTC"), now)
	require.NoError(t, err)

	assert.Equal(t, int64(1), decision.Table.ID)
	require.Len(t, tables.filters, 1)
	assert.True(t, tables.filters[0].AvailableOnly)

	res := decision.ToReservation(domain.StatusPending)
	assert.Equal(t, int64(1), *res.TableID)
	assert.Equal(t, "2026-03-05", res.ReservationDate)
}

func TestDecide_ExplicitModeListsAllTables(t *testing.T) {
	tables := &recordingTables{tables: []*domain.Table{{ID: 9, Number: 9, Capacity: 2}}}
	p := newPipeline(dayReservations{}, tables)

	req := request()
	req.TableID = ptr.Ptr(int64(9))

	decision, err := p.Decide(context.Background(), req, domain.DefaultRules("UTC"), now)
	require.NoError(t, err)
	assert.Equal(t, int64(9), decision.Table.ID)
	assert.False(t, tables.filters[0].AvailableOnly)
}

func TestDecide_RejectionIsNotWrapped(t *testing.T) {
	p := newPipeline(dayReservations{}, &recordingTables{})

	_, err := p.Decide(context.Background(), request(), domain.DefaultRules("UTC"), now)
	rej, ok := domain.AsRejection(err)
	require.True(t, ok)
	assert.Equal(t, assignment.ReasonNoAvailableTable, rej.Reason)
}

func TestDecide_SnapshotFailure(t *testing.T) {
	p := newPipeline(dayReservations{err: errors.New("db down")}, &recordingTables{})

	_, err := p.Decide(context.Background(), request(), domain.DefaultRules("UTC"), now)
	assert.ErrorIs(t, err, ErrStorage)
}

func TestDecide_NoRules(t *testing.T) {
	p := newPipeline(dayReservations{}, &recordingTables{})

	_, err := p.Decide(context.Background(), request(), nil, now)
	assert.ErrorIs(t, err, ErrRulesUnavailable)
}

func TestObserve(t *testing.T) {
	m := &countingMetrics{}

	Observe(m, nil)
	assert.Equal(t, OutcomeAccepted, m.outcome)

	Observe(m, domain.NewRejection(admission.ErrPastDate, admission.ReasonPastDate, "", nil))
	assert.Equal(t, OutcomeRejected, m.outcome)
	assert.Equal(t, admission.ReasonPastDate, m.reason)

	Observe(m, errors.New("boom"))
	assert.Equal(t, OutcomeError, m.outcome)

	Observe(nil, nil)
}
