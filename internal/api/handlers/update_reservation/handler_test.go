package update_reservation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	got *updateReservation.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *updateReservation.Request) (*updateReservation.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &updateReservation.Response{
		Reservation: &domain.Reservation{ID: req.ID, PartySize: 4, Status: domain.StatusConfirmed},
		Table:       &domain.Table{ID: 2, Number: 8},
	}, nil
}

func put(uc *stubUseCase, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/reservations/{id}", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPut)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, strings.NewReader(body)))
	return rec
}

func TestHandle_PassesOnlyChangedFields(t *testing.T) {
	uc := &stubUseCase{}
	rec := put(uc, "/api/v1/reservations/11", `{"guests":4}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(11), uc.got.ID)
	require.NotNil(t, uc.got.Changes.PartySize)
	assert.Equal(t, 4, *uc.got.Changes.PartySize)
	assert.Nil(t, uc.got.Changes.Date)
	assert.Contains(t, rec.Body.String(), `"tableNumber":8`)
}

func TestHandle_Errors(t *testing.T) {
	limit := domain.NewRejection(admission.ErrDailyGuestLimitReached, admission.ReasonDailyGuestLimitReached, "лимит гостей", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", updateReservation.ErrReservationNotFound, http.StatusNotFound},
		{"not editable", fmt.Errorf("%w: status=seated", updateReservation.ErrNotEditable), http.StatusConflict},
		{"invalid", updateReservation.ErrInvalidInput, http.StatusBadRequest},
		{"rejected", limit, http.StatusConflict},
		{"rules", updateReservation.ErrRulesUnavailable, http.StatusServiceUnavailable},
		{"internal", updateReservation.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := put(&stubUseCase{err: tt.err}, "/api/v1/reservations/11", `{"time":"21:00"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
