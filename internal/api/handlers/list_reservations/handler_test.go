package list_reservations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	got *models.ListReservationsRequest
	err error
}

func (s *stubService) List(_ context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ReservationListResponse{Reservations: []*models.ReservationResponse{}, Count: 0}, nil
}

func get(svc *stubService, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reservations?"+query, nil))
	return rec
}

func TestHandle_Filters(t *testing.T) {
	svc := &stubService{}
	rec := get(svc, "date=2026-11-02&status=pending&tableId=4&name=ana")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.Date)
	assert.Equal(t, "2026-11-02", *svc.got.Date)
	assert.Equal(t, "pending", *svc.got.Status)
	assert.Equal(t, int64(4), *svc.got.TableID)
	assert.Equal(t, "ana", *svc.got.Name)
	assert.Nil(t, svc.got.From)
	assert.Nil(t, svc.got.Phone)
}

func TestHandle_BadInput(t *testing.T) {
	rec := get(&stubService{}, "tableId=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(&stubService{err: reservations.ErrInvalidStatus}, "status=lost")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(&stubService{err: reservations.ErrInternal}, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
