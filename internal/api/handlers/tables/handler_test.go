package tables

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tablesService "github.com/m04kA/SMC-ReservationService/internal/service/tables"
	"github.com/m04kA/SMC-ReservationService/internal/service/tables/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	listReq   *models.ListTablesRequest
	updateReq *models.UpdateTableRequest
	err       error
}

func (s *stubService) List(_ context.Context, req *models.ListTablesRequest) ([]*models.TableResponse, error) {
	s.listReq = req
	return []*models.TableResponse{{ID: 1, Number: 4}}, s.err
}

func (s *stubService) GetByID(_ context.Context, id int64) (*models.TableResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.TableResponse{ID: id}, nil
}

func (s *stubService) Create(_ context.Context, req *models.CreateTableRequest) (*models.TableResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.TableResponse{ID: 10, Number: req.Number, Capacity: req.Capacity}, nil
}

func (s *stubService) Update(_ context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error) {
	s.updateReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.TableResponse{ID: id}, nil
}

func (s *stubService) Delete(context.Context, int64) error {
	return s.err
}

func newRouter(svc *stubService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/tables", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/tables", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/tables/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/tables/{id}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/api/v1/tables/{id}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestList_ParsesFilters(t *testing.T) {
	svc := &stubService{}
	rec := do(newRouter(svc), http.MethodGet, "/api/v1/tables?location=terraza&minCapacity=4&available=true", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listReq.Location)
	assert.Equal(t, "terraza", *svc.listReq.Location)
	assert.Equal(t, 4, *svc.listReq.MinCapacity)
	assert.True(t, *svc.listReq.Available)
}

func TestList_InvalidFilter(t *testing.T) {
	rec := do(newRouter(&stubService{}), http.MethodGet, "/api/v1/tables?minCapacity=many", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreate(t *testing.T) {
	r := newRouter(&stubService{})

	rec := do(r, http.MethodPost, "/api/v1/tables", `{"number":4,"capacity":0,"location":"interior"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodPost, "/api/v1/tables", `{"number":4,"capacity":4,"location":"interior"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUpdate_ExplicitNullZone(t *testing.T) {
	svc := &stubService{}
	rec := do(newRouter(svc), http.MethodPut, "/api/v1/tables/3", `{"zoneId":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.updateReq.ZoneID.Set)
	assert.Nil(t, svc.updateReq.ZoneID.Value)
}

func TestServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", tablesService.ErrTableNotFound, http.StatusNotFound},
		{"duplicate", tablesService.ErrDuplicateNumber, http.StatusConflict},
		{"zone missing", tablesService.ErrZoneNotFound, http.StatusBadRequest},
		{"internal", tablesService.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(newRouter(&stubService{err: tt.err}), http.MethodPut, "/api/v1/tables/3", `{"capacity":6}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
