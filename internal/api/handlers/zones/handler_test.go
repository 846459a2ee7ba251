package zones

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zonesService "github.com/m04kA/SMC-ReservationService/internal/service/zones"
	"github.com/m04kA/SMC-ReservationService/internal/service/zones/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubService struct {
	created   *models.CreateZoneRequest
	deleteErr error
	createErr error
}

func (s *stubService) List(context.Context) ([]*models.ZoneResponse, error) {
	return []*models.ZoneResponse{{ID: 1, Name: "Terraza"}}, nil
}

func (s *stubService) GetByID(_ context.Context, id int64) (*models.ZoneResponse, error) {
	return nil, zonesService.ErrZoneNotFound
}

func (s *stubService) Create(_ context.Context, req *models.CreateZoneRequest) (*models.ZoneResponse, error) {
	s.created = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.ZoneResponse{ID: 2, Name: req.Name, Type: req.Type}, nil
}

func (s *stubService) Update(_ context.Context, id int64, _ *models.UpdateZoneRequest) (*models.ZoneResponse, error) {
	return &models.ZoneResponse{ID: id}, nil
}

func (s *stubService) Delete(context.Context, int64) error {
	return s.deleteErr
}

func newRouter(svc *stubService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/zones", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/zones", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/zones/{id}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/zones/{id}", h.Delete).Methods(http.MethodDelete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestList(t *testing.T) {
	rec := do(newRouter(&stubService{}), http.MethodGet, "/api/v1/zones", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ZoneListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestCreate_Validation(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc)

	rec := do(r, http.MethodPost, "/api/v1/zones", `{"name":"Patio","type":"garden","size":{"width":4,"height":3}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.created)

	rec = do(r, http.MethodPost, "/api/v1/zones", `{"name":"Patio","type":"exterior","size":{"width":4,"height":3},"color":"#aabbcc"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "exterior", svc.created.Type)
}

func TestCreate_DuplicateName(t *testing.T) {
	svc := &stubService{createErr: zonesService.ErrDuplicateName}
	rec := do(newRouter(svc), http.MethodPost, "/api/v1/zones", `{"name":"Patio","type":"exterior","size":{"width":4,"height":3}}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGet_NotFound(t *testing.T) {
	rec := do(newRouter(&stubService{}), http.MethodGet, "/api/v1/zones/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_NotEmptyReportsCount(t *testing.T) {
	svc := &stubService{deleteErr: &zonesService.NotEmptyError{ZoneID: 3, TablesCount: 4}}
	rec := do(newRouter(svc), http.MethodDelete, "/api/v1/zones/3", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ZoneNotEmptyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.TablesCount)
}

func TestDelete_NoContent(t *testing.T) {
	rec := do(newRouter(&stubService{}), http.MethodDelete, "/api/v1/zones/3", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
