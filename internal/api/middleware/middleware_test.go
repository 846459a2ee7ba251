package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func channelEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ChannelOf(r.Context())))
	})
}

func TestSourceChannel(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		headers map[string]string
		want    domain.SourceChannel
	}{
		{"no header", "", nil, domain.ChannelExternal},
		{"dashboard without configured token", "", map[string]string{HeaderClientSource: "dashboard"}, domain.ChannelDashboard},
		{"unknown source", "", map[string]string{HeaderClientSource: "widget"}, domain.ChannelExternal},
		{"dashboard with valid token", "s3cret", map[string]string{HeaderClientSource: "dashboard", HeaderDashboardToken: "s3cret"}, domain.ChannelDashboard},
		{"dashboard with wrong token", "s3cret", map[string]string{HeaderClientSource: "dashboard", HeaderDashboardToken: "guess"}, domain.ChannelExternal},
		{"dashboard without token", "s3cret", map[string]string{HeaderClientSource: "dashboard"}, domain.ChannelExternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			SourceChannel(tt.token)(channelEcho()).ServeHTTP(rec, req)

			assert.Equal(t, string(tt.want), rec.Body.String())
		})
	}
}

func TestRateLimit(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 2)
	h := SourceChannel("")(RateLimit(limiter)(channelEcho()))

	send := func(source string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		if source != "" {
			req.Header.Set(HeaderClientSource, source)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send(""))
	assert.Equal(t, http.StatusOK, send(""))
	assert.Equal(t, http.StatusTooManyRequests, send(""))
	assert.Equal(t, http.StatusOK, send("dashboard"), "dashboard is not limited")
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc", seen)
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeHTTPMetrics struct {
	requests []recordedRequest
	inFlight int
}

func (m *fakeHTTPMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	m.requests = append(m.requests, recordedRequest{method, route, status})
}
func (m *fakeHTTPMetrics) IncInFlight(string) { m.inFlight++ }
func (m *fakeHTTPMetrics) DecInFlight(string) { m.inFlight-- }

func TestMetricsMiddlewareUsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/tables/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tables/42", nil))

	require.Len(t, m.requests, 1)
	assert.Equal(t, recordedRequest{http.MethodGet, "/tables/{id}", http.StatusNotFound}, m.requests[0])
	assert.Zero(t, m.inFlight)
}
