package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/lifecycle"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingSink struct {
	mu       sync.Mutex
	messages []*Message
	err      error
}

func (s *recordingSink) Publish(_ context.Context, msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.messages = append(s.messages, msg)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type countingMetrics struct {
	mu      sync.Mutex
	success int
	failed  int
}

func (m *countingMetrics) ObserveNotification(_ string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failed++
		return
	}
	m.success++
}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              12,
		CustomerName:    "Ana García",
		CustomerEmail:   "ana@example.com",
		CustomerPhone:   "+34600000000",
		ReservationDate: "2026-11-02",
		ReservationTime: "20:30",
		PartySize:       4,
		Status:          domain.StatusPending,
		SpecialRequests: ptr.Ptr("у окна"),
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	restaurant := domain.RestaurantInfo{Name: "La Tasca", Phone: "+34911111111", Email: "info@latasca.es"}

	t.Run("confirmation for pending reservation", func(t *testing.T) {
		msg, err := Render(Request{
			Type:        lifecycle.NotificationConfirmation,
			Reservation: testReservation(),
			Restaurant:  restaurant,
			TableNumber: 7,
		}, now)
		require.NoError(t, err)

		assert.NotEmpty(t, msg.ID)
		assert.Equal(t, "ana@example.com", msg.To)
		assert.Equal(t, "Бронирование в La Tasca", msg.Subject)
		assert.Contains(t, msg.Body, "Мы получили вашу заявку")
		assert.Contains(t, msg.Body, "20:30")
		assert.Contains(t, msg.Body, "Стол: №7")
		assert.Contains(t, msg.Body, "у окна")
		assert.Equal(t, "info@latasca.es", msg.RestaurantEmail)
	})

	t.Run("confirmation for confirmed reservation", func(t *testing.T) {
		res := testReservation()
		res.Status = domain.StatusConfirmed

		msg, err := Render(Request{Type: lifecycle.NotificationConfirmation, Reservation: res, Restaurant: restaurant}, now)
		require.NoError(t, err)
		assert.Contains(t, msg.Body, "Ваше бронирование подтверждено")
		assert.NotContains(t, msg.Body, "Стол:")
	})

	t.Run("reminder", func(t *testing.T) {
		msg, err := Render(Request{Type: lifecycle.NotificationReminder, Reservation: testReservation(), Restaurant: restaurant}, now)
		require.NoError(t, err)
		assert.Contains(t, msg.Subject, "Напоминание")
		assert.Contains(t, msg.Body, "2026-11-02 в 20:30")
	})

	t.Run("custom requires subject and body", func(t *testing.T) {
		_, err := Render(Request{Type: lifecycle.NotificationCustom, Reservation: testReservation()}, now)
		assert.ErrorIs(t, err, ErrRender)

		msg, err := Render(Request{
			Type:        lifecycle.NotificationCustom,
			Reservation: testReservation(),
			Subject:     "Изменение меню",
			Body:        "Завтра работает летняя терраса",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, "Изменение меню", msg.Subject)
	})

	t.Run("no email", func(t *testing.T) {
		res := testReservation()
		res.CustomerEmail = " "
		_, err := Render(Request{Type: lifecycle.NotificationReminder, Reservation: res}, now)
		assert.ErrorIs(t, err, ErrNoRecipient)
	})
}

func TestDispatcher_DeliversInBackground(t *testing.T) {
	sink := &recordingSink{}
	metrics := &countingMetrics{}
	d := NewDispatcher(sink, 2, 4, nopLogger{}, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	assert.True(t, d.Dispatch(Request{Type: lifecycle.NotificationConfirmation, Reservation: testReservation()}))
	assert.True(t, d.Dispatch(Request{Type: lifecycle.NotificationReminder, Reservation: testReservation()}))

	assert.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, 10*time.Millisecond)

	cancel()
	d.Wait()

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	assert.Equal(t, 2, metrics.success)
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	sink := &recordingSink{}
	metrics := &countingMetrics{}
	// воркеры не запущены, очередь на одно задание
	d := NewDispatcher(sink, 1, 1, nopLogger{}, metrics)

	assert.True(t, d.Dispatch(Request{Type: lifecycle.NotificationConfirmation, Reservation: testReservation()}))
	assert.False(t, d.Dispatch(Request{Type: lifecycle.NotificationConfirmation, Reservation: testReservation()}))
	assert.Equal(t, 1, metrics.failed)
}

func TestDispatcher_SendReportsSinkFailure(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	d := NewDispatcher(sink, 1, 1, nopLogger{}, nil)

	_, err := d.Send(context.Background(), Request{Type: lifecycle.NotificationReminder, Reservation: testReservation()})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestWebhookSink(t *testing.T) {
	var received Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, received.ID, r.Header.Get("Idempotency-Key"))

		if received.To == "bad@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid recipient"))
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sink := NewWebhookSink(server.URL, time.Second, nopLogger{})

	require.NoError(t, sink.Publish(context.Background(), &Message{ID: "m-1", To: "ana@example.com"}))
	assert.Equal(t, "ana@example.com", received.To)

	err := sink.Publish(context.Background(), &Message{ID: "m-2", To: "bad@example.com"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
