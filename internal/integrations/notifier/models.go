package notifier

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/lifecycle"
)

// Request что и кому отправить
type Request struct {
	Type        lifecycle.NotificationType
	Reservation *domain.Reservation
	Restaurant  domain.RestaurantInfo
	TableNumber int // 0 - не указывать стол в тексте

	// Subject и Body используются только для NotificationCustom
	Subject string
	Body    string
}

// Message готовое к доставке сообщение
type Message struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	ReservationID   int64     `json:"reservationId"`
	To              string    `json:"to"`
	CustomerName    string    `json:"customerName"`
	Subject         string    `json:"subject"`
	Body            string    `json:"body"`
	RestaurantEmail string    `json:"restaurantEmail,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
