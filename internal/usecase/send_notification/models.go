package send_notification

import "time"

// Request модель запроса на отправку уведомления
type Request struct {
	ReservationID int64
	Type          string  // confirmation, reminder или custom
	Recipient     *string // Адрес вместо email из бронирования (опционально)
	Subject       string  // Только для custom
	Body          string  // Только для custom
}

// Response модель ответа об отправленном уведомлении
type Response struct {
	MessageID string
	Type      string
	To        string
	Subject   string
	SentAt    time.Time
}
