package send_notification

import (
	"time"

	sendNotification "github.com/m04kA/SMC-ReservationService/internal/usecase/send_notification"
)

// SendNotificationRequest HTTP request model
type SendNotificationRequest struct {
	ReservationID int64   `json:"reservationId" validate:"required,gte=1"`
	Type          string  `json:"type" validate:"required,oneof=confirmation reminder custom"`
	To            *string `json:"to,omitempty" validate:"omitempty,email"`
	Subject       string  `json:"subject,omitempty" validate:"required_if=Type custom"`
	Body          string  `json:"body,omitempty" validate:"required_if=Type custom"`
}

// NotificationResponse HTTP response model
type NotificationResponse struct {
	MessageID string    `json:"messageId"`
	Type      string    `json:"type"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	SentAt    time.Time `json:"sentAt"`
}

func (r *SendNotificationRequest) ToUseCaseRequest() *sendNotification.Request {
	return &sendNotification.Request{
		ReservationID: r.ReservationID,
		Type:          r.Type,
		Recipient:     r.To,
		Subject:       r.Subject,
		Body:          r.Body,
	}
}

func FromUseCaseResponse(resp *sendNotification.Response) *NotificationResponse {
	return &NotificationResponse{
		MessageID: resp.MessageID,
		Type:      resp.Type,
		To:        resp.To,
		Subject:   resp.Subject,
		SentAt:    resp.SentAt,
	}
}
