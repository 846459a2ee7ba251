package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// ListReservationsRequest фильтры списка бронирований (все поля опциональны)
type ListReservationsRequest struct {
	Date    *string // конкретный день YYYY-MM-DD
	From    *string // начало периода YYYY-MM-DD (включительно)
	To      *string // конец периода YYYY-MM-DD (включительно)
	Status  *string
	TableID *int64
	Name    *string
	Phone   *string
	Time    *string
}

// UpdateStatusRequest запрос на смену статуса
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed seated completed cancelled"`
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID              int64     `json:"id"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	CustomerPhone   string    `json:"customerPhone"`
	Date            string    `json:"date"` // "2026-11-02"
	Time            string    `json:"time"` // "20:30"
	ReservationAt   time.Time `json:"reservationAt"`
	Guests          int       `json:"guests"`
	TableID         *int64    `json:"tableId"`
	Status          string    `json:"status"`
	SpecialRequests *string   `json:"specialRequests,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Count        int                    `json:"count"`
}

// FromDomainReservation конвертирует domain.Reservation в ReservationResponse
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              r.ID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Date:            r.ReservationDate,
		Time:            r.ReservationTime.String(),
		ReservationAt:   r.ReservationAt,
		Guests:          r.PartySize,
		TableID:         r.TableID,
		Status:          string(r.Status),
		SpecialRequests: r.SpecialRequests,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: out, Count: len(out)}
}
