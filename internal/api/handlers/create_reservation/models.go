package create_reservation

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	resModels "github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CustomerName      string  `json:"customerName"`
	CustomerEmail     string  `json:"customerEmail"`
	CustomerPhone     string  `json:"customerPhone"`
	Date              string  `json:"date"` // "2026-11-02"
	Time              string  `json:"time"` // "20:30"
	Guests            int     `json:"guests"`
	TableID           *int64  `json:"tableId,omitempty"`
	PreferredLocation string  `json:"preferredLocation,omitempty"`
	SpecialRequests   *string `json:"specialRequests,omitempty"`
	Status            *string `json:"status,omitempty"` // учитывается только для dashboard
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	*resModels.ReservationResponse
	TableNumber int `json:"tableNumber"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(channel domain.SourceChannel) *createReservation.Request {
	req := &createReservation.Request{
		Channel:           channel,
		CustomerName:      r.CustomerName,
		CustomerEmail:     r.CustomerEmail,
		CustomerPhone:     r.CustomerPhone,
		PartySize:         r.Guests,
		Date:              r.Date,
		Time:              r.Time,
		TableID:           r.TableID,
		PreferredLocation: domain.Location(r.PreferredLocation),
		SpecialRequests:   r.SpecialRequests,
	}
	if r.Status != nil {
		status := domain.ReservationStatus(*r.Status)
		req.Status = &status
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ReservationResponse: resModels.FromDomainReservation(resp.Reservation),
		TableNumber:         resp.Table.Number,
	}
}
