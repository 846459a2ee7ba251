package update_reservation

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	resModels "github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	updateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
)

// UpdateReservationRequest HTTP request model, передаются только изменяемые поля
type UpdateReservationRequest struct {
	CustomerName    *string `json:"customerName,omitempty"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	Guests          *int    `json:"guests,omitempty"`
	TableID         *int64  `json:"tableId,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	*resModels.ReservationResponse
	TableNumber *int `json:"tableNumber,omitempty"`
}

func (r *UpdateReservationRequest) ToUseCaseRequest(id int64) *updateReservation.Request {
	return &updateReservation.Request{
		ID: id,
		Changes: domain.ReservationChanges{
			CustomerName:    r.CustomerName,
			CustomerEmail:   r.CustomerEmail,
			CustomerPhone:   r.CustomerPhone,
			Date:            r.Date,
			Time:            r.Time,
			PartySize:       r.Guests,
			TableID:         r.TableID,
			SpecialRequests: r.SpecialRequests,
		},
	}
}

func FromUseCaseResponse(resp *updateReservation.Response) *ReservationResponse {
	out := &ReservationResponse{
		ReservationResponse: resModels.FromDomainReservation(resp.Reservation),
	}
	if resp.Table != nil {
		number := resp.Table.Number
		out.TableNumber = &number
	}
	return out
}
