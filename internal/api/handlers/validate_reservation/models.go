package validate_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tableModels "github.com/m04kA/SMC-ReservationService/internal/service/tables/models"
	validateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
)

// ValidateReservationRequest HTTP request model
type ValidateReservationRequest struct {
	CustomerName      string  `json:"customerName"`
	CustomerEmail     string  `json:"customerEmail"`
	CustomerPhone     string  `json:"customerPhone"`
	Date              string  `json:"date"`
	Time              string  `json:"time"`
	Guests            int     `json:"guests"`
	TableID           *int64  `json:"tableId,omitempty"`
	PreferredLocation string  `json:"preferredLocation,omitempty"`
	SpecialRequests   *string `json:"specialRequests,omitempty"`
}

// ValidationResponse HTTP response model
type ValidationResponse struct {
	Valid               bool                       `json:"valid"`
	Date                string                     `json:"date"`
	Time                string                     `json:"time"`
	ReservationAt       time.Time                  `json:"reservationAt"`
	Guests              int                        `json:"guests"`
	Table               *tableModels.TableResponse `json:"table"`
	MaxReservations     int                        `json:"maxReservations"`
	CurrentReservations int                        `json:"currentReservations"`
	MaxGuestsTotal      int                        `json:"maxGuestsTotal"`
	CurrentGuests       int                        `json:"currentGuests"`
}

func (r *ValidateReservationRequest) ToUseCaseRequest() *validateReservation.Request {
	return &validateReservation.Request{
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
}

func FromUseCaseResponse(resp *validateReservation.Response) *ValidationResponse {
	return &ValidationResponse{
		Valid:               true,
		Date:                resp.Date,
		Time:                resp.Time.String(),
		ReservationAt:       resp.ReservationAt,
		Guests:              resp.PartySize,
		Table:               tableModels.FromDomainTable(resp.Table),
		MaxReservations:     resp.MaxReservations,
		CurrentReservations: resp.CurrentReservations,
		MaxGuestsTotal:      resp.MaxGuestsTotal,
		CurrentGuests:       resp.CurrentGuests,
	}
}
