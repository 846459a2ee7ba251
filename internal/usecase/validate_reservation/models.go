package validate_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель заявки для предварительной проверки
type Request struct {
	CustomerName      string
	CustomerEmail     string
	CustomerPhone     string
	PartySize         int
	Date              string
	Time              string
	TableID           *int64
	PreferredLocation domain.Location
	SpecialRequests   *string
}

// Response результат проверки: заявка была бы принята, за столом Table
type Response struct {
	Date          string
	Time          types.TimeString
	ReservationAt time.Time
	PartySize     int
	Table         *domain.Table

	MaxReservations     int
	CurrentReservations int
	MaxGuestsTotal      int
	CurrentGuests       int
}
