package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type normalizedRequest struct {
	date     string
	at       types.TimeString
	hour     int
	minute   int
	location domain.Location
}

// validateRequest проверяет и нормализует параметры запроса
func validateRequest(req *Request) (*normalizedRequest, error) {
	date, err := clock.NormalizeDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	at, hour, minute, err := clock.ParseTimeOfDay(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return nil, fmt.Errorf("%w: guests must be between %d and %d", ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	location := req.Location
	if location == domain.LocationAny {
		location = ""
	}
	if location != "" && !location.IsValid() {
		return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, req.Location)
	}

	return &normalizedRequest{date: date, at: at, hour: hour, minute: minute, location: location}, nil
}
