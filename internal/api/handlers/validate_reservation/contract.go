package validate_reservation

import (
	"context"

	validateReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
)

type ValidateReservationUseCase interface {
	Execute(ctx context.Context, req *validateReservation.Request) (*validateReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
