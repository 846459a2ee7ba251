package send_notification

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ReservationService/internal/engine/lifecycle"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationId must be positive", ErrInvalidInput)
	}

	kind := lifecycle.NotificationType(req.Type)
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown notification type %q", ErrInvalidInput, req.Type)
	}

	if kind == lifecycle.NotificationCustom &&
		(strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "") {
		return fmt.Errorf("%w: custom notification requires subject and body", ErrInvalidInput)
	}

	if req.Recipient != nil {
		if err := validate.Var(strings.TrimSpace(*req.Recipient), "required,email"); err != nil {
			return fmt.Errorf("%w: invalid recipient", ErrInvalidInput)
		}
	}

	return nil
}
