package create_reservation

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest проверяет то, что не входит в правила приема заявки
func validateRequest(req *Request) error {
	if req.Channel != domain.ChannelDashboard && req.Channel != domain.ChannelExternal {
		return fmt.Errorf("%w: unknown source channel %q", ErrInvalidInput, req.Channel)
	}

	if req.PreferredLocation != "" && req.PreferredLocation != domain.LocationAny && !req.PreferredLocation.IsValid() {
		return fmt.Errorf("%w: unknown location %q", ErrInvalidInput, req.PreferredLocation)
	}

	if req.TableID != nil && *req.TableID <= 0 {
		return fmt.Errorf("%w: tableId must be positive", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && utf8.RuneCountInString(*req.SpecialRequests) > domain.MaxSpecialRequestsLen {
		return fmt.Errorf("%w: specialRequests must be at most %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLen)
	}

	return nil
}
