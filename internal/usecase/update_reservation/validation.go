package update_reservation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var validate = validator.New()

// contactFields контактные поля после применения изменений
type contactFields struct {
	CustomerName  string `validate:"required"`
	CustomerEmail string `validate:"required,email"`
	CustomerPhone string `validate:"required"`
}

// validateRequest проверяет изменения, которые записываются без повторного приема
func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	c := req.Changes
	if c.TableID != nil && *c.TableID <= 0 {
		return fmt.Errorf("%w: tableId must be positive", ErrInvalidInput)
	}
	if c.SpecialRequests != nil && utf8.RuneCountInString(*c.SpecialRequests) > domain.MaxSpecialRequestsLen {
		return fmt.Errorf("%w: specialRequests must be at most %d characters", ErrInvalidInput, domain.MaxSpecialRequestsLen)
	}

	return nil
}

// applyContacts переносит контактные поля и пожелания в бронирование
func applyContacts(res *domain.Reservation, c domain.ReservationChanges) error {
	if c.CustomerName != nil {
		res.CustomerName = strings.TrimSpace(*c.CustomerName)
	}
	if c.CustomerEmail != nil {
		res.CustomerEmail = strings.TrimSpace(*c.CustomerEmail)
	}
	if c.CustomerPhone != nil {
		res.CustomerPhone = strings.TrimSpace(*c.CustomerPhone)
	}
	if c.SpecialRequests != nil {
		notes := strings.TrimSpace(*c.SpecialRequests)
		if notes == "" {
			res.SpecialRequests = nil
		} else {
			res.SpecialRequests = &notes
		}
	}

	err := validate.Struct(contactFields{
		CustomerName:  res.CustomerName,
		CustomerEmail: res.CustomerEmail,
		CustomerPhone: res.CustomerPhone,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
