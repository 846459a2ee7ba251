package validate_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных, которые не относятся к правилам приема
	ErrInvalidInput = errors.New("validate_reservation: invalid input")

	// ErrRulesUnavailable возвращается, когда настройки ресторана не загружаются или непригодны
	ErrRulesUnavailable = errors.New("validate_reservation: rules unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("validate_reservation: internal error")
)
