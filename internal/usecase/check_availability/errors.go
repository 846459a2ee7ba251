package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("check_availability: invalid input")

	// ErrRulesUnavailable возвращается, когда настройки ресторана не загружаются
	ErrRulesUnavailable = errors.New("check_availability: rules unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("check_availability: internal error")
)
