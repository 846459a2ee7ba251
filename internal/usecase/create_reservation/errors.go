package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных, которые не относятся к правилам приема
	ErrInvalidInput = errors.New("create_reservation: invalid input")

	// ErrInvalidStatus возвращается при неизвестном начальном статусе от dashboard
	ErrInvalidStatus = errors.New("create_reservation: invalid initial status")

	// ErrRulesUnavailable возвращается, когда настройки ресторана не загружаются или непригодны
	ErrRulesUnavailable = errors.New("create_reservation: rules unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_reservation: internal error")
)

const (
	msgTableTaken   = "стол уже забронирован на эту дату и время"
	msgTableMissing = "указанный стол не существует"
)
