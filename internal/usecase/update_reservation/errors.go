package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrNotEditable возвращается, когда бронирование уже не pending и не confirmed
	ErrNotEditable = errors.New("update_reservation: reservation can no longer be edited")

	// ErrInvalidInput возвращается при некорректных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input")

	// ErrRulesUnavailable возвращается, когда настройки ресторана не загружаются или непригодны
	ErrRulesUnavailable = errors.New("update_reservation: rules unavailable")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("update_reservation: internal error")
)

const msgTableTaken = "стол уже забронирован на эту дату и время"
