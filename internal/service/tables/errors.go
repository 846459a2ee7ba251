package tables

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("table not found")

	// ErrDuplicateNumber возвращается, когда стол с таким номером уже есть
	ErrDuplicateNumber = errors.New("table number already exists")

	// ErrZoneNotFound возвращается, когда указанная зона не существует
	ErrZoneNotFound = errors.New("zone not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
