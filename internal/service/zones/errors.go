package zones

import (
	"errors"
	"fmt"
)

var (
	// ErrZoneNotFound возвращается, когда зона не найдена
	ErrZoneNotFound = errors.New("zone not found")

	// ErrDuplicateName возвращается, когда зона с таким именем уже есть
	ErrDuplicateName = errors.New("zone name already exists")

	// ErrZoneNotEmpty возвращается при удалении зоны, к которой привязаны столы
	ErrZoneNotEmpty = errors.New("zone has tables")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// NotEmptyError отказ в удалении зоны со столами
type NotEmptyError struct {
	ZoneID      int64
	TablesCount int
}

func (e *NotEmptyError) Error() string {
	return fmt.Sprintf("%v: zone id=%d has %d tables", ErrZoneNotEmpty, e.ZoneID, e.TablesCount)
}

func (e *NotEmptyError) Unwrap() error {
	return ErrZoneNotEmpty
}
