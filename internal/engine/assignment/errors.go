package assignment

import "errors"

var (
	// ErrTableNotFound возвращается, когда явно указанный стол не существует
	ErrTableNotFound = errors.New("assignment: table not found")

	// ErrTableConflict возвращается, когда стол уже занят активным бронированием на это время
	ErrTableConflict = errors.New("assignment: table already booked at this time")

	// ErrNoAvailableTable возвращается, когда ни один подходящий стол не свободен
	ErrNoAvailableTable = errors.New("assignment: no available table")
)

const (
	ReasonTableNotFound    = "TableNotFound"
	ReasonTableConflict    = "TableConflict"
	ReasonNoAvailableTable = "NoAvailableTable"
)

const (
	msgTableNotFound    = "указанный стол не существует"
	msgTableConflict    = "стол уже забронирован на эту дату и время"
	msgNoAvailableTable = "нет свободных столов для указанного количества гостей"
)
