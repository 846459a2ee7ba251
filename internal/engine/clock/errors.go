package clock

import "errors"

var (
	// ErrInvalidTemporalInput возвращается при некорректной дате, времени или часовом поясе
	ErrInvalidTemporalInput = errors.New("clock: invalid temporal input")
)
