package settings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных настройках в запросе
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSettingsCorrupted возвращается, когда сохраненные настройки не читаются или не проходят проверку.
	// Решения о бронированиях в этом случае не принимаются
	ErrSettingsCorrupted = errors.New("stored settings are invalid")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
