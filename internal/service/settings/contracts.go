package settings

import "context"

// SettingsRepository интерфейс хранилища документа настроек
type SettingsRepository interface {
	Get(ctx context.Context) ([]byte, error)
	Upsert(ctx context.Context, data []byte) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
