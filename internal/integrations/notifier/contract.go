package notifier

import "context"

// Sink канал доставки готового сообщения
type Sink interface {
	Publish(ctx context.Context, msg *Message) error
}

// Metrics счетчики уведомлений
type Metrics interface {
	ObserveNotification(kind string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
