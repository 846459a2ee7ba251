package send_notification

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
}

// RulesProvider источник действующих правил ресторана
type RulesProvider interface {
	Rules(ctx context.Context) (*domain.RulesConfig, error)
}

// Sender синхронная отправка уведомления
type Sender interface {
	Send(ctx context.Context, req notifier.Request) (*notifier.Message, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
