package zones

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ZoneRepository интерфейс репозитория зон
type ZoneRepository interface {
	Create(ctx context.Context, z *domain.Zone) (*domain.Zone, error)
	GetByID(ctx context.Context, id int64) (*domain.Zone, error)
	List(ctx context.Context) ([]*domain.Zone, error)
	Update(ctx context.Context, id int64, patch domain.ZonePatch) (*domain.Zone, error)
	Delete(ctx context.Context, id int64) error
}

// TableRepository интерфейс репозитория столов (обратная ссылка зона -> столы)
type TableRepository interface {
	List(ctx context.Context, filter domain.TableFilter) ([]*domain.Table, error)
	CountByZone(ctx context.Context, zoneID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
