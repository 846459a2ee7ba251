package tables

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	Create(ctx context.Context, t *domain.Table) (*domain.Table, error)
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	List(ctx context.Context, filter domain.TableFilter) ([]*domain.Table, error)
	Update(ctx context.Context, id int64, patch domain.TablePatch) (*domain.Table, error)
	Delete(ctx context.Context, id int64) error
}

// ZoneRepository интерфейс репозитория зон (проверка zoneId)
type ZoneRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Zone, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
