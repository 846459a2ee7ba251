package zones

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/zones/models"
)

type ZoneService interface {
	List(ctx context.Context) ([]*models.ZoneResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ZoneResponse, error)
	Create(ctx context.Context, req *models.CreateZoneRequest) (*models.ZoneResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateZoneRequest) (*models.ZoneResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
