package settings

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/settings/models"
)

type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, req *models.Settings) (*models.Settings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
