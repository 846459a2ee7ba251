package zones

import "github.com/m04kA/SMC-ReservationService/internal/service/zones/models"

// ZoneListResponse HTTP response model
type ZoneListResponse struct {
	Zones []*models.ZoneResponse `json:"zones"`
	Count int                    `json:"count"`
}

// ZoneNotEmptyResponse отказ в удалении зоны, к которой привязаны столы
type ZoneNotEmptyResponse struct {
	Error       string `json:"error"`
	TablesCount int    `json:"tablesCount"`
}
