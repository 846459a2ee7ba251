package check_availability

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request параметры проверки доступности
type Request struct {
	Date      string          // YYYY-MM-DD
	Time      string          // HH:MM
	PartySize int             // Количество гостей
	Location  domain.Location // Зона (опционально)
}

// Response свободные столы на указанное время
type Response struct {
	Available            bool
	CandidateTables      []*domain.Table
	Date                 string
	Time                 types.TimeString
	PartySize            int
	ReservedTablesAlways int // Столы, которые держатся для гостей без брони
}
