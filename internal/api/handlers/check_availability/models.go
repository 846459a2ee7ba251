package check_availability

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tableModels "github.com/m04kA/SMC-ReservationService/internal/service/tables/models"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available            bool                         `json:"available"`
	Date                 string                       `json:"date"`
	Time                 string                       `json:"time"`
	Guests               int                          `json:"guests"`
	ReservedTablesAlways int                          `json:"reservedTablesAlways"`
	Tables               []*tableModels.TableResponse `json:"tables"`
}

func parseQuery(q url.Values) (*checkAvailability.Request, error) {
	req := &checkAvailability.Request{
		Date:     q.Get("date"),
		Time:     q.Get("time"),
		Location: domain.Location(q.Get("location")),
	}
	if raw := q.Get("guests"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.PartySize = n
	}
	return req, nil
}

func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available:            resp.Available,
		Date:                 resp.Date,
		Time:                 resp.Time.String(),
		Guests:               resp.PartySize,
		ReservedTablesAlways: resp.ReservedTablesAlways,
		Tables:               tableModels.FromDomainTableList(resp.CandidateTables),
	}
}
