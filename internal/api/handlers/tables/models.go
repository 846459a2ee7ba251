package tables

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/service/tables/models"
)

// TableListResponse HTTP response model
type TableListResponse struct {
	Tables []*models.TableResponse `json:"tables"`
	Count  int                     `json:"count"`
}

func parseListQuery(q url.Values) (*models.ListTablesRequest, error) {
	req := &models.ListTablesRequest{}

	if v := q.Get("location"); v != "" {
		req.Location = &v
	}
	if v := q.Get("minCapacity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.MinCapacity = &n
	}
	if v := q.Get("available"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.Available = &b
	}

	return req, nil
}
