package list_reservations

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// parseQuery собирает фильтры из query-параметров; пустые значения игнорируются
func parseQuery(q url.Values) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{
		Date:   optional(q, "date"),
		From:   optional(q, "from"),
		To:     optional(q, "to"),
		Status: optional(q, "status"),
		Name:   optional(q, "name"),
		Phone:  optional(q, "phone"),
		Time:   optional(q, "time"),
	}

	if raw := q.Get("tableId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.TableID = &id
	}

	return req, nil
}

func optional(q url.Values, key string) *string {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}
