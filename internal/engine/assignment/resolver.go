package assignment

import (
	"sort"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request параметры подбора стола для уже принятой заявки
type Request struct {
	TableID           *int64 // явный выбор стола; nil - автоматический подбор
	PartySize         int
	Time              types.TimeString
	PreferredLocation domain.Location

	// ExcludeReservationID бронирование, которое не считается конфликтом (редактирование)
	ExcludeReservationID *int64
}

// Resolve выбирает стол для заявки.
// dayReservations - бронирования того же календарного дня.
//
// Явный режим: стол должен существовать и не иметь активного бронирования на то же время,
// фильтры по вместимости и зоне не применяются.
// Автоматический режим: кандидаты с вместимостью >= гостей (и нужной зоной), по возрастанию
// вместимости; побеждает первый без конфликта.
func Resolve(req Request, tables []*domain.Table, dayReservations []*domain.Reservation) (*domain.Table, error) {
	if req.TableID != nil {
		return resolveExplicit(req, tables, dayReservations)
	}
	return resolveAuto(req, tables, dayReservations)
}

func resolveExplicit(req Request, tables []*domain.Table, dayReservations []*domain.Reservation) (*domain.Table, error) {
	var table *domain.Table
	for _, t := range tables {
		if t.ID == *req.TableID {
			table = t
			break
		}
	}
	if table == nil {
		return nil, domain.NewRejection(ErrTableNotFound, ReasonTableNotFound, msgTableNotFound,
			map[string]any{"tableId": *req.TableID})
	}

	if conflict := FindConflict(table.ID, req.Time, dayReservations, req.ExcludeReservationID); conflict != nil {
		return nil, domain.NewRejection(ErrTableConflict, ReasonTableConflict, msgTableConflict,
			map[string]any{
				"tableId":                  table.ID,
				"conflictingTime":          req.Time.String(),
				"conflictingReservationId": conflict.ID,
			})
	}

	return table, nil
}

func resolveAuto(req Request, tables []*domain.Table, dayReservations []*domain.Reservation) (*domain.Table, error) {
	for _, candidate := range Candidates(tables, req.PartySize, req.PreferredLocation) {
		if FindConflict(candidate.ID, req.Time, dayReservations, req.ExcludeReservationID) == nil {
			return candidate, nil
		}
	}

	location := req.PreferredLocation
	if location == "" {
		location = domain.LocationAny
	}
	return nil, domain.NewRejection(ErrNoAvailableTable, ReasonNoAvailableTable, msgNoAvailableTable,
		map[string]any{
			"preferredLocation": location,
			"guests":            req.PartySize,
		})
}

// Candidates подходящие столы в порядке best-fit: меньшая вместимость первой, при равенстве - меньший номер
func Candidates(tables []*domain.Table, partySize int, preferred domain.Location) []*domain.Table {
	candidates := make([]*domain.Table, 0, len(tables))
	for _, t := range tables {
		if t.Fits(partySize, preferred) {
			candidates = append(candidates, t)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Capacity != candidates[j].Capacity {
			return candidates[i].Capacity < candidates[j].Capacity
		}
		return candidates[i].Number < candidates[j].Number
	})

	return candidates
}

// FindConflict ищет активное бронирование стола на то же время
func FindConflict(tableID int64, at types.TimeString, dayReservations []*domain.Reservation, exclude *int64) *domain.Reservation {
	for _, r := range dayReservations {
		if exclude != nil && r.ID == *exclude {
			continue
		}
		if r.HoldsTableAt(tableID, at) {
			return r
		}
	}
	return nil
}

// FreeCandidates кандидаты без конфликта на указанное время (для проверки доступности)
func FreeCandidates(tables []*domain.Table, partySize int, preferred domain.Location, at types.TimeString, dayReservations []*domain.Reservation) []*domain.Table {
	free := make([]*domain.Table, 0)
	for _, t := range Candidates(tables, partySize, preferred) {
		if FindConflict(t.ID, at, dayReservations, nil) == nil {
			free = append(free, t)
		}
	}
	return free
}
