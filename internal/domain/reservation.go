package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus is the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusSeated    ReservationStatus = "seated"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// IsValid reports whether s is one of the known statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the status holds a table and counts toward day capacity
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// SourceChannel is the origin of a creation request
type SourceChannel string

const (
	// ChannelDashboard is the trusted internal staff dashboard
	ChannelDashboard SourceChannel = "dashboard"
	// ChannelExternal is anything else (public booking form, integrations)
	ChannelExternal SourceChannel = "external"
)

// Reservation represents a persisted reservation
type Reservation struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	// ReservationAt is the absolute instant (date + time in the restaurant timezone)
	ReservationAt time.Time
	// ReservationDate is the calendar date in the restaurant timezone (YYYY-MM-DD)
	ReservationDate string
	// ReservationTime is the normalized HH:MM time of day
	ReservationTime types.TimeString

	PartySize       int
	TableID         *int64
	Status          ReservationStatus
	SpecialRequests *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation holds its table
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// CanBeEdited returns true if date, time, party size or table may still change
func (r *Reservation) CanBeEdited() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// HoldsTableAt returns true if the reservation is active on tableID at the given time of day
func (r *Reservation) HoldsTableAt(tableID int64, at types.TimeString) bool {
	return r.IsActive() && r.TableID != nil && *r.TableID == tableID && r.ReservationTime == at
}

// ReservationFilter фильтр для выборки бронирований
type ReservationFilter struct {
	From          *time.Time          // Начало периода по ReservationAt (включительно)
	To            *time.Time          // Конец периода по ReservationAt (не включительно)
	Statuses      []ReservationStatus // Фильтр по статусам (пусто - все)
	TableID       *int64
	NameContains  *string // Подстрока имени клиента, без учета регистра
	PhoneContains *string
	Time          *types.TimeString
	ExcludeID     *int64 // Исключить бронирование (при редактировании)
}

// ReservationChanges набор изменяемых полей при редактировании бронирования
type ReservationChanges struct {
	CustomerName    *string
	CustomerEmail   *string
	CustomerPhone   *string
	Date            *string
	Time            *string
	PartySize       *int
	TableID         *int64
	SpecialRequests *string
}

// TouchesSchedule returns true if the change affects admission or table assignment
func (c *ReservationChanges) TouchesSchedule() bool {
	return c.Date != nil || c.Time != nil || c.PartySize != nil || c.TableID != nil
}
