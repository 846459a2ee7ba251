package domain

// Default rule values
const (
	DefaultMaxReservations = 50
	DefaultMaxGuestsTotal  = 100
	DefaultMaxAdvanceDays  = 365
	DefaultDurationMinutes = 120
	DefaultTimezone        = "Europe/Madrid"
)

// Business validation constants
const (
	MinPartySize          = 1
	MaxPartySize          = 20
	MaxSpecialRequestsLen = 500
	DefaultZoneColor      = "#f3f4f6"
	DefaultTableWidth     = 60
	DefaultTableHeight    = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that hold a table and count toward day capacity
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// AllStatuses every known reservation status
var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusSeated,
	StatusCompleted,
	StatusCancelled,
}
