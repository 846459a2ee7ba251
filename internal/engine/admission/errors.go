package admission

import "errors"

var (
	// Ошибки клиентского ввода
	ErrMissingFields     = errors.New("admission: missing required fields")
	ErrInvalidPartySize  = errors.New("admission: invalid party size")
	ErrInvalidEmail      = errors.New("admission: invalid email")
	ErrInvalidDateOrTime = errors.New("admission: invalid date or time")

	// Конфликты бизнес-правил
	ErrPastDate                     = errors.New("admission: reservation is in the past")
	ErrInsufficientAdvanceNotice    = errors.New("admission: insufficient advance notice")
	ErrNoCapacityRuleForDay         = errors.New("admission: no capacity rule for day")
	ErrClosedOnThisDay              = errors.New("admission: closed on this day")
	ErrOutsideOperatingHours        = errors.New("admission: outside operating hours")
	ErrTooFarInAdvance              = errors.New("admission: too far in advance")
	ErrDailyReservationLimitReached = errors.New("admission: daily reservation limit reached")
	ErrDailyGuestLimitReached       = errors.New("admission: daily guest limit reached")

	// ErrRulesUnavailable возвращается, когда правила отсутствуют или непригодны (fail closed)
	ErrRulesUnavailable = errors.New("admission: rules unavailable")

	// ErrSnapshot возвращается при ошибке загрузки бронирований дня
	ErrSnapshot = errors.New("admission: failed to load day reservations")
)

// Коды причин отказа, отдаются клиенту и в метрики
const (
	ReasonMissingFields                = "MissingFields"
	ReasonInvalidPartySize             = "InvalidPartySize"
	ReasonInvalidEmail                 = "InvalidEmail"
	ReasonInvalidDateOrTime            = "InvalidDateOrTime"
	ReasonPastDate                     = "PastDate"
	ReasonInsufficientAdvanceNotice    = "InsufficientAdvanceNotice"
	ReasonNoCapacityRuleForDay         = "NoCapacityRuleForDay"
	ReasonClosedOnThisDay              = "ClosedOnThisDay"
	ReasonOutsideOperatingHours        = "OutsideOperatingHours"
	ReasonTooFarInAdvance              = "TooFarInAdvance"
	ReasonDailyReservationLimitReached = "DailyReservationLimitReached"
	ReasonDailyGuestLimitReached       = "DailyGuestLimitReached"
)

// IsClientError сообщает, относится ли отказ к ошибкам ввода (400), а не к конфликтам правил (409)
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidPartySize) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidDateOrTime)
}
