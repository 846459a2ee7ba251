package admission

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const day = 24 * time.Hour

// Validator решает, может ли заявка быть принята
// Не имеет побочных эффектов: читает только правила и снимок бронирований дня
type Validator struct {
	clock Clock
}

func NewValidator(c Clock) *Validator {
	return &Validator{clock: c}
}

// Validate проверяет заявку по порядку, останавливаясь на первом отказе.
// Отказ возвращается как *domain.Rejection, для errors.Is используются sentinel-ошибки пакета
func (v *Validator) Validate(
	ctx context.Context,
	req *Request,
	rules *domain.RulesConfig,
	now time.Time,
	snapshot Snapshot,
) (*Admitted, error) {
	if rules == nil {
		return nil, fmt.Errorf("%w: no rules config", ErrRulesUnavailable)
	}
	tz := rules.Timezone()
	if _, err := v.clock.Location(tz); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRulesUnavailable, err)
	}

	name := strings.TrimSpace(req.CustomerName)
	email := strings.TrimSpace(req.CustomerEmail)
	phone := strings.TrimSpace(req.CustomerPhone)

	// 1. Обязательные поля
	if missing := missingFields(name, email, phone, req); len(missing) > 0 {
		return nil, domain.NewRejection(ErrMissingFields, ReasonMissingFields,
			msgMissingFields+": "+strings.Join(missing, ", "),
			map[string]any{"fields": missing})
	}

	// 2. Количество гостей
	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return nil, domain.NewRejection(ErrInvalidPartySize, ReasonInvalidPartySize,
			fmt.Sprintf(msgInvalidPartySize, domain.MinPartySize, domain.MaxPartySize),
			map[string]any{"min": domain.MinPartySize, "max": domain.MaxPartySize, "requested": req.PartySize})
	}

	// 3. Email
	if !emailPattern.MatchString(email) {
		return nil, domain.NewRejection(ErrInvalidEmail, ReasonInvalidEmail, msgInvalidEmail, nil)
	}

	// 4. Дата и время
	date, err := clock.NormalizeDate(req.Date)
	if err != nil {
		return nil, invalidDateOrTime()
	}
	timeOfDay, hour, minute, err := clock.ParseTimeOfDay(req.Time)
	if err != nil {
		return nil, invalidDateOrTime()
	}
	instant, err := v.clock.Combine(date, hour, minute, tz)
	if err != nil {
		return nil, invalidDateOrTime()
	}
	now = now.In(instant.Location())

	// 5. Не в прошлом
	if instant.Before(now) {
		return nil, domain.NewRejection(ErrPastDate, ReasonPastDate, msgPastDate,
			map[string]any{"requestedFor": instant.Format(time.RFC3339)})
	}
	lead := instant.Sub(now)

	// 6. Минимальное время до визита
	if hours := rules.Reservations.MinAdvanceHours; hours > 0 && lead < time.Duration(hours)*time.Hour {
		return nil, domain.NewRejection(ErrInsufficientAdvanceNotice, ReasonInsufficientAdvanceNotice,
			advanceNoticeMessage(hours),
			map[string]any{"minAdvanceHours": hours})
	}

	// 7. Правило дня недели (отсутствие правила блокирует заявку)
	weekday, err := v.clock.WeekdayOf(instant, tz)
	if err != nil {
		return nil, invalidDateOrTime()
	}
	rule, ok := rules.WeekdayRules[weekday]
	if !ok {
		return nil, domain.NewRejection(ErrNoCapacityRuleForDay, ReasonNoCapacityRuleForDay, msgNoCapacityRule,
			map[string]any{"weekday": weekday})
	}
	if !rule.IsEnabled() {
		return nil, closedOn(weekday)
	}

	// 7b. Часы работы, если расписание задано
	if rules.HasSchedule() {
		if rej := checkOperatingHours(rules, weekday, timeOfDay); rej != nil {
			return nil, rej
		}
	}

	// 8. Максимальный горизонт бронирования (дни округляются вверх)
	maxDays := rules.EffectiveMaxAdvanceDays()
	if days := ceilDays(lead); days > maxDays {
		return nil, domain.NewRejection(ErrTooFarInAdvance, ReasonTooFarInAdvance,
			tooFarInAdvanceMessage(maxDays),
			map[string]any{"maxAdvanceDays": maxDays, "requestedAdvanceDays": days})
	}

	// 9-10. Лимиты дня по активным бронированиям
	dayStart, dayEnd, err := v.clock.DayBounds(instant, tz)
	if err != nil {
		return nil, invalidDateOrTime()
	}
	dayReservations, err := snapshot.ReservationsForDay(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}

	active := activeInRange(dayReservations, dayStart, dayEnd, req.ExcludeReservationID)
	currentGuests := 0
	for _, r := range active {
		currentGuests += r.PartySize
	}

	maxReservations := rule.EffectiveMaxReservations()
	if len(active) >= maxReservations {
		return nil, domain.NewRejection(ErrDailyReservationLimitReached, ReasonDailyReservationLimitReached,
			msgReservationLimit,
			map[string]any{
				"maxReservations":     maxReservations,
				"currentReservations": len(active),
				"availableSlots":      0,
			})
	}

	maxGuests := rule.EffectiveMaxGuestsTotal()
	if currentGuests+req.PartySize > maxGuests {
		return nil, domain.NewRejection(ErrDailyGuestLimitReached, ReasonDailyGuestLimitReached,
			msgGuestLimit,
			map[string]any{
				"maxGuestsTotal":  maxGuests,
				"currentGuests":   currentGuests,
				"requestedGuests": req.PartySize,
				"availableGuests": maxGuests - currentGuests,
			})
	}

	return &Admitted{
		CustomerName:        name,
		CustomerEmail:       email,
		CustomerPhone:       phone,
		PartySize:           req.PartySize,
		Date:                date,
		Time:                timeOfDay,
		Instant:             instant,
		Weekday:             weekday,
		DayStart:            dayStart,
		DayEnd:              dayEnd,
		TableID:             req.TableID,
		PreferredLocation:   effectiveLocation(req.PreferredLocation, rules),
		SpecialRequests:     trimOptional(req.SpecialRequests),
		MaxReservations:     maxReservations,
		MaxGuestsTotal:      maxGuests,
		CurrentReservations: len(active),
		CurrentGuests:       currentGuests,
		DayReservations:     dayReservations,
	}, nil
}

func missingFields(name, email, phone string, req *Request) []string {
	missing := make([]string, 0)
	if name == "" {
		missing = append(missing, "customerName")
	}
	if email == "" {
		missing = append(missing, "customerEmail")
	}
	if phone == "" {
		missing = append(missing, "customerPhone")
	}
	if strings.TrimSpace(req.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(req.Time) == "" {
		missing = append(missing, "time")
	}
	if req.PartySize == 0 {
		missing = append(missing, "guests")
	}
	return missing
}

func checkOperatingHours(rules *domain.RulesConfig, weekday domain.Weekday, at types.TimeString) *domain.Rejection {
	entry, ok := rules.Schedule[weekday]
	if !ok || !entry.IsOpen {
		return closedOn(weekday)
	}

	open, err := entry.OpenMinutes()
	if err != nil {
		return closedOn(weekday)
	}
	closing, err := entry.CloseMinutes()
	if err != nil {
		return closedOn(weekday)
	}

	start, _ := at.Minutes()
	duration := rules.EffectiveDurationMinutes()
	if start < open || start+duration > closing {
		return domain.NewRejection(ErrOutsideOperatingHours, ReasonOutsideOperatingHours,
			fmt.Sprintf(msgOutsideHours, entry.OpenTime, entry.CloseTime),
			map[string]any{
				"openTime":        entry.OpenTime.String(),
				"closeTime":       entry.CloseTime.String(),
				"durationMinutes": duration,
			})
	}
	return nil
}

func closedOn(weekday domain.Weekday) *domain.Rejection {
	return domain.NewRejection(ErrClosedOnThisDay, ReasonClosedOnThisDay, msgClosedOnThisDay,
		map[string]any{"weekday": weekday})
}

func invalidDateOrTime() *domain.Rejection {
	return domain.NewRejection(ErrInvalidDateOrTime, ReasonInvalidDateOrTime, msgInvalidDateOrTime, nil)
}

// ceilDays количество дней до визита с округлением вверх: 25 часов - это 2 дня
func ceilDays(d time.Duration) int {
	days := d / day
	if d%day != 0 {
		days++
	}
	return int(days)
}

func activeInRange(reservations []*domain.Reservation, start, end time.Time, exclude *int64) []*domain.Reservation {
	active := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if exclude != nil && r.ID == *exclude {
			continue
		}
		if r.ReservationAt.Before(start) || !r.ReservationAt.Before(end) {
			continue
		}
		active = append(active, r)
	}
	return active
}

// effectiveLocation: предпочтение из заявки, затем из настроек, иначе any
func effectiveLocation(requested domain.Location, rules *domain.RulesConfig) domain.Location {
	if requested != "" {
		return requested
	}
	if rules.Reservations.DefaultPreferredLocation != "" {
		return rules.Reservations.DefaultPreferredLocation
	}
	return domain.LocationAny
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
