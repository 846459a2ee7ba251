package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Weekday is a canonical weekday key. Index order is 0-6 Sunday-first
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// Weekdays is indexed by time.Weekday (Sunday = 0)
var Weekdays = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayOf maps time.Weekday to the canonical key
func WeekdayOf(w time.Weekday) Weekday {
	return Weekdays[int(w)%7]
}

func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// WeekdayRule is the per-day capacity ceiling and open flag
type WeekdayRule struct {
	// Enabled nil means the flag was never set, which counts as enabled
	Enabled         *bool `json:"enabled,omitempty"`
	MaxReservations int   `json:"maxReservations"`
	MaxGuestsTotal  int   `json:"maxGuestsTotal"`
}

// IsEnabled returns false only for an explicit enabled=false
func (r WeekdayRule) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// EffectiveMaxReservations falls back to DefaultMaxReservations when unset
func (r WeekdayRule) EffectiveMaxReservations() int {
	if r.MaxReservations <= 0 {
		return DefaultMaxReservations
	}
	return r.MaxReservations
}

// EffectiveMaxGuestsTotal falls back to DefaultMaxGuestsTotal when unset
func (r WeekdayRule) EffectiveMaxGuestsTotal() int {
	if r.MaxGuestsTotal <= 0 {
		return DefaultMaxGuestsTotal
	}
	return r.MaxGuestsTotal
}

// ScheduleEntry is the per-day opening window
type ScheduleEntry struct {
	IsOpen    bool             `json:"isOpen"`
	OpenTime  types.TimeString `json:"openTime"`
	CloseTime types.TimeString `json:"closeTime"`
}

// OpenMinutes returns minutes since midnight of the opening time
func (s ScheduleEntry) OpenMinutes() (int, error) {
	return s.OpenTime.Minutes()
}

// CloseMinutes returns minutes since midnight of the closing time; 00:00 means end of day (1440)
func (s ScheduleEntry) CloseMinutes() (int, error) {
	m, err := s.CloseTime.Minutes()
	if err != nil {
		return 0, err
	}
	if m == 0 {
		return 24 * 60, nil
	}
	return m, nil
}

// RestaurantInfo contact data used in notifications
type RestaurantInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// ReservationRules global temporal rules
type ReservationRules struct {
	Timezone                 string   `json:"timezone"`
	MinAdvanceHours          int      `json:"minAdvanceHours"`
	MaxAdvanceDays           int      `json:"maxAdvanceDays"`
	DefaultDurationMinutes   int      `json:"defaultDuration"`
	DefaultPreferredLocation Location `json:"defaultPreferredLocation,omitempty"`
	// ReservedTablesAlways tables held back from availability for walk-ins
	ReservedTablesAlways int  `json:"reservedTablesAlways"`
	AllowWaitlist        bool `json:"allowWaitlist"`
	RequireConfirmation  bool `json:"requireConfirmation"`
}

// NotificationSettings toggles outgoing notifications
type NotificationSettings struct {
	EmailEnabled bool `json:"emailEnabled"`
	SMSEnabled   bool `json:"smsEnabled"`
}

// RulesConfig is the explicit configuration passed to admission and assignment
type RulesConfig struct {
	Restaurant    RestaurantInfo            `json:"restaurant"`
	Reservations  ReservationRules          `json:"reservations"`
	WeekdayRules  map[Weekday]WeekdayRule   `json:"weekdayRules"`
	Schedule      map[Weekday]ScheduleEntry `json:"schedule,omitempty"`
	Notifications NotificationSettings      `json:"notifications"`
}

var (
	// ErrInvalidRules возвращается, когда сохраненные настройки непригодны для принятия решений
	ErrInvalidRules = errors.New("domain: invalid rules config")
)

// DefaultRules returns the built-in rules used when nothing is stored
func DefaultRules(timezone string) *RulesConfig {
	if timezone == "" {
		timezone = DefaultTimezone
	}

	weekdayRules := make(map[Weekday]WeekdayRule, len(Weekdays))
	for _, d := range Weekdays {
		weekdayRules[d] = WeekdayRule{
			MaxReservations: DefaultMaxReservations,
			MaxGuestsTotal:  DefaultMaxGuestsTotal,
		}
	}

	return &RulesConfig{
		Reservations: ReservationRules{
			Timezone:               timezone,
			MaxAdvanceDays:         DefaultMaxAdvanceDays,
			DefaultDurationMinutes: DefaultDurationMinutes,
		},
		WeekdayRules: weekdayRules,
		Notifications: NotificationSettings{
			EmailEnabled: true,
		},
	}
}

// Timezone returns the configured timezone or the default one
func (c *RulesConfig) Timezone() string {
	if c.Reservations.Timezone == "" {
		return DefaultTimezone
	}
	return c.Reservations.Timezone
}

// EffectiveMaxAdvanceDays falls back to DefaultMaxAdvanceDays when unset
func (c *RulesConfig) EffectiveMaxAdvanceDays() int {
	if c.Reservations.MaxAdvanceDays <= 0 {
		return DefaultMaxAdvanceDays
	}
	return c.Reservations.MaxAdvanceDays
}

// EffectiveDurationMinutes falls back to DefaultDurationMinutes when unset
func (c *RulesConfig) EffectiveDurationMinutes() int {
	if c.Reservations.DefaultDurationMinutes <= 0 {
		return DefaultDurationMinutes
	}
	return c.Reservations.DefaultDurationMinutes
}

// HasSchedule returns true if operating hours are configured at all
func (c *RulesConfig) HasSchedule() bool {
	return len(c.Schedule) > 0
}

// Validate checks that the rules can drive admission decisions
func (c *RulesConfig) Validate() error {
	if _, err := time.LoadLocation(c.Timezone()); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidRules, c.Reservations.Timezone)
	}
	if c.Reservations.MinAdvanceHours < 0 {
		return fmt.Errorf("%w: minAdvanceHours must not be negative", ErrInvalidRules)
	}
	if c.Reservations.MaxAdvanceDays < 0 {
		return fmt.Errorf("%w: maxAdvanceDays must not be negative", ErrInvalidRules)
	}
	if c.Reservations.ReservedTablesAlways < 0 {
		return fmt.Errorf("%w: reservedTablesAlways must not be negative", ErrInvalidRules)
	}
	if loc := c.Reservations.DefaultPreferredLocation; loc != "" && loc != LocationAny && !loc.IsValid() {
		return fmt.Errorf("%w: unknown defaultPreferredLocation %q", ErrInvalidRules, loc)
	}

	for day, rule := range c.WeekdayRules {
		if !day.IsValid() {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidRules, day)
		}
		if rule.MaxReservations < 0 || rule.MaxGuestsTotal < 0 {
			return fmt.Errorf("%w: negative limit for %s", ErrInvalidRules, day)
		}
	}

	for day, entry := range c.Schedule {
		if !day.IsValid() {
			return fmt.Errorf("%w: unknown schedule day %q", ErrInvalidRules, day)
		}
		if !entry.IsOpen {
			continue
		}
		open, err := entry.OpenMinutes()
		if err != nil {
			return fmt.Errorf("%w: %s openTime: %v", ErrInvalidRules, day, err)
		}
		closing, err := entry.CloseMinutes()
		if err != nil {
			return fmt.Errorf("%w: %s closeTime: %v", ErrInvalidRules, day, err)
		}
		if open >= closing {
			return fmt.Errorf("%w: %s opens at %s after closing at %s", ErrInvalidRules, day, entry.OpenTime, entry.CloseTime)
		}
	}

	return nil
}
