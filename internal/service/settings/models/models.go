package models

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Settings документ настроек ресторана (GET/PUT /settings)
type Settings struct {
	Restaurant    Restaurant               `json:"restaurant"`
	Reservations  ReservationRules         `json:"reservations"`
	WeekdayRules  map[string]WeekdayRule   `json:"weekdayRules" validate:"required,dive"`
	Schedule      map[string]ScheduleEntry `json:"schedule,omitempty" validate:"omitempty,dive"`
	Notifications Notifications            `json:"notifications"`
}

type Restaurant struct {
	Name    string `json:"name" validate:"max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address,omitempty" validate:"max=300"`
}

type ReservationRules struct {
	Timezone                 string `json:"timezone"`
	MinAdvanceHours          int    `json:"minAdvanceHours" validate:"gte=0,lte=720"`
	MaxAdvanceDays           int    `json:"maxAdvanceDays" validate:"gte=0,lte=3650"`
	DefaultDuration          int    `json:"defaultDuration" validate:"gte=0,lte=720"`
	DefaultPreferredLocation string `json:"defaultPreferredLocation,omitempty" validate:"omitempty,oneof=interior terraza exterior privado any"`
	ReservedTablesAlways     int    `json:"reservedTablesAlways" validate:"gte=0"`
	AllowWaitlist            bool   `json:"allowWaitlist"`
	RequireConfirmation      bool   `json:"requireConfirmation"`
}

type WeekdayRule struct {
	Enabled         *bool `json:"enabled,omitempty"`
	MaxReservations int   `json:"maxReservations" validate:"gte=0"`
	MaxGuestsTotal  int   `json:"maxGuestsTotal" validate:"gte=0"`
}

type ScheduleEntry struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

type Notifications struct {
	EmailEnabled bool `json:"emailEnabled"`
	SMSEnabled   bool `json:"smsEnabled"`
}

// ToDomain конвертирует модель в domain.RulesConfig.
// Время в расписании нормализуется до HH:MM
func (s *Settings) ToDomain() (*domain.RulesConfig, error) {
	cfg := &domain.RulesConfig{
		Restaurant: domain.RestaurantInfo{
			Name:    s.Restaurant.Name,
			Email:   s.Restaurant.Email,
			Phone:   s.Restaurant.Phone,
			Address: s.Restaurant.Address,
		},
		Reservations: domain.ReservationRules{
			Timezone:                 s.Reservations.Timezone,
			MinAdvanceHours:          s.Reservations.MinAdvanceHours,
			MaxAdvanceDays:           s.Reservations.MaxAdvanceDays,
			DefaultDurationMinutes:   s.Reservations.DefaultDuration,
			DefaultPreferredLocation: domain.Location(s.Reservations.DefaultPreferredLocation),
			ReservedTablesAlways:     s.Reservations.ReservedTablesAlways,
			AllowWaitlist:            s.Reservations.AllowWaitlist,
			RequireConfirmation:      s.Reservations.RequireConfirmation,
		},
		WeekdayRules: make(map[domain.Weekday]domain.WeekdayRule, len(s.WeekdayRules)),
		Notifications: domain.NotificationSettings{
			EmailEnabled: s.Notifications.EmailEnabled,
			SMSEnabled:   s.Notifications.SMSEnabled,
		},
	}

	for day, rule := range s.WeekdayRules {
		cfg.WeekdayRules[domain.Weekday(day)] = domain.WeekdayRule{
			Enabled:         rule.Enabled,
			MaxReservations: rule.MaxReservations,
			MaxGuestsTotal:  rule.MaxGuestsTotal,
		}
	}

	if len(s.Schedule) > 0 {
		cfg.Schedule = make(map[domain.Weekday]domain.ScheduleEntry, len(s.Schedule))
		for day, entry := range s.Schedule {
			converted := domain.ScheduleEntry{IsOpen: entry.IsOpen}
			if entry.OpenTime != "" {
				open, err := types.NewTimeStringFromString(entry.OpenTime)
				if err != nil {
					return nil, err
				}
				converted.OpenTime = open
			}
			if entry.CloseTime != "" {
				closing, err := types.NewTimeStringFromString(entry.CloseTime)
				if err != nil {
					return nil, err
				}
				converted.CloseTime = closing
			}
			cfg.Schedule[domain.Weekday(day)] = converted
		}
	}

	return cfg, nil
}

// FromDomainSettings конвертирует domain.RulesConfig в модель ответа
func FromDomainSettings(cfg *domain.RulesConfig) *Settings {
	s := &Settings{
		Restaurant: Restaurant{
			Name:    cfg.Restaurant.Name,
			Email:   cfg.Restaurant.Email,
			Phone:   cfg.Restaurant.Phone,
			Address: cfg.Restaurant.Address,
		},
		Reservations: ReservationRules{
			Timezone:                 cfg.Timezone(),
			MinAdvanceHours:          cfg.Reservations.MinAdvanceHours,
			MaxAdvanceDays:           cfg.EffectiveMaxAdvanceDays(),
			DefaultDuration:          cfg.EffectiveDurationMinutes(),
			DefaultPreferredLocation: string(cfg.Reservations.DefaultPreferredLocation),
			ReservedTablesAlways:     cfg.Reservations.ReservedTablesAlways,
			AllowWaitlist:            cfg.Reservations.AllowWaitlist,
			RequireConfirmation:      cfg.Reservations.RequireConfirmation,
		},
		WeekdayRules: make(map[string]WeekdayRule, len(cfg.WeekdayRules)),
		Notifications: Notifications{
			EmailEnabled: cfg.Notifications.EmailEnabled,
			SMSEnabled:   cfg.Notifications.SMSEnabled,
		},
	}

	for day, rule := range cfg.WeekdayRules {
		s.WeekdayRules[string(day)] = WeekdayRule{
			Enabled:         rule.Enabled,
			MaxReservations: rule.MaxReservations,
			MaxGuestsTotal:  rule.MaxGuestsTotal,
		}
	}

	if cfg.HasSchedule() {
		s.Schedule = make(map[string]ScheduleEntry, len(cfg.Schedule))
		for day, entry := range cfg.Schedule {
			s.Schedule[string(day)] = ScheduleEntry{
				IsOpen:    entry.IsOpen,
				OpenTime:  entry.OpenTime.String(),
				CloseTime: entry.CloseTime.String(),
			}
		}
	}

	return s
}
