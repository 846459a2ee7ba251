package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-ReservationService/internal/service/settings/models"
)

const rulesCacheKey = "rules"

// Service сервис настроек ресторана.
// Правила кешируются в памяти на ttl и сбрасываются при обновлении
type Service struct {
	repo            SettingsRepository
	cache           *gocache.Cache
	cacheEnabled    bool
	defaultTimezone string
	logger          Logger
}

// NewService создает сервис настроек. ttl <= 0 отключает кеш
func NewService(repo SettingsRepository, defaultTimezone string, ttl time.Duration, logger Logger) *Service {
	s := &Service{
		repo:            repo,
		defaultTimezone: defaultTimezone,
		logger:          logger,
	}
	if ttl > 0 {
		s.cache = gocache.New(ttl, 2*ttl)
		s.cacheEnabled = true
	}
	return s
}

// Rules возвращает действующие правила. Результат разделяется между вызовами и не должен изменяться.
// Если настройки не сохранялись, возвращаются значения по умолчанию;
// непригодный сохраненный документ - ошибка ErrSettingsCorrupted
func (s *Service) Rules(ctx context.Context) (*domain.RulesConfig, error) {
	if s.cacheEnabled {
		if cached, ok := s.cache.Get(rulesCacheKey); ok {
			return cached.(*domain.RulesConfig), nil
		}
	}

	rules, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled {
		s.cache.SetDefault(rulesCacheKey, rules)
	}
	return rules, nil
}

// Get возвращает настройки для отображения
func (s *Service) Get(ctx context.Context) (*models.Settings, error) {
	rules, err := s.Rules(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(rules), nil
}

// Update полностью заменяет документ настроек
func (s *Service) Update(ctx context.Context, req *models.Settings) (*models.Settings, error) {
	s.logger.Info("Update: updating restaurant settings")

	rules, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("Update: invalid schedule time: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if rules.Reservations.Timezone == "" {
		rules.Reservations.Timezone = s.defaultTimezone
	}
	if err := rules.Validate(); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	data, err := json.Marshal(rules)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - marshal settings: %v", ErrInternal, err)
	}

	if err := s.repo.Upsert(ctx, data); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.Invalidate()
	s.logger.Info("Update: settings saved, timezone=%s", rules.Timezone())
	return models.FromDomainSettings(rules), nil
}

// Invalidate сбрасывает кеш правил
func (s *Service) Invalidate() {
	if s.cacheEnabled {
		s.cache.Delete(rulesCacheKey)
	}
}

func (s *Service) load(ctx context.Context) (*domain.RulesConfig, error) {
	data, err := s.repo.Get(ctx)
	if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		return domain.DefaultRules(s.defaultTimezone), nil
	}
	if err != nil {
		s.logger.Error("Rules: repository error: %v", err)
		return nil, fmt.Errorf("%w: Rules - repository error: %v", ErrInternal, err)
	}

	var rules domain.RulesConfig
	if err := json.Unmarshal(data, &rules); err != nil {
		s.logger.Error("Rules: stored settings are not valid JSON: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSettingsCorrupted, err)
	}
	if rules.Reservations.Timezone == "" {
		rules.Reservations.Timezone = s.defaultTimezone
	}
	if err := rules.Validate(); err != nil {
		s.logger.Error("Rules: stored settings failed validation: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSettingsCorrupted, err)
	}

	return &rules, nil
}
