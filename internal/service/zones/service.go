package zones

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	zoneRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/zone"
	"github.com/m04kA/SMC-ReservationService/internal/service/zones/models"
)

// Service сервис для работы с зонами зала
type Service struct {
	zoneRepo  ZoneRepository
	tableRepo TableRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса зон
func NewService(zoneRepo ZoneRepository, tableRepo TableRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		zoneRepo:  zoneRepo,
		tableRepo: tableRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// List возвращает все зоны вместе с привязанными столами
func (s *Service) List(ctx context.Context) ([]*models.ZoneResponse, error) {
	zones, err := s.zoneRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	tables, err := s.tableRepo.List(ctx, domain.TableFilter{})
	if err != nil {
		s.logger.Error("List: failed to load tables: %v", err)
		return nil, fmt.Errorf("%w: List - tables repository error: %v", ErrInternal, err)
	}

	byZone := make(map[int64][]*domain.Table)
	for _, t := range tables {
		if t.ZoneID != nil {
			byZone[*t.ZoneID] = append(byZone[*t.ZoneID], t)
		}
	}

	out := make([]*models.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		z.Tables = byZone[z.ID]
		out = append(out, models.FromDomainZone(z))
	}
	return out, nil
}

// GetByID возвращает зону со столами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ZoneResponse, error) {
	zone, err := s.zoneRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetByID", err)
	}

	if err := s.attachTables(ctx, zone); err != nil {
		return nil, err
	}
	return models.FromDomainZone(zone), nil
}

// Create создает зону
func (s *Service) Create(ctx context.Context, req *models.CreateZoneRequest) (*models.ZoneResponse, error) {
	s.logger.Info("Create: creating zone name=%q type=%s", req.Name, req.Type)

	zoneType := domain.Location(req.Type)
	name := strings.TrimSpace(req.Name)
	if name == "" || !zoneType.IsValid() {
		return nil, fmt.Errorf("%w: name and type are required", ErrInvalidInput)
	}
	if req.Size.Width < 1 || req.Size.Height < 1 {
		return nil, fmt.Errorf("%w: size must be positive", ErrInvalidInput)
	}

	zone := &domain.Zone{
		Name:  name,
		Type:  zoneType,
		Size:  domain.Size{Width: req.Size.Width, Height: req.Size.Height},
		Color: req.Color,
	}
	if req.Position != nil {
		zone.Position = *req.Position
	}
	if zone.Color == "" {
		zone.Color = domain.DefaultZoneColor
	}

	created, err := s.zoneRepo.Create(ctx, zone)
	if err != nil {
		return nil, s.mapError("Create", err)
	}

	s.logger.Info("Create: zone id=%d created", created.ID)
	return models.FromDomainZone(created), nil
}

// Update частично обновляет зону
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateZoneRequest) (*models.ZoneResponse, error) {
	patch := req.ToDomainPatch()
	if patch.Type != nil && !patch.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown zone type %q", ErrInvalidInput, *patch.Type)
	}
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		patch.Name = &trimmed
	}

	updated, err := s.zoneRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, s.mapError("Update", err)
	}

	if err := s.attachTables(ctx, updated); err != nil {
		return nil, err
	}

	s.logger.Info("Update: zone id=%d updated", id)
	return models.FromDomainZone(updated), nil
}

// Delete удаляет зону. Зона со столами не удаляется (NotEmptyError с количеством столов).
// Строка зоны блокируется до подсчета столов, поэтому стол не может быть
// привязан к зоне между проверкой и удалением
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем зону (SELECT ... FOR UPDATE)
		if _, err := s.zoneRepo.GetByID(txCtx, id); err != nil {
			return s.mapError("Delete", err)
		}

		// 2. Зона со столами не удаляется
		count, err := s.tableRepo.CountByZone(txCtx, id)
		if err != nil {
			s.logger.Error("Delete: failed to count tables of zone id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - count tables: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("Delete: zone id=%d still has %d tables", id, count)
			return &NotEmptyError{ZoneID: id, TablesCount: count}
		}

		// 3. Удаляем
		if err := s.zoneRepo.Delete(txCtx, id); err != nil {
			return s.mapError("Delete", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrZoneNotFound) || errors.Is(err, ErrZoneNotEmpty) || errors.Is(err, ErrInternal) {
			return err
		}
		s.logger.Error("Delete: zone id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: zone id=%d deleted", id)
	return nil
}

func (s *Service) attachTables(ctx context.Context, zone *domain.Zone) error {
	zoneID := zone.ID
	tables, err := s.tableRepo.List(ctx, domain.TableFilter{ZoneID: &zoneID})
	if err != nil {
		s.logger.Error("attachTables: failed to load tables of zone id=%d: %v", zone.ID, err)
		return fmt.Errorf("%w: attachTables - repository error: %v", ErrInternal, err)
	}
	zone.Tables = tables
	return nil
}

func (s *Service) mapError(op string, err error) error {
	switch {
	case errors.Is(err, zoneRepo.ErrZoneNotFound):
		return ErrZoneNotFound
	case errors.Is(err, zoneRepo.ErrDuplicateName):
		s.logger.Warn("%s: duplicate zone name", op)
		return ErrDuplicateName
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
