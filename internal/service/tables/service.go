package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	zoneRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/zone"
	"github.com/m04kA/SMC-ReservationService/internal/service/tables/models"
)

// Service сервис для работы со столами
type Service struct {
	tableRepo TableRepository
	zoneRepo  ZoneRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(tableRepo TableRepository, zoneRepo ZoneRepository, logger Logger) *Service {
	return &Service{
		tableRepo: tableRepo,
		zoneRepo:  zoneRepo,
		logger:    logger,
	}
}

// List возвращает столы по фильтру
func (s *Service) List(ctx context.Context, req *models.ListTablesRequest) ([]*models.TableResponse, error) {
	filter := domain.TableFilter{MinCapacity: req.MinCapacity}

	if req.Location != nil && *req.Location != "" && domain.Location(*req.Location) != domain.LocationAny {
		location := domain.Location(*req.Location)
		if !location.IsValid() {
			return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, *req.Location)
		}
		filter.Location = &location
	}
	if req.Available != nil && *req.Available {
		filter.AvailableOnly = true
	}

	tables, err := s.tableRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTableList(tables), nil
}

// GetByID получает стол по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TableResponse, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			return nil, ErrTableNotFound
		}
		s.logger.Error("GetByID: repository error for table id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTable(table), nil
}

// Create создает стол
func (s *Service) Create(ctx context.Context, req *models.CreateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("Create: creating table number=%d capacity=%d location=%s", req.Number, req.Capacity, req.Location)

	location := domain.Location(req.Location)
	if req.Number < 1 || req.Capacity < 1 || !location.IsValid() {
		return nil, fmt.Errorf("%w: number, capacity and location are required", ErrInvalidInput)
	}

	table := &domain.Table{
		Number:      req.Number,
		Capacity:    req.Capacity,
		Location:    location,
		IsAvailable: true,
		Status:      domain.TableAvailable,
		Size:        domain.Size{Width: domain.DefaultTableWidth, Height: domain.DefaultTableHeight},
		Shape:       domain.ShapeSquare,
		ZoneID:      req.ZoneID,
	}
	if req.IsAvailable != nil {
		table.IsAvailable = *req.IsAvailable
	}
	if req.Position != nil {
		table.Position = *req.Position
	}
	if req.Size != nil {
		table.Size = domain.Size{Width: req.Size.Width, Height: req.Size.Height}
	}
	if req.Shape != "" {
		table.Shape = domain.TableShape(req.Shape)
		if !table.Shape.IsValid() {
			return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidInput, req.Shape)
		}
	}

	if req.ZoneID != nil {
		if err := s.checkZone(ctx, *req.ZoneID); err != nil {
			return nil, err
		}
	}

	created, err := s.tableRepo.Create(ctx, table)
	if err != nil {
		return nil, s.mapWriteError("Create", err)
	}

	s.logger.Info("Create: table id=%d number=%d created", created.ID, created.Number)
	return models.FromDomainTable(created), nil
}

// Update частично обновляет стол (доступность, расположение, форма, зона)
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error) {
	patch := req.ToDomainPatch()

	if patch.Location != nil && !patch.Location.IsValid() {
		return nil, fmt.Errorf("%w: unknown location %q", ErrInvalidInput, *patch.Location)
	}
	if patch.Shape != nil && !patch.Shape.IsValid() {
		return nil, fmt.Errorf("%w: unknown shape %q", ErrInvalidInput, *patch.Shape)
	}
	if patch.Capacity != nil && *patch.Capacity < 1 {
		return nil, fmt.Errorf("%w: capacity must be at least 1", ErrInvalidInput)
	}
	if patch.ZoneID != nil {
		if err := s.checkZone(ctx, *patch.ZoneID); err != nil {
			return nil, err
		}
	}

	updated, err := s.tableRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, s.mapWriteError("Update", err)
	}

	s.logger.Info("Update: table id=%d updated", id)
	return models.FromDomainTable(updated), nil
}

// Delete удаляет стол; бронирования остаются без стола
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.tableRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			return ErrTableNotFound
		}
		s.logger.Error("Delete: repository error for table id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: table id=%d deleted", id)
	return nil
}

func (s *Service) checkZone(ctx context.Context, zoneID int64) error {
	if _, err := s.zoneRepo.GetByID(ctx, zoneID); err != nil {
		if errors.Is(err, zoneRepo.ErrZoneNotFound) {
			s.logger.Warn("checkZone: zone id=%d not found", zoneID)
			return ErrZoneNotFound
		}
		return fmt.Errorf("%w: checkZone - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, tableRepo.ErrTableNotFound):
		return ErrTableNotFound
	case errors.Is(err, tableRepo.ErrDuplicateNumber):
		s.logger.Warn("%s: duplicate table number", op)
		return ErrDuplicateNumber
	case errors.Is(err, tableRepo.ErrZoneReference):
		return ErrZoneNotFound
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
