package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const tableName = "restaurant_tables"

var columns = []string{
	"id",
	"number",
	"capacity",
	"location",
	"is_available",
	"status",
	"position_x",
	"position_y",
	"width",
	"height",
	"shape",
	"zone_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со столами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория столов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает стол
func (r *Repository) Create(ctx context.Context, t *domain.Table) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("number", "capacity", "location", "is_available", "status",
			"position_x", "position_y", "width", "height", "shape", "zone_id").
		Values(t.Number, t.Capacity, t.Location, t.IsAvailable, t.Status,
			t.Position.X, t.Position.Y, t.Size.Width, t.Size.Height, t.Shape, t.ZoneID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	return t, nil
}

// GetByID получает стол по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	t, err := scanTable(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan table: %v", ErrScanRow, err)
	}

	return t, nil
}

// List получает столы по фильтру, отсортированные по номеру
func (r *Repository) List(ctx context.Context, filter domain.TableFilter) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(tableName)

	if filter.Location != nil {
		builder = builder.Where(squirrel.Eq{"location": string(*filter.Location)})
	}
	if filter.MinCapacity != nil {
		builder = builder.Where(squirrel.GtOrEq{"capacity": *filter.MinCapacity})
	}
	if filter.AvailableOnly {
		builder = builder.Where(squirrel.Eq{"is_available": true})
	}
	if filter.ZoneID != nil {
		builder = builder.Where(squirrel.Eq{"zone_id": *filter.ZoneID})
	}

	query, args, err := builder.OrderBy("number ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}

// Update применяет частичное обновление и возвращает стол целиком
func (r *Repository) Update(ctx context.Context, id int64, patch domain.TablePatch) (*domain.Table, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(tableName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Number != nil {
		builder = builder.Set("number", *patch.Number)
	}
	if patch.Capacity != nil {
		builder = builder.Set("capacity", *patch.Capacity)
	}
	if patch.IsAvailable != nil {
		builder = builder.Set("is_available", *patch.IsAvailable)
	}
	if patch.Position != nil {
		builder = builder.Set("position_x", patch.Position.X).Set("position_y", patch.Position.Y)
	}
	if patch.Size != nil {
		builder = builder.Set("width", patch.Size.Width).Set("height", patch.Size.Height)
	}
	if patch.Shape != nil {
		builder = builder.Set("shape", string(*patch.Shape))
	}
	if patch.Location != nil {
		builder = builder.Set("location", string(*patch.Location))
	}
	switch {
	case patch.ClearZone:
		builder = builder.Set("zone_id", nil)
	case patch.ZoneID != nil:
		builder = builder.Set("zone_id", *patch.ZoneID)
	}

	query, args, err := builder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	t, err := scanTable(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	return t, nil
}

// UpdateStatus меняет состояние стола в зале (reserved / occupied / available)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.TableStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return requireAffected("UpdateStatus", result)
}

// Delete удаляет стол. Бронирования сохраняются с table_id = NULL
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return requireAffected("Delete", result)
}

// CountByZone количество столов, привязанных к зоне
func (r *Repository) CountByZone(ctx context.Context, zoneID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"zone_id": zoneID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByZone - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByZone - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTable(row rowScanner) (*domain.Table, error) {
	var t domain.Table
	err := row.Scan(
		&t.ID,
		&t.Number,
		&t.Capacity,
		&t.Location,
		&t.IsAvailable,
		&t.Status,
		&t.Position.X,
		&t.Position.Y,
		&t.Size.Width,
		&t.Size.Height,
		&t.Shape,
		&t.ZoneID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err, migrations.ConstraintTableNumber):
		return ErrDuplicateNumber
	case pgerrors.IsForeignKeyViolation(err, ""):
		return ErrZoneReference
	default:
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
}

func requireAffected(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrTableNotFound
	}
	return nil
}
