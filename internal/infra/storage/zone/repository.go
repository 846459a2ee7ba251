package zone

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

const tableName = "zones"

var columns = []string{
	"id",
	"name",
	"type",
	"position_x",
	"position_y",
	"width",
	"height",
	"color",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с зонами зала
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория зон
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает зону
func (r *Repository) Create(ctx context.Context, z *domain.Zone) (*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("name", "type", "position_x", "position_y", "width", "height", "color").
		Values(z.Name, string(z.Type), z.Position.X, z.Position.Y, z.Size.Width, z.Size.Height, z.Color).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&z.ID, &z.CreatedAt, &z.UpdatedAt); err != nil {
		return nil, mapWriteError("Create", err)
	}

	return z, nil
}

// GetByID получает зону по ID (без столов)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Zone, error) {
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

	z, err := scanZone(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan zone: %v", ErrScanRow, err)
	}

	return z, nil
}

// List получает все зоны, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	zones := make([]*domain.Zone, 0)
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return zones, nil
}

// Update применяет частичное обновление зоны
func (r *Repository) Update(ctx context.Context, id int64, patch domain.ZonePatch) (*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(tableName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Type != nil {
		builder = builder.Set("type", string(*patch.Type))
	}
	if patch.Position != nil {
		builder = builder.Set("position_x", patch.Position.X).Set("position_y", patch.Position.Y)
	}
	if patch.Size != nil {
		builder = builder.Set("width", patch.Size.Width).Set("height", patch.Size.Height)
	}
	if patch.Color != nil {
		builder = builder.Set("color", *patch.Color)
	}

	query, args, err := builder.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	z, err := scanZone(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	return z, nil
}

// Delete удаляет зону
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

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrZoneNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanZone(row rowScanner) (*domain.Zone, error) {
	var z domain.Zone
	err := row.Scan(
		&z.ID,
		&z.Name,
		&z.Type,
		&z.Position.X,
		&z.Position.Y,
		&z.Size.Width,
		&z.Size.Height,
		&z.Color,
		&z.CreatedAt,
		&z.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func mapWriteError(op string, err error) error {
	if pgerrors.IsUniqueViolation(err, migrations.ConstraintZoneName) {
		return ErrDuplicateName
	}
	return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
}
