package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const tableName = "reservations"

var columns = []string{
	"id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"reservation_at",
	"reservation_date",
	"reservation_time",
	"party_size",
	"table_id",
	"status",
	"special_requests",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование.
// Нарушение частичного уникального индекса по (стол, дата, время) возвращается как ErrSlotTaken
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"customer_name",
			"customer_email",
			"customer_phone",
			"reservation_at",
			"reservation_date",
			"reservation_time",
			"party_size",
			"table_id",
			"status",
			"special_requests",
		).
		Values(
			res.CustomerName,
			res.CustomerEmail,
			res.CustomerPhone,
			res.ReservationAt,
			res.ReservationDate,
			res.ReservationTime,
			res.PartySize,
			res.TableID,
			res.Status,
			res.SpecialRequests,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
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

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования по фильтру.
// Для выборки за конкретный интервал (From и To) сортирует по времени визита,
// иначе - по дате создания (сначала новые).
// Внутри транзакции строки интервала блокируются (FOR UPDATE) для сценария создания бронирования
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(tableName)

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"reservation_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"reservation_at": *filter.To})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}
	if filter.TableID != nil {
		builder = builder.Where(squirrel.Eq{"table_id": *filter.TableID})
	}
	if filter.NameContains != nil {
		builder = builder.Where(squirrel.ILike{"customer_name": containsPattern(*filter.NameContains)})
	}
	if filter.PhoneContains != nil {
		builder = builder.Where(squirrel.Like{"customer_phone": containsPattern(*filter.PhoneContains)})
	}
	if filter.Time != nil {
		builder = builder.Where(squirrel.Eq{"reservation_time": filter.Time.String()})
	}
	if filter.ExcludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	dayRange := filter.From != nil && filter.To != nil
	if dayRange {
		builder = builder.OrderBy("reservation_at ASC", "id ASC")
	} else {
		builder = builder.OrderBy("created_at DESC", "id DESC")
	}

	if dayRange && dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListForDay активные и неактивные бронирования полуоткрытого интервала [start, end)
func (r *Repository) ListForDay(ctx context.Context, start, end time.Time) ([]*domain.Reservation, error) {
	return r.List(ctx, domain.ReservationFilter{From: &start, To: &end})
}

// Update перезаписывает изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("customer_name", res.CustomerName).
		Set("customer_email", res.CustomerEmail).
		Set("customer_phone", res.CustomerPhone).
		Set("reservation_at", res.ReservationAt).
		Set("reservation_date", res.ReservationDate).
		Set("reservation_time", res.ReservationTime).
		Set("party_size", res.PartySize).
		Set("table_id", res.TableID).
		Set("status", res.Status).
		Set("special_requests", res.SpecialRequests).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	res.UpdatedAt = updatedAt.Time
	return res, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("UpdateStatus", err)
	}

	return requireAffected("UpdateStatus", result)
}

// Delete физически удаляет бронирование независимо от статуса
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

// likeEscaper экранирует спецсимволы LIKE (escape-символ по умолчанию - обратный слеш)
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern шаблон поиска подстроки: символы % и _ из ввода ищутся буквально
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		reservationDate      time.Time
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.CustomerName,
		&res.CustomerEmail,
		&res.CustomerPhone,
		&res.ReservationAt,
		&reservationDate,
		&res.ReservationTime,
		&res.PartySize,
		&res.TableID,
		&res.Status,
		&res.SpecialRequests,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.ReservationDate = reservationDate.Format(domain.DateFormat)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err, migrations.ConstraintActiveTableSlot):
		return ErrSlotTaken
	case pgerrors.IsForeignKeyViolation(err, ""):
		return ErrTableReference
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
		return ErrReservationNotFound
	}
	return nil
}
