package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotScheduler/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями.
// Ключ бронирования: unix (время начала слота), уникальность гарантирует первичный ключ таблицы.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"b.unix",
	"b.booked_at",
	"b.user_id",
	"b.closed",
	"u.name",
	"u.surname",
	"u.email",
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("users u ON u.id = b.user_id")
}

// Create сохраняет бронирование.
// Если слот уже занят, возвращает ErrSlotTaken (срабатывает ограничение уникальности).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("unix", "booked_at", "user_id", "closed").
		Values(booking.Unix, booking.BookedAt, booking.UserID, booking.Closed).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateMany сохраняет несколько бронирований одним запросом.
// Запрос атомарен: при конфликте хотя бы по одному слоту не сохраняется ни одно бронирование.
func (r *Repository) CreateMany(ctx context.Context, bookings []*domain.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("bookings").
		Columns("unix", "booked_at", "user_id", "closed")
	for _, b := range bookings {
		builder = builder.Values(b.Unix, b.BookedAt, b.UserID, b.Closed)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateMany - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: CreateMany - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByUnix получает бронирование слота
func (r *Repository) GetByUnix(ctx context.Context, unix int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectBookings().Where(squirrel.Eq{"b.unix": unix})
	// Внутри транзакции блокируем строку до удаления
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnix - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnix - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// Exists проверяет, есть ли бронирование на это время
func (r *Repository) Exists(ctx context.Context, unix int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"unix": unix}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: Exists - execute select: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ExistingAmong возвращает те из переданных слотов, которые уже заняты
func (r *Repository) ExistingAmong(ctx context.Context, unixes []int64) ([]int64, error) {
	if len(unixes) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("unix").
		From("bookings").
		Where(squirrel.Expr("unix = ANY(?)", pq.Array(unixes))).
		OrderBy("unix").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExistingAmong - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExistingAmong - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	taken := make([]int64, 0)
	for rows.Next() {
		var unix int64
		if err := rows.Scan(&unix); err != nil {
			return nil, fmt.Errorf("%w: ExistingAmong - scan: %v", ErrScanRow, err)
		}
		taken = append(taken, unix)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ExistingAmong - rows error: %v", ErrScanRow, err)
	}

	return taken, nil
}

// FindInRange получает все бронирования в полуинтервале [from, to) вместе с профилями владельцев
func (r *Repository) FindInRange(ctx context.Context, from, to int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.GtOrEq{"b.unix": from}).
		Where(squirrel.Lt{"b.unix": to}).
		OrderBy("b.unix").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindInRange - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountByUserInRange считает бронирования пользователя строго внутри интервала (from, to)
func (r *Repository) CountByUserInRange(ctx context.Context, userID int64, from, to int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Gt{"unix": from}).
		Where(squirrel.Lt{"unix": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByUserInRange - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByUserInRange - execute select: %v", ErrExecQuery, err)
	}

	return count, nil
}

// GetByUser получает бронирования пользователя, отсортированные по времени
func (r *Repository) GetByUser(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.unix").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Delete удаляет бронирование слота
func (r *Repository) Delete(ctx context.Context, unix int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"unix": unix}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует строки selectBookings
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var (
			b                    domain.Booking
			userID               sql.NullInt64
			name, surname, email sql.NullString
		)

		if err := rows.Scan(&b.Unix, &b.BookedAt, &userID, &b.Closed, &name, &surname, &email); err != nil {
			return nil, fmt.Errorf("%w: scanBookings: %v", ErrScanRow, err)
		}

		if userID.Valid {
			id := userID.Int64
			b.UserID = &id
			b.Occupant = &domain.Occupant{
				ID:      id,
				Name:    name.String,
				Surname: surname.String,
				Email:   email.String,
			}
		}

		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
