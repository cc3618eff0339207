package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotScheduler/pkg/psqlbuilder"
)

// Repository репозиторий пользователей.
// Планировщик читает профиль и управляет только балансом очков.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "surname", "email", "admin", "points").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.Surname, &u.Email, &u.Admin, &u.Points,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return &u, nil
}

// ChangePoints изменяет баланс на delta. Баланс не может стать отрицательным.
func (r *Repository) ChangePoints(ctx context.Context, id int64, delta int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("points", squirrel.Expr("points + ?", delta)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("points + ? >= 0", delta)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ChangePoints - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ChangePoints - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ChangePoints - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrNotEnoughPoints
	}

	return nil
}

// SetPoints устанавливает баланс, если текущее значение равно expected
func (r *Repository) SetPoints(ctx context.Context, id int64, points int, expected int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("points", points).
		Where(squirrel.Eq{"id": id, "points": expected}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPoints - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPoints - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPoints - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrPointsChanged
	}

	return nil
}

// CreateAdminIfMissing создает администратора с указанной почтой, если такого пользователя нет.
// Возвращает true, если запись была создана.
func (r *Repository) CreateAdminIfMissing(ctx context.Context, u *domain.User) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("name", "surname", "email", "password_hash", "admin", "points").
		Values(u.Name, u.Surname, u.Email, u.PasswordHash, true, 0).
		Suffix("ON CONFLICT (email) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreateAdminIfMissing - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateAdminIfMissing - execute insert: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateAdminIfMissing - rows affected: %v", ErrExecQuery, err)
	}

	return affected > 0, nil
}
