package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotScheduler/pkg/psqlbuilder"
)

// settingsRowID настройки хранятся одной строкой
const settingsRowID = 1

// Repository репозиторий настроек расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get загружает настройки. Если строки нет, возвращает ErrSettingsNotFound.
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"last_bookable_day",
		"slot_duration",
		"interval_minutes",
		"expire_offset",
		"cancelation_notice",
		"daily_limit",
		"week",
		"updated_at",
	).
		From("settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg       domain.ScheduleConfig
		weekRaw   []byte
		updatedAt sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.LastBookableDay,
		&cfg.SlotDuration,
		&cfg.Interval,
		&cfg.ExpireOffset,
		&cfg.CancelationNotice,
		&cfg.DailyLimit,
		&weekRaw,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan: %v", ErrScanRow, err)
	}

	week, err := decodeWeek(weekRaw)
	if err != nil {
		return nil, err
	}
	cfg.Week = week
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Save создает или перезаписывает настройки
func (r *Repository) Save(ctx context.Context, cfg *domain.ScheduleConfig) error {
	query, args, err := r.insertQuery(cfg,
		"ON CONFLICT (id) DO UPDATE SET "+
			"last_bookable_day = EXCLUDED.last_bookable_day, "+
			"slot_duration = EXCLUDED.slot_duration, "+
			"interval_minutes = EXCLUDED.interval_minutes, "+
			"expire_offset = EXCLUDED.expire_offset, "+
			"cancelation_notice = EXCLUDED.cancelation_notice, "+
			"daily_limit = EXCLUDED.daily_limit, "+
			"week = EXCLUDED.week, "+
			"updated_at = NOW()",
	)
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateIfMissing сохраняет настройки, только если их ещё нет.
// Возвращает true, если запись была создана.
func (r *Repository) CreateIfMissing(ctx context.Context, cfg *domain.ScheduleConfig) (bool, error) {
	query, args, err := r.insertQuery(cfg, "ON CONFLICT (id) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfMissing - build insert query: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfMissing - execute insert: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfMissing - rows affected: %v", ErrExecQuery, err)
	}

	return affected > 0, nil
}

func (r *Repository) insertQuery(cfg *domain.ScheduleConfig, suffix string) (string, []interface{}, error) {
	week, err := json.Marshal(cfg.Week)
	if err != nil {
		return "", nil, err
	}

	return psqlbuilder.Insert("settings").
		Columns(
			"id",
			"last_bookable_day",
			"slot_duration",
			"interval_minutes",
			"expire_offset",
			"cancelation_notice",
			"daily_limit",
			"week",
		).
		Values(
			settingsRowID,
			cfg.LastBookableDay,
			cfg.SlotDuration,
			cfg.Interval,
			cfg.ExpireOffset,
			cfg.CancelationNotice,
			cfg.DailyLimit,
			week,
		).
		Suffix(suffix).
		ToSql()
}

// decodeWeek разбирает JSONB шаблон недели, их должно быть ровно 7
func decodeWeek(raw []byte) ([domain.DaysInWeek]domain.DayTemplate, error) {
	var week [domain.DaysInWeek]domain.DayTemplate

	var days []domain.DayTemplate
	if err := json.Unmarshal(raw, &days); err != nil {
		return week, fmt.Errorf("%w: %v", ErrCorruptSettings, err)
	}
	if len(days) != domain.DaysInWeek {
		return week, fmt.Errorf("%w: expected %d days, got %d", ErrCorruptSettings, domain.DaysInWeek, len(days))
	}

	copy(week[:], days)
	return week, nil
}
