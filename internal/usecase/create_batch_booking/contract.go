package create_batch_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ExistingAmong(ctx context.Context, unixes []int64) ([]int64, error)
	CreateMany(ctx context.Context, bookings []*domain.Booking) error
}

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ChangePoints(ctx context.Context, id int64, delta int) error
}

// DailyLimitGuard проверка дневного лимита бронирований
type DailyLimitGuard interface {
	Check(ctx context.Context, viewer domain.Viewer, cfg *domain.ScheduleConfig, userID int64, target time.Time, extra int) error
}

// EventPublisher публикация событий о бронированиях
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
