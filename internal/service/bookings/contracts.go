package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByUnix(ctx context.Context, unix int64) (*domain.Booking, error)
	GetByUser(ctx context.Context, userID int64) ([]*domain.Booking, error)
	Delete(ctx context.Context, unix int64) error
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

// EventPublisher публикация событий о бронированиях
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.BookingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }
