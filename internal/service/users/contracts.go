package users

import (
	"context"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SetPoints(ctx context.Context, id int64, points int, expected int) error
	CreateAdminIfMissing(ctx context.Context, u *domain.User) (bool, error)
}

// PasswordHasher хеширование пароля администратора
type PasswordHasher func(password string) (string, error)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
