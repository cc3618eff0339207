package dailylimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

var (
	// ErrDailyLimitExceeded возвращается, когда у пользователя уже максимум бронирований на этот день
	ErrDailyLimitExceeded = errors.New("dailylimit: daily booking limit exceeded")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("dailylimit: internal error")
)

// BookingCounter считает бронирования пользователя строго внутри (from, to)
type BookingCounter interface {
	CountByUserInRange(ctx context.Context, userID int64, from, to int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Guard проверка дневного лимита бронирований.
// Проверка не атомарна со вставкой: два одновременных запроса одного пользователя могут её пройти.
type Guard struct {
	counter BookingCounter
	logger  Logger
}

func NewGuard(counter BookingCounter, logger Logger) *Guard {
	return &Guard{counter: counter, logger: logger}
}

// Check проверяет, может ли userID получить ещё одно бронирование в календарный день target.
// extra: сколько бронирований этого дня уже запрошено в том же запросе.
func (g *Guard) Check(ctx context.Context, viewer domain.Viewer, cfg *domain.ScheduleConfig, userID int64, target time.Time, extra int) error {
	// Администраторы не ограничены
	if viewer.IsAdmin || !cfg.HasDailyLimit() {
		return nil
	}

	dayStart := domain.StartOfDay(target)
	dayEnd := dayStart.AddDate(0, 0, 1)

	count, err := g.counter.CountByUserInRange(ctx, userID, dayStart.Unix(), dayEnd.Unix())
	if err != nil {
		g.logger.Error("DailyLimit: failed to count bookings for user=%d: %v", userID, err)
		return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	if count+extra >= cfg.DailyLimit {
		g.logger.Warn("DailyLimit: user=%d has %d/%d bookings on %s",
			userID, count+extra, cfg.DailyLimit, dayStart.Format(domain.DateFormat))
		return ErrDailyLimitExceeded
	}

	return nil
}
