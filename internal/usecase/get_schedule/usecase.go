package get_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
)

// UseCase строит расписание слотов со статусами для конкретного пользователя
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает расписание от начала сегодняшнего дня до lastBookableDay включительно.
// Результат зависит только от текущего времени, настроек, пользователя и набора бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSchedule: user=%d, admin=%t", req.Viewer.UserID, req.Viewer.IsAdmin)

	// 1. Загружаем настройки
	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("GetSchedule: settings are not bootstrapped")
			return nil, ErrConfigMissing
		}
		uc.logger.Error("GetSchedule: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 2. Вычисляем горизонт
	now := uc.timeProvider.Now().In(uc.location)
	today := domain.StartOfDay(now)
	days := horizonDays(today, cfg.LastBookable(uc.location))
	if days < 0 {
		uc.logger.Info("GetSchedule: lastBookableDay is in the past, empty schedule")
		return &Response{Days: []domain.DaySchedule{}}, nil
	}

	// 3. Одним запросом получаем бронирования всего горизонта.
	// Берём лишний день: слоты последнего дня могут перейти за полночь.
	from := today.Unix()
	to := today.AddDate(0, 0, days+2).Unix()
	bookings, err := uc.bookingRepo.FindInRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	byUnix := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		byUnix[b.Unix] = b
	}

	// 4. Строим дни
	result := make([]domain.DaySchedule, 0, days+1)
	for i := 0; i <= days; i++ {
		date := today.AddDate(0, 0, i)
		day := domain.DaySchedule{Date: date, Slots: []domain.SlotState{}}

		template := cfg.Day(date.Weekday())
		if template.IsWorking() {
			for _, slot := range domain.EnumerateDaySlots(template, date, cfg.StepMinutes()) {
				day.Slots = append(day.Slots, resolveSlotState(slot, byUnix[slot.Unix()], req.Viewer, now, cfg))
			}
		}

		result = append(result, day)
	}

	uc.logger.Info("GetSchedule: built %d days, %d bookings in horizon", len(result), len(bookings))

	return &Response{Days: result}, nil
}
