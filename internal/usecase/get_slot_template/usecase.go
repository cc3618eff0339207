package get_slot_template

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
)

var (
	// ErrConfigMissing возвращается, когда настройки расписания ещё не созданы
	ErrConfigMissing = errors.New("get_slot_template: schedule settings are missing")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_template: internal error")
)

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.ScheduleConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// DayPreview времена слотов одного дня недели
type DayPreview struct {
	Weekday time.Weekday
	Off     bool
	Slots   []string
}

// Response превью шаблона недели, индекс: день недели (0 = воскресенье)
type Response struct {
	Week []DayPreview
}

// UseCase превью шаблона слотов без учёта бронирований
type UseCase struct {
	settingsRepo SettingsRepository
	logger       Logger
}

func NewUseCase(settingsRepo SettingsRepository, logger Logger) *UseCase {
	return &UseCase{settingsRepo: settingsRepo, logger: logger}
}

func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("GetSlotTemplate: settings are not bootstrapped")
			return nil, ErrConfigMissing
		}
		uc.logger.Error("GetSlotTemplate: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// Дата нужна только как якорь для форматирования времени
	anchor := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	week := make([]DayPreview, 0, domain.DaysInWeek)
	for i, day := range cfg.Week {
		preview := DayPreview{Weekday: time.Weekday(i), Off: day.Off, Slots: []string{}}
		for _, slot := range domain.EnumerateDaySlots(day, anchor, cfg.StepMinutes()) {
			preview.Slots = append(preview.Slots, slot.Time)
		}
		week = append(week, preview)
	}

	return &Response{Week: week}, nil
}
