package models

import (
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
)

// SettingsRequest полная замена настроек расписания
type SettingsRequest struct {
	LastBookableDay   int64                `json:"lastBookableDay" validate:"gt=0"`
	SlotDuration      int                  `json:"slotDuration" validate:"min=5,max=240"`
	Interval          int                  `json:"interval" validate:"min=0,max=240"`
	ExpireOffset      int                  `json:"expireOffset" validate:"min=0"`
	CancelationNotice int                  `json:"cancelationNotice" validate:"min=0"`
	DailyLimit        int                  `json:"dailyLimit" validate:"min=0"`
	Week              []domain.DayTemplate `json:"week" validate:"len=7,dive"`
}

// SettingsResponse настройки расписания
type SettingsResponse struct {
	LastBookableDay   int64                `json:"lastBookableDay"`
	SlotDuration      int                  `json:"slotDuration"`
	Interval          int                  `json:"interval"`
	ExpireOffset      int                  `json:"expireOffset"`
	CancelationNotice int                  `json:"cancelationNotice"`
	DailyLimit        int                  `json:"dailyLimit"`
	Week              []domain.DayTemplate `json:"week"`
	UpdatedAt         *time.Time           `json:"updatedAt,omitempty"`
}

// ToDomainConfig конвертирует запрос в domain модель (после валидации)
func (r *SettingsRequest) ToDomainConfig() *domain.ScheduleConfig {
	cfg := &domain.ScheduleConfig{
		LastBookableDay:   r.LastBookableDay,
		SlotDuration:      r.SlotDuration,
		Interval:          r.Interval,
		ExpireOffset:      r.ExpireOffset,
		CancelationNotice: r.CancelationNotice,
		DailyLimit:        r.DailyLimit,
	}
	copy(cfg.Week[:], r.Week)
	return cfg
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.ScheduleConfig) *SettingsResponse {
	if c == nil {
		return nil
	}

	resp := &SettingsResponse{
		LastBookableDay:   c.LastBookableDay,
		SlotDuration:      c.SlotDuration,
		Interval:          c.Interval,
		ExpireOffset:      c.ExpireOffset,
		CancelationNotice: c.CancelationNotice,
		DailyLimit:        c.DailyLimit,
		Week:              append([]domain.DayTemplate(nil), c.Week[:]...),
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
