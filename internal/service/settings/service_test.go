package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/settings/models"
)

type mockSettingsRepo struct {
	cfg     *domain.ScheduleConfig
	getErr  error
	saved   *domain.ScheduleConfig
	created bool
}

func (m *mockSettingsRepo) Get(context.Context) (*domain.ScheduleConfig, error) {
	return m.cfg, m.getErr
}

func (m *mockSettingsRepo) Save(_ context.Context, cfg *domain.ScheduleConfig) error {
	m.saved = cfg
	return nil
}

func (m *mockSettingsRepo) CreateIfMissing(_ context.Context, cfg *domain.ScheduleConfig) (bool, error) {
	if m.cfg != nil {
		return false, nil
	}
	m.cfg = cfg
	m.created = true
	return true, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *models.SettingsRequest {
	week := make([]domain.DayTemplate, domain.DaysInWeek)
	for i := range week {
		week[i] = domain.DayTemplate{StartHours: 10, SlotNumber: 5}
	}
	return &models.SettingsRequest{
		LastBookableDay:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Unix(),
		SlotDuration:      50,
		Interval:          10,
		ExpireOffset:      60,
		CancelationNotice: 24,
		DailyLimit:        2,
		Week:              week,
	}
}

func TestUpdate_Valid(t *testing.T) {
	repo := &mockSettingsRepo{}
	s := NewService(repo, time.UTC, nopLogger{})

	resp, err := s.Update(context.Background(), validRequest())

	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.Equal(t, 60, repo.saved.StepMinutes())
	assert.Len(t, resp.Week, 7)
}

func TestUpdate_TooManySlots(t *testing.T) {
	s := NewService(&mockSettingsRepo{}, time.UTC, nopLogger{})
	req := validRequest()
	// 10:00 → 23:55 вмещает 13 часовых слотов
	req.Week[3].SlotNumber = 14

	_, err := s.Update(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooManySlots)
}

func TestUpdate_OffDayStillChecksCapacity(t *testing.T) {
	repo := &mockSettingsRepo{}
	s := NewService(repo, time.UTC, nopLogger{})
	req := validRequest()
	req.Week[0] = domain.DayTemplate{StartHours: 23, SlotNumber: 20, Off: true}

	_, err := s.Update(context.Background(), req)

	assert.ErrorIs(t, err, ErrTooManySlots)
	assert.Nil(t, repo.saved)
}

func TestUpdate_MidnightStartFitsNoSlots(t *testing.T) {
	// с 24:00 до 23:55 не помещается ни одного слота
	s := NewService(&mockSettingsRepo{}, time.UTC, nopLogger{})
	req := validRequest()
	req.Week[2] = domain.DayTemplate{StartHours: 24}

	_, err := s.Update(context.Background(), req)
	require.NoError(t, err)

	req.Week[2].SlotNumber = 1
	_, err = s.Update(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManySlots)
}

func TestUpdate_InvalidRanges(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *models.SettingsRequest)
	}{
		{name: "slot too short", modify: func(r *models.SettingsRequest) { r.SlotDuration = 4 }},
		{name: "interval too long", modify: func(r *models.SettingsRequest) { r.Interval = 241 }},
		{name: "negative limit", modify: func(r *models.SettingsRequest) { r.DailyLimit = -1 }},
		{name: "six days", modify: func(r *models.SettingsRequest) { r.Week = r.Week[:6] }},
		{name: "bad minutes", modify: func(r *models.SettingsRequest) { r.Week[1].StartMinutes = 60 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(&mockSettingsRepo{}, time.UTC, nopLogger{})
			req := validRequest()
			tt.modify(req)

			_, err := s.Update(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGet_Missing(t *testing.T) {
	s := NewService(&mockSettingsRepo{getErr: settingsRepo.ErrSettingsNotFound}, time.UTC, nopLogger{})

	_, err := s.Get(context.Background())

	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestBootstrap(t *testing.T) {
	repo := &mockSettingsRepo{}
	s := NewService(repo, time.UTC, nopLogger{})
	s.timeProvider = fixedTime{now: time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)}

	require.NoError(t, s.Bootstrap(context.Background()))
	require.True(t, repo.created)
	assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC).Unix(), repo.cfg.LastBookableDay)

	// повторный запуск не перезаписывает настройки
	repo.created = false
	require.NoError(t, s.Bootstrap(context.Background()))
	assert.False(t, repo.created)
}
