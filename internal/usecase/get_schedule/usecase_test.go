package get_schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
)

type mockBookingRepo struct {
	calls           int
	FindInRangeFunc func(ctx context.Context, from, to int64) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) FindInRange(ctx context.Context, from, to int64) ([]*domain.Booking, error) {
	m.calls++
	return m.FindInRangeFunc(ctx, from, to)
}

type mockSettingsRepo struct {
	cfg *domain.ScheduleConfig
	err error
}

func (m *mockSettingsRepo) Get(context.Context) (*domain.ScheduleConfig, error) {
	return m.cfg, m.err
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2024-01-10, среда
var now = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func testConfig(lastBookable time.Time) *domain.ScheduleConfig {
	cfg := domain.DefaultScheduleConfig(now)
	cfg.LastBookableDay = lastBookable.Unix()
	return &cfg
}

func newTestUseCase(cfg *domain.ScheduleConfig, bookings []*domain.Booking) (*UseCase, *mockBookingRepo) {
	repo := &mockBookingRepo{
		FindInRangeFunc: func(ctx context.Context, from, to int64) ([]*domain.Booking, error) {
			return bookings, nil
		},
	}
	uc := NewUseCase(repo, &mockSettingsRepo{cfg: cfg}, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc, repo
}

func at(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

func userBooking(start time.Time, userID int64) *domain.Booking {
	return &domain.Booking{
		Unix:     start.Unix(),
		BookedAt: now.Unix(),
		UserID:   &userID,
		Occupant: &domain.Occupant{ID: userID, Name: "Ivan", Surname: "Petrov", Email: "ivan@example.com"},
	}
}

func findSlot(t *testing.T, days []domain.DaySchedule, start time.Time) domain.SlotState {
	t.Helper()
	for _, d := range days {
		for _, s := range d.Slots {
			if s.Unix == start.Unix() {
				return s
			}
		}
	}
	t.Fatalf("slot %s not found", start)
	return domain.SlotState{}
}

func TestExecute_HorizonDayCount(t *testing.T) {
	tests := []struct {
		name         string
		lastBookable time.Time
		wantDays     int
	}{
		{name: "whole days", lastBookable: at(20, 0), wantDays: 11},
		{name: "partial last day", lastBookable: at(20, 12), wantDays: 12},
		{name: "today only", lastBookable: at(10, 0), wantDays: 1},
		{name: "in the past", lastBookable: at(5, 0), wantDays: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(testConfig(tt.lastBookable), nil)

			resp, err := uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}})

			require.NoError(t, err)
			assert.Len(t, resp.Days, tt.wantDays)
			if tt.wantDays > 0 {
				assert.Equal(t, at(10, 0), resp.Days[0].Date)
			}
		})
	}
}

func TestExecute_OffDayHasNoSlots(t *testing.T) {
	cfg := testConfig(at(16, 0))
	cfg.Week[time.Saturday].Off = true
	uc, _ := newTestUseCase(cfg, nil)

	resp, err := uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}})

	require.NoError(t, err)
	for _, day := range resp.Days {
		if day.Date.Weekday() == time.Saturday {
			assert.Empty(t, day.Slots)
		} else {
			assert.Len(t, day.Slots, domain.DefaultSlotNumber)
		}
	}
}

func TestExecute_SlotStates(t *testing.T) {
	const (
		viewerID = int64(1)
		otherID  = int64(2)
	)
	bookings := []*domain.Booking{
		userBooking(at(10, 12), viewerID),   // через 2.5 часа
		userBooking(at(12, 10), viewerID),   // через 48.5 часов
		userBooking(at(12, 11), otherID),
		{Unix: at(12, 12).Unix(), Closed: true},
	}

	uc, repo := newTestUseCase(testConfig(at(20, 0)), bookings)

	resp, err := uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: viewerID}})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)

	// свободные слоты: в пределах expireOffset и дальше
	assert.Equal(t, domain.SlotUnavailable, findSlot(t, resp.Days, at(10, 10)).Status)
	assert.Equal(t, domain.SlotAvailable, findSlot(t, resp.Days, at(10, 11)).Status)

	own := findSlot(t, resp.Days, at(10, 12))
	assert.Equal(t, domain.SlotBookedUncancellable, own.Status)
	require.NotNil(t, own.Occupant)
	assert.Equal(t, viewerID, own.Occupant.ID)

	assert.Equal(t, domain.SlotBooked, findSlot(t, resp.Days, at(12, 10)).Status)

	foreign := findSlot(t, resp.Days, at(12, 11))
	assert.Equal(t, domain.SlotUnavailable, foreign.Status)
	assert.Nil(t, foreign.Occupant)

	closed := findSlot(t, resp.Days, at(12, 12))
	assert.Equal(t, domain.SlotClosed, closed.Status)
	assert.Nil(t, closed.Occupant)
}

func TestExecute_WindowBoundaries(t *testing.T) {
	const viewerID = int64(1)
	// ровно expireOffset до свободного слота и ровно cancelationNotice до своего
	bookings := []*domain.Booking{userBooking(at(11, 10), viewerID)}

	uc, _ := newTestUseCase(testConfig(at(20, 0)), bookings)
	uc.timeProvider = fixedTime{now: at(10, 10)}

	resp, err := uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: viewerID}})
	require.NoError(t, err)

	assert.Equal(t, domain.SlotUnavailable, findSlot(t, resp.Days, at(10, 10)).Status)
	assert.Equal(t, domain.SlotAvailable, findSlot(t, resp.Days, at(10, 11)).Status)
	assert.Equal(t, domain.SlotBooked, findSlot(t, resp.Days, at(11, 10)).Status)
}

func TestExecute_AdminSeesOccupants(t *testing.T) {
	bookings := []*domain.Booking{
		userBooking(at(10, 12), 2),
		userBooking(at(12, 11), 3),
	}
	uc, _ := newTestUseCase(testConfig(at(20, 0)), bookings)

	resp, err := uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 99, IsAdmin: true}})
	require.NoError(t, err)

	soon := findSlot(t, resp.Days, at(10, 12))
	assert.Equal(t, domain.SlotBookedUncancellable, soon.Status)
	require.NotNil(t, soon.Occupant)
	assert.Equal(t, "ivan@example.com", soon.Occupant.Email)

	later := findSlot(t, resp.Days, at(12, 11))
	assert.Equal(t, domain.SlotBooked, later.Status)
	require.NotNil(t, later.Occupant)
	assert.Equal(t, int64(3), later.Occupant.ID)
}

func TestExecute_Idempotent(t *testing.T) {
	bookings := []*domain.Booking{userBooking(at(11, 10), 1)}
	uc, _ := newTestUseCase(testConfig(at(20, 0)), bookings)
	req := &Request{Viewer: domain.Viewer{UserID: 1}}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_ConfigMissing(t *testing.T) {
	uc := NewUseCase(&mockBookingRepo{}, &mockSettingsRepo{err: settingsRepo.ErrSettingsNotFound}, time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestExecute_BookingRepoError(t *testing.T) {
	repo := &mockBookingRepo{
		FindInRangeFunc: func(context.Context, int64, int64) ([]*domain.Booking, error) {
			return nil, errors.New("db down")
		},
	}
	uc := NewUseCase(repo, &mockSettingsRepo{cfg: testConfig(at(20, 0))}, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime{now: now}

	_, err := uc.Execute(context.Background(), &Request{})

	assert.ErrorIs(t, err, ErrInternal)
}
