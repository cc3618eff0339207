package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
	userRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/user"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/dailylimit"
)

type mockBookingRepo struct {
	ExistsFunc func(ctx context.Context, unix int64) (bool, error)
	CreateFunc func(ctx context.Context, booking *domain.Booking) error
	created    []*domain.Booking
}

func (m *mockBookingRepo) Exists(ctx context.Context, unix int64) (bool, error) {
	if m.ExistsFunc == nil {
		return false, nil
	}
	return m.ExistsFunc(ctx, unix)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, booking); err != nil {
			return err
		}
	}
	m.created = append(m.created, booking)
	return nil
}

type mockSettingsRepo struct {
	cfg *domain.ScheduleConfig
	err error
}

func (m *mockSettingsRepo) Get(context.Context) (*domain.ScheduleConfig, error) {
	return m.cfg, m.err
}

type mockUserRepo struct {
	users  map[int64]*domain.User
	deltas map[int64]int
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ChangePoints(_ context.Context, id int64, delta int) error {
	u, ok := m.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	if u.Points+delta < 0 {
		return userRepo.ErrNotEnoughPoints
	}
	u.Points += delta
	m.deltas[id] += delta
	return nil
}

type mockGuard struct {
	err   error
	calls int
}

func (m *mockGuard) Check(context.Context, domain.Viewer, *domain.ScheduleConfig, int64, time.Time, int) error {
	m.calls++
	return m.err
}

type recordingPublisher struct {
	events []domain.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...domain.BookingEvent) error {
	p.events = append(p.events, events...)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var now = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

// слот 2024-01-12 10:00, через двое суток
var slot = time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *UseCase
	bookings  *mockBookingRepo
	users     *mockUserRepo
	guard     *mockGuard
	publisher *recordingPublisher
}

func newFixture() *fixture {
	cfg := domain.DefaultScheduleConfig(now)
	f := &fixture{
		bookings: &mockBookingRepo{},
		users: &mockUserRepo{
			users: map[int64]*domain.User{
				1: {ID: 1, Points: 3},
				2: {ID: 2, Points: 0},
				9: {ID: 9, Admin: true},
			},
			deltas: map[int64]int{},
		},
		guard:     &mockGuard{},
		publisher: &recordingPublisher{},
	}
	f.uc = NewUseCase(f.bookings, &mockSettingsRepo{cfg: &cfg}, f.users, f.guard, f.publisher, passthroughTx{}, time.UTC, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func TestExecute_UserBooksSlot(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: slot.Unix()})

	require.NoError(t, err)
	assert.Equal(t, slot.Unix(), resp.Unix)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, now.Unix(), resp.BookedAt)
	assert.Equal(t, -1, f.users.deltas[1])
	require.Len(t, f.bookings.created, 1)
	assert.False(t, f.bookings.created[0].Closed)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventBookingCreated, f.publisher.events[0].Type)
}

func TestExecute_SlotTakenOnPrecheck(t *testing.T) {
	f := newFixture()
	f.bookings.ExistsFunc = func(context.Context, int64) (bool, error) { return true, nil }

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: slot.Unix()})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.bookings.created)
	assert.Zero(t, f.users.deltas[1])
}

func TestExecute_SlotTakenOnInsert(t *testing.T) {
	f := newFixture()
	f.bookings.CreateFunc = func(context.Context, *domain.Booking) error { return bookingRepo.ErrSlotTaken }

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: slot.Unix()})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_PointsExhausted(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 2}, Unix: slot.Unix()})

	assert.ErrorIs(t, err, ErrPointsExhausted)
	assert.Empty(t, f.bookings.created)
}

func TestExecute_DailyLimit(t *testing.T) {
	f := newFixture()
	f.guard.err = dailylimit.ErrDailyLimitExceeded

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: slot.Unix()})

	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
	assert.Empty(t, f.bookings.created)
}

func TestExecute_TimeRestrictions(t *testing.T) {
	tests := []struct {
		name string
		slot time.Time
		want error
	}{
		{name: "within expire offset", slot: time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC), want: ErrTooLateToBook},
		{name: "in the past", slot: time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC), want: ErrTooLateToBook},
		{name: "after last bookable day", slot: time.Date(2024, 1, 21, 10, 0, 0, 0, time.UTC), want: ErrOutsideHorizon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: tt.slot.Unix()})

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_LastBookableDayIsIncluded(t *testing.T) {
	f := newFixture()
	lastDaySlot := time.Date(2024, 1, 20, 14, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: lastDaySlot.Unix()})

	assert.NoError(t, err)
}

func TestExecute_ExactlyExpireOffsetAhead(t *testing.T) {
	f := newFixture()
	f.uc.timeProvider = fixedTime{now: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)}
	boundary := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: boundary.Unix()})

	require.NoError(t, err)
	assert.Len(t, f.bookings.created, 1)
}

func TestExecute_AdminForceBooksForUser(t *testing.T) {
	f := newFixture()
	soon := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)

	resp, err := f.uc.Execute(context.Background(), &Request{
		Viewer: domain.Viewer{UserID: 9, IsAdmin: true},
		Unix:   soon.Unix(),
		UserID: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.UserID)
	assert.Zero(t, f.guard.calls)
	assert.Empty(t, f.users.deltas)
	assert.Equal(t, int64(9), f.publisher.events[0].ActorID)
}

func TestExecute_AdminUnknownUser(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		Viewer: domain.Viewer{UserID: 9, IsAdmin: true},
		Unix:   slot.Unix(),
		UserID: 404,
	})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_UserCannotBookForOthers(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: slot.Unix(), UserID: 2})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_ConfigMissing(t *testing.T) {
	f := newFixture()
	f.uc.settingsRepo = &mockSettingsRepo{err: settingsRepo.ErrSettingsNotFound}

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: slot.Unix()})

	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	f := newFixture()
	f.bookings.ExistsFunc = func(context.Context, int64) (bool, error) { return false, errors.New("db down") }

	_, err := f.uc.Execute(context.Background(), &Request{Viewer: domain.Viewer{UserID: 1}, Unix: slot.Unix()})

	assert.ErrorIs(t, err, ErrInternal)
}
