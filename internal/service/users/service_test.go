package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotScheduler/internal/auth"
	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	userRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/user"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/users/models"
)

type memoryUserRepo struct {
	users   map[int64]*domain.User
	created []*domain.User
}

func (m *memoryUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUserRepo) SetPoints(_ context.Context, id int64, points int, expected int) error {
	u, ok := m.users[id]
	if !ok {
		return userRepo.ErrUserNotFound
	}
	if u.Points != expected {
		return userRepo.ErrPointsChanged
	}
	u.Points = points
	return nil
}

func (m *memoryUserRepo) CreateAdminIfMissing(_ context.Context, u *domain.User) (bool, error) {
	for _, existing := range m.created {
		if existing.Email == u.Email {
			return false, nil
		}
	}
	m.created = append(m.created, u)
	return true, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var admin = domain.Viewer{UserID: 9, IsAdmin: true}

func newService() (*Service, *memoryUserRepo) {
	repo := &memoryUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Points: 3},
		2: {ID: 2, Points: 7},
	}}
	return NewService(repo, auth.HashPassword, nopLogger{}), repo
}

func TestGetPoints(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetPoints(context.Background(), domain.Viewer{UserID: 1}, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Points)

	resp, err = svc.GetPoints(context.Background(), admin, 2)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Points)

	_, err = svc.GetPoints(context.Background(), domain.Viewer{UserID: 1}, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetPoints(context.Background(), admin, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetPoints(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.SetPoints(context.Background(), admin, 1, &models.UpdatePointsRequest{Points: 10, VerifyPoints: 3})
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Points)
	assert.Equal(t, 10, repo.users[1].Points)

	// баланс уже не 3
	_, err = svc.SetPoints(context.Background(), admin, 1, &models.UpdatePointsRequest{Points: 0, VerifyPoints: 3})
	assert.ErrorIs(t, err, ErrPointsChanged)
	assert.Equal(t, 10, repo.users[1].Points)
}

func TestSetPoints_Errors(t *testing.T) {
	svc, _ := newService()

	_, err := svc.SetPoints(context.Background(), domain.Viewer{UserID: 1}, 1, &models.UpdatePointsRequest{Points: 99, VerifyPoints: 3})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.SetPoints(context.Background(), admin, 1, &models.UpdatePointsRequest{Points: -1, VerifyPoints: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetPoints(context.Background(), admin, 404, &models.UpdatePointsRequest{Points: 1, VerifyPoints: 0})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestBootstrapAdmin(t *testing.T) {
	svc, repo := newService()
	account := models.AdminAccount{Email: "admin@example.com", Password: "secret", Name: "Admin"}

	require.NoError(t, svc.BootstrapAdmin(context.Background(), account))
	require.NoError(t, svc.BootstrapAdmin(context.Background(), account))

	require.Len(t, repo.created, 1)
	assert.True(t, repo.created[0].Admin)
	assert.True(t, auth.CheckPassword(repo.created[0].PasswordHash, "secret"))
}

func TestBootstrapAdmin_SkipsWithoutCredentials(t *testing.T) {
	svc, repo := newService()

	require.NoError(t, svc.BootstrapAdmin(context.Background(), models.AdminAccount{Email: "admin@example.com"}))
	assert.Empty(t, repo.created)
}

func TestBootstrapAdmin_HashFailure(t *testing.T) {
	repo := &memoryUserRepo{}
	svc := NewService(repo, func(string) (string, error) { return "", errors.New("boom") }, nopLogger{})

	err := svc.BootstrapAdmin(context.Background(), models.AdminAccount{Email: "a@b.c", Password: "x"})

	assert.ErrorIs(t, err, ErrInternal)
}
