package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	userRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/user"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/users/models"
)

// Service сервис баланса очков и учётной записи администратора
type Service struct {
	userRepo UserRepository
	hash     PasswordHasher
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, hash PasswordHasher, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		hash:     hash,
		logger:   logger,
	}
}

// GetPoints возвращает баланс пользователя. Доступно самому пользователю и администратору.
func (s *Service) GetPoints(ctx context.Context, viewer domain.Viewer, userID int64) (*models.PointsResponse, error) {
	if !viewer.CanAccessUser(userID) {
		s.logger.Warn("GetPoints: access denied for user=%d to user=%d", viewer.UserID, userID)
		return nil, ErrAccessDenied
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetPoints: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetPoints: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetPoints - repository error: %v", ErrInternal, err)
	}

	return &models.PointsResponse{UserID: user.ID, Points: user.Points}, nil
}

// SetPoints устанавливает баланс пользователя (только администратор)
func (s *Service) SetPoints(ctx context.Context, viewer domain.Viewer, userID int64, req *models.UpdatePointsRequest) (*models.PointsResponse, error) {
	s.logger.Info("SetPoints: user=%d points %d -> %d by admin=%d", userID, req.VerifyPoints, req.Points, viewer.UserID)

	if !viewer.IsAdmin {
		s.logger.Warn("SetPoints: user=%d is not an admin", viewer.UserID)
		return nil, ErrAccessDenied
	}

	if req.Points < 0 || req.VerifyPoints < 0 {
		return nil, fmt.Errorf("%w: points must not be negative", ErrInvalidInput)
	}

	if err := s.userRepo.SetPoints(ctx, userID, req.Points, req.VerifyPoints); err != nil {
		switch {
		case errors.Is(err, userRepo.ErrUserNotFound):
			s.logger.Warn("SetPoints: user id=%d not found", userID)
			return nil, ErrUserNotFound
		case errors.Is(err, userRepo.ErrPointsChanged):
			s.logger.Warn("SetPoints: points of user=%d changed, expected %d", userID, req.VerifyPoints)
			return nil, ErrPointsChanged
		default:
			s.logger.Error("SetPoints: repository error for user=%d: %v", userID, err)
			return nil, fmt.Errorf("%w: SetPoints - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("SetPoints: user=%d now has %d points", userID, req.Points)
	return &models.PointsResponse{UserID: userID, Points: req.Points}, nil
}

// BootstrapAdmin создает администратора по умолчанию, если пользователя с такой почтой нет
func (s *Service) BootstrapAdmin(ctx context.Context, account models.AdminAccount) error {
	if account.Email == "" || account.Password == "" {
		s.logger.Warn("BootstrapAdmin: admin credentials are not configured, skipping")
		return nil
	}

	hash, err := s.hash(account.Password)
	if err != nil {
		return fmt.Errorf("%w: BootstrapAdmin - hash password: %v", ErrInternal, err)
	}

	created, err := s.userRepo.CreateAdminIfMissing(ctx, &domain.User{
		Name:         account.Name,
		Surname:      account.Surname,
		Email:        account.Email,
		Admin:        true,
		PasswordHash: hash,
	})
	if err != nil {
		s.logger.Error("BootstrapAdmin: repository error: %v", err)
		return fmt.Errorf("%w: BootstrapAdmin - repository error: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("BootstrapAdmin: created admin %s", account.Email)
	}
	return nil
}
