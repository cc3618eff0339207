package get_user_points

import (
	"context"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/users/models"
)

type UserService interface {
	GetPoints(ctx context.Context, viewer domain.Viewer, userID int64) (*models.PointsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
