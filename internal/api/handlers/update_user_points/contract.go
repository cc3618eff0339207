package update_user_points

import (
	"context"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/users/models"
)

type UserService interface {
	SetPoints(ctx context.Context, viewer domain.Viewer, userID int64, req *models.UpdatePointsRequest) (*models.PointsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
