package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
	userRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/user"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/bookings/models"
)

// Service сервис для закрытия, отмены и просмотра бронирований
type Service struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	userRepo     UserRepository
	publisher    EventPublisher
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	userRepo UserRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		txManager:    txManager,
		location:     location,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// Close закрывает слот: создаёт бронирование без владельца.
// Доступно только администратору.
func (s *Service) Close(ctx context.Context, viewer domain.Viewer, req *models.CloseSlotRequest) (*models.BookingResponse, error) {
	s.logger.Info("Close: closing slot unix=%d by user=%d", req.Unix, viewer.UserID)

	if !viewer.IsAdmin {
		s.logger.Warn("Close: user=%d is not an admin", viewer.UserID)
		return nil, ErrAccessDenied
	}

	if req.Unix <= 0 {
		return nil, fmt.Errorf("%w: unix must be positive", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	booking := &domain.Booking{
		Unix:     req.Unix,
		BookedAt: now.Unix(),
		Closed:   true,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			s.logger.Warn("Close: slot unix=%d is already taken", req.Unix)
			return nil, ErrSlotNotAvailable
		}
		s.logger.Error("Close: repository error for unix=%d: %v", req.Unix, err)
		return nil, fmt.Errorf("%w: Close - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Close: slot unix=%d closed", req.Unix)
	s.publish(ctx, domain.BookingEvent{
		Type:    domain.EventSlotClosed,
		Unix:    booking.Unix,
		ActorID: viewer.UserID,
		At:      now,
	})

	return models.FromDomainBooking(booking, s.location), nil
}

// Cancel удаляет бронирование слота.
// Пользователь может отменить только своё бронирование и не позже чем за cancelationNotice часов,
// при этом ему возвращается очко. Администратор может удалить любое бронирование, включая закрытые слоты.
func (s *Service) Cancel(ctx context.Context, viewer domain.Viewer, unix int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking unix=%d by user=%d, admin=%t", unix, viewer.UserID, viewer.IsAdmin)

	var cfg *domain.ScheduleConfig
	if !viewer.IsAdmin {
		var err error
		cfg, err = s.settingsRepo.Get(ctx)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				s.logger.Warn("Cancel: settings are not bootstrapped")
				return nil, ErrConfigMissing
			}
			s.logger.Error("Cancel: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: Cancel - failed to get settings: %v", ErrInternal, err)
		}
	}

	now := s.timeProvider.Now()
	var booking *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		booking, err = s.bookingRepo.GetByUnix(txCtx, unix)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking unix=%d not found", unix)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for unix=%d: %v", unix, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !viewer.IsAdmin {
			if !booking.BelongsTo(viewer.UserID) {
				s.logger.Warn("Cancel: access denied for user=%d to booking unix=%d", viewer.UserID, unix)
				return ErrAccessDenied
			}

			if time.Unix(unix, 0).Sub(now) < cfg.CancelWindow() {
				s.logger.Warn("Cancel: booking unix=%d is inside the %dh notice window", unix, cfg.CancelationNotice)
				return ErrCannotCancel
			}

			if err := s.userRepo.ChangePoints(txCtx, viewer.UserID, 1); err != nil {
				s.logger.Error("Cancel: failed to refund point to user=%d: %v", viewer.UserID, err)
				return fmt.Errorf("%w: Cancel - failed to refund point: %v", ErrInternal, err)
			}
		}

		if err := s.bookingRepo.Delete(txCtx, unix); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: failed to delete booking unix=%d: %v", unix, err)
			return fmt.Errorf("%w: Cancel - failed to delete booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking unix=%d cancelled", unix)
	s.publish(ctx, domain.BookingEvent{
		Type:    domain.EventBookingCancelled,
		Unix:    booking.Unix,
		UserID:  booking.UserID,
		ActorID: viewer.UserID,
		At:      now,
	})

	return models.FromDomainBooking(booking, s.location), nil
}

// GetUserBookings получает бронирования пользователя в порядке времени.
// Доступно самому пользователю и администратору.
func (s *Service) GetUserBookings(ctx context.Context, viewer domain.Viewer, userID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d by user=%d", userID, viewer.UserID)

	if !viewer.CanAccessUser(userID) {
		s.logger.Warn("GetUserBookings: access denied for user=%d to user=%d", viewer.UserID, userID)
		return nil, ErrAccessDenied
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetUserBookings: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetUserBookings: failed to get user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - failed to get user: %v", ErrInternal, err)
	}

	bookings, err := s.bookingRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), userID)
	return models.FromDomainBookingList(bookings, s.location), nil
}

// publish отправляет событие, ошибка только логируется
func (s *Service) publish(ctx context.Context, event domain.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish: failed to publish %s for unix=%d: %v", event.Type, event.Unix, err)
	}
}
