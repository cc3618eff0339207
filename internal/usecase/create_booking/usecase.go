package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
	userRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/user"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/dailylimit"
)

// UseCase use case для бронирования одного слота
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	userRepo     UserRepository
	limitGuard   DailyLimitGuard
	publisher    EventPublisher
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	userRepo UserRepository,
	limitGuard DailyLimitGuard,
	publisher EventPublisher,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		limitGuard:   limitGuard,
		publisher:    publisher,
		txManager:    txManager,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute бронирует слот.
// Уникальность слота гарантирует БД: предварительная проверка только экономит транзакцию.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: viewer=%d, admin=%t, unix=%d, user=%d",
		req.Viewer.UserID, req.Viewer.IsAdmin, req.Unix, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	ownerID := ownerOf(req)

	// 2. Администратор может бронировать за другого, проверяем что пользователь существует
	if ownerID != req.Viewer.UserID {
		if _, err := uc.userRepo.GetByID(ctx, ownerID); err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: user id=%d not found", ownerID)
				return nil, ErrUserNotFound
			}
			uc.logger.Error("CreateBooking: failed to get user id=%d: %v", ownerID, err)
			return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
	}

	// 3. Загружаем настройки
	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("CreateBooking: settings are not bootstrapped")
			return nil, ErrConfigMissing
		}
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(uc.location)
	slot := time.Unix(req.Unix, 0).In(uc.location)

	// 4. Ограничения по времени и дневной лимит действуют только для пользователей
	if !req.Viewer.IsAdmin {
		if err := validateSlotTime(slot, now, cfg); err != nil {
			uc.logger.Warn("CreateBooking: slot %s rejected: %v", slot.Format(time.RFC3339), err)
			return nil, err
		}

		if err := uc.limitGuard.Check(ctx, req.Viewer, cfg, ownerID, slot, 0); err != nil {
			if errors.Is(err, dailylimit.ErrDailyLimitExceeded) {
				return nil, ErrDailyLimitExceeded
			}
			return nil, fmt.Errorf("%w: daily limit check: %v", ErrInternal, err)
		}
	}

	// 5. Быстрая проверка занятости слота
	exists, err := uc.bookingRepo.Exists(ctx, req.Unix)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check slot unix=%d: %v", req.Unix, err)
		return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}
	if exists {
		uc.logger.Warn("CreateBooking: slot unix=%d is already taken", req.Unix)
		return nil, ErrSlotNotAvailable
	}

	booking := &domain.Booking{
		Unix:     req.Unix,
		BookedAt: now.Unix(),
		UserID:   &ownerID,
	}

	// 6. Списание очка и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !req.Viewer.IsAdmin {
			if err := uc.userRepo.ChangePoints(txCtx, ownerID, -1); err != nil {
				if errors.Is(err, userRepo.ErrNotEnoughPoints) {
					uc.logger.Warn("CreateBooking: user=%d has no points left", ownerID)
					return ErrPointsExhausted
				}
				uc.logger.Error("CreateBooking: failed to spend point of user=%d: %v", ownerID, err)
				return fmt.Errorf("%w: failed to spend point: %v", ErrInternal, err)
			}
		}

		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot unix=%d taken concurrently", req.Unix)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: slot unix=%d booked by user=%d", req.Unix, ownerID)

	// 7. Событие отправляем после фиксации, ошибка не влияет на результат
	event := domain.BookingEvent{
		Type:    domain.EventBookingCreated,
		Unix:    booking.Unix,
		UserID:  booking.UserID,
		ActorID: req.Viewer.UserID,
		At:      now,
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for unix=%d: %v", req.Unix, err)
	}

	return &Response{
		Unix:     booking.Unix,
		BookedAt: booking.BookedAt,
		UserID:   ownerID,
	}, nil
}
