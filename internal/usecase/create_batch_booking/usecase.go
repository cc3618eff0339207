package create_batch_booking

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
	userRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/user"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/dailylimit"
)

// UseCase use case для еженедельной серии бронирований
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	userRepo     UserRepository
	limitGuard   DailyLimitGuard
	publisher    EventPublisher
	txManager    TransactionManager
	validate     *validator.Validate
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
		validate:     validator.New(),
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute бронирует серию слотов: либо все, либо ни одного
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBatchBooking: viewer=%d, admin=%t, user=%d, weekday=%d, unix=%d, from=%d, to=%d",
		req.Viewer.UserID, req.Viewer.IsAdmin, req.UserID, req.Weekday, req.Unix, req.From, req.To)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBatchBooking: validation failed: %v", err)
		return nil, err
	}
	ownerID := ownerOf(req)

	if ownerID != req.Viewer.UserID {
		if _, err := uc.userRepo.GetByID(ctx, ownerID); err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateBatchBooking: user id=%d not found", ownerID)
				return nil, ErrUserNotFound
			}
			uc.logger.Error("CreateBatchBooking: failed to get user id=%d: %v", ownerID, err)
			return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
	}

	// 2. Раскладываем серию на слоты
	rep := time.Unix(req.Unix, 0).In(uc.location)
	from := time.Unix(req.From, 0).In(uc.location)
	to := time.Unix(req.To, 0).In(uc.location)

	drafts := slices.Collect(ExpandRecurring(ownerID, time.Weekday(req.Weekday), rep, from, to))
	if len(drafts) == 0 {
		uc.logger.Warn("CreateBatchBooking: no %s between %s and %s",
			time.Weekday(req.Weekday), from.Format(domain.DateFormat), to.Format(domain.DateFormat))
		return nil, ErrNoSlotsInRange
	}

	if err := validateDrafts(uc.validate, drafts); err != nil {
		uc.logger.Warn("CreateBatchBooking: %v", err)
		return nil, err
	}

	// 3. Загружаем настройки
	cfg, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("CreateBatchBooking: settings are not bootstrapped")
			return nil, ErrConfigMissing
		}
		uc.logger.Error("CreateBatchBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(uc.location)

	// 4. Ограничения по времени и дневной лимит для каждого слота
	if !req.Viewer.IsAdmin {
		if err := uc.checkUserRules(ctx, req.Viewer, cfg, ownerID, drafts, now); err != nil {
			return nil, err
		}
	}

	// 5. Все слоты должны быть свободны
	unixes := make([]int64, len(drafts))
	for i, d := range drafts {
		unixes[i] = d.Unix
	}

	taken, err := uc.bookingRepo.ExistingAmong(ctx, unixes)
	if err != nil {
		uc.logger.Error("CreateBatchBooking: failed to check slots: %v", err)
		return nil, fmt.Errorf("%w: failed to check slots: %v", ErrInternal, err)
	}
	if len(taken) > 0 {
		uc.logger.Warn("CreateBatchBooking: %d of %d slots are already taken: %v", len(taken), len(drafts), taken)
		return nil, ErrSlotUnavailablePartial
	}

	bookings := make([]*domain.Booking, len(drafts))
	for i, d := range drafts {
		bookings[i] = &domain.Booking{
			Unix:     d.Unix,
			BookedAt: now.Unix(),
			UserID:   &ownerID,
		}
	}

	// 6. Списание очков и вставка в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !req.Viewer.IsAdmin {
			if err := uc.userRepo.ChangePoints(txCtx, ownerID, -len(bookings)); err != nil {
				if errors.Is(err, userRepo.ErrNotEnoughPoints) {
					uc.logger.Warn("CreateBatchBooking: user=%d has fewer than %d points", ownerID, len(bookings))
					return ErrPointsExhausted
				}
				uc.logger.Error("CreateBatchBooking: failed to spend points of user=%d: %v", ownerID, err)
				return fmt.Errorf("%w: failed to spend points: %v", ErrInternal, err)
			}
		}

		if err := uc.bookingRepo.CreateMany(txCtx, bookings); err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBatchBooking: slots taken concurrently")
				return ErrSlotUnavailablePartial
			}
			uc.logger.Error("CreateBatchBooking: failed to create bookings: %v", err)
			return fmt.Errorf("%w: failed to create bookings: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBatchBooking: %d slots booked by user=%d", len(bookings), ownerID)

	events := make([]domain.BookingEvent, len(bookings))
	for i, b := range bookings {
		events[i] = domain.BookingEvent{
			Type:    domain.EventBookingCreated,
			Unix:    b.Unix,
			UserID:  b.UserID,
			ActorID: req.Viewer.UserID,
			At:      now,
		}
	}
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		uc.logger.Warn("CreateBatchBooking: failed to publish events: %v", err)
	}

	return &Response{
		UserID:   ownerID,
		BookedAt: now.Unix(),
		Unixes:   unixes,
	}, nil
}

// checkUserRules применяет к каждому слоту ограничения обычного пользователя.
// Лимит учитывает слоты этой же серии, попавшие на тот же день.
func (uc *UseCase) checkUserRules(
	ctx context.Context,
	viewer domain.Viewer,
	cfg *domain.ScheduleConfig,
	ownerID int64,
	drafts []domain.BookingDraft,
	now time.Time,
) error {
	perDay := make(map[string]int, len(drafts))

	for _, d := range drafts {
		slot := time.Unix(d.Unix, 0).In(uc.location)

		if err := validateSlotTime(slot, now, cfg); err != nil {
			uc.logger.Warn("CreateBatchBooking: slot %s rejected: %v", slot.Format(time.RFC3339), err)
			return err
		}

		day := slot.Format(domain.DateFormat)
		if err := uc.limitGuard.Check(ctx, viewer, cfg, ownerID, slot, perDay[day]); err != nil {
			if errors.Is(err, dailylimit.ErrDailyLimitExceeded) {
				return ErrDailyLimitExceeded
			}
			return fmt.Errorf("%w: daily limit check: %v", ErrInternal, err)
		}
		perDay[day]++
	}

	return nil
}
