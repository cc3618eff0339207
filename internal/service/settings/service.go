package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotScheduler/internal/domain"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/settings/models"
)

// Service сервис настроек расписания (доступ проверяется на уровне роутера)
type Service struct {
	settingsRepo SettingsRepository
	validate     *validator.Validate
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, location *time.Location, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		validate:     newValidator(),
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get возвращает текущие настройки
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Get: settings are not bootstrapped")
			return nil, ErrConfigMissing
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// Update полностью заменяет настройки.
// Проверяет, что слоты каждого рабочего дня помещаются до 23:55.
func (s *Service) Update(ctx context.Context, req *models.SettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: slotDuration=%d, interval=%d, dailyLimit=%d, lastBookableDay=%d",
		req.SlotDuration, req.Interval, req.DailyLimit, req.LastBookableDay)

	// 1. Валидация
	if err := validateRequest(s.validate, req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	cfg := req.ToDomainConfig()
	if err := s.settingsRepo.Save(ctx, cfg); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved")
	return models.FromDomainConfig(cfg), nil
}

// Bootstrap создает настройки по умолчанию, если их ещё нет
func (s *Service) Bootstrap(ctx context.Context) error {
	cfg := domain.DefaultScheduleConfig(s.timeProvider.Now().In(s.location))

	created, err := s.settingsRepo.CreateIfMissing(ctx, &cfg)
	if err != nil {
		s.logger.Error("Bootstrap: repository error: %v", err)
		return fmt.Errorf("%w: Bootstrap - repository error: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("Bootstrap: default settings created (lastBookableDay=%s)",
			time.Unix(cfg.LastBookableDay, 0).In(s.location).Format(domain.DateFormat))
	}
	return nil
}
