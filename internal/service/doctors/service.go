package doctors

import (
	"context"
	"errors"
	"fmt"

	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/internal/service/doctors/models"
)

// Service сервис для работы с профилем врача
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса врачей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetAvailability получает расписание врача
func (s *Service) GetAvailability(ctx context.Context, doctorID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: doctor=%d", doctorID)

	if err := s.checkDoctor(ctx, doctorID); err != nil {
		return nil, err
	}

	availability, err := s.userRepo.GetAvailability(ctx, doctorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("GetAvailability: doctor id=%d has no availability", doctorID)
			return nil, ErrAvailabilityNotSet
		}
		s.logger.Error("GetAvailability: repository error for doctor id=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailability(availability), nil
}

// UpdateAvailability перезаписывает расписание врача
// Менять расписание может только сам врач; предыдущее значение не сохраняется
func (s *Service) UpdateAvailability(ctx context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("UpdateAvailability: doctor=%d, actor=%d, days=%v, %s-%s",
		req.DoctorID, req.ActorID, req.DaysOfWeek, req.StartTime, req.EndTime)

	if req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.ActorID != req.DoctorID {
		s.logger.Warn("UpdateAvailability: user=%d cannot change availability of doctor=%d", req.ActorID, req.DoctorID)
		return nil, ErrAccessDenied
	}

	availability, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("UpdateAvailability: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := availability.Validate(); err != nil {
		s.logger.Warn("UpdateAvailability: invalid availability: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkDoctor(ctx, req.DoctorID); err != nil {
		return nil, err
	}

	saved, err := s.userRepo.UpsertAvailability(ctx, availability)
	if err != nil {
		s.logger.Error("UpdateAvailability: repository error for doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: UpdateAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateAvailability: availability of doctor id=%d saved", req.DoctorID)
	return models.FromDomainAvailability(saved), nil
}

// checkDoctor проверяет, что пользователь существует и является врачом
func (s *Service) checkDoctor(ctx context.Context, doctorID int64) error {
	user, err := s.userRepo.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("checkDoctor: user id=%d not found", doctorID)
			return ErrDoctorNotFound
		}
		s.logger.Error("checkDoctor: repository error for user id=%d: %v", doctorID, err)
		return fmt.Errorf("%w: checkDoctor - repository error: %v", ErrInternal, err)
	}

	if !user.IsDoctor() {
		s.logger.Warn("checkDoctor: user id=%d is not a doctor", doctorID)
		return ErrDoctorNotFound
	}

	return nil
}
