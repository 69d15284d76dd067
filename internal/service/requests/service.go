package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	requestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/request"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

// Service сервис для работы с заявками на приём
type Service struct {
	requestRepo  RequestRepository
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	requestRepo RequestRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		requestRepo:  requestRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Reject отклоняет ожидающую заявку
// Отклонить может только врач, которому адресована заявка
func (s *Service) Reject(ctx context.Context, requestID int64, doctorID int64) error {
	s.logger.Info("Reject: request=%d, doctor=%d", requestID, doctorID)

	if requestID <= 0 || doctorID <= 0 {
		return fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("Reject: request id=%d not found", requestID)
			return ErrRequestNotFound
		}
		s.logger.Error("Reject: repository error for request id=%d: %v", requestID, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	if !request.BelongsToDoctor(doctorID) {
		s.logger.Warn("Reject: doctor=%d is not the owner of request id=%d", doctorID, requestID)
		return ErrNotOwner
	}

	if !request.IsPending() {
		s.logger.Warn("Reject: request id=%d is already %s", requestID, request.Status)
		return ErrAlreadyResolved
	}

	// Условное обновление: конкурентное подтверждение выиграет и вернёт ErrStatusChanged
	err = s.requestRepo.UpdateStatus(ctx, requestID, domain.RequestPending, domain.RequestRejected)
	if err != nil {
		if errors.Is(err, requestRepo.ErrStatusChanged) {
			s.logger.Warn("Reject: request id=%d was resolved concurrently", requestID)
			return ErrAlreadyResolved
		}
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("Reject: failed to update request id=%d: %v", requestID, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	request.Status = domain.RequestRejected
	s.logger.Info("Reject: request id=%d rejected", requestID)

	s.notifier.Notify(ctx, request.PatientID,
		domain.NewRequestEvent(domain.EventRequestRejected, request, s.timeProvider.Now()))

	return nil
}

// GetPatientRequests получает историю заявок пациента
// Фильтры: time (upcoming/past относительно текущего момента), status, doctorId
func (s *Service) GetPatientRequests(ctx context.Context, req *models.GetPatientRequestsRequest) (*models.RequestListResponse, error) {
	s.logger.Info("GetPatientRequests: patient=%d, time=%q, status=%q",
		req.PatientID, deref(req.Time), deref(req.Status))

	if req.PatientID <= 0 {
		return nil, fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}
	if req.DoctorID != nil && *req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorId must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter(domain.WallClock(s.timeProvider.Now()))
	if err != nil {
		s.logger.Warn("GetPatientRequests: invalid filter for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetPatientRequests: repository error for patient=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: GetPatientRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientRequests: fetched %d requests for patient=%d", len(requests), req.PatientID)
	return models.FromDomainRequestList(requests), nil
}

// GetDoctorRequests получает входящие заявки врача
func (s *Service) GetDoctorRequests(ctx context.Context, req *models.GetDoctorRequestsRequest) (*models.RequestListResponse, error) {
	s.logger.Info("GetDoctorRequests: doctor=%d, status=%q", req.DoctorID, deref(req.Status))

	if req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetDoctorRequests: invalid filter for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	requests, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetDoctorRequests: repository error for doctor=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: GetDoctorRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetDoctorRequests: fetched %d requests for doctor=%d", len(requests), req.DoctorID)
	return models.FromDomainRequestList(requests), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
