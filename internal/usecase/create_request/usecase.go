package create_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// UseCase use case для создания заявки на приём
// Проверка слота и вставка заявки не атомарны: два пациента могут одновременно
// создать заявки на один слот, окончательно конфликт разрешается при подтверждении
type UseCase struct {
	userRepo        UserRepository
	requestRepo     RequestRepository
	appointmentRepo AppointmentRepository
	notifier        Notifier
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	requestRepo RequestRepository,
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	recorder MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:        userRepo,
		requestRepo:     requestRepo,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		metrics:         recorder,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRequest: patient=%d, doctor=%d, date=%s, time=%s",
		req.PatientID, req.DoctorID, req.Date.Format(domain.DateFormat), req.Time)

	resp, err := uc.execute(ctx, req)

	switch {
	case err == nil:
		uc.metrics.ObserveBookingRequest(metrics.OutcomeSuccess)
	case errors.Is(err, ErrInternal):
		uc.metrics.ObserveBookingRequest(metrics.OutcomeError)
	default:
		uc.metrics.ObserveBookingRequest(metrics.OutcomeRejected)
	}

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRequest: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOf(req.Date)
	now := domain.WallClock(uc.timeProvider.Now())

	// 2. Проверяем пациента
	patient, err := uc.userRepo.GetByID(ctx, req.PatientID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateRequest: patient id=%d not found", req.PatientID)
			return nil, ErrPatientNotFound
		}
		uc.logger.Error("CreateRequest: failed to get patient id=%d: %v", req.PatientID, err)
		return nil, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
	}
	if !patient.IsPatient() {
		uc.logger.Warn("CreateRequest: user id=%d is not a patient", req.PatientID)
		return nil, ErrNotPatient
	}

	// 3. Проверяем врача
	doctor, err := uc.userRepo.GetByID(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateRequest: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateRequest: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}
	if !doctor.IsDoctor() {
		uc.logger.Warn("CreateRequest: user id=%d is not a doctor", req.DoctorID)
		return nil, ErrDoctorNotFound
	}

	// 4. Дата не должна быть в прошлом
	if date.Before(domain.DateOf(now)) {
		uc.logger.Warn("CreateRequest: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	// 5. Окно приёма на дату
	availability, err := uc.userRepo.GetAvailability(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, userRepo.ErrAvailabilityNotFound) {
			uc.logger.Warn("CreateRequest: doctor id=%d has no availability", req.DoctorID)
			return nil, fmt.Errorf("%w: availability is not configured", ErrDoctorUnavailable)
		}
		uc.logger.Error("CreateRequest: failed to get availability for doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	window, err := availability.ResolveWindow(date)
	if err != nil {
		uc.logger.Warn("CreateRequest: doctor id=%d unavailable on %s: %v", req.DoctorID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrDoctorUnavailable, err)
	}

	// 6. Слот должен помещаться в окно и лежать на сетке
	slot, err := window.SlotAt(req.Time, domain.SlotDuration)
	if err != nil {
		uc.logger.Warn("CreateRequest: slot %s rejected: %v", req.Time, err)
		return nil, mapSlotError(err)
	}

	// 7. Сегодняшний слот не должен уже начаться
	if slot.Start.Before(now) {
		uc.logger.Warn("CreateRequest: slot %s %s has already started", date.Format(domain.DateFormat), req.Time)
		return nil, ErrDateInPast
	}

	// 8. Слот не должен быть занят подтверждённой записью
	taken, err := uc.appointmentRepo.ExistsAt(ctx, req.DoctorID, date, slot.StartTime())
	if err != nil {
		uc.logger.Error("CreateRequest: failed to check slot: %v", err)
		return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
	}
	if taken {
		uc.logger.Warn("CreateRequest: slot %s %s of doctor id=%d is taken",
			date.Format(domain.DateFormat), req.Time, req.DoctorID)
		return nil, ErrSlotTaken
	}

	// 9. Повторная заявка того же пациента на тот же слот
	duplicate, err := uc.requestRepo.HasPending(ctx, req.PatientID, req.DoctorID, slot)
	if err != nil {
		uc.logger.Error("CreateRequest: failed to check pending requests: %v", err)
		return nil, fmt.Errorf("%w: failed to check pending requests: %v", ErrInternal, err)
	}
	if duplicate {
		uc.logger.Warn("CreateRequest: patient id=%d already has a pending request for this slot", req.PatientID)
		return nil, ErrDuplicateRequest
	}

	// 10. Сохраняем заявку
	created, err := uc.requestRepo.Create(ctx, &domain.AppointmentRequest{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      slot.StartTime(),
		Reason:    req.Reason,
		Status:    domain.RequestPending,
	})
	if err != nil {
		uc.logger.Error("CreateRequest: failed to create request: %v", err)
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateRequest: successfully created request id=%d", created.ID)

	uc.notifier.Notify(ctx, created.DoctorID,
		domain.NewRequestEvent(domain.EventRequestCreated, created, uc.timeProvider.Now()))

	return &Response{
		RequestID: created.ID,
		DoctorID:  created.DoctorID,
		Date:      created.Date,
		Time:      created.Time,
		Status:    string(created.Status),
		CreatedAt: created.CreatedAt,
	}, nil
}
