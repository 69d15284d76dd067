package accept_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	requestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/request"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
)

// UseCase use case для подтверждения заявки врачом
// Создание записи и смена статуса заявки выполняются в одной транзакции:
// заявка не может оказаться accepted без записи и наоборот
type UseCase struct {
	requestRepo     RequestRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	requestRepo RequestRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	notifier Notifier,
	recorder MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		requestRepo:     requestRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         recorder,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подтверждения заявки
// Остальные ожидающие заявки на тот же слот не отклоняются автоматически:
// врач разбирает их вручную, попытка принять такую заявку вернёт ErrSlotTaken
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AcceptRequest: request=%d, doctor=%d", req.RequestID, req.DoctorID)

	resp, err := uc.execute(ctx, req)

	switch {
	case err == nil:
		uc.metrics.ObserveAccept(metrics.OutcomeSuccess)
	case errors.Is(err, ErrInternal):
		uc.metrics.ObserveAccept(metrics.OutcomeError)
	default:
		uc.metrics.ObserveAccept(metrics.OutcomeRejected)
	}

	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AcceptRequest: validation failed: %v", err)
		return nil, err
	}

	var (
		accepted    *domain.AppointmentRequest
		appointment *domain.Appointment
	)

	// 2. Все проверки и обе записи в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Заявка с блокировкой строки (FOR UPDATE)
		request, err := uc.requestRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				uc.logger.Warn("AcceptRequest: request id=%d not found", req.RequestID)
				return ErrRequestNotFound
			}
			uc.logger.Error("AcceptRequest: failed to get request id=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
		}

		// 2.2. Владелец и статус
		if err := checkCanAccept(request, req.DoctorID); err != nil {
			uc.logger.Warn("AcceptRequest: request id=%d cannot be accepted by doctor id=%d: %v",
				req.RequestID, req.DoctorID, err)
			return err
		}

		// 2.3. Слот не должен быть занят
		taken, err := uc.appointmentRepo.ExistsAt(txCtx, request.DoctorID, request.Date, request.Time)
		if err != nil {
			uc.logger.Error("AcceptRequest: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if taken {
			uc.logger.Warn("AcceptRequest: slot %s %s of doctor id=%d is taken",
				request.Date.Format(domain.DateFormat), request.Time, request.DoctorID)
			return ErrSlotTaken
		}

		// 2.4. Создаём запись; уникальный индекс отсекает конкурентное подтверждение
		created, err := uc.appointmentRepo.Create(txCtx, domain.NewAppointmentFromRequest(request))
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("AcceptRequest: slot of request id=%d was taken concurrently", req.RequestID)
				return ErrSlotTaken
			}
			uc.logger.Error("AcceptRequest: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 2.5. Переводим заявку в accepted
		err = uc.requestRepo.UpdateStatus(txCtx, request.ID, domain.RequestPending, domain.RequestAccepted)
		if err != nil {
			if errors.Is(err, requestRepo.ErrStatusChanged) {
				uc.logger.Warn("AcceptRequest: request id=%d was resolved concurrently", req.RequestID)
				return ErrAlreadyResolved
			}
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			uc.logger.Error("AcceptRequest: failed to update request id=%d: %v", req.RequestID, err)
			return fmt.Errorf("%w: failed to update request: %v", ErrInternal, err)
		}

		request.Status = domain.RequestAccepted
		accepted = request
		appointment = created
		return nil
	})

	if err != nil {
		if isUseCaseError(err) {
			return nil, err
		}
		uc.logger.Error("AcceptRequest: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("AcceptRequest: request id=%d accepted, appointment id=%d", accepted.ID, appointment.ID)

	// 3. Уведомление только после фиксации транзакции
	uc.notifier.Notify(ctx, accepted.PatientID,
		domain.NewRequestEvent(domain.EventRequestAccepted, accepted, uc.timeProvider.Now()))

	return &Response{
		RequestID:     accepted.ID,
		AppointmentID: appointment.ID,
		Status:        string(accepted.Status),
	}, nil
}

// isUseCaseError проверяет, что ошибка уже приведена к ошибкам usecase
func isUseCaseError(err error) bool {
	for _, target := range []error{
		ErrRequestNotFound,
		ErrNotOwner,
		ErrAlreadyResolved,
		ErrSlotTaken,
		ErrInvalidInput,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
