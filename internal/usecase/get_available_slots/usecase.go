package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
)

// UseCase use case для получения свободных слотов врача на дату
type UseCase struct {
	userRepo        UserRepository
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userRepo UserRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Окно приёма -> нарезка на слоты -> исключение занятых -> для сегодняшней даты исключение прошедших
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: doctor=%d, date=%s", req.DoctorID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOf(req.Date)
	now := domain.WallClock(uc.timeProvider.Now())

	// 2. Прошедшие даты не показываем
	if isDateInPast(date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	response := &Response{
		DoctorID: req.DoctorID,
		Date:     date,
		Slots:    make([]Slot, 0),
	}

	// 3. Читаем расписание и занятые слоты из одного снимка
	err := uc.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		doctor, err := uc.userRepo.GetByID(txCtx, req.DoctorID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("GetAvailableSlots: doctor id=%d not found", req.DoctorID)
				return ErrDoctorNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
			return fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
		}
		if !doctor.IsDoctor() {
			uc.logger.Warn("GetAvailableSlots: user id=%d is not a doctor", req.DoctorID)
			return ErrDoctorNotFound
		}

		availability, err := uc.userRepo.GetAvailability(txCtx, req.DoctorID)
		if err != nil {
			if errors.Is(err, userRepo.ErrAvailabilityNotFound) {
				uc.logger.Info("GetAvailableSlots: doctor id=%d has no availability configured", req.DoctorID)
				return nil
			}
			uc.logger.Error("GetAvailableSlots: failed to get availability for doctor id=%d: %v", req.DoctorID, err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		window, err := availability.ResolveWindow(date)
		if err != nil {
			if errors.Is(err, domain.ErrNotWorkingDay) {
				uc.logger.Info("GetAvailableSlots: doctor id=%d does not work on %s", req.DoctorID, date.Weekday())
				return nil
			}
			// Как и при создании заявки: некорректное расписание означает, что врач недоступен
			uc.logger.Warn("GetAvailableSlots: broken availability for doctor id=%d, no slots: %v", req.DoctorID, err)
			return nil
		}

		booked, err := uc.appointmentRepo.GetBookedTimes(txCtx, req.DoctorID, date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		slots := domain.FilterBooked(domain.GenerateSlots(window, domain.SlotDuration), booked)
		if date.Equal(domain.DateOf(now)) {
			slots = domain.FilterStartingBefore(slots, now)
		}

		for _, slot := range slots {
			response.Slots = append(response.Slots, Slot{
				Start: slot.StartTime(),
				End:   slot.EndTime(),
			})
		}

		uc.logger.Info("GetAvailableSlots: window %s-%s, %d booked, %d free",
			availability.StartTime, availability.EndTime, len(booked), len(response.Slots))

		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}
