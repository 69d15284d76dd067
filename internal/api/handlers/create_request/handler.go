package create_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createRequest "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные заявки: нужен ID врача и непустая причина до 500 символов"
	msgPatientNotFound    = "пациент не найден"
	msgDoctorNotFound     = "врач не найден"
	msgNotPatient         = "записываться на приём могут только пациенты"
	msgDateInPast         = "нельзя записаться на прошедшее время"
	msgDoctorUnavailable  = "врач не принимает в выбранную дату"
	msgOutsideWindow      = "выбранное время вне рабочих часов врача"
	msgOffGrid            = "время приёма должно совпадать с началом 30-минутного слота"
	msgSlotTaken          = "выбранный слот уже занят"
	msgDuplicateRequest   = "у вас уже есть заявка на этот слот"
)

type Handler struct {
	useCase CreateRequestUseCase
	logger  Logger
}

func NewHandler(useCase CreateRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointment/request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointment/request - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointment/request - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(patientID)
	if err != nil {
		h.logger.Warn("POST /appointment/request - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRequest.ErrInvalidInput):
			h.logger.Warn("POST /appointment/request - Invalid input: patient_id=%d, error=%v", patientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createRequest.ErrPatientNotFound):
			h.logger.Warn("POST /appointment/request - Patient not found: patient_id=%d", patientID)
			handlers.RespondNotFound(w, msgPatientNotFound)

		case errors.Is(err, createRequest.ErrDoctorNotFound):
			h.logger.Warn("POST /appointment/request - Doctor not found: doctor_id=%d", req.DoctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createRequest.ErrNotPatient):
			h.logger.Warn("POST /appointment/request - Not a patient: user_id=%d", patientID)
			handlers.RespondForbidden(w, msgNotPatient)

		case errors.Is(err, createRequest.ErrDateInPast):
			h.logger.Warn("POST /appointment/request - Date in past: patient_id=%d, date=%s, time=%s",
				patientID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createRequest.ErrDoctorUnavailable):
			h.logger.Warn("POST /appointment/request - Doctor unavailable: doctor_id=%d, date=%s", req.DoctorID, req.Date)
			handlers.RespondUnprocessable(w, msgDoctorUnavailable)

		case errors.Is(err, createRequest.ErrOutsideWindow):
			h.logger.Warn("POST /appointment/request - Outside working hours: doctor_id=%d, date=%s, time=%s",
				req.DoctorID, req.Date, req.Time)
			handlers.RespondUnprocessable(w, msgOutsideWindow)

		case errors.Is(err, createRequest.ErrOffGrid):
			h.logger.Warn("POST /appointment/request - Off grid: doctor_id=%d, time=%s", req.DoctorID, req.Time)
			handlers.RespondUnprocessable(w, msgOffGrid)

		case errors.Is(err, createRequest.ErrSlotTaken):
			h.logger.Warn("POST /appointment/request - Slot taken: doctor_id=%d, date=%s, time=%s",
				req.DoctorID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createRequest.ErrDuplicateRequest):
			h.logger.Warn("POST /appointment/request - Duplicate request: patient_id=%d, doctor_id=%d, date=%s, time=%s",
				patientID, req.DoctorID, req.Date, req.Time)
			handlers.RespondConflict(w, msgDuplicateRequest)

		default:
			h.logger.Error("POST /appointment/request - Failed to create request: patient_id=%d, doctor_id=%d, error=%v",
				patientID, req.DoctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointment/request - Request created successfully: request_id=%d, patient_id=%d, doctor_id=%d",
		result.RequestID, patientID, result.DoctorID)
	handlers.RespondJSON(w, http.StatusCreated, CreateRequestResponse{RequestID: result.RequestID})
}
