package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDoctorID = "некорректный ID врача"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast      = "нельзя получить слоты на прошедшую дату"
	msgDoctorNotFound  = "врач не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/doctors/{doctorId}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorIDStr := mux.Vars(r)["doctorId"]
	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("GET /doctors/{id}/slots - Invalid doctor ID: %q", doctorIDStr)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /doctors/{id}/slots - Missing date: doctor_id=%d", doctorID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(doctorID, dateStr)
	if err != nil {
		h.logger.Warn("GET /doctors/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{id}/slots - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /doctors/{id}/slots - Date in past: doctor_id=%d, date=%s", doctorID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /doctors/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /doctors/{id}/slots - Failed to get slots: doctor_id=%d, date=%s, error=%v",
				doctorID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctors/{id}/slots - Slots retrieved successfully: doctor_id=%d, date=%s, slots_count=%d",
		doctorID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
