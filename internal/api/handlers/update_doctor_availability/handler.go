package update_doctor_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/doctors"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "можно изменять только собственное расписание"
	msgDoctorNotFound     = "врач не найден"
	msgInvalidData        = "некорректное расписание: нужны уникальные дни недели и startTime < endTime в формате HH:MM"
)

type Handler struct {
	service DoctorService
	logger  Logger
}

func NewHandler(service DoctorService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/doctors/{doctorId}/availability
// Расписание перезаписывается целиком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorIDStr := mux.Vars(r)["doctorId"]
	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("PUT /doctors/{id}/availability - Invalid doctor ID: %q", doctorIDStr)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /doctors/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /doctors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateAvailability(r.Context(), req.ToServiceRequest(doctorID, userID))
	if err != nil {
		switch {
		case errors.Is(err, doctors.ErrAccessDenied):
			h.logger.Warn("PUT /doctors/{id}/availability - Access denied: doctor_id=%d, user_id=%d", doctorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, doctors.ErrDoctorNotFound):
			h.logger.Warn("PUT /doctors/{id}/availability - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, doctors.ErrInvalidInput):
			h.logger.Warn("PUT /doctors/{id}/availability - Invalid availability: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /doctors/{id}/availability - Failed to update availability: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /doctors/{id}/availability - Availability updated: doctor_id=%d, days=%v, window=%s-%s",
		doctorID, result.DaysOfWeek, result.StartTime, result.EndTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
