package get_doctor_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/doctors"
)

const (
	msgInvalidDoctorID    = "некорректный ID врача"
	msgDoctorNotFound     = "врач не найден"
	msgAvailabilityNotSet = "врач ещё не настроил расписание"
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

// Handle GET /api/v1/doctors/{doctorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorIDStr := mux.Vars(r)["doctorId"]
	doctorID, err := strconv.ParseInt(doctorIDStr, 10, 64)
	if err != nil || doctorID <= 0 {
		h.logger.Warn("GET /doctors/{id}/availability - Invalid doctor ID: %q", doctorIDStr)
		handlers.RespondBadRequest(w, msgInvalidDoctorID)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), doctorID)
	if err != nil {
		switch {
		case errors.Is(err, doctors.ErrDoctorNotFound):
			h.logger.Warn("GET /doctors/{id}/availability - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, doctors.ErrAvailabilityNotSet):
			h.logger.Warn("GET /doctors/{id}/availability - Availability not set: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgAvailabilityNotSet)

		case errors.Is(err, doctors.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDoctorID)

		default:
			h.logger.Error("GET /doctors/{id}/availability - Failed to get availability: doctor_id=%d, error=%v",
				doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
