package get_patient_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса: time = upcoming|past, status = pending|accepted|rejected"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments
// Query params: time, status, doctorId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(patientID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetPatientRequests(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /appointments - Invalid filter: patient_id=%d, error=%v", patientID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /appointments - Failed to get requests: patient_id=%d, error=%v", patientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments - Requests retrieved successfully: patient_id=%d, count=%d",
		patientID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result.Requests)
}
