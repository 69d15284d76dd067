package get_doctor_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/doctor/requests
// Query params: status, date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /doctor/requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	statusStr := r.URL.Query().Get("status")
	dateStr := r.URL.Query().Get("date")

	serviceReq, err := ToServiceRequest(doctorID, statusStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /doctor/requests - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetDoctorRequests(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("GET /doctor/requests - Invalid filter: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /doctor/requests - Failed to get requests: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /doctor/requests - Requests retrieved successfully: doctor_id=%d, count=%d",
		doctorID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, result.Requests)
}
