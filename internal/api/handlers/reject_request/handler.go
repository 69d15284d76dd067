package reject_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/service/requests"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestID   = "некорректный ID заявки"
	msgRequestNotFound    = "заявка не найдена"
	msgNotOwner           = "заявка адресована другому врачу"
	msgAlreadyResolved    = "заявка уже рассмотрена"
	msgRejected           = "заявка отклонена"
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

// Handle POST /api/v1/appointment/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointment/reject - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RejectRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointment/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит, что заявка адресована этому врачу
	if err := h.service.Reject(r.Context(), req.RequestID, doctorID); err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("POST /appointment/reject - Invalid request ID: request_id=%d", req.RequestID)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("POST /appointment/reject - Request not found: request_id=%d", req.RequestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, requests.ErrNotOwner):
			h.logger.Warn("POST /appointment/reject - Not owner: request_id=%d, doctor_id=%d", req.RequestID, doctorID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, requests.ErrAlreadyResolved):
			h.logger.Warn("POST /appointment/reject - Already resolved: request_id=%d", req.RequestID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		default:
			h.logger.Error("POST /appointment/reject - Failed to reject request: request_id=%d, doctor_id=%d, error=%v",
				req.RequestID, doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointment/reject - Request rejected: request_id=%d, doctor_id=%d", req.RequestID, doctorID)
	handlers.RespondMessage(w, msgRejected)
}
