package accept_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	acceptRequest "github.com/m04kA/SMC-AppointmentService/internal/usecase/accept_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestID   = "некорректный ID заявки"
	msgRequestNotFound    = "заявка не найдена"
	msgNotOwner           = "заявка адресована другому врачу"
	msgAlreadyResolved    = "заявка уже рассмотрена"
	msgSlotTaken          = "на это время уже есть подтверждённая запись"
	msgAccepted           = "заявка принята"
)

type Handler struct {
	useCase AcceptRequestUseCase
	logger  Logger
}

func NewHandler(useCase AcceptRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointment/accept
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointment/accept - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AcceptRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointment/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &acceptRequest.Request{
		RequestID: req.RequestID,
		DoctorID:  doctorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptRequest.ErrInvalidInput):
			h.logger.Warn("POST /appointment/accept - Invalid request ID: request_id=%d", req.RequestID)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		case errors.Is(err, acceptRequest.ErrRequestNotFound):
			h.logger.Warn("POST /appointment/accept - Request not found: request_id=%d", req.RequestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, acceptRequest.ErrNotOwner):
			h.logger.Warn("POST /appointment/accept - Not owner: request_id=%d, doctor_id=%d", req.RequestID, doctorID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, acceptRequest.ErrAlreadyResolved):
			h.logger.Warn("POST /appointment/accept - Already resolved: request_id=%d", req.RequestID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		case errors.Is(err, acceptRequest.ErrSlotTaken):
			h.logger.Warn("POST /appointment/accept - Slot taken: request_id=%d, doctor_id=%d", req.RequestID, doctorID)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /appointment/accept - Failed to accept request: request_id=%d, doctor_id=%d, error=%v",
				req.RequestID, doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointment/accept - Request accepted: request_id=%d, appointment_id=%d, doctor_id=%d",
		result.RequestID, result.AppointmentID, doctorID)
	handlers.RespondMessage(w, msgAccepted)
}
