package notifications_stream

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

type Handler struct {
	hub          NotificationHub
	writeTimeout time.Duration
	logger       Logger
}

func NewHandler(hub NotificationHub, writeTimeout time.Duration, logger Logger) *Handler {
	return &Handler{
		hub:          hub,
		writeTimeout: writeTimeout,
		logger:       logger,
	}
}

// Handle GET /ws
// Поток уведомлений о заявках текущего пользователя
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /ws - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// При неудачном апгрейде websocket.Upgrader уже ответил клиенту
	if err := h.hub.Serve(w, r, userID, h.writeTimeout); err != nil {
		h.logger.Warn("GET /ws - Upgrade failed: user_id=%d, error=%v", userID, err)
		return
	}

	h.logger.Info("GET /ws - Client connected: user_id=%d", userID)
}
