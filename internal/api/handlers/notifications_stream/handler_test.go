package notifications_stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/notifier"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func withUser(userID int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), userID, domain.RolePatient)))
	})
}

func TestHandle_DeliversNotifications(t *testing.T) {
	hub := notifier.NewHub(8, nil, logger.NewNop())
	defer hub.CloseAll()

	handler := NewHandler(hub, time.Second, logger.NewNop())
	srv := httptest.NewServer(withUser(21, http.HandlerFunc(handler.Handle)))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.UserClientCount(21) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Notify(context.Background(), 21, domain.Event{
		Type:       domain.EventRequestAccepted,
		RequestID:  5,
		DoctorID:   2,
		PatientID:  21,
		Date:       time.Date(2030, 4, 1, 0, 0, 0, 0, time.UTC),
		Time:       types.TimeString("11:00"),
		Status:     domain.RequestAccepted,
		OccurredAt: time.Date(2030, 3, 30, 9, 0, 0, 0, time.UTC),
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg notifier.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, int64(5), msg.RequestID)
	assert.Equal(t, "accepted", msg.Status)
}

func TestHandle_Unauthenticated(t *testing.T) {
	hub := notifier.NewHub(8, nil, logger.NewNop())
	handler := NewHandler(hub, time.Second, logger.NewNop())

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHandle_PlainHTTPIsRejectedByUpgrader(t *testing.T) {
	hub := notifier.NewHub(8, nil, logger.NewNop())
	handler := NewHandler(hub, time.Second, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), 21, domain.RolePatient))
	rec := httptest.NewRecorder()

	handler.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, hub.ClientCount())
}
