package notifications_stream

import (
	"net/http"
	"time"
)

type NotificationHub interface {
	Serve(w http.ResponseWriter, r *http.Request, userID int64, writeTimeout time.Duration) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
