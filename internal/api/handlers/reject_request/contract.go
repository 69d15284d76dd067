package reject_request

import "context"

type RequestService interface {
	Reject(ctx context.Context, requestID int64, doctorID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
