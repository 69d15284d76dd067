package accept_request

import (
	"context"

	acceptRequest "github.com/m04kA/SMC-AppointmentService/internal/usecase/accept_request"
)

type AcceptRequestUseCase interface {
	Execute(ctx context.Context, req *acceptRequest.Request) (*acceptRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
