package create_request

import (
	"context"

	createRequest "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_request"
)

type CreateRequestUseCase interface {
	Execute(ctx context.Context, req *createRequest.Request) (*createRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
