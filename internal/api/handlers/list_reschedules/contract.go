package list_reschedules

import (
	"context"

	listReschedules "github.com/m04kA/MCD-BookingService/internal/usecase/list_reschedules"
)

type ListReschedulesUseCase interface {
	Execute(ctx context.Context, req *listReschedules.Request) (*listReschedules.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
