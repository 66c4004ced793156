package respond_reschedule

import (
	"context"

	respondReschedule "github.com/m04kA/MCD-BookingService/internal/usecase/respond_reschedule"
)

type RespondRescheduleUseCase interface {
	Execute(ctx context.Context, req *respondReschedule.Request) (*respondReschedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
