package get_schedule_day

import (
	"context"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetDay(ctx context.Context, date time.Time) (*models.DayScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
