package get_schedule_day

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/service/schedule"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDayNotFound = "расписание на дату не настроено"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedule/days/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dateStr := vars["date"]

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /schedule/days/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetDay(r.Context(), date)
	if err != nil {
		if errors.Is(err, schedule.ErrDayNotFound) {
			h.logger.Warn("GET /schedule/days/{date} - Day not configured: date=%s", dateStr)
			handlers.RespondNotFound(w, msgDayNotFound)
			return
		}

		h.logger.Error("GET /schedule/days/{date} - Failed to get day: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /schedule/days/{date} - Day retrieved: date=%s, units=%d", dateStr, len(result.Units))
	handlers.RespondJSON(w, http.StatusOK, result)
}
