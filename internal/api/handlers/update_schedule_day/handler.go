package update_schedule_day

import (
	"errors"
	"net/http"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	"github.com/m04kA/MCD-BookingService/internal/api/middleware"
	"github.com/m04kA/MCD-BookingService/internal/service/schedule"
	"github.com/m04kA/MCD-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingAdminID      = "отсутствует ID оператора"
	msgInvalidDay          = "некорректная конфигурация рабочего дня"
	msgCapacityBelowBooked = "вместимость меньше уже занятых мест"
)

// UpsertDayRequest HTTP request model
type UpsertDayRequest struct {
	Date      string `json:"date"`      // "2026-03-15"
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
	Capacity  int    `json:"capacity"`
}

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

// Handle PUT /api/v1/schedule/days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("PUT /schedule/days - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req UpsertDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule/days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.UpsertDayRequest{
		AdminID:   adminID,
		Date:      req.Date,
		OpenTime:  req.OpenTime,
		CloseTime: req.CloseTime,
		Capacity:  req.Capacity,
	}

	result, err := h.service.UpsertDay(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /schedule/days - Invalid day configuration: date=%s, error=%v", req.Date, err)
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, schedule.ErrCapacityBelowBooked):
			h.logger.Warn("PUT /schedule/days - Capacity below booked: date=%s, capacity=%d", req.Date, req.Capacity)
			handlers.RespondConflict(w, msgCapacityBelowBooked)

		default:
			h.logger.Error("PUT /schedule/days - Failed to upsert day: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule/days - Day configured: date=%s, admin_id=%d, capacity=%d",
		req.Date, adminID, req.Capacity)
	handlers.RespondJSON(w, http.StatusOK, result)
}
