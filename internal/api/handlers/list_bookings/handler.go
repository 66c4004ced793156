package list_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/service/bookings"
	"github.com/m04kA/MCD-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter     = "некорректные параметры фильтрации"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
//
// Query параметры (все опциональны):
//   - customerId    — фильтр по клиенту
//   - startDate     — начало периода (YYYY-MM-DD)
//   - endDate       — конец периода (YYYY-MM-DD)
//   - status        — фильтр по статусу
//   - includeInactive     — включать завершённые и отменённые
//   - pendingReschedule   — только с ожидающим запросом на перенос
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListBookingsRequest{}

	if raw := query.Get("customerId"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid customer ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCustomerID)
			return
		}
		req.CustomerID = &customerID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	if raw := query.Get("pendingReschedule"); raw != "" {
		pending := raw == "true"
		req.PendingReschedule = &pending
	}

	result, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}

		h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Bookings listed: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
