package set_admin_notes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	"github.com/m04kA/MCD-BookingService/internal/api/middleware"
	"github.com/m04kA/MCD-BookingService/internal/service/bookings"
	"github.com/m04kA/MCD-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingAdminID     = "отсутствует ID оператора"
	msgNotFound           = "бронирование не найдено"
)

// SetAdminNotesRequest HTTP request model
type SetAdminNotesRequest struct {
	Notes *string `json:"notes"`
}

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

// Handle PATCH /api/v1/bookings/{bookingId}/notes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/notes - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/notes - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req SetAdminNotesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/notes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.SetAdminNotesRequest{
		AdminID: adminID,
		Notes:   req.Notes,
	}

	if err := h.service.SetAdminNotes(r.Context(), bookingID, serviceReq); err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("PATCH /bookings/{id}/notes - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("PATCH /bookings/{id}/notes - Failed to update notes: booking_id=%d, error=%v",
			bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/notes - Notes updated: booking_id=%d, admin_id=%d", bookingID, adminID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
