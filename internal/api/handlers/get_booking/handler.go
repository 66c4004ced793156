package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	"github.com/m04kA/MCD-BookingService/internal/api/middleware"
	"github.com/m04kA/MCD-BookingService/internal/service/bookings"
)

const (
	msgNotFound      = "бронирование не найдено"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/bookings/{bookingId}
//
// В качестве bookingId принимается как числовой ID, так и человекочитаемый
// код бронирования (например, MCD-4F7K2Q).
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	userID, isAdmin := middleware.GetAdminID(r.Context())
	if !isAdmin {
		var ok bool
		userID, ok = middleware.GetUserID(r.Context())
		if !ok {
			h.logger.Warn("GET /bookings/{id} - Missing user ID")
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
	}

	var (
		booking interface{}
		err     error
	)
	if bookingID, parseErr := strconv.ParseInt(bookingIDStr, 10, 64); parseErr == nil {
		booking, err = h.service.GetByID(r.Context(), bookingID, userID, isAdmin)
	} else {
		booking, err = h.service.GetByReference(r.Context(), bookingIDStr, userID, isAdmin)
	}

	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%s", bookingIDStr)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%s, user_id=%d", bookingIDStr, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%s, error=%v", bookingIDStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%s, user_id=%d", bookingIDStr, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
