package request_payment

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
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgMissingAdminID      = "отсутствует ID оператора"
	msgNotFound            = "бронирование не найдено"
	msgInvalidPaymentState = "выставить счёт в текущем статусе нельзя"
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

// Handle POST /api/v1/bookings/{bookingId}/request-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/request-payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/request-payment - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	result, err := h.service.RequestPayment(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/request-payment - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidPaymentState):
			h.logger.Warn("POST /bookings/{id}/request-payment - Invalid payment state: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondUnprocessable(w, msgInvalidPaymentState)

		default:
			h.logger.Error("POST /bookings/{id}/request-payment - Failed to request payment: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/request-payment - Payment requested: booking_id=%d, admin_id=%d",
		bookingID, adminID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
