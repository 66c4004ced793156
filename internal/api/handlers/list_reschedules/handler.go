package list_reschedules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	"github.com/m04kA/MCD-BookingService/internal/api/middleware"
	listReschedules "github.com/m04kA/MCD-BookingService/internal/usecase/list_reschedules"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	useCase ListReschedulesUseCase
	logger  Logger
}

func NewHandler(useCase ListReschedulesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/reschedule-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/reschedule-requests - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, isAdmin := middleware.GetAdminID(r.Context())
	if !isAdmin {
		var ok bool
		userID, ok = middleware.GetUserID(r.Context())
		if !ok {
			h.logger.Warn("GET /bookings/{id}/reschedule-requests - Missing user ID")
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
	}

	useCaseReq := &listReschedules.Request{
		BookingID: bookingID,
		UserID:    userID,
		IsAdmin:   isAdmin,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, listReschedules.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/reschedule-requests - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, listReschedules.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/reschedule-requests - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id}/reschedule-requests - Failed to list requests: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/reschedule-requests - Requests listed: booking_id=%d, count=%d",
		bookingID, len(result.Requests))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
