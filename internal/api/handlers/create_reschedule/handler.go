package create_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	"github.com/m04kA/MCD-BookingService/internal/api/middleware"
	createReschedule "github.com/m04kA/MCD-BookingService/internal/usecase/create_reschedule"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateFormat  = "некорректный формат даты или времени"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotReschedulable   = "бронирование нельзя перенести в текущем статусе"
	msgPendingExists      = "по бронированию уже есть нерешённый запрос на перенос"
	msgInvalidDate        = "некорректная запрошенная дата"
	msgInvalidInput       = "некорректные данные запроса на перенос"
)

type Handler struct {
	useCase CreateRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase CreateRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-requests - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/reschedule-requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, customerID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule-requests - Failed to parse request: booking_id=%d, error=%v",
			bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReschedule.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, createReschedule.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Access denied: booking_id=%d, user_id=%d",
				bookingID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createReschedule.ErrBookingNotReschedulable):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Not reschedulable: booking_id=%d", bookingID)
			handlers.RespondUnprocessable(w, msgNotReschedulable)

		case errors.Is(err, createReschedule.ErrPendingExists):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Pending request exists: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgPendingExists)

		case errors.Is(err, createReschedule.ErrInvalidDate):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Invalid date: booking_id=%d, date=%s",
				bookingID, req.RequestedDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReschedule.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/reschedule-requests - Invalid input: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{id}/reschedule-requests - Failed to create request: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule-requests - Request created: request_id=%d, booking_id=%d, user_id=%d",
		result.ID, bookingID, customerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
