package respond_reschedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	"github.com/m04kA/MCD-BookingService/internal/api/middleware"
	respondReschedule "github.com/m04kA/MCD-BookingService/internal/usecase/respond_reschedule"
)

const (
	msgInvalidRequestID   = "некорректный ID запроса на перенос"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingAdminID     = "отсутствует ID оператора"
	msgNotFound           = "запрос на перенос не найден"
	msgAlreadyResolved    = "по запросу уже принято решение"
	msgBookingNotActive   = "бронирование уже не активно, перенос невозможен"
	msgSlotNotAvailable   = "запрошенный временной слот недоступен"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgInvalidDecision    = "некорректное решение, ожидается approved или rejected"
)

type Handler struct {
	useCase RespondRescheduleUseCase
	logger  Logger
}

func NewHandler(useCase RespondRescheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reschedule-requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestIDStr := vars["requestId"]

	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reschedule-requests/{id} - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reschedule-requests/{id} - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req RespondRescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reschedule-requests/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(requestID, adminID))
	if err != nil {
		switch {
		case errors.Is(err, respondReschedule.ErrRequestNotFound):
			h.logger.Warn("PATCH /reschedule-requests/{id} - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, respondReschedule.ErrAlreadyResolved):
			h.logger.Warn("PATCH /reschedule-requests/{id} - Already resolved: request_id=%d", requestID)
			handlers.RespondConflict(w, msgAlreadyResolved)

		case errors.Is(err, respondReschedule.ErrBookingNotActive):
			h.logger.Warn("PATCH /reschedule-requests/{id} - Booking not active: request_id=%d", requestID)
			handlers.RespondUnprocessable(w, msgBookingNotActive)

		case errors.Is(err, respondReschedule.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /reschedule-requests/{id} - Slot not available: request_id=%d", requestID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, respondReschedule.ErrInvalidTimeSlot):
			h.logger.Warn("PATCH /reschedule-requests/{id} - Invalid time slot: request_id=%d", requestID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, respondReschedule.ErrInvalidDecision):
			h.logger.Warn("PATCH /reschedule-requests/{id} - Invalid decision: request_id=%d, decision=%s",
				requestID, req.Decision)
			handlers.RespondBadRequest(w, msgInvalidDecision)

		default:
			h.logger.Error("PATCH /reschedule-requests/{id} - Failed to resolve request: request_id=%d, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reschedule-requests/{id} - Request resolved: request_id=%d, admin_id=%d, status=%s",
		requestID, adminID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
