package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/MCD-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), durationMinutes (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	durationStr := query.Get("durationMinutes")
	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil || durationMinutes <= 0 {
		h.logger.Warn("GET /availability - Invalid duration: %s", durationStr)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /availability - Invalid input: date=%s, duration=%d", dateStr, durationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}

		h.logger.Error("GET /availability - Failed to get slots: date=%s, error=%v", dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability - Slots retrieved: date=%s, duration=%d, count=%d",
		dateStr, durationMinutes, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
