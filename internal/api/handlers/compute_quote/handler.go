package compute_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/MCD-BookingService/internal/api/handlers"
	computeQuote "github.com/m04kA/MCD-BookingService/internal/usecase/compute_quote"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPostcodeNotFound   = "почтовый индекс не найден"
	msgInvalidInput       = "некорректные данные запроса котировки"
)

type Handler struct {
	useCase ComputeQuoteUseCase
	logger  Logger
}

func NewHandler(useCase ComputeQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, computeQuote.ErrPostcodeNotFound):
			h.logger.Warn("POST /quotes - Postcode not found: postcode=%s", req.Postcode)
			handlers.RespondNotFound(w, msgPostcodeNotFound)

		case errors.Is(err, computeQuote.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /quotes - Failed to compute quote: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote computed: postcode=%s, total=%.2f", req.Postcode, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
