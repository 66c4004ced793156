package compute_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	geoClient "github.com/m04kA/MCD-BookingService/internal/integrations/geoservice"
)

// UseCase use case для предварительного расчета цены
type UseCase struct {
	geoClient GeoServiceClient
	tariff    domain.TravelTariff
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(geoClient GeoServiceClient, tariff domain.TravelTariff, logger Logger) *UseCase {
	return &UseCase{
		geoClient: geoClient,
		tariff:    tariff,
		logger:    logger,
	}
}

// Execute выполняет use case расчета котировки
//
// Расчет полностью повторяет расчет при создании бронирования:
// та же детерминированная функция, тот же тариф. Котировка для тех же
// входов всегда совпадает с итоговой ценой бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ComputeQuote: size=%s, postcode=%s, services=%d",
		req.VehicleSize, req.Postcode, len(req.Services))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ComputeQuote: validation failed: %v", err)
		return nil, err
	}

	distanceMiles := 0.0
	distance, err := uc.geoClient.GetDistanceWithGracefulDegradation(ctx, req.Postcode)
	switch {
	case err == nil:
		distanceMiles = distance.Miles
	case errors.Is(err, geoClient.ErrPostcodeNotFound):
		uc.logger.Warn("ComputeQuote: postcode %s not found", req.Postcode)
		return nil, ErrPostcodeNotFound
	case errors.Is(err, geoClient.ErrServiceDegraded):
		uc.logger.Warn("ComputeQuote: geoservice degraded, quote without travel surcharge: %v", err)
	default:
		uc.logger.Error("ComputeQuote: failed to resolve distance for postcode=%s: %v", req.Postcode, err)
		return nil, fmt.Errorf("%w: failed to resolve distance: %v", ErrInternal, err)
	}

	lines := make(domain.ServiceLines, len(req.Services))
	for i, input := range req.Services {
		lines[i] = domain.ServiceLine{
			Name:            input.Name,
			BasePrice:       input.BasePrice,
			Quantity:        input.Quantity,
			DurationMinutes: input.DurationMinutes,
		}
	}

	breakdown := domain.ComputePrice(lines, domain.VehicleSize(req.VehicleSize), distanceMiles, uc.tariff)

	uc.logger.Info("ComputeQuote: total=%.2f (subtotal=%.2f, multiplier=%.2f, surcharge=%.2f)",
		breakdown.Total, breakdown.ServiceSubtotal, breakdown.SizeMultiplier, breakdown.TravelSurcharge)

	return &Response{
		ServiceSubtotal: breakdown.ServiceSubtotal,
		SizeMultiplier:  breakdown.SizeMultiplier,
		SizeAdjusted:    breakdown.SizeAdjusted,
		TravelSurcharge: breakdown.TravelSurcharge,
		Total:           breakdown.Total,
		DistanceMiles:   distanceMiles,
		DurationMinutes: lines.TotalDurationMinutes(),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !domain.VehicleSize(req.VehicleSize).IsValid() {
		return fmt.Errorf("%w: unknown vehicle size %q", ErrInvalidInput, req.VehicleSize)
	}

	if req.Postcode == "" {
		return fmt.Errorf("%w: postcode is required", ErrInvalidInput)
	}

	if len(req.Services) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.Services) > domain.MaxServiceLines {
		return fmt.Errorf("%w: too many services, max %d", ErrInvalidInput, domain.MaxServiceLines)
	}

	for _, line := range req.Services {
		if line.Name == "" {
			return fmt.Errorf("%w: service name is required", ErrInvalidInput)
		}
		if line.BasePrice < 0 {
			return fmt.Errorf("%w: service price must not be negative", ErrInvalidInput)
		}
		if line.Quantity < 1 || line.Quantity > domain.MaxServiceQuantity {
			return fmt.Errorf("%w: service quantity must be between 1 and %d", ErrInvalidInput, domain.MaxServiceQuantity)
		}
		if line.DurationMinutes <= 0 {
			return fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
		}
	}

	return nil
}
