package compute_quote

import (
	"context"

	"github.com/m04kA/MCD-BookingService/internal/integrations/geoservice"
)

// GeoServiceClient интерфейс клиента для GeoService
type GeoServiceClient interface {
	GetDistanceWithGracefulDegradation(ctx context.Context, postcode string) (*geoservice.Distance, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
