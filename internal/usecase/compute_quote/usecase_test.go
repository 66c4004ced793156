package compute_quote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/integrations/geoservice"
)

type fakeGeoClient struct {
	miles float64
	err   error
}

func (f *fakeGeoClient) GetDistanceWithGracefulDegradation(ctx context.Context, postcode string) (*geoservice.Distance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &geoservice.Distance{Postcode: postcode, Miles: f.miles}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testTariff() domain.TravelTariff {
	return domain.TravelTariff{
		FreeRadiusMiles: 5,
		PerMileRate:     1.5,
		MinSurcharge:    0,
		MaxSurcharge:    25,
	}
}

func testRequest() *Request {
	return &Request{
		VehicleSize: "L",
		Postcode:    "SW1A 1AA",
		Services: []ServiceLineInput{
			{Name: "Exterior wash", BasePrice: 25, Quantity: 1, DurationMinutes: 45},
			{Name: "Interior detail", BasePrice: 40, Quantity: 2, DurationMinutes: 60},
		},
	}
}

func TestExecute_Breakdown(t *testing.T) {
	uc := NewUseCase(&fakeGeoClient{miles: 9}, testTariff(), nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)

	// 25 + 40×2 = 105; множитель L = 1.35; надбавка (9-5)×1.5 = 6
	assert.InDelta(t, 105.0, resp.ServiceSubtotal, 0.001)
	assert.InDelta(t, 1.35, resp.SizeMultiplier, 0.001)
	assert.InDelta(t, 141.75, resp.SizeAdjusted, 0.001)
	assert.InDelta(t, 6.0, resp.TravelSurcharge, 0.001)
	assert.InDelta(t, 147.75, resp.Total, 0.001)
	assert.InDelta(t, 9.0, resp.DistanceMiles, 0.001)
	assert.Equal(t, 165, resp.DurationMinutes)
}

func TestExecute_SurchargeCappedAtMax(t *testing.T) {
	uc := NewUseCase(&fakeGeoClient{miles: 100}, testTariff(), nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.InDelta(t, 25.0, resp.TravelSurcharge, 0.001)
}

func TestExecute_WithinFreeRadius(t *testing.T) {
	uc := NewUseCase(&fakeGeoClient{miles: 4.9}, testTariff(), nopLogger{})

	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.TravelSurcharge)
}

func TestExecute_PostcodeNotFound(t *testing.T) {
	uc := NewUseCase(&fakeGeoClient{err: geoservice.ErrPostcodeNotFound}, testTariff(), nopLogger{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrPostcodeNotFound)
}

func TestExecute_GeoServiceDegraded(t *testing.T) {
	uc := NewUseCase(&fakeGeoClient{err: geoservice.ErrServiceDegraded}, testTariff(), nopLogger{})

	// Котировка считается без выездной надбавки
	resp, err := uc.Execute(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.TravelSurcharge)
	assert.Equal(t, 0.0, resp.DistanceMiles)
}

func TestExecute_UnexpectedGeoError(t *testing.T) {
	uc := NewUseCase(&fakeGeoClient{err: errors.New("tls handshake failed")}, testTariff(), nopLogger{})

	_, err := uc.Execute(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"неизвестный класс размера", func(req *Request) { req.VehicleSize = "van" }},
		{"пустой индекс", func(req *Request) { req.Postcode = "" }},
		{"без услуг", func(req *Request) { req.Services = nil }},
		{"отрицательная цена", func(req *Request) { req.Services[0].BasePrice = -5 }},
		{"нулевая длительность", func(req *Request) { req.Services[0].DurationMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeGeoClient{miles: 1}, testTariff(), nopLogger{})
			req := testRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
