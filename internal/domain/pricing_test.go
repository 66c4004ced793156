package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePrice_NoSurchargeInsideFreeRadius(t *testing.T) {
	lines := ServiceLines{
		{Name: "Full Valet", BasePrice: 25, Quantity: 1, DurationMinutes: 120},
	}

	got := ComputePrice(lines, SizeM, 5, DefaultTravelTariff())

	assert.Equal(t, 25.0, got.ServiceSubtotal)
	assert.Equal(t, 1.15, got.SizeMultiplier)
	assert.Equal(t, 0.0, got.TravelSurcharge)
	assert.Equal(t, 28.75, got.Total)
}

func TestComputePrice_FreeRadiusBoundary(t *testing.T) {
	lines := ServiceLines{{Name: "Wash", BasePrice: 20, Quantity: 1}}

	// Ровно на границе бесплатного радиуса надбавки нет
	atBoundary := ComputePrice(lines, SizeS, 17.5, DefaultTravelTariff())
	assert.Equal(t, 0.0, atBoundary.TravelSurcharge)

	// Сразу за границей надбавка появляется и не меньше минимума
	beyond := ComputePrice(lines, SizeS, 17.6, DefaultTravelTariff())
	assert.Greater(t, beyond.TravelSurcharge, 0.0)
	assert.GreaterOrEqual(t, beyond.TravelSurcharge, DefaultMinTravelSurcharge)
}

func TestComputePrice_SurchargeClampedToBand(t *testing.T) {
	lines := ServiceLines{{Name: "Wash", BasePrice: 20, Quantity: 1}}
	tariff := TravelTariff{FreeRadiusMiles: 17.5, PerMileRate: 1.5, MinSurcharge: 5, MaxSurcharge: 60}

	// Маленькое превышение поднимается до минимума
	small := ComputePrice(lines, SizeS, 18, tariff)
	assert.Equal(t, 5.0, small.TravelSurcharge)

	// Большое превышение ограничивается максимумом
	large := ComputePrice(lines, SizeS, 500, tariff)
	assert.Equal(t, 60.0, large.TravelSurcharge)
}

func TestComputePrice_MultiplierMonotonicBySize(t *testing.T) {
	lines := ServiceLines{{Name: "Detail", BasePrice: 100, Quantity: 1}}
	tariff := DefaultTravelTariff()

	prev := 0.0
	for _, size := range []VehicleSize{SizeS, SizeM, SizeL, SizeXL} {
		got := ComputePrice(lines, size, 0, tariff)
		assert.GreaterOrEqual(t, got.SizeMultiplier, prev, "size %s", size)
		prev = got.SizeMultiplier
	}
}

func TestComputePrice_QuantityAndMultipleLines(t *testing.T) {
	lines := ServiceLines{
		{Name: "Exterior Wash", BasePrice: 15, Quantity: 2, DurationMinutes: 30},
		{Name: "Interior Detail", BasePrice: 40, Quantity: 1, DurationMinutes: 90},
	}

	got := ComputePrice(lines, SizeS, 0, DefaultTravelTariff())

	assert.Equal(t, 70.0, got.ServiceSubtotal)
	assert.Equal(t, 70.0, got.Total)
	assert.Equal(t, 150, lines.TotalDurationMinutes())
}

func TestComputePrice_EmptyServicesIsNotAnError(t *testing.T) {
	got := ComputePrice(nil, SizeL, 25, DefaultTravelTariff())

	assert.Equal(t, 0.0, got.ServiceSubtotal)
	assert.Equal(t, got.TravelSurcharge, got.Total)
}

func TestComputePrice_Deterministic(t *testing.T) {
	lines := ServiceLines{
		{Name: "Ceramic Coat", BasePrice: 199.99, Quantity: 1, DurationMinutes: 240},
		{Name: "Wheel Detail", BasePrice: 12.5, Quantity: 4, DurationMinutes: 15},
	}

	first := ComputePrice(lines, SizeXL, 42.3, DefaultTravelTariff())
	second := ComputePrice(lines, SizeXL, 42.3, DefaultTravelTariff())

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.Total, first.ServiceSubtotal)
}

func TestComputePrice_RoundingToMinorUnit(t *testing.T) {
	lines := ServiceLines{{Name: "Wash", BasePrice: 9.99, Quantity: 1}}

	// 9.99 * 1.15 = 11.4885 -> 11.49
	got := ComputePrice(lines, SizeM, 0, DefaultTravelTariff())
	assert.Equal(t, 11.49, got.Total)
}

func TestVehicleSizeValidation(t *testing.T) {
	assert.True(t, SizeS.IsValid())
	assert.True(t, SizeXL.IsValid())
	assert.False(t, VehicleSize("XXL").IsValid())
	assert.Equal(t, 1.0, VehicleSize("unknown").Multiplier())
}
