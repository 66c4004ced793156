package domain

import "math"

// VehicleSize класс размера автомобиля
type VehicleSize string

const (
	SizeS  VehicleSize = "S"
	SizeM  VehicleSize = "M"
	SizeL  VehicleSize = "L"
	SizeXL VehicleSize = "XL"
)

// sizeMultipliers ценовые множители по классу размера
// Монотонно неубывающие от S к XL
var sizeMultipliers = map[VehicleSize]float64{
	SizeS:  1.0,
	SizeM:  1.15,
	SizeL:  1.35,
	SizeXL: 1.6,
}

// IsValid возвращает true для известного класса размера
func (s VehicleSize) IsValid() bool {
	_, ok := sizeMultipliers[s]
	return ok
}

// Multiplier возвращает ценовой множитель класса размера
// Для неизвестного класса возвращает 1.0
func (s VehicleSize) Multiplier() float64 {
	if m, ok := sizeMultipliers[s]; ok {
		return m
	}
	return 1.0
}

// TravelTariff тариф выездной надбавки
// Внутри бесплатного радиуса надбавка не начисляется; сверх него — помильная
// ставка на превышение, ограниченная полосой [MinSurcharge, MaxSurcharge]
type TravelTariff struct {
	FreeRadiusMiles float64
	PerMileRate     float64
	MinSurcharge    float64
	MaxSurcharge    float64
}

// DefaultTravelTariff возвращает тариф по умолчанию
func DefaultTravelTariff() TravelTariff {
	return TravelTariff{
		FreeRadiusMiles: FreeTravelRadiusMiles,
		PerMileRate:     DefaultPerMileRate,
		MinSurcharge:    DefaultMinTravelSurcharge,
		MaxSurcharge:    DefaultMaxTravelSurcharge,
	}
}

// PriceBreakdown детализация расчета цены бронирования
type PriceBreakdown struct {
	ServiceSubtotal float64 // Σ basePrice × quantity
	SizeMultiplier  float64 // применённый множитель класса размера
	SizeAdjusted    float64 // subtotal × multiplier
	TravelSurcharge float64 // выездная надбавка
	Total           float64 // round2(sizeAdjusted + travelSurcharge)
}

// ComputePrice вычисляет цену бронирования
//
// Функция чистая и детерминированная: одинаковые входы дают побайтно
// одинаковый результат, поэтому она вызывается одинаково при расчете
// котировки и при подтверждении бронирования. Округление — до двух знаков,
// половина от нуля (round half away from zero), применяется один раз к итогу.
//
// Пустой список услуг не является ошибкой: total = travelSurcharge
// (пустую корзину блокирует вызывающая сторона)
func ComputePrice(lines ServiceLines, size VehicleSize, distanceMiles float64, tariff TravelTariff) PriceBreakdown {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.LineTotal()
	}

	multiplier := size.Multiplier()
	sizeAdjusted := subtotal * multiplier
	surcharge := travelSurcharge(distanceMiles, tariff)

	return PriceBreakdown{
		ServiceSubtotal: subtotal,
		SizeMultiplier:  multiplier,
		SizeAdjusted:    sizeAdjusted,
		TravelSurcharge: surcharge,
		Total:           Round2(sizeAdjusted + surcharge),
	}
}

// travelSurcharge вычисляет выездную надбавку по тарифу
func travelSurcharge(distanceMiles float64, tariff TravelTariff) float64 {
	if distanceMiles <= tariff.FreeRadiusMiles {
		return 0
	}

	excess := distanceMiles - tariff.FreeRadiusMiles
	surcharge := excess * tariff.PerMileRate

	if surcharge < tariff.MinSurcharge {
		surcharge = tariff.MinSurcharge
	}
	if surcharge > tariff.MaxSurcharge {
		surcharge = tariff.MaxSurcharge
	}

	return Round2(surcharge)
}

// Round2 округляет до двух знаков после запятой (half away from zero)
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
