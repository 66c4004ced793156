package compute_quote

// ServiceLineInput выбранная услуга в запросе котировки
type ServiceLineInput struct {
	Name            string  // Название услуги
	BasePrice       float64 // Базовая цена за единицу
	Quantity        int     // Количество
	DurationMinutes int     // Длительность одной единицы
}

// Request модель запроса котировки
type Request struct {
	VehicleSize string             // Класс размера: S, M, L, XL
	Postcode    string             // Почтовый индекс для расчета расстояния
	Services    []ServiceLineInput // Выбранные услуги
}

// Response детализация расчета цены
type Response struct {
	ServiceSubtotal float64 // Σ basePrice × quantity
	SizeMultiplier  float64 // Применённый множитель класса размера
	SizeAdjusted    float64 // Subtotal × multiplier
	TravelSurcharge float64 // Выездная надбавка
	Total           float64 // Итоговая цена
	DistanceMiles   float64 // Расстояние до клиента
	DurationMinutes int     // Суммарная длительность услуг
}
