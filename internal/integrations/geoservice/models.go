package geoservice

// Distance модель расстояния от базы до адреса клиента
type Distance struct {
	Postcode string  `json:"postcode"`
	Miles    float64 `json:"miles"`
}

// ErrorResponse модель ошибки от GeoService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
