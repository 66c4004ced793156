package geoservice

import "errors"

var (
	// ErrPostcodeNotFound возвращается, когда почтовый индекс не найден
	ErrPostcodeNotFound = errors.New("postcode not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("geoservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("geoservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что GeoService недоступен и надбавку за выезд считать не из чего
	ErrServiceDegraded = errors.New("geoservice unavailable: graceful degradation applied")
)
