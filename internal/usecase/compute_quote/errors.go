package compute_quote

import "errors"

var (
	// ErrPostcodeNotFound возвращается, когда почтовый индекс не найден
	ErrPostcodeNotFound = errors.New("compute_quote: postcode not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("compute_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("compute_quote: internal error")
)
