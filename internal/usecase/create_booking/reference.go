package create_booking

import (
	"crypto/rand"
	"fmt"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

// generateReference генерирует человекочитаемый код бронирования,
// например "MCD-7K3Q9Z". Алфавит без неоднозначных символов (0/O, 1/I),
// чтобы код удобно диктовать по телефону
func generateReference() (string, error) {
	buf := make([]byte, domain.ReferenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reference: %w", err)
	}

	alphabet := domain.ReferenceAlphabet
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}

	return domain.ReferencePrefix + string(buf), nil
}
