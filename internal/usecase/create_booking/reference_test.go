package create_booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MCD-BookingService/internal/domain"
)

func TestGenerateReference_Shape(t *testing.T) {
	for i := 0; i < 100; i++ {
		ref, err := generateReference()
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(ref, domain.ReferencePrefix))
		body := strings.TrimPrefix(ref, domain.ReferencePrefix)
		assert.Len(t, body, domain.ReferenceLength)

		// Алфавит без неоднозначных символов
		for _, r := range body {
			assert.Contains(t, domain.ReferenceAlphabet, string(r))
		}
	}
}
