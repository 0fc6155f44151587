package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$12.34", FormatCents(1234))
	assert.Equal(t, "$1,234.56", FormatCents(123456))
	assert.Equal(t, "$0.00", FormatCents(0))
	assert.Equal(t, "$0.05", FormatCents(5))
	assert.Equal(t, "$30.00", FormatCents(3000))
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(1999), ToCents(19.99))
	assert.Equal(t, int64(3000), ToCents(30))
	// rounding guards against float drift on values like 0.1+0.2
	assert.Equal(t, int64(30), ToCents(0.1+0.2))
}

func TestFromCents(t *testing.T) {
	assert.Equal(t, 19.99, FromCents(1999))
	assert.Equal(t, 0.0, FromCents(0))
}
