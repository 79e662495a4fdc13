package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$0.00", FormatUSD(0))
	assert.Equal(t, "$0.05", FormatUSD(5))
	assert.Equal(t, "$0.99", FormatUSD(99))
	assert.Equal(t, "$1.00", FormatUSD(100))
	assert.Equal(t, "$64.95", FormatUSD(6495))
	assert.Equal(t, "$1,234.56", FormatUSD(123456))
	assert.Equal(t, "$1,000,000.00", FormatUSD(100000000))
	assert.Equal(t, "-$189.00", FormatUSD(-18900))
}
