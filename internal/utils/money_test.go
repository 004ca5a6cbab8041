// internal/utils/money_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.57, Round2(10.565))
	assert.Equal(t, 10.56, Round2(10.564))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -3.33, Round2(-3.333))
}

func TestApplyPercentDiscount(t *testing.T) {
	assert.Equal(t, 40.0, ApplyPercentDiscount(50, 20))
	assert.Equal(t, 50.0, ApplyPercentDiscount(50, 0))
	assert.Equal(t, 0.0, ApplyPercentDiscount(50, 100))

	// 0.1+0.2 style drift must not leak into stored unit prices.
	assert.Equal(t, 33.33, ApplyPercentDiscount(99.99, 66.67))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 250.0, LineTotal(50, 5))
	assert.Equal(t, 0.0, LineTotal(19.99, 0))
	assert.Equal(t, 59.97, LineTotal(19.99, 3))
}
