package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIntraState(t *testing.T) {
	b := CostCentreBalance{BasicAmount: 1000, CGST: 90, SGST: 90, IGST: 180}
	b.Normalize(true)

	assert.True(t, b.IsIntraState)
	assert.Zero(t, b.IGST)
	assert.Equal(t, 1180.0, b.Total)
}

func TestNormalizeInterState(t *testing.T) {
	b := CostCentreBalance{BasicAmount: 1000, CGST: 90, SGST: 90, IGST: 180}
	b.Normalize(false)

	assert.False(t, b.IsIntraState)
	assert.Zero(t, b.CGST)
	assert.Zero(t, b.SGST)
	assert.Equal(t, 1180.0, b.Total)
}

func TestNormalizeRecomputesTotal(t *testing.T) {
	b := CostCentreBalance{BasicAmount: 500, CGST: 45, SGST: 45, Total: 9999}
	b.Normalize(true)
	assert.Equal(t, 590.0, b.Total)
}

func TestIsIntraState(t *testing.T) {
	assert.True(t, IsIntraState("Maharashtra", "Maharashtra"))
	assert.True(t, IsIntraState("maharashtra", "MAHARASHTRA"))
	assert.True(t, IsIntraState(" Maharashtra ", "Maharashtra"))
	assert.False(t, IsIntraState("Maharashtra", "Karnataka"))
}
