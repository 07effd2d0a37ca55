package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePricing(t *testing.T) {
	tests := []struct {
		name      string
		duration  float64
		rule      PricingRule
		wantBase  float64
		wantTax   float64
		wantTotal float64
	}{
		{"one hour", 1, PricingRule{HourlyRate: 1000}, 1000, 180, 1180},
		{"fractional duration", 2.5, PricingRule{HourlyRate: 1000}, 2500, 450, 2950},
		{"half hour", 0.5, PricingRule{HourlyRate: 800}, 400, 72, 472},
		{"free turf", 2, PricingRule{HourlyRate: 0}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePricing(tt.duration, tt.rule)
			assert.InDelta(t, tt.wantBase, got.BaseAmount, 1e-9)
			assert.InDelta(t, tt.wantTax, got.Taxes, 1e-9)
			assert.InDelta(t, tt.wantTotal, got.TotalAmount, 1e-9)
		})
	}
}

func TestComputePricingIgnoresPeakRate(t *testing.T) {
	// Booking-time pricing charges the base hourly rate even when a peak rate
	// is configured; the peak rate only affects slot display.
	got := ComputePricing(1, PricingRule{HourlyRate: 1000, PeakHourRate: 1800})
	assert.InDelta(t, 1000.0, got.BaseAmount, 1e-9)
}

func TestEffectivePeakRate(t *testing.T) {
	assert.Equal(t, 1800.0, PricingRule{HourlyRate: 1000, PeakHourRate: 1800}.EffectivePeakRate())
	assert.Equal(t, 1500.0, PricingRule{HourlyRate: 1000}.EffectivePeakRate())
}
