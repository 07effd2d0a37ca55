package availability

// TaxRate is the GST fraction applied to every booking's base amount.
const TaxRate = 0.18

// Quote is the price breakdown for a prospective booking.
type Quote struct {
	BaseAmount  float64 `json:"baseAmount"`
	Taxes       float64 `json:"taxes"`
	TotalAmount float64 `json:"totalAmount"`
}

// ComputePricing quotes a booking of the given fractional duration. The base
// amount uses the standard hourly rate: peak-window pricing affects what the
// slot display advertises but is not charged at creation time. No rounding
// happens mid-calculation; presentation rounding is the caller's concern.
func ComputePricing(durationHours float64, pricing PricingRule) Quote {
	base := pricing.HourlyRate * durationHours
	taxes := base * TaxRate
	return Quote{
		BaseAmount:  base,
		Taxes:       taxes,
		TotalAmount: base + taxes,
	}
}
