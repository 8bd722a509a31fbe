// Package pricing computes the instant, non-authoritative price preview shown
// on the quote screen. The backend owns the real price; this mirrors its
// published rate card so visitors see a number before saving.
package pricing

import "math"

// Frequency is how often the lawn is serviced.
type Frequency string

const (
	FrequencyOnce     Frequency = "once"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyWeekly   Frequency = "weekly"
)

// Extra is an optional add-on service.
type Extra string

const (
	ExtraEdging      Extra = "edging"
	ExtraLeafCleanup Extra = "leaf_cleanup"
	ExtraPetWaste    Extra = "pet_waste"
)

const (
	// MinimumBase is the floor applied to the size-derived base rate.
	MinimumBase = 30.0
	// RatePerSqft is the per-square-foot mowing rate.
	RatePerSqft = 0.02
	// ServiceFee is added once to every visit.
	ServiceFee = 3.99
)

var frequencyDiscounts = map[Frequency]float64{
	FrequencyOnce:     0,
	FrequencyBiweekly: 0.05,
	FrequencyWeekly:   0.10,
}

var extraPrices = map[Extra]float64{
	ExtraEdging:      10,
	ExtraLeafCleanup: 20,
	ExtraPetWaste:    8,
}

// Frequencies lists the selectable frequencies in display order.
func Frequencies() []Frequency {
	return []Frequency{FrequencyOnce, FrequencyBiweekly, FrequencyWeekly}
}

// Extras lists the add-ons in display order.
func Extras() []Extra {
	return []Extra{ExtraEdging, ExtraLeafCleanup, ExtraPetWaste}
}

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	_, ok := frequencyDiscounts[f]
	return ok
}

// Discount returns the fractional discount for f; unknown frequencies get none.
func (f Frequency) Discount() float64 {
	return frequencyDiscounts[f]
}

// Valid reports whether e is a known add-on.
func (e Extra) Valid() bool {
	_, ok := extraPrices[e]
	return ok
}

// Price returns the surcharge for e; unknown add-ons cost nothing.
func (e Extra) Price() float64 {
	return extraPrices[e]
}

// Breakdown is the itemized preview.
type Breakdown struct {
	Base       float64
	Discount   float64
	Extras     float64
	ServiceFee float64
	Total      float64
}

// Preview prices a lawn of sqft square feet.
func Preview(sqft int, frequency Frequency, extras []Extra) Breakdown {
	base := math.Max(MinimumBase, float64(sqft)*RatePerSqft)
	extrasSum := 0.0
	for _, extra := range extras {
		extrasSum += extra.Price()
	}
	discount := base * frequency.Discount()
	return Breakdown{
		Base:       base,
		Discount:   discount,
		Extras:     extrasSum,
		ServiceFee: ServiceFee,
		Total:      base - discount + extrasSum + ServiceFee,
	}
}
