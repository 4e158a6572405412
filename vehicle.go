package customs

import "math"

// VehicleAttributes is a sparse set of typed vehicle attributes
// extracted from free-form text. Every field is independently optional:
// extraction is best-effort per field and a nil field means the pattern
// did not match, which is informational, not an error.
type VehicleAttributes struct {
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *int    `json:"year,omitempty"`

	// EngineLiters is the engine displacement in liters.
	EngineLiters *float64 `json:"engineLiters,omitempty"`

	// PowerHP is the engine power as stated in the source text. Values
	// given in kilowatts are stored unconverted; the source vocabulary
	// treats "квт"/"kw" as equivalent to horsepower markers.
	PowerHP *int `json:"powerHp,omitempty"`

	PriceUSD  *int `json:"priceUsd,omitempty"`
	MileageKm *int `json:"mileageKm,omitempty"`
}

// Validate returns an error if any present field violates its
// domain-plausible range. Absent fields are never an error here;
// required-field checks belong to the consumer (e.g. the duty
// calculator requires price, engine, power and year).
func (a *VehicleAttributes) Validate(currentYear int) error {
	if a.Year != nil && (*a.Year <= 1900 || *a.Year > currentYear+1) {
		return Errorf(EINVALID, "year %d outside plausible range (1900, %d]", *a.Year, currentYear+1)
	}
	if a.EngineLiters != nil {
		if math.IsNaN(*a.EngineLiters) || math.IsInf(*a.EngineLiters, 0) {
			return Errorf(EINVALID, "engine displacement must be finite")
		}
		if *a.EngineLiters < 0 {
			return Errorf(EINVALID, "engine displacement must be non-negative")
		}
	}
	if a.PowerHP != nil && *a.PowerHP < 0 {
		return Errorf(EINVALID, "power must be non-negative")
	}
	if a.PriceUSD != nil && *a.PriceUSD < 0 {
		return Errorf(EINVALID, "price must be non-negative")
	}
	if a.MileageKm != nil && *a.MileageKm < 0 {
		return Errorf(EINVALID, "mileage must be non-negative")
	}
	return nil
}

// Empty reports whether no field was extracted at all.
func (a *VehicleAttributes) Empty() bool {
	return a.Brand == nil && a.Model == nil && a.Year == nil &&
		a.EngineLiters == nil && a.PowerHP == nil &&
		a.PriceUSD == nil && a.MileageKm == nil
}

// AttributeExtractor parses a raw text blob into a sparse attribute set.
type AttributeExtractor interface {
	// Extract never fails: unrecognized text yields an empty set.
	Extract(text string) *VehicleAttributes
}
