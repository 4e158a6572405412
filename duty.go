package customs

import "github.com/shopspring/decimal"

// DutyBreakdown is the cost breakdown of importing a vehicle. All
// amounts are rubles. Total is always the exact sum of the six cost
// components (PriceRub is informational and not part of the sum).
type DutyBreakdown struct {
	PriceRub        decimal.Decimal `json:"priceRub"`
	CustomsDuty     decimal.Decimal `json:"customsDuty"`
	Excise          decimal.Decimal `json:"excise"`
	VAT             decimal.Decimal `json:"vat"`
	RecyclingFee    decimal.Decimal `json:"recyclingFee"`
	AdditionalCosts decimal.Decimal `json:"additionalCosts"`
	ServiceCosts    decimal.Decimal `json:"serviceCosts"`
	Total           decimal.Decimal `json:"total"`
}

// ExciseBracket maps an inclusive upper power bound to a per-unit
// excise rate in rubles per horsepower. Brackets are evaluated in
// ascending order and the first satisfying bracket applies.
type ExciseBracket struct {
	MaxPowerHP int
	RatePerHP  decimal.Decimal
}

// ServiceFees are the optional per-import service fees, each in USD.
// They are only charged in extended calculation mode.
type ServiceFees struct {
	AgentUSD       decimal.Decimal
	TransitDocsUSD decimal.Decimal
	TransportUSD   decimal.Decimal
	BrokerageUSD   decimal.Decimal
	CommissionUSD  decimal.Decimal
}

// Sum returns the total service fee in USD.
func (f ServiceFees) Sum() decimal.Decimal {
	return f.AgentUSD.Add(f.TransitDocsUSD).Add(f.TransportUSD).Add(f.BrokerageUSD).Add(f.CommissionUSD)
}

// Tariff is a fixed-point-in-time tax model. Exchange rates and the
// reference year are static configuration, never derived at runtime.
type Tariff struct {
	// USDRate and EuroRate are fixed exchange rates to rubles.
	USDRate  decimal.Decimal
	EuroRate decimal.Decimal

	// ReferenceYear anchors vehicle age computation.
	ReferenceYear int

	// Duty rates: fraction of the ruble price, and the per-liter floor
	// in euros, split by the three-year age threshold.
	DutyRateNew      decimal.Decimal
	DutyRateOld      decimal.Decimal
	DutyFloorEurNew  decimal.Decimal
	DutyFloorEurOld  decimal.Decimal
	NewVehicleAgeMax int

	// ExciseBrackets must be sorted by MaxPowerHP ascending. A power
	// above every bracket falls through to ExciseRateTop.
	ExciseBrackets []ExciseBracket
	ExciseRateTop  decimal.Decimal

	VATRate decimal.Decimal

	// RecyclingFee and AdditionalCosts are fixed ruble constants;
	// AdditionalCosts bundles certification and mandatory equipment.
	RecyclingFee    decimal.Decimal
	AdditionalCosts decimal.Decimal

	// ServiceFees apply only in extended mode.
	ServiceFees ServiceFees
}

// DefaultTariff returns the 2024 reference tariff.
func DefaultTariff() Tariff {
	return Tariff{
		USDRate:          decimal.NewFromInt(90),
		EuroRate:         decimal.NewFromInt(95),
		ReferenceYear:    2024,
		DutyRateNew:      decimal.NewFromFloat(0.15),
		DutyRateOld:      decimal.NewFromFloat(0.20),
		DutyFloorEurNew:  decimal.NewFromFloat(0.5),
		DutyFloorEurOld:  decimal.NewFromFloat(0.7),
		NewVehicleAgeMax: 3,
		ExciseBrackets: []ExciseBracket{
			{MaxPowerHP: 90, RatePerHP: decimal.Zero},
			{MaxPowerHP: 150, RatePerHP: decimal.NewFromInt(51)},
			{MaxPowerHP: 200, RatePerHP: decimal.NewFromInt(505)},
			{MaxPowerHP: 300, RatePerHP: decimal.NewFromInt(843)},
		},
		ExciseRateTop: decimal.NewFromInt(1420),
		VATRate:       decimal.NewFromFloat(0.20),
		RecyclingFee:  decimal.NewFromInt(34_000),
		// ERA-GLONASS, certification, SBKTS paperwork, equipment.
		AdditionalCosts: decimal.NewFromInt(70_000 + 50_000 + 40_000 + 50_000),
		ServiceFees: ServiceFees{
			AgentUSD:       decimal.NewFromInt(1000),
			TransitDocsUSD: decimal.NewFromInt(300),
			TransportUSD:   decimal.NewFromInt(2500),
			BrokerageUSD:   decimal.NewFromInt(700),
			CommissionUSD:  decimal.NewFromInt(500),
		},
	}
}

// DutyCalculator computes a cost breakdown from typed attributes.
// Implementations are pure: no I/O, deterministic for a given tariff.
type DutyCalculator interface {
	// Calculate returns EINVALID when a required attribute (price,
	// engine, power, year) is absent or violates its domain bound.
	Calculate(attrs *VehicleAttributes) (*DutyBreakdown, error)
}
