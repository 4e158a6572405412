// Package decimal provides a shopspring/decimal-based implementation
// of customs.DutyCalculator. All monetary arithmetic is exact, so the
// breakdown total is the precise sum of its components.
package decimal

import (
	"time"

	"github.com/customs-bot/customs"
	"github.com/shopspring/decimal"
)

// Ensure Calculator implements customs.DutyCalculator at compile time.
var _ customs.DutyCalculator = (*Calculator)(nil)

// Calculator computes duty breakdowns against a fixed tariff.
// It is pure and safe for concurrent use.
type Calculator struct {
	tariff   customs.Tariff
	extended bool
	now      func() time.Time
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithExtendedMode enables service costs (agent, transit documents,
// transport, brokerage, platform commission) in the breakdown.
func WithExtendedMode() Option {
	return func(c *Calculator) {
		c.extended = true
	}
}

// WithNow overrides the clock used for the plausible-year upper bound.
func WithNow(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// NewCalculator creates a Calculator for the given tariff.
func NewCalculator(tariff customs.Tariff, opts ...Option) *Calculator {
	c := &Calculator{
		tariff: tariff,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate computes the cost breakdown for the given attributes.
// Price, engine displacement, power and year are required; a missing
// or out-of-range value is refused with EINVALID and the caller is
// expected to re-prompt.
func (c *Calculator) Calculate(attrs *customs.VehicleAttributes) (*customs.DutyBreakdown, error) {
	if attrs == nil {
		return nil, customs.Errorf(customs.EINVALID, "vehicle attributes required")
	}
	if attrs.PriceUSD == nil {
		return nil, customs.Errorf(customs.EINVALID, "price required")
	}
	if attrs.EngineLiters == nil {
		return nil, customs.Errorf(customs.EINVALID, "engine displacement required")
	}
	if attrs.PowerHP == nil {
		return nil, customs.Errorf(customs.EINVALID, "power required")
	}
	if attrs.Year == nil {
		return nil, customs.Errorf(customs.EINVALID, "year required")
	}
	if err := attrs.Validate(c.now().Year()); err != nil {
		return nil, err
	}

	priceRub := decimal.NewFromInt(int64(*attrs.PriceUSD)).Mul(c.tariff.USDRate)
	engine := decimal.NewFromFloat(*attrs.EngineLiters)
	power := *attrs.PowerHP

	duty := c.customsDuty(priceRub, engine, *attrs.Year)
	excise := c.excise(power)
	vat := priceRub.Add(duty).Add(excise).Mul(c.tariff.VATRate)

	service := decimal.Zero
	if c.extended {
		service = c.tariff.ServiceFees.Sum().Mul(c.tariff.USDRate)
	}

	total := duty.Add(excise).Add(vat).
		Add(c.tariff.RecyclingFee).
		Add(c.tariff.AdditionalCosts).
		Add(service)

	return &customs.DutyBreakdown{
		PriceRub:        priceRub,
		CustomsDuty:     duty,
		Excise:          excise,
		VAT:             vat,
		RecyclingFee:    c.tariff.RecyclingFee,
		AdditionalCosts: c.tariff.AdditionalCosts,
		ServiceCosts:    service,
		Total:           total,
	}, nil
}

// customsDuty is the greater of the ad-valorem rate and the per-liter
// floor, with both rates stepping up at the three-year age threshold.
func (c *Calculator) customsDuty(priceRub, engine decimal.Decimal, year int) decimal.Decimal {
	age := c.tariff.ReferenceYear - year

	rate, floorEur := c.tariff.DutyRateOld, c.tariff.DutyFloorEurOld
	if age < c.tariff.NewVehicleAgeMax {
		rate, floorEur = c.tariff.DutyRateNew, c.tariff.DutyFloorEurNew
	}

	advalorem := priceRub.Mul(rate)
	floor := engine.Mul(floorEur).Mul(c.tariff.EuroRate)
	if advalorem.GreaterThanOrEqual(floor) {
		return advalorem
	}
	return floor
}

// excise applies the first bracket whose inclusive upper bound admits
// the power; powers above every bracket use the top rate.
func (c *Calculator) excise(powerHP int) decimal.Decimal {
	power := decimal.NewFromInt(int64(powerHP))
	for _, b := range c.tariff.ExciseBrackets {
		if powerHP <= b.MaxPowerHP {
			return b.RatePerHP.Mul(power)
		}
	}
	return c.tariff.ExciseRateTop.Mul(power)
}
