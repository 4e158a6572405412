package mock

import "github.com/customs-bot/customs"

var _ customs.DutyCalculator = (*DutyCalculator)(nil)

// DutyCalculator is a mock implementation of customs.DutyCalculator.
type DutyCalculator struct {
	CalculateFn func(attrs *customs.VehicleAttributes) (*customs.DutyBreakdown, error)
}

func (c *DutyCalculator) Calculate(attrs *customs.VehicleAttributes) (*customs.DutyBreakdown, error) {
	return c.CalculateFn(attrs)
}
