package mock

import (
	"context"

	"github.com/customs-bot/customs"
)

var _ customs.Aggregator = (*Aggregator)(nil)

// Aggregator is a mock implementation of customs.Aggregator.
type Aggregator struct {
	AggregateFn func(ctx context.Context, attrs *customs.VehicleAttributes) *customs.MarketSnapshot
}

func (a *Aggregator) Aggregate(ctx context.Context, attrs *customs.VehicleAttributes) *customs.MarketSnapshot {
	return a.AggregateFn(ctx, attrs)
}
