package main

import (
	"fmt"

	"github.com/customs-bot/customs"
)

// Run executes the market command.
func (c *MarketCmd) Run(deps *Dependencies) error {
	attrs := deps.Extractor.Extract(c.Text)
	if attrs == nil || attrs.Empty() {
		return fmt.Errorf("no vehicle attributes recognized in %q", c.Text)
	}
	if attrs.Brand == nil || attrs.Model == nil {
		return fmt.Errorf("brand and model are required for a market query")
	}

	fmt.Fprintln(deps.Stdout, plainText(customs.FormatAttributes(attrs)))

	snapshot := deps.Aggregator.Aggregate(deps.Ctx, attrs)
	if snapshot == nil {
		fmt.Fprintln(deps.Stdout, "No market data available.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, plainText(customs.FormatSnapshot(snapshot)))

	return nil
}
