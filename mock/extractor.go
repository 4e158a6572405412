package mock

import "github.com/customs-bot/customs"

var _ customs.AttributeExtractor = (*AttributeExtractor)(nil)

// AttributeExtractor is a mock implementation of customs.AttributeExtractor.
type AttributeExtractor struct {
	ExtractFn func(text string) *customs.VehicleAttributes
}

func (e *AttributeExtractor) Extract(text string) *customs.VehicleAttributes {
	return e.ExtractFn(text)
}
