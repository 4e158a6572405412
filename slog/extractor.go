// Package slog provides logging decorators for the core service
// interfaces. Each decorator wraps an implementation and records what
// happened without changing behavior.
package slog

import (
	"log/slog"
	"time"

	"github.com/customs-bot/customs"
)

// Ensure LoggingExtractor implements customs.AttributeExtractor.
var _ customs.AttributeExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an AttributeExtractor with per-field hit/miss logging.
type LoggingExtractor struct {
	next   customs.AttributeExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next customs.AttributeExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs which attributes
// were recognized.
func (e *LoggingExtractor) Extract(text string) *customs.VehicleAttributes {
	begin := time.Now()
	attrs := e.next.Extract(text)
	e.logger.Info("attribute extraction",
		"text_len", len(text),
		"brand", attrs.Brand != nil,
		"model", attrs.Model != nil,
		"year", attrs.Year != nil,
		"engine", attrs.EngineLiters != nil,
		"power", attrs.PowerHP != nil,
		"price", attrs.PriceUSD != nil,
		"mileage", attrs.MileageKm != nil,
		"duration", time.Since(begin),
	)
	return attrs
}
