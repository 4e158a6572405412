// Package customs estimates the import-duty cost of a vehicle described
// in free-form text and contextualizes the estimate with comparable
// listings from a classifieds site. It extracts typed attributes from
// the text, computes a duty/tax breakdown against a fixed-point-in-time
// tariff, and aggregates a market snapshot from listing pages.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g. goquery/,
// decimal/, http/).
package customs
