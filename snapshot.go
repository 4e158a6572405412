package customs

import (
	"context"
	"time"
)

// MaxListings caps how many listing records a snapshot carries.
// Listing pages return dozens of ads; the first few sorted by price
// are enough context and keep parsing cost bounded.
const MaxListings = 5

// ListingRecord is one market listing. Records are constructed once
// per scrape, immutable, and discarded with the snapshot.
type ListingRecord struct {
	Price       int    `json:"price"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`

	Year         *int     `json:"year,omitempty"`
	MileageKm    *int     `json:"mileageKm,omitempty"`
	EngineLiters *float64 `json:"engineLiters,omitempty"`
	PowerHP      *int     `json:"powerHp,omitempty"`
}

// MarketSnapshot is a request-scoped aggregation of market listing
// data. Any field may be missing when the source page did not carry
// the corresponding section; a fetched-but-sparse snapshot is distinct
// from "no snapshot available" (nil).
type MarketSnapshot struct {
	SourceURL string `json:"sourceUrl"`
	PageTitle string `json:"pageTitle,omitempty"`

	PriceMin *int `json:"priceMin,omitempty"`
	PriceMax *int `json:"priceMax,omitempty"`
	PriceAvg *int `json:"priceAvg,omitempty"`

	YearMin   *int     `json:"yearMin,omitempty"`
	YearMax   *int     `json:"yearMax,omitempty"`
	EngineMin *float64 `json:"engineMin,omitempty"`
	EngineMax *float64 `json:"engineMax,omitempty"`

	// AdCount is the total number of matching ads reported by the
	// page, not the number of parsed listings.
	AdCount int `json:"adCount"`

	// PriceFrom is the starting price advertised in the page title.
	PriceFrom int `json:"priceFrom,omitempty"`

	Listings []ListingRecord `json:"listings,omitempty"`

	FetchedAt time.Time `json:"fetchedAt"`
}

// SnapshotParser turns a fetched listing-page document into a
// normalized market snapshot.
type SnapshotParser interface {
	// Parse degrades gracefully field-by-field: a malformed or
	// unexpected document yields a partial snapshot, never an error.
	// Errors are reserved for documents that cannot be read at all.
	Parse(html string, sourceURL string) (*MarketSnapshot, error)
}

// Fetcher retrieves HTML documents from URLs.
type Fetcher interface {
	// Fetch returns the response body for the URL. A non-success
	// status is an EUNAVAILABLE error. The context controls timeout
	// and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}

// Aggregator assembles a market snapshot for a set of known vehicle
// attributes by querying an external classifieds source.
type Aggregator interface {
	// Aggregate never fails: a fetch failure or timeout yields nil
	// ("no market data"), a fetched but partially parseable page
	// yields a sparse snapshot.
	Aggregate(ctx context.Context, attrs *VehicleAttributes) *MarketSnapshot
}
