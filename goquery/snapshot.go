// Package goquery provides a CSS-selector based implementation of
// customs.SnapshotParser for classifieds listing pages. Every
// sub-extraction (aggregate stats, title stats, listing records) is
// independently best-effort: the page may be truncated, malformed, or
// an unexpected variant, and a failed section degrades to an absent
// field instead of failing the whole snapshot.
package goquery

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/customs-bot/customs"
)

// Ensure SnapshotParser implements customs.SnapshotParser at compile time.
var _ customs.SnapshotParser = (*SnapshotParser)(nil)

var (
	adCountRe   = regexp.MustCompile(`(\d[\d\s]*) объявлени[йяе]`)
	priceFromRe = regexp.MustCompile(`от ([\d\s]+)\s?руб`)
	nonDigitRe  = regexp.MustCompile(`[^\d]`)
	yearRe      = regexp.MustCompile(`\d{4}`)
	floatRe     = regexp.MustCompile(`[\d.]+`)
)

// SnapshotParser parses listing-page HTML into market snapshots.
type SnapshotParser struct {
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a SnapshotParser.
type Option func(*SnapshotParser)

// WithLogger sets the observability sink for partial-parse events.
// Parse failures of individual sections are logged, never returned.
func WithLogger(logger *slog.Logger) Option {
	return func(p *SnapshotParser) {
		p.logger = logger
	}
}

// WithNow overrides the snapshot timestamp clock.
func WithNow(now func() time.Time) Option {
	return func(p *SnapshotParser) {
		p.now = now
	}
}

// NewSnapshotParser creates a new SnapshotParser.
func NewSnapshotParser(opts ...Option) *SnapshotParser {
	p := &SnapshotParser{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts a market snapshot from the document. The only error
// case is HTML that cannot be read at all; everything else yields a
// snapshot with whatever sections were parseable.
func (p *SnapshotParser) Parse(html string, sourceURL string) (*customs.MarketSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, customs.Errorf(customs.EINVALID, "failed to parse HTML: %v", err)
	}

	snapshot := &customs.MarketSnapshot{
		SourceURL: CleanURL(sourceURL),
		FetchedAt: p.now(),
	}

	p.parseMetaConfig(doc, snapshot)
	p.parseTitleStats(doc, snapshot)
	p.parseListings(doc, snapshot, sourceURL)

	return snapshot, nil
}

// metaConfig mirrors the page-configuration payload embedded in a
// meta tag: nested min/max(/avg) ranges for price, year and engine.
type metaConfig struct {
	CF struct {
		P map[string]any `json:"p"`
		Y map[string]any `json:"y"`
		V map[string]any `json:"v"`
	} `json:"cf"`
}

// parseMetaConfig extracts aggregate price/year/engine ranges from the
// embedded page-configuration payload. Zero values mean "unknown" in
// the payload and become nil fields.
func (p *SnapshotParser) parseMetaConfig(doc *goquery.Document, snapshot *customs.MarketSnapshot) {
	content, exists := doc.Find(`meta[name="candy.config"]`).First().Attr("content")
	if !exists {
		return
	}

	var cfg metaConfig
	if err := json.Unmarshal([]byte(content), &cfg); err != nil {
		p.logger.Debug("page config payload unreadable", "error", err)
		return
	}

	snapshot.PriceMin = intField(cfg.CF.P, "min")
	snapshot.PriceMax = intField(cfg.CF.P, "max")
	snapshot.PriceAvg = intField(cfg.CF.P, "avg")
	snapshot.YearMin = intField(cfg.CF.Y, "min")
	snapshot.YearMax = intField(cfg.CF.Y, "max")
	snapshot.EngineMin = floatField(cfg.CF.V, "min")
	snapshot.EngineMax = floatField(cfg.CF.V, "max")
}

// parseTitleStats extracts the ad count and starting price from the
// document title. Missing matches leave AdCount at 0.
func (p *SnapshotParser) parseTitleStats(doc *goquery.Document, snapshot *customs.MarketSnapshot) {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return
	}
	snapshot.PageTitle = title

	// The site renders numbers with non-breaking spaces.
	title = strings.ReplaceAll(title, "\u00a0", " ")

	if m := adCountRe.FindStringSubmatch(title); m != nil {
		if v, err := strconv.Atoi(strings.ReplaceAll(m[1], " ", "")); err == nil {
			snapshot.AdCount = v
		}
	}
	if m := priceFromRe.FindStringSubmatch(title); m != nil {
		if v, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(m[1]), " ", "")); err == nil {
			snapshot.PriceFrom = v
		}
	}
}

// parseListings extracts listing records. Two mutually exclusive page
// variants are supported: repeated markup blocks with labeled
// sub-fields, and repeated structured-data script blocks. The variant
// is detected, not assumed.
func (p *SnapshotParser) parseListings(doc *goquery.Document, snapshot *customs.MarketSnapshot, sourceURL string) {
	blocks := doc.Find(`a[data-ftid="bulls-list_bull"]`)
	if blocks.Length() > 0 {
		snapshot.Listings = p.parseListingBlocks(blocks, sourceURL)
		return
	}
	snapshot.Listings = p.parseStructuredData(doc, sourceURL)
}

// parseListingBlocks parses the markup-block variant. One bad item
// never aborts the rest.
func (p *SnapshotParser) parseListingBlocks(blocks *goquery.Selection, sourceURL string) []customs.ListingRecord {
	var listings []customs.ListingRecord

	blocks.EachWithBreak(func(i int, item *goquery.Selection) bool {
		if len(listings) >= customs.MaxListings {
			return false
		}

		title := strings.TrimSpace(item.Find(`[data-ftid="bull_title"]`).First().Text())
		href, _ := item.Attr("href")
		if title == "" && href == "" {
			p.logger.Debug("listing block without title or link skipped", "index", i)
			return true
		}

		record := customs.ListingRecord{
			Title:       title,
			URL:         absoluteURL(sourceURL, href),
			Price:       digitsToInt(item.Find(`[data-ftid="bull_price"]`).First().Text()),
			Description: strings.TrimSpace(item.Find(`[data-ftid="bull_description"]`).First().Text()),
		}

		item.Find(`[data-ftid="bull_description-item"]`).Each(func(_ int, detail *goquery.Selection) {
			parseDetail(strings.TrimSpace(detail.Text()), &record)
		})

		listings = append(listings, record)
		return true
	})

	return listings
}

// parseDetail classifies one labeled attribute of a listing block by
// its unit marker.
func parseDetail(text string, record *customs.ListingRecord) {
	switch {
	case strings.Contains(text, "год"):
		if m := yearRe.FindString(text); m != "" {
			if v, err := strconv.Atoi(m); err == nil {
				record.Year = &v
			}
		}
	case strings.Contains(text, "км"):
		if v := digitsToInt(text); v > 0 {
			record.MileageKm = &v
		}
	case strings.Contains(text, "л.с."):
		if v := digitsToInt(text); v > 0 {
			record.PowerHP = &v
		}
	case strings.Contains(text, "л"):
		if m := floatRe.FindString(text); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				record.EngineLiters = &v
			}
		}
	}
}

// structuredListing mirrors a product object from a structured-data
// script block.
type structuredListing struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Offers struct {
		// Price may be a JSON number or a numeric string depending on
		// the page variant.
		Price any    `json:"price"`
		URL   string `json:"url"`
	} `json:"offers"`
}

// parseStructuredData parses the script-block variant: each block is
// an independent JSON document and parse failures are isolated
// per block.
func (p *SnapshotParser) parseStructuredData(doc *goquery.Document, sourceURL string) []customs.ListingRecord {
	var listings []customs.ListingRecord

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, script *goquery.Selection) bool {
		if len(listings) >= customs.MaxListings {
			return false
		}

		var item structuredListing
		if err := json.Unmarshal([]byte(script.Text()), &item); err != nil {
			p.logger.Debug("structured data block unreadable", "index", i, "error", err)
			return true
		}
		if !isProductType(item.Type) {
			return true
		}
		if item.Name == "" {
			p.logger.Debug("structured data block without name skipped", "index", i)
			return true
		}

		href := item.URL
		if href == "" {
			href = item.Offers.URL
		}

		price := 0
		if f, ok := toFloat(item.Offers.Price); ok && f > 0 {
			price = int(f)
		}

		listings = append(listings, customs.ListingRecord{
			Title: item.Name,
			URL:   absoluteURL(sourceURL, href),
			Price: price,
		})
		return true
	})

	return listings
}

func isProductType(t string) bool {
	switch t {
	case "Product", "Car", "Vehicle", "Offer":
		return true
	}
	return false
}

// CleanURL strips empty query parameters from a URL for stable
// caching and display. Unparseable URLs are returned as-is.
func CleanURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := u.Query()
	for key, values := range query {
		empty := true
		for _, v := range values {
			if v != "" {
				empty = false
				break
			}
		}
		if empty {
			query.Del(key)
		}
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// absoluteURL resolves a possibly relative href against the source URL.
func absoluteURL(sourceURL, href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	base, err := url.Parse(sourceURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// digitsToInt strips everything but digits and converts the rest.
// Returns 0 for text without digits.
func digitsToInt(text string) int {
	digits := nonDigitRe.ReplaceAllString(text, "")
	if digits == "" {
		return 0
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return v
}

// intField reads a numeric payload field tolerantly (numbers or
// numeric strings); zero and unparseable values become nil.
func intField(m map[string]any, key string) *int {
	f, ok := toFloat(m[key])
	if !ok || f == 0 {
		return nil
	}
	v := int(f)
	return &v
}

// floatField is intField for fractional ranges (engine displacement).
func floatField(m map[string]any, key string) *float64 {
	f, ok := toFloat(m[key])
	if !ok || f == 0 {
		return nil
	}
	return &f
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	}
	return 0, false
}
