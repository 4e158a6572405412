package market

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/customs-bot/customs"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultFetchTimeout bounds one aggregation call end to end. A fetch
// that cannot complete in time fails closed to "no market data".
const DefaultFetchTimeout = 10 * time.Second

// DefaultCacheTTL is how long a snapshot answers repeat queries.
const DefaultCacheTTL = 5 * time.Minute

// Ensure Aggregator implements customs.Aggregator at compile time.
var _ customs.Aggregator = (*Aggregator)(nil)

// Aggregator queries one or more regional mirrors of the classifieds
// site and assembles a single market snapshot.
type Aggregator struct {
	// Fetcher retrieves listing pages. Required.
	Fetcher customs.Fetcher

	// Parser turns fetched pages into snapshots. Required.
	Parser customs.SnapshotParser

	// BaseURL is the primary site root, e.g. "https://auto.drom.ru".
	BaseURL string

	// MirrorURLs are additional regional roots queried concurrently
	// with the primary; the richest snapshot wins.
	MirrorURLs []string

	// Limiter applies per-host rate limiting when set.
	Limiter *HostLimiter

	// Cache short-circuits repeat queries when set.
	Cache *SnapshotCache

	// Timeout bounds the whole aggregation; DefaultFetchTimeout when zero.
	Timeout time.Duration

	// Logger receives fetch/parse observability events; discarded
	// when nil.
	Logger *slog.Logger
}

// Aggregate builds a tolerance-windowed query from the attributes,
// fetches the regional mirrors, and returns the richest snapshot.
// It never fails: a missing brand/model, fetch failure, or timeout
// yields nil ("no market data").
func (a *Aggregator) Aggregate(ctx context.Context, attrs *customs.VehicleAttributes) *customs.MarketSnapshot {
	logger := a.logger().With("request_id", uuid.NewString())

	primaryURL, err := BuildQueryURL(a.BaseURL, attrs)
	if err != nil {
		logger.Debug("market query not possible", "error", err)
		return nil
	}

	if a.Cache != nil {
		if snapshot, ok := a.Cache.Get(primaryURL); ok {
			logger.Debug("snapshot served from cache", "url", primaryURL)
			return snapshot
		}
	}

	timeout := a.Timeout
	if timeout == 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	queryURLs := []string{primaryURL}
	for _, mirror := range a.MirrorURLs {
		mirrorURL, err := BuildQueryURL(mirror, attrs)
		if err != nil {
			continue
		}
		queryURLs = append(queryURLs, mirrorURL)
	}

	snapshots := make([]*customs.MarketSnapshot, len(queryURLs))
	g, ctx := errgroup.WithContext(ctx)
	for i, queryURL := range queryURLs {
		i, queryURL := i, queryURL
		g.Go(func() error {
			// Fetch failures degrade this mirror to "no data" and
			// must not cancel the sibling fetches.
			snapshot, err := a.fetchOne(ctx, queryURL)
			if err != nil {
				logger.Info("mirror fetch failed", "url", queryURL, "error", err)
				return nil
			}
			snapshots[i] = snapshot
			return nil
		})
	}
	_ = g.Wait()

	best := pickRichest(snapshots)
	if best == nil {
		logger.Info("no market data available", "url", primaryURL)
		return nil
	}

	logger.Info("market snapshot assembled",
		"url", best.SourceURL,
		"ad_count", best.AdCount,
		"listings", len(best.Listings),
	)

	if a.Cache != nil {
		a.Cache.Put(primaryURL, best)
	}
	return best
}

// fetchOne retrieves and parses a single mirror.
func (a *Aggregator) fetchOne(ctx context.Context, queryURL string) (*customs.MarketSnapshot, error) {
	if a.Limiter != nil {
		if err := a.Limiter.Wait(ctx, hostOf(queryURL)); err != nil {
			return nil, err
		}
	}

	html, err := a.Fetcher.Fetch(ctx, queryURL)
	if err != nil {
		return nil, err
	}
	return a.Parser.Parse(html, queryURL)
}

// pickRichest prefers the snapshot with the highest reported ad count,
// breaking ties by parsed listing count.
func pickRichest(snapshots []*customs.MarketSnapshot) *customs.MarketSnapshot {
	var best *customs.MarketSnapshot
	for _, s := range snapshots {
		if s == nil {
			continue
		}
		if best == nil ||
			s.AdCount > best.AdCount ||
			(s.AdCount == best.AdCount && len(s.Listings) > len(best.Listings)) {
			best = s
		}
	}
	return best
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
