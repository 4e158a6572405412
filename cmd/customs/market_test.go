package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/customs-bot/customs"
	main "github.com/customs-bot/customs/cmd/customs"
	"github.com/customs-bot/customs/market"
	"github.com/customs-bot/customs/mock"
)

func TestMarketCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints the market snapshot", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			},
		}
		parser := &mock.SnapshotParser{
			ParseFn: func(_, sourceURL string) (*customs.MarketSnapshot, error) {
				priceMin, priceMax := 4_000_000, 6_000_000
				return &customs.MarketSnapshot{
					SourceURL: sourceURL,
					AdCount:   123,
					PriceMin:  &priceMin,
					PriceMax:  &priceMax,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Extractor: &mock.AttributeExtractor{
				ExtractFn: func(string) *customs.VehicleAttributes { return fullAttrs() },
			},
			Aggregator: &market.Aggregator{
				Fetcher: fetcher,
				Parser:  parser,
				BaseURL: "https://auto.drom.ru",
			},
		}

		cmd := &main.MarketCmd{Text: "BMW X5 2022"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "BMW X5")
		assert.Contains(t, output, "Объявлений: 123")
		assert.Contains(t, output, "4 000 000")
	})

	t.Run("reports no data on fetch failure", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", customs.Errorf(customs.EUNAVAILABLE, "HTTP 503 for %s", url)
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Extractor: &mock.AttributeExtractor{
				ExtractFn: func(string) *customs.VehicleAttributes { return fullAttrs() },
			},
			Aggregator: &market.Aggregator{
				Fetcher: fetcher,
				Parser:  &mock.SnapshotParser{},
				BaseURL: "https://auto.drom.ru",
			},
		}

		cmd := &main.MarketCmd{Text: "BMW X5 2022"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No market data available.")
	})

	t.Run("fails without brand and model", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Extractor: &mock.AttributeExtractor{
				ExtractFn: func(string) *customs.VehicleAttributes {
					year := 2022
					return &customs.VehicleAttributes{Year: &year}
				},
			},
		}

		cmd := &main.MarketCmd{Text: "2022"}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "brand and model")
	})
}
