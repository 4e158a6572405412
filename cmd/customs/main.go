package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/customs-bot/customs"
	"github.com/customs-bot/customs/decimal"
	"github.com/customs-bot/customs/goquery"
	customshttp "github.com/customs-bot/customs/http"
	"github.com/customs-bot/customs/market"
	"github.com/customs-bot/customs/regexp"
	customslog "github.com/customs-bot/customs/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// mirrorHosts are the regional roots queried alongside the primary.
var mirrorHosts = []string{
	"https://spb.drom.ru",
	"https://moskva.drom.ru",
}

// Main represents the program.
type Main struct {
	// Tariff used by the duty calculator. Set before calling Run().
	Tariff customs.Tariff

	// Fetcher used by the market aggregator; closed on exit.
	Fetcher customs.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Tariff: customs.DefaultTariff(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		return m.Fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Optional .env for the bot token; absence is not an error.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("customs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'customs --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	deps.Extractor = customslog.NewLoggingExtractor(regexp.NewExtractor(), logger)

	var calcOpts []decimal.Option
	if cmd == "calc" && cli.Calc.Extended {
		calcOpts = append(calcOpts, decimal.WithExtendedMode())
	}
	deps.Calculator = decimal.NewCalculator(m.Tariff, calcOpts...)

	if cmd == "market" || cmd == "bot" {
		baseURL := cli.Market.BaseURL
		if cmd == "bot" {
			baseURL = cli.Bot.BaseURL
		}

		m.Fetcher = customshttp.NewFetcher()
		defer m.Close()

		deps.Aggregator = &market.Aggregator{
			Fetcher:    customslog.NewLoggingFetcher(m.Fetcher, logger),
			Parser:     goquery.NewSnapshotParser(goquery.WithLogger(logger)),
			BaseURL:    baseURL,
			MirrorURLs: mirrorHosts,
			Limiter:    market.NewHostLimiter(1.0),
			Cache:      market.NewSnapshotCache(market.DefaultCacheTTL),
			Logger:     logger,
		}
	}

	return kongCtx.Run(deps)
}
