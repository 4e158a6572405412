package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/customs-bot/customs"
	"github.com/customs-bot/customs/market"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Extractor  customs.AttributeExtractor
	Calculator customs.DutyCalculator
	Aggregator *market.Aggregator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Calc   CalcCmd   `cmd:"" help:"Extract vehicle attributes from text and compute the import cost breakdown"`
	Market MarketCmd `cmd:"" help:"Extract vehicle attributes from text and show comparable market listings"`
	Bot    BotCmd    `cmd:"" help:"Run the Telegram bot"`
}

// CalcCmd is the "calc" subcommand.
type CalcCmd struct {
	Text     string `arg:"" help:"Free-form vehicle description, e.g. 'BMW X5 2022, 3.0 л, 249 л.с., 50000$'"`
	Extended bool   `short:"e" help:"Include service costs (agent, transport, brokerage)"`
}

// MarketCmd is the "market" subcommand.
type MarketCmd struct {
	Text    string `arg:"" help:"Free-form vehicle description"`
	BaseURL string `default:"https://auto.drom.ru" help:"Classifieds site root"`
}

// BotCmd is the "bot" subcommand.
type BotCmd struct {
	Token   string `env:"CUSTOMS_BOT_TOKEN" help:"Telegram bot token"`
	BaseURL string `default:"https://auto.drom.ru" help:"Classifieds site root"`
}
