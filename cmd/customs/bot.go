package main

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/customs-bot/customs/telegram"
)

// Run executes the bot command.
func (c *BotCmd) Run(deps *Dependencies) error {
	if c.Token == "" {
		fmt.Fprintln(deps.Stderr, "Hint: set CUSTOMS_BOT_TOKEN or pass --token")
		return fmt.Errorf("telegram bot token not set")
	}

	api, err := tgbotapi.NewBotAPI(c.Token)
	if err != nil {
		return fmt.Errorf("failed to connect to Telegram: %w", err)
	}

	deps.Logger.Info("bot authorized", "username", api.Self.UserName)

	bot := &telegram.Bot{
		Sender:     api,
		Extractor:  deps.Extractor,
		Calculator: deps.Calculator,
		Aggregator: deps.Aggregator,
		Logger:     deps.Logger,
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	return bot.Run(deps.Ctx, api.GetUpdatesChan(updateConfig))
}
