// Package telegram implements the chat transport: it receives free-form
// vehicle descriptions, runs them through the extraction, duty
// calculation and market aggregation services, and replies with
// HTML-formatted summaries.
package telegram

import (
	"context"
	"io"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/customs-bot/customs"
)

const (
	startText = "🚗 Отправьте данные авто в формате:\n" +
		"<b>Модель, год, объем, мощность, цена в $</b>\n\n" +
		"Пример: <i>BMW X5 2022, 3.0 л, 249 л.с., 50000$</i>"

	formatErrorText = "❌ Ошибка формата. Пример:\n" +
		"<i>BMW X5 2022, 3.0 л, 249 л.с., 50000$, 30000 км</i>"

	calcErrorText = "⚠️ Ошибка расчета. Попробуйте позже"

	promptText = "Введите данные авто в формате:\n" +
		"<code>Модель, год, объем, мощность, цена</code>"

	exampleText = "Пример ввода:\n" +
		"<code>BMW X5 2022, 3.0 л, 249 л.с., 50000$</code>\n\n" +
		"Скопируйте и отправьте боту"
)

// Sender is the subset of the bot API used to deliver replies.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot wires the extraction, calculation and market services to a
// Telegram chat.
type Bot struct {
	// Sender delivers outgoing messages. Required.
	Sender Sender

	// Extractor recognizes vehicle attributes in free-form text. Required.
	Extractor customs.AttributeExtractor

	// Calculator computes the duty breakdown. Required.
	Calculator customs.DutyCalculator

	// Aggregator assembles comparable market listings; skipped when nil.
	Aggregator customs.Aggregator

	// Logger receives per-update observability events; discarded when nil.
	Logger *slog.Logger
}

// Run processes updates until the channel closes or the context is
// canceled.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches a single update. Delivery failures are
// logged, never returned: the polling loop must survive them.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	logger := b.logger().With("request_id", uuid.NewString())

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(logger, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(logger, update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleText(ctx, logger, update.Message)
	}
}

func (b *Bot) handleCommand(logger *slog.Logger, message *tgbotapi.Message) {
	logger.Info("command received", "command", message.Command(), "chat_id", message.Chat.ID)

	switch message.Command() {
	case "start":
		b.reply(logger, message.Chat.ID, startText, mainMenuKeyboard())
	default:
		b.reply(logger, message.Chat.ID, startText, nil)
	}
}

// handleText runs the full pipeline: extract, calculate, aggregate.
func (b *Bot) handleText(ctx context.Context, logger *slog.Logger, message *tgbotapi.Message) {
	logger.Info("text received", "chat_id", message.Chat.ID, "text_len", len(message.Text))

	attrs := b.Extractor.Extract(message.Text)
	if attrs == nil || attrs.Empty() {
		b.reply(logger, message.Chat.ID, formatErrorText, nil)
		return
	}

	breakdown, err := b.Calculator.Calculate(attrs)
	if err != nil {
		logger.Info("calculation failed", "error", err)
		if customs.ErrorCode(err) == customs.EINVALID {
			// User-correctable: say what is missing and re-prompt.
			b.reply(logger, message.Chat.ID,
				"❌ "+customs.ErrorMessage(err)+"\n\n"+formatErrorText, nil)
			return
		}
		b.reply(logger, message.Chat.ID, calcErrorText, nil)
		return
	}

	text := customs.FormatAttributes(attrs) + "\n" + customs.FormatBreakdown(breakdown)

	if b.Aggregator != nil {
		if snapshot := b.Aggregator.Aggregate(ctx, attrs); snapshot != nil {
			text += "\n\n" + customs.FormatSnapshot(snapshot)
		}
	}

	b.reply(logger, message.Chat.ID, text, mainMenuKeyboard())
}

func (b *Bot) handleCallback(logger *slog.Logger, callback *tgbotapi.CallbackQuery) {
	logger.Info("callback received", "data", callback.Data)

	if callback.Message != nil {
		chatID := callback.Message.Chat.ID
		switch callback.Data {
		case "new_calc":
			b.reply(logger, chatID, promptText, nil)
		case "show_example":
			edit := tgbotapi.NewEditMessageText(chatID, callback.Message.MessageID, exampleText)
			edit.ParseMode = tgbotapi.ModeHTML
			if _, err := b.Sender.Send(edit); err != nil {
				logger.Error("edit failed", "error", err)
			}
		case "help":
			b.reply(logger, chatID, startText, nil)
		}
	}

	if _, err := b.Sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		logger.Error("callback ack failed", "error", err)
	}
}

func (b *Bot) reply(logger *slog.Logger, chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	if _, err := b.Sender.Send(msg); err != nil {
		logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mainMenuKeyboard() *tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Новый расчет", "new_calc"),
			tgbotapi.NewInlineKeyboardButtonData("📋 Пример данных", "show_example"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Помощь", "help"),
		),
	)
	return &keyboard
}
