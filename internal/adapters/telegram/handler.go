package telegram

import (
	"context"
	"fmt"
	"strings"

	"tokenguard/internal/domain/chain"
	"tokenguard/internal/metrics"
	"tokenguard/internal/services/analysis"
	"tokenguard/pkg/logger"
	"tokenguard/pkg/telegram"
)

// Analyzer builds token reports for the conversation flow
type Analyzer interface {
	BuildReport(ctx context.Context, address string) *analysis.Report
}

// Handler drives the menu conversation: it routes updates to command,
// callback and free-text handlers and keeps per-user state in the
// session store.
type Handler struct {
	bot      telegram.Bot
	sessions *SessionStore
	analyzer Analyzer
	log      *logger.Logger
}

// NewHandler creates a new telegram handler
func NewHandler(bot telegram.Bot, sessions *SessionStore, analyzer Analyzer, log *logger.Logger) *Handler {
	return &Handler{
		bot:      bot,
		sessions: sessions,
		analyzer: analyzer,
		log:      log.With("component", "telegram_handler"),
	}
}

// HandleUpdate processes an incoming Telegram update.
// This is the main entry point for all updates.
func (h *Handler) HandleUpdate(update telegram.Update) {
	ctx := context.Background()

	if update.HasCallback() {
		if err := h.handleCallbackQuery(ctx, update.CallbackQuery); err != nil {
			h.log.Errorw("Failed to handle callback query",
				"callback_id", update.CallbackQuery.ID,
				"error", err,
			)
		}
		return
	}

	if update.HasMessage() {
		if err := h.handleMessage(ctx, update.Message); err != nil {
			h.log.Errorw("Failed to handle message",
				"message_id", update.Message.MessageID,
				"error", err,
			)
		}
		return
	}
}

// handleMessage processes commands and free-text token addresses
func (h *Handler) handleMessage(ctx context.Context, msg *telegram.Message) error {
	if msg.From == nil {
		return nil
	}

	telegramID := msg.From.ID
	chatID := msg.Chat.ID

	h.log.Debugw("Processing message",
		"telegram_id", telegramID,
		"username", msg.From.Username,
		"text", msg.Text,
	)

	if msg.IsCommand {
		switch msg.Command {
		case "start":
			h.log.Infow("User started the conversation",
				"telegram_id", telegramID,
				"first_name", msg.From.FirstName,
			)
			h.sessions.Get(telegramID).SetSelected(OptionNone)
			return h.bot.SendMessageWithKeyboard(chatID, welcomeText, mainMenuKeyboard())
		default:
			return h.bot.SendMessage(chatID, "Unknown command. Send /start to see the menu.")
		}
	}

	return h.handleTokenAddress(ctx, telegramID, chatID, strings.TrimSpace(msg.Text))
}

// handleTokenAddress validates a submitted address and runs the flow
// the user selected from the menu.
func (h *Handler) handleTokenAddress(ctx context.Context, telegramID, chatID int64, address string) error {
	if !chain.IsSupportedAddress(address) {
		metrics.RejectedAddresses.Inc()
		return h.bot.SendMessageWithKeyboard(chatID, invalidAddressText, startOverKeyboard())
	}

	session := h.sessions.Get(telegramID)
	session.SetLastTokenAddress(address)

	switch session.Selected() {
	case OptionAnalyzeToken:
		if err := h.bot.SendMessage(chatID, fmt.Sprintf("🔍 Analyzing token address: %s", address)); err != nil {
			h.log.Warnw("Failed to send progress message", "telegram_id", telegramID, "error", err)
		}

		report := h.analyzer.BuildReport(ctx, address)
		metrics.ReportsBuilt.WithLabelValues("full").Inc()
		return h.bot.SendMessageWithKeyboard(chatID, report.RenderFull(), fullReportKeyboard())

	case OptionRugPullScan:
		if err := h.bot.SendMessage(chatID, fmt.Sprintf("Checking Rug Pull Risk for token address: %s", address)); err != nil {
			h.log.Warnw("Failed to send progress message", "telegram_id", telegramID, "error", err)
		}

		report := h.analyzer.BuildReport(ctx, address)
		metrics.ReportsBuilt.WithLabelValues("rug_scan").Inc()
		return h.bot.SendMessageWithKeyboard(chatID, report.RenderRugScan(), rugScanKeyboard())

	default:
		return h.bot.SendMessage(chatID, noOptionText)
	}
}

// handleCallbackQuery processes inline keyboard presses
func (h *Handler) handleCallbackQuery(ctx context.Context, callback *telegram.CallbackQuery) error {
	// Telegram omits the message for callbacks on messages too old to
	// edit; nothing useful can be done with those.
	if callback.Message == nil {
		return h.bot.AnswerCallback(callback.ID, "", false)
	}

	telegramID := callback.From.ID
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	h.log.Debugw("Processing callback query",
		"telegram_id", telegramID,
		"message_id", messageID,
		"callback_data", callback.Data,
	)

	// Answer immediately so the client stops the loading spinner.
	if err := h.bot.AnswerCallback(callback.ID, "", false); err != nil {
		h.log.Errorw("Failed to answer callback", "callback_id", callback.ID, "error", err)
	}

	switch callback.Data {
	case CallbackAnalyzeToken:
		h.sessions.Get(telegramID).SetSelected(OptionAnalyzeToken)
		return h.bot.EditMessage(chatID, messageID, promptAnalyzeText, nil)

	case CallbackRugPullScan:
		h.sessions.Get(telegramID).SetSelected(OptionRugPullScan)
		return h.bot.EditMessage(chatID, messageID, promptRugScanText, nil)

	case CallbackFullAnalysis:
		return h.handleFullAnalysis(ctx, telegramID, chatID, messageID)

	case CallbackGoBackToMenu:
		h.sessions.Get(telegramID).SetSelected(OptionNone)
		keyboard := mainMenuKeyboard()
		return h.bot.EditMessage(chatID, messageID, welcomeBackText, &keyboard)

	case CallbackStart:
		h.sessions.Get(telegramID).SetSelected(OptionNone)
		return h.bot.SendMessageWithKeyboard(chatID, welcomeText, mainMenuKeyboard())

	case CallbackExit:
		h.sessions.Delete(telegramID)
		return h.bot.EditMessage(chatID, messageID, farewellText, nil)

	default:
		h.log.Warnw("Unknown callback data",
			"telegram_id", telegramID,
			"callback_data", callback.Data,
		)
		return nil
	}
}

// handleFullAnalysis re-runs the full report on the address the user
// submitted earlier in the session.
func (h *Handler) handleFullAnalysis(ctx context.Context, telegramID, chatID int64, messageID int) error {
	session := h.sessions.Get(telegramID)

	address := session.LastTokenAddress()
	if address == "" {
		return h.bot.EditMessage(chatID, messageID, noAddressText, nil)
	}

	if err := h.bot.EditMessage(chatID, messageID, "🔍 Fetching Full Token Analysis...", nil); err != nil {
		h.log.Warnw("Failed to send progress message", "telegram_id", telegramID, "error", err)
	}

	report := h.analyzer.BuildReport(ctx, address)
	metrics.ReportsBuilt.WithLabelValues("full").Inc()

	keyboard := fullReportKeyboard()
	return h.bot.EditMessage(chatID, messageID, report.RenderFull(), &keyboard)
}
