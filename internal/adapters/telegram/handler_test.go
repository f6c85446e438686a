package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenguard/internal/domain/chain"
	"tokenguard/internal/services/analysis"
	"tokenguard/pkg/logger"
	"tokenguard/pkg/telegram"
)

const validAddress = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

// sentMessage records one outbound bot call for assertions.
type sentMessage struct {
	chatID    int64
	messageID int // 0 for sends, set for edits
	text      string
	keyboard  *telegram.InlineKeyboardMarkup
}

type fakeBot struct {
	sent      []sentMessage
	callbacks []string
}

func (f *fakeBot) Start(ctx context.Context) error { return nil }

func (f *fakeBot) Stop() {}

func (f *fakeBot) SetHandler(func(telegram.Update)) {}

func (f *fakeBot) SendMessage(chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (f *fakeBot) SendMessageWithKeyboard(chatID int64, text string, keyboard telegram.InlineKeyboardMarkup) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, keyboard: &keyboard})
	return nil
}

func (f *fakeBot) EditMessage(chatID int64, messageID int, text string, keyboard *telegram.InlineKeyboardMarkup) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, messageID: messageID, text: text, keyboard: keyboard})
	return nil
}

func (f *fakeBot) AnswerCallback(callbackQueryID string, text string, showAlert bool) error {
	f.callbacks = append(f.callbacks, callbackQueryID)
	return nil
}

func (f *fakeBot) last() sentMessage {
	return f.sent[len(f.sent)-1]
}

type fakeAnalyzer struct {
	requested []string
}

func (f *fakeAnalyzer) BuildReport(ctx context.Context, address string) *analysis.Report {
	f.requested = append(f.requested, address)
	return &analysis.Report{Address: address, Chain: chain.Detect(address)}
}

func newTestHandler() (*Handler, *fakeBot, *fakeAnalyzer, *SessionStore) {
	bot := &fakeBot{}
	analyzer := &fakeAnalyzer{}
	sessions := NewSessionStore(30*time.Minute, logger.Get())
	handler := NewHandler(bot, sessions, analyzer, logger.Get())
	return handler, bot, analyzer, sessions
}

func messageUpdate(telegramID, chatID int64, text string) telegram.Update {
	msg := &telegram.Message{
		MessageID: 1,
		From:      &telegram.User{ID: telegramID, FirstName: "Test"},
		Chat:      &telegram.Chat{ID: chatID, Type: "private"},
		Text:      text,
	}
	msg.ParseCommand()
	return telegram.Update{Message: msg}
}

func callbackUpdate(telegramID, chatID int64, data string) telegram.Update {
	return telegram.Update{CallbackQuery: &telegram.CallbackQuery{
		ID:   "cb-1",
		From: &telegram.User{ID: telegramID},
		Message: &telegram.Message{
			MessageID: 10,
			Chat:      &telegram.Chat{ID: chatID, Type: "private"},
		},
		Data: data,
	}}
}

func TestHandler_StartCommandShowsMainMenu(t *testing.T) {
	handler, bot, _, _ := newTestHandler()

	handler.HandleUpdate(messageUpdate(1, 1, "/start"))

	require.Len(t, bot.sent, 1)
	assert.Equal(t, welcomeText, bot.last().text)
	require.NotNil(t, bot.last().keyboard)
	assert.Len(t, bot.last().keyboard.InlineKeyboard, 3)
}

func TestHandler_InvalidAddressIsRejected(t *testing.T) {
	handler, bot, analyzer, _ := newTestHandler()

	handler.HandleUpdate(messageUpdate(1, 1, "definitely not an address"))

	require.Len(t, bot.sent, 1)
	assert.Equal(t, invalidAddressText, bot.last().text)
	require.NotNil(t, bot.last().keyboard)
	assert.Equal(t, CallbackStart, bot.last().keyboard.InlineKeyboard[0][0].CallbackData)

	// The pipeline never ran.
	assert.Empty(t, analyzer.requested)
}

func TestHandler_AddressWithoutSelectedOption(t *testing.T) {
	handler, bot, analyzer, _ := newTestHandler()

	handler.HandleUpdate(messageUpdate(1, 1, validAddress))

	require.Len(t, bot.sent, 1)
	assert.Equal(t, noOptionText, bot.last().text)
	assert.Empty(t, analyzer.requested)
}

func TestHandler_FullAnalysisFlow(t *testing.T) {
	handler, bot, analyzer, sessions := newTestHandler()

	// Pressing "Analyze Token" prompts for an address.
	handler.HandleUpdate(callbackUpdate(1, 1, CallbackAnalyzeToken))
	require.Len(t, bot.sent, 1)
	assert.Equal(t, promptAnalyzeText, bot.last().text)
	assert.Equal(t, OptionAnalyzeToken, sessions.Get(1).Selected())

	// Submitting an address runs the full report.
	handler.HandleUpdate(messageUpdate(1, 1, validAddress))

	require.Len(t, analyzer.requested, 1)
	assert.Equal(t, validAddress, analyzer.requested[0])
	assert.Equal(t, validAddress, sessions.Get(1).LastTokenAddress())

	// Progress message plus the report with follow-up buttons.
	require.Len(t, bot.sent, 3)
	assert.Contains(t, bot.sent[1].text, "Analyzing token address")
	report := bot.last()
	assert.Contains(t, report.text, validAddress)
	require.NotNil(t, report.keyboard)
	assert.Equal(t, CallbackRugPullScan, report.keyboard.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, CallbackGoBackToMenu, report.keyboard.InlineKeyboard[1][0].CallbackData)
}

func TestHandler_RugPullScanFlow(t *testing.T) {
	handler, bot, analyzer, _ := newTestHandler()

	handler.HandleUpdate(callbackUpdate(1, 1, CallbackRugPullScan))
	assert.Equal(t, promptRugScanText, bot.last().text)

	handler.HandleUpdate(messageUpdate(1, 1, validAddress))

	require.Len(t, analyzer.requested, 1)
	keyboard := bot.last().keyboard
	require.NotNil(t, keyboard)
	assert.Equal(t, CallbackFullAnalysis, keyboard.InlineKeyboard[0][0].CallbackData)
}

func TestHandler_FullAnalysisCallbackReusesAddress(t *testing.T) {
	handler, bot, analyzer, sessions := newTestHandler()

	sessions.Get(1).SetLastTokenAddress(validAddress)

	handler.HandleUpdate(callbackUpdate(1, 1, CallbackFullAnalysis))

	require.Len(t, analyzer.requested, 1)
	assert.Equal(t, validAddress, analyzer.requested[0])

	report := bot.last()
	assert.Equal(t, 10, report.messageID)
	assert.Contains(t, report.text, validAddress)
}

func TestHandler_FullAnalysisCallbackWithoutAddress(t *testing.T) {
	handler, bot, analyzer, _ := newTestHandler()

	handler.HandleUpdate(callbackUpdate(1, 1, CallbackFullAnalysis))

	assert.Equal(t, noAddressText, bot.last().text)
	assert.Empty(t, analyzer.requested)
}

func TestHandler_GoBackToMenuResetsSelection(t *testing.T) {
	handler, bot, _, sessions := newTestHandler()

	sessions.Get(1).SetSelected(OptionAnalyzeToken)

	handler.HandleUpdate(callbackUpdate(1, 1, CallbackGoBackToMenu))

	assert.Equal(t, OptionNone, sessions.Get(1).Selected())
	assert.Equal(t, welcomeBackText, bot.last().text)
	require.NotNil(t, bot.last().keyboard)
}

func TestHandler_ExitDeletesSession(t *testing.T) {
	handler, bot, _, sessions := newTestHandler()

	sessions.Get(1)
	require.Equal(t, 1, sessions.Count())

	handler.HandleUpdate(callbackUpdate(1, 1, CallbackExit))

	assert.Equal(t, 0, sessions.Count())
	assert.Equal(t, farewellText, bot.last().text)
}

func TestHandler_CallbacksAreAnswered(t *testing.T) {
	handler, bot, _, _ := newTestHandler()

	handler.HandleUpdate(callbackUpdate(1, 1, CallbackAnalyzeToken))

	// The spinner is stopped even before routing.
	assert.Equal(t, []string{"cb-1"}, bot.callbacks)
}

func TestHandler_UnknownCommand(t *testing.T) {
	handler, bot, _, _ := newTestHandler()

	handler.HandleUpdate(messageUpdate(1, 1, "/help"))

	assert.Contains(t, bot.last().text, "Unknown command")
}
