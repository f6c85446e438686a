package telegram

import (
	"context"
)

// Bot abstracts the chat transport so handlers can be tested with fakes.
type Bot interface {
	// Start starts long polling and blocks until the context is cancelled
	Start(ctx context.Context) error

	// Stop stops the bot
	Stop()

	// SetHandler sets the update handler
	SetHandler(handler func(Update))

	// SendMessage sends a text message
	SendMessage(chatID int64, text string) error

	// SendMessageWithKeyboard sends a message with an inline keyboard
	SendMessageWithKeyboard(chatID int64, text string, keyboard InlineKeyboardMarkup) error

	// EditMessage edits an existing message, optionally replacing its keyboard
	EditMessage(chatID int64, messageID int, text string, keyboard *InlineKeyboardMarkup) error

	// AnswerCallback answers a callback query (stops the client-side spinner)
	AnswerCallback(callbackQueryID string, text string, showAlert bool) error
}
