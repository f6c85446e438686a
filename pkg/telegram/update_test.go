package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		isCommand bool
		command   string
		arguments string
	}{
		{"plain command", "/start", true, "start", ""},
		{"command with args", "/analyze 0xabc def", true, "analyze", "0xabc def"},
		{"command with bot mention", "/start@tokenguard_bot", true, "start", ""},
		{"mention with args", "/analyze@tokenguard_bot 0xabc", true, "analyze", "0xabc"},
		{"not a command", "hello there", false, "", ""},
		{"empty text", "", false, "", ""},
		{"bare slash", "/", true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := &Message{Text: tt.text}
			msg.ParseCommand()

			assert.Equal(t, tt.isCommand, msg.IsCommand)
			assert.Equal(t, tt.command, msg.Command)
			assert.Equal(t, tt.arguments, msg.Arguments)
		})
	}
}

func TestUpdatePredicates(t *testing.T) {
	assert.False(t, (&Update{}).HasMessage())
	assert.False(t, (&Update{}).HasCallback())

	withMsg := &Update{Message: &Message{}}
	assert.True(t, withMsg.HasMessage())

	withCb := &Update{CallbackQuery: &CallbackQuery{}}
	assert.True(t, withCb.HasCallback())
}

func TestKeyboardConstructors(t *testing.T) {
	kb := NewInlineKeyboardMarkup(
		NewInlineKeyboardRow(
			NewInlineKeyboardButtonData("Analyze", "analyze_token"),
		),
		NewInlineKeyboardRow(
			NewInlineKeyboardButtonData("Exit", "exit"),
			NewInlineKeyboardButtonURL("Docs", "https://example.com"),
		),
	)

	assert.Len(t, kb.InlineKeyboard, 2)
	assert.Equal(t, "analyze_token", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "https://example.com", kb.InlineKeyboard[1][1].URL)
	assert.Empty(t, kb.InlineKeyboard[1][1].CallbackData)
}
