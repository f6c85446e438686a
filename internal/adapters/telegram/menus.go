package telegram

import (
	"tokenguard/pkg/telegram"
)

// Callback identifiers carried in inline keyboard buttons. These are
// part of the wire contract with deployed chats; renaming one breaks
// buttons on messages already sent.
const (
	CallbackAnalyzeToken = "analyze_token"
	CallbackRugPullScan  = "rug_pull_scan"
	CallbackFullAnalysis = "full_analysis"
	CallbackGoBackToMenu = "go_back_to_menu"
	CallbackExit         = "exit"
	CallbackStart        = "start"
)

const (
	welcomeText     = "Welcome to the Token Safety Bot! Choose an option from the menu below:"
	welcomeBackText = "Welcome back! Choose an option from the menu below:"
	farewellText    = "Goodbye! Send /start whenever you want another token checked. 👋"

	promptAnalyzeText = "Please provide the token address:"
	promptRugScanText = "Please provide the token address for Rug Pull Risk check:"

	invalidAddressText = "❌ Invalid address format. Please provide a valid wallet address or token name."
	noOptionText       = "Please choose an option from the menu first. Send /start to see the menu."
	noAddressText      = "❌ No token address found. Please enter a valid token address first."
)

// mainMenuKeyboard builds the top-level menu
func mainMenuKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.NewInlineKeyboardMarkup(
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonData("🔍 Analyze Token", CallbackAnalyzeToken),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonData("🛡 Rug Pull Scanner", CallbackRugPullScan),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonData("🚪 Exit", CallbackExit),
		),
	)
}

// fullReportKeyboard follows a full analysis message
func fullReportKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.NewInlineKeyboardMarkup(
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonData("Rug Pull Check 🔎", CallbackRugPullScan),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonData("Go Back to Main Menu 🏠", CallbackGoBackToMenu),
		),
	)
}

// rugScanKeyboard follows a rug pull scan message
func rugScanKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.NewInlineKeyboardMarkup(
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonData("Full Token Analysis", CallbackFullAnalysis),
		),
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonData("Go Back to Main Menu 🏠", CallbackGoBackToMenu),
		),
	)
}

// startOverKeyboard follows a rejected address message
func startOverKeyboard() telegram.InlineKeyboardMarkup {
	return telegram.NewInlineKeyboardMarkup(
		telegram.NewInlineKeyboardRow(
			telegram.NewInlineKeyboardButtonData("Start Over 🔄", CallbackStart),
		),
	)
}
