package analysis

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"tokenguard/internal/domain/chain"
	"tokenguard/internal/domain/risk"
	"tokenguard/internal/domain/token"
)

func reportWithPair() *Report {
	pair := token.Pair{
		DexID:          "uniswap",
		URL:            "https://dexscreener.com/ethereum/0xabc",
		PriceUSD:       decimal.NewNullDecimal(decimal.NewFromFloat(1.25)),
		LiquidityUSD:   decimal.NewNullDecimal(decimal.NewFromFloat(30000)),
		MarketCapUSD:   decimal.NewNullDecimal(decimal.NewFromFloat(300000)),
		FDVUSD:         decimal.NewNullDecimal(decimal.NewFromFloat(310000)),
		PriceChange24h: decimal.NewNullDecimal(decimal.NewFromFloat(12.5)),
	}
	verdict := risk.Classify(pair)

	return &Report{
		Address:  "0xabc",
		Chain:    chain.Ethereum,
		Pair:     &pair,
		Verdict:  &verdict,
		Mentions: token.MentionCounts{"Twitter": 3, "Reddit": 1},
	}
}

func TestRenderFull(t *testing.T) {
	out := reportWithPair().RenderFull()

	assert.Contains(t, out, "Token Address: 0xabc 🏷️")
	assert.Contains(t, out, "Chain: Ethereum ⛓️")
	assert.Contains(t, out, "Dexscreener Data 📊:")
	assert.Contains(t, out, "- DEX: uniswap 🔑")
	assert.Contains(t, out, "- Price: 1.25 USD 💵")
	assert.Contains(t, out, "- Liquidity: 30,000 USD 💧")
	assert.Contains(t, out, "- Market Cap: 300,000 USD 💼")
	assert.Contains(t, out, "- FDV: 310,000 USD 📈")
	assert.Contains(t, out, "- 24H Price Change: 12.5% 🔄")
	assert.Contains(t, out, "- URL: https://dexscreener.com/ethereum/0xabc 🌐")
	assert.Contains(t, out, "Rug Pull Risk ⚠️:")
	assert.Contains(t, out, "Social Media Mentions 📱:")
	assert.Contains(t, out, "Twitter Mentions: 3 🐦")
	assert.Contains(t, out, "Reddit Mentions: 1 💬")
}

func TestRenderRugScan(t *testing.T) {
	out := reportWithPair().RenderRugScan()

	assert.Contains(t, out, "Token Address: 0xabc")
	assert.Contains(t, out, "Rug Pull Risk:")
	assert.Contains(t, out, "Dexscreener Data:")
	assert.Contains(t, out, "- DEX: uniswap")
	assert.Contains(t, out, "- Market Cap: 300,000")
	// The condensed scan omits FDV and the pair URL.
	assert.NotContains(t, out, "FDV:")
	assert.NotContains(t, out, "URL:")
}

func TestRenderFull_NoPairUsesPlaceholders(t *testing.T) {
	report := &Report{
		Address:  "0xabc",
		Chain:    chain.Ethereum,
		Mentions: token.MentionCounts{"Twitter": 0, "Reddit": 0},
	}

	out := report.RenderFull()

	assert.Contains(t, out, "- DEX: N/A")
	assert.Contains(t, out, "- Price: Not Available USD")
	assert.Contains(t, out, "- Liquidity: Not Available USD")
	assert.Contains(t, out, "- Market Cap: Not Available USD")
	assert.Contains(t, out, "- FDV: Not Available USD")
	assert.Contains(t, out, "- 24H Price Change: Not Available")
	assert.Contains(t, out, "- URL: N/A")
	assert.Contains(t, out, noMarketData)
	assert.Contains(t, out, "Twitter Mentions: 0")
}

func TestRenderMentions_OrderIsStable(t *testing.T) {
	report := &Report{
		Address: "0xabc",
		Mentions: token.MentionCounts{
			"Reddit":  1,
			"Twitter": 2,
			"Discord": 9,
		},
	}

	out := report.renderMentions()

	assert.Less(t, strings.Index(out, "Twitter"), strings.Index(out, "Reddit"))
	assert.Less(t, strings.Index(out, "Reddit"), strings.Index(out, "Discord"))
}
