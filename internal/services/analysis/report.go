package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Placeholders used when upstream data is absent.
const (
	notAvailable = "Not Available"
	noURL        = "N/A"
)

const noMarketData = "⚠️ No market data found for this token address. " +
	"It may not be listed on any tracked exchange yet."

// platformEmojis decorates the mention lines; platforms are rendered in
// this order, any extra sources follow alphabetically.
var platformOrder = []string{"Twitter", "Reddit"}

var platformEmojis = map[string]string{
	"Twitter": "🐦",
	"Reddit":  "💬",
}

// RenderFull formats the complete analysis message: market data block,
// risk verdict and social mention counts.
func (r *Report) RenderFull() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Token Address: %s 🏷️\n", r.Address)
	fmt.Fprintf(&b, "Chain: %s ⛓️\n\n", r.Chain)

	b.WriteString("Dexscreener Data 📊:\n")
	fmt.Fprintf(&b, "- DEX: %s 🔑\n", r.dexID())
	fmt.Fprintf(&b, "- Price: %s USD 💵\n", r.price())
	fmt.Fprintf(&b, "- Liquidity: %s USD 💧\n", r.liquidity())
	fmt.Fprintf(&b, "- Market Cap: %s USD 💼\n", r.marketCap())
	fmt.Fprintf(&b, "- FDV: %s USD 📈\n", r.fdv())
	fmt.Fprintf(&b, "- 24H Price Change: %s 🔄\n", r.priceChange())
	fmt.Fprintf(&b, "- URL: %s 🌐\n\n", r.url())

	fmt.Fprintf(&b, "Rug Pull Risk ⚠️: %s\n", r.verdictText())

	b.WriteString("\nSocial Media Mentions 📱:\n")
	b.WriteString(r.renderMentions())

	return b.String()
}

// RenderRugScan formats the shorter rug-pull-scan message: verdict
// first, then a condensed market data block.
func (r *Report) RenderRugScan() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Token Address: %s\n\n", r.Address)
	fmt.Fprintf(&b, "Rug Pull Risk: %s\n", r.verdictText())

	b.WriteString("\nDexscreener Data:\n")
	fmt.Fprintf(&b, "- DEX: %s\n", r.dexID())
	fmt.Fprintf(&b, "- Price: %s\n", r.price())
	fmt.Fprintf(&b, "- Liquidity: %s\n", r.liquidity())
	fmt.Fprintf(&b, "- Market Cap: %s\n\n", r.marketCap())

	b.WriteString("Social Media Mentions:\n")
	b.WriteString(r.renderMentions())

	return b.String()
}

func (r *Report) verdictText() string {
	if r.Verdict == nil {
		return noMarketData
	}
	return r.Verdict.Render()
}

func (r *Report) renderMentions() string {
	var b strings.Builder

	for _, platform := range mentionPlatforms(r.Mentions) {
		emoji := platformEmojis[platform]
		if emoji == "" {
			emoji = "📱"
		}
		fmt.Fprintf(&b, "%s Mentions: %d %s\n", platform, r.Mentions[platform], emoji)
	}

	return b.String()
}

// mentionPlatforms returns platform names in render order: the known
// platforms first, anything else alphabetically.
func mentionPlatforms(mentions map[string]int) []string {
	ordered := make([]string, 0, len(mentions))
	seen := make(map[string]bool, len(mentions))

	for _, platform := range platformOrder {
		if _, ok := mentions[platform]; ok {
			ordered = append(ordered, platform)
			seen[platform] = true
		}
	}

	var rest []string
	for platform := range mentions {
		if !seen[platform] {
			rest = append(rest, platform)
		}
	}
	sort.Strings(rest)

	return append(ordered, rest...)
}

func (r *Report) dexID() string {
	if r.Pair == nil || r.Pair.DexID == "" {
		return noURL
	}
	return r.Pair.DexID
}

func (r *Report) url() string {
	if r.Pair == nil {
		return noURL
	}
	return r.Pair.URL
}

func (r *Report) price() string {
	if r.Pair == nil || !r.Pair.PriceUSD.Valid {
		return notAvailable
	}
	return r.Pair.PriceUSD.Decimal.String()
}

func (r *Report) liquidity() string {
	if r.Pair == nil || !r.Pair.LiquidityUSD.Valid {
		return notAvailable
	}
	return formatUSD(r.Pair.LiquidityUSD.Decimal)
}

func (r *Report) marketCap() string {
	if r.Pair == nil || !r.Pair.MarketCapUSD.Valid {
		return notAvailable
	}
	return formatUSD(r.Pair.MarketCapUSD.Decimal)
}

func (r *Report) fdv() string {
	if r.Pair == nil || !r.Pair.FDVUSD.Valid {
		return notAvailable
	}
	return formatUSD(r.Pair.FDVUSD.Decimal)
}

func (r *Report) priceChange() string {
	if r.Pair == nil || !r.Pair.PriceChange24h.Valid {
		return notAvailable
	}
	return r.Pair.PriceChange24h.Decimal.String() + "%"
}

func formatUSD(d decimal.Decimal) string {
	return humanize.CommafWithDigits(d.InexactFloat64(), 2)
}
