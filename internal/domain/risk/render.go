package risk

import (
	"fmt"
	"strings"
)

// tierText carries the presentation strings for one tier: the verdict
// summary shown to the user and the per-factor commentary lines.
type tierText struct {
	summary   string
	trailer   string
	liquidity string
	marketCap string
	change    string
	fdv       string
}

var tierTexts = map[Tier]tierText{
	TierLow: {
		summary: "Based on the key factors below, this token has strong liquidity, a healthy market cap, and a stable price change, " +
			"suggesting stability and minimal risk of a rug pull. Monitor the price and transaction volume.",
		trailer:   "🟢",
		liquidity: "Liquidity is the available amount of capital that can be easily traded or moved in/out of the market. High liquidity reduces the chance of sudden price manipulation.",
		marketCap: "A high market cap typically signifies a token with solid backing and less vulnerability to drastic fluctuations.",
		change:    "Stable price changes indicate lower volatility, which is generally a sign of stability.",
		fdv:       "If FDV is significantly higher than market cap, it could indicate a potentially overvalued token.",
	},
	TierModerate: {
		summary: "Liquidity is decent, but there are concerns with the price change or market cap. " +
			"While not in immediate danger, signs point to potential instability. Monitor closely.",
		trailer:   "🟡",
		liquidity: "Medium liquidity means there's some flexibility, but not enough to avoid larger market manipulations.",
		marketCap: "A lower market cap makes the token more susceptible to manipulation and higher volatility.",
		change:    "A significant price change can indicate speculation or manipulation in the market.",
		fdv:       "If FDV is lower than market cap, the market could be undervaluing the token, but it could also signify a false sense of stability.",
	},
	TierHigh: {
		summary: "This token has low liquidity or negative price movement, which increases the likelihood of a rug pull. " +
			"A lack of liquidity can make the price more vulnerable to manipulation.",
		trailer:   "🚨",
		liquidity: "Low liquidity means the token is more easily manipulated and price spikes can occur more frequently.",
		marketCap: "A low market cap typically reflects a token with fewer investors and higher risk of price manipulation.",
		change:    "A negative price change can be an indication of declining interest or manipulation.",
		fdv:       "If FDV is significantly higher than market cap, this imbalance could be a red flag, indicating potential manipulation.",
	},
	TierCritical: {
		summary: "This token has dangerously low liquidity or FDV that is lower than its market cap, suggesting high risk. " +
			"The low liquidity makes it easy for malicious actors to manipulate the price. Avoid investing if you value your funds.",
		trailer:   "🔴",
		liquidity: "Extremely low liquidity is a huge risk for manipulation, making it easy for bad actors to control the price.",
		marketCap: "A low market cap means fewer resources to keep the price stable, which increases risk.",
		change:    "Price instability makes the token more vulnerable to sudden drops.",
		fdv:       "If FDV is lower than market cap, it may suggest an overinflated value that is unsustainable.",
	},
	TierExtreme: {
		summary: "This token has shown a massive price change, or there is extreme centralization. " +
			"This can indicate manipulative schemes and pump-and-dump behavior. Proceed with extreme caution!",
		trailer:   "🚩",
		liquidity: "High liquidity is good, but massive volatility or centralization suggests a high risk of market manipulation.",
		marketCap: "The market cap is high, but extreme volatility or centralization can create a false sense of security.",
		change:    "A large price change within 24 hours is often associated with pump-and-dump schemes.",
		fdv:       "If FDV is much higher than market cap, the token could be highly inflated and could crash once the market stabilizes.",
	},
	TierLowToModerate: {
		summary: "The token has decent liquidity and market cap, but there are concerns such as price volatility or social media mentions. " +
			"Monitor closely for any sudden changes.",
		trailer:   "🟢",
		liquidity: "Decent liquidity means there's enough trading volume to prevent sudden price swings, but still monitor for sudden changes.",
		marketCap: "A reasonable market cap is a good sign, but it can still be vulnerable if price volatility or external factors come into play.",
		change:    "Price volatility could indicate potential price manipulation or speculative trading.",
		fdv:       "A balanced FDV vs market cap ratio indicates the market is valuing the token appropriately, but monitor for any shifts in the future.",
	},
}

// Render formats the verdict as a Telegram Markdown block: the tier
// headline plus the four factor readouts with per-tier commentary.
func (v Verdict) Render() string {
	text := tierTexts[v.Tier]

	var b strings.Builder
	fmt.Fprintf(&b, "%s **%s**: %s %s\n\n", v.Tier.Marker(), v.Tier.Label(), text.summary, text.trailer)
	b.WriteString("**Key Factors:**\n")
	fmt.Fprintf(&b, "Liquidity: %s USD (%s) - %s\n", v.Liquidity.String(), v.LiquidityLevel, text.liquidity)
	fmt.Fprintf(&b, "Market Cap: %s USD (%s) - %s\n", v.MarketCap.String(), v.MarketCapLevel, text.marketCap)
	fmt.Fprintf(&b, "24H Price Change: %s%% (%s) - %s\n", v.PriceChange.String(), v.PriceTrend, text.change)
	fmt.Fprintf(&b, "FDV vs Market Cap: %s - %s\n", v.FDVRelation, text.fdv)

	return b.String()
}
