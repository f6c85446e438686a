package token

import (
	"github.com/shopspring/decimal"
)

// Pair is a snapshot of one trading venue for a token at fetch time.
// Upstream data is gappy, so every numeric field may be absent; absent
// values carry a zero decimal with Valid=false. A Pair is never mutated
// after it is fetched.
type Pair struct {
	DexID          string
	PriceUSD       decimal.NullDecimal
	LiquidityUSD   decimal.NullDecimal
	MarketCapUSD   decimal.NullDecimal
	FDVUSD         decimal.NullDecimal
	PriceChange24h decimal.NullDecimal
	URL            string
}

// SelectPreferred reduces a list of pairs to the single most relevant one:
// the pair with the highest USD liquidity. Ties keep the first-seen pair.
// ok is false when the list is empty.
func SelectPreferred(pairs []Pair) (Pair, bool) {
	if len(pairs) == 0 {
		return Pair{}, false
	}

	best := pairs[0]
	for _, p := range pairs[1:] {
		if p.LiquidityUSD.Decimal.GreaterThan(best.LiquidityUSD.Decimal) {
			best = p
		}
	}

	return best, true
}

// MentionCounts maps a social platform name to the number of recent
// public mentions found for a query. A failed lookup contributes 0.
type MentionCounts map[string]int
