package risk

import (
	"github.com/shopspring/decimal"

	"tokenguard/internal/domain/token"
)

// Tier is one of six ordered rug-pull risk severities.
type Tier int

const (
	TierLow Tier = iota
	TierLowToModerate
	TierModerate
	TierHigh
	TierCritical
	TierExtreme
)

// Label returns the human-readable tier name.
func (t Tier) Label() string {
	switch t {
	case TierLow:
		return "Low Risk"
	case TierLowToModerate:
		return "Low to Moderate Risk"
	case TierModerate:
		return "Moderate Risk"
	case TierHigh:
		return "High Risk"
	case TierCritical:
		return "Critical Risk"
	case TierExtreme:
		return "Extreme Risk"
	default:
		return "Unknown Risk"
	}
}

// Marker returns the leading severity emoji for the tier.
func (t Tier) Marker() string {
	switch t {
	case TierLow, TierLowToModerate:
		return "✅"
	case TierModerate, TierHigh:
		return "⚠️"
	case TierCritical:
		return "🚨"
	case TierExtreme:
		return "🔥"
	default:
		return "❓"
	}
}

// FactorLevel grades liquidity and market cap readings.
type FactorLevel string

const (
	LevelLow    FactorLevel = "Low"
	LevelMedium FactorLevel = "Medium"
	LevelHigh   FactorLevel = "High"
)

// PriceTrend grades the 24h price change reading.
type PriceTrend string

const (
	TrendStable   PriceTrend = "Stable"
	TrendVolatile PriceTrend = "Volatile"
	TrendNegative PriceTrend = "Negative"
)

// FDVRelation describes fully diluted valuation relative to market cap.
type FDVRelation string

const (
	FDVBalanced       FDVRelation = "Balanced"
	FDVBelowMarketCap FDVRelation = "FDV Lower Than Market Cap"
	FDVAboveMarketCap FDVRelation = "FDV Higher Than Market Cap"
)

// Verdict is the structured result of classifying one trading pair.
// It carries the chosen tier, the four factor readouts that always
// accompany it, and the numeric snapshot they were derived from.
// Rendering to user-facing text lives in render.go.
type Verdict struct {
	Tier Tier

	LiquidityLevel FactorLevel
	MarketCapLevel FactorLevel
	PriceTrend     PriceTrend
	FDVRelation    FDVRelation

	Liquidity   decimal.Decimal
	MarketCap   decimal.Decimal
	PriceChange decimal.Decimal
	FDV         decimal.Decimal
}

// Classification thresholds, all in USD except the percent cuts.
var (
	liquidityHigh     = decimal.NewFromInt(25000)
	liquidityMedium   = decimal.NewFromInt(10000)
	liquidityModerate = decimal.NewFromInt(20000)
	liquidityFloor    = decimal.NewFromInt(5000)

	marketCapHigh   = decimal.NewFromInt(250000)
	marketCapMedium = decimal.NewFromInt(100000)

	changeCalm      = decimal.NewFromInt(50)
	changeVolatile  = decimal.NewFromInt(500)
	changeParabolic = decimal.NewFromInt(1000)

	two = decimal.NewFromInt(2)
)

// Classify maps a pair's numeric attributes to a risk verdict. It is a
// pure, total function: absent fields read as zero and every input
// produces exactly one tier.
//
// The tier rules are evaluated in a fixed order and the first match
// wins. The ordering is load-bearing: later rules are reachable only
// when earlier ones fail, and the resulting overlaps are part of the
// contract. Do not reorder or "simplify" into a decision table.
func Classify(pair token.Pair) Verdict {
	liquidity := pair.LiquidityUSD.Decimal
	marketCap := pair.MarketCapUSD.Decimal
	change := pair.PriceChange24h.Decimal
	fdv := pair.FDVUSD.Decimal

	v := Verdict{
		LiquidityLevel: gradeLiquidity(liquidity),
		MarketCapLevel: gradeMarketCap(marketCap),
		PriceTrend:     gradePriceTrend(change),
		FDVRelation:    gradeFDV(fdv, marketCap),
		Liquidity:      liquidity,
		MarketCap:      marketCap,
		PriceChange:    change,
		FDV:            fdv,
	}

	switch {
	// Healthy liquidity, solid market cap, calm price.
	case liquidity.GreaterThan(liquidityHigh) &&
		marketCap.GreaterThan(marketCapHigh) &&
		change.LessThanOrEqual(changeCalm):
		v.Tier = TierLow

	// Decent liquidity, but volatility or a thin market cap.
	case liquidity.GreaterThanOrEqual(liquidityMedium) &&
		liquidity.LessThanOrEqual(liquidityModerate) &&
		(change.GreaterThan(changeCalm) || marketCap.LessThan(marketCapMedium)):
		v.Tier = TierModerate

	// Thin liquidity or a declining price.
	case liquidity.LessThan(liquidityMedium) || change.LessThanOrEqual(decimal.Zero):
		v.Tier = TierHigh

	// Dangerously thin liquidity, or FDV below market cap.
	case liquidity.LessThan(liquidityFloor) || fdv.LessThan(marketCap):
		v.Tier = TierCritical

	// Parabolic price move, or FDV more than double the market cap.
	case change.GreaterThan(changeParabolic) || fdv.GreaterThan(marketCap.Mul(two)):
		v.Tier = TierExtreme

	default:
		v.Tier = TierLowToModerate
	}

	return v
}

func gradeLiquidity(liquidity decimal.Decimal) FactorLevel {
	switch {
	case liquidity.GreaterThan(liquidityHigh):
		return LevelHigh
	case liquidity.GreaterThanOrEqual(liquidityMedium):
		return LevelMedium
	default:
		return LevelLow
	}
}

func gradeMarketCap(marketCap decimal.Decimal) FactorLevel {
	switch {
	case marketCap.GreaterThan(marketCapHigh):
		return LevelHigh
	case marketCap.GreaterThanOrEqual(marketCapMedium):
		return LevelMedium
	default:
		return LevelLow
	}
}

func gradePriceTrend(change decimal.Decimal) PriceTrend {
	switch {
	case change.GreaterThan(changeVolatile):
		return TrendVolatile
	case change.LessThanOrEqual(decimal.Zero):
		return TrendNegative
	default:
		return TrendStable
	}
}

func gradeFDV(fdv, marketCap decimal.Decimal) FDVRelation {
	switch {
	case fdv.LessThan(marketCap):
		return FDVBelowMarketCap
	case fdv.GreaterThan(marketCap):
		return FDVAboveMarketCap
	default:
		return FDVBalanced
	}
}
