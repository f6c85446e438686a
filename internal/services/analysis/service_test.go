package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenguard/internal/adapters/social"
	"tokenguard/internal/domain/chain"
	"tokenguard/internal/domain/risk"
	"tokenguard/internal/domain/token"
	"tokenguard/pkg/errors"
	"tokenguard/pkg/logger"
)

const testAddress = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"

type fakeMarket struct {
	pairs []token.Pair
	err   error
}

func (f *fakeMarket) TokenPairs(ctx context.Context, address string) ([]token.Pair, error) {
	return f.pairs, f.err
}

type fakeSource struct {
	platform string
	count    int
	err      error
}

func (f *fakeSource) Platform() string { return f.platform }

func (f *fakeSource) CountMentions(ctx context.Context, query string) (int, error) {
	return f.count, f.err
}

func healthyPair(dexID string, liquidity float64) token.Pair {
	return token.Pair{
		DexID:          dexID,
		LiquidityUSD:   decimal.NewNullDecimal(decimal.NewFromFloat(liquidity)),
		MarketCapUSD:   decimal.NewNullDecimal(decimal.NewFromFloat(300000)),
		PriceChange24h: decimal.NewNullDecimal(decimal.NewFromFloat(10)),
		FDVUSD:         decimal.NewNullDecimal(decimal.NewFromFloat(300000)),
	}
}

func TestBuildReport_FullPipeline(t *testing.T) {
	market := &fakeMarket{pairs: []token.Pair{
		healthyPair("uniswap", 30000),
		healthyPair("sushiswap", 1000),
	}}

	svc := NewService(market, []social.MentionSource{
		&fakeSource{platform: "Twitter", count: 3},
		&fakeSource{platform: "Reddit", count: 1},
	}, time.Second, logger.Get())

	report := svc.BuildReport(context.Background(), testAddress)

	assert.Equal(t, testAddress, report.Address)
	assert.Equal(t, chain.Ethereum, report.Chain)
	require.NotNil(t, report.Pair)
	assert.Equal(t, "uniswap", report.Pair.DexID)
	require.NotNil(t, report.Verdict)
	assert.Equal(t, risk.TierLow, report.Verdict.Tier)
	assert.Equal(t, token.MentionCounts{"Twitter": 3, "Reddit": 1}, report.Mentions)
}

func TestBuildReport_MarketErrorDegradesToNoPair(t *testing.T) {
	market := &fakeMarket{err: errors.ErrUpstream}

	svc := NewService(market, []social.MentionSource{
		&fakeSource{platform: "Twitter", count: 2},
	}, time.Second, logger.Get())

	report := svc.BuildReport(context.Background(), testAddress)

	assert.Nil(t, report.Pair)
	assert.Nil(t, report.Verdict)
	assert.Equal(t, token.MentionCounts{"Twitter": 2}, report.Mentions)
}

func TestBuildReport_EmptyPairsNoVerdict(t *testing.T) {
	svc := NewService(&fakeMarket{}, nil, time.Second, logger.Get())

	report := svc.BuildReport(context.Background(), testAddress)

	assert.Nil(t, report.Pair)
	assert.Nil(t, report.Verdict)
	assert.Empty(t, report.Mentions)
}

func TestBuildReport_FailedSourceCountsZero(t *testing.T) {
	market := &fakeMarket{pairs: []token.Pair{healthyPair("uniswap", 30000)}}

	svc := NewService(market, []social.MentionSource{
		&fakeSource{platform: "Twitter", count: 3},
		&fakeSource{platform: "Reddit", err: errors.ErrTimeout},
	}, time.Second, logger.Get())

	report := svc.BuildReport(context.Background(), testAddress)

	// One source failing never fails the pipeline; its count reads 0.
	assert.Equal(t, token.MentionCounts{"Twitter": 3, "Reddit": 0}, report.Mentions)
	require.NotNil(t, report.Verdict)
}

func TestBuildReport_NeverReturnsNil(t *testing.T) {
	svc := NewService(&fakeMarket{err: errors.ErrUnavailable}, []social.MentionSource{
		&fakeSource{platform: "Twitter", err: errors.ErrUnavailable},
	}, time.Second, logger.Get())

	report := svc.BuildReport(context.Background(), "garbage")

	require.NotNil(t, report)
	assert.Equal(t, chain.Unknown, report.Chain)
	assert.Equal(t, token.MentionCounts{"Twitter": 0}, report.Mentions)
	assert.False(t, report.FetchedAt.IsZero())
}
