package analysis

import (
	"context"
	"sync"
	"time"

	"tokenguard/internal/adapters/social"
	"tokenguard/internal/domain/chain"
	"tokenguard/internal/domain/risk"
	"tokenguard/internal/domain/token"
	"tokenguard/internal/metrics"
	"tokenguard/pkg/logger"
)

// MarketData fetches trading-pair snapshots for a token address.
type MarketData interface {
	TokenPairs(ctx context.Context, address string) ([]token.Pair, error)
}

// Report is the aggregated result for one token address. Pair and
// Verdict are nil when no market data was found; every absent value
// renders as a placeholder, never an error.
type Report struct {
	Address   string
	Chain     chain.Tag
	Pair      *token.Pair
	Verdict   *risk.Verdict
	Mentions  token.MentionCounts
	FetchedAt time.Time
}

// Service runs the aggregation pipeline: market data fetch, pair
// selection, risk classification and social mention counting. All
// collaborators are injected so tests can substitute fakes.
type Service struct {
	market      MarketData
	sources     []social.MentionSource
	callTimeout time.Duration
	log         *logger.Logger
}

// NewService creates a new analysis service
func NewService(market MarketData, sources []social.MentionSource, callTimeout time.Duration, log *logger.Logger) *Service {
	if callTimeout == 0 {
		callTimeout = 10 * time.Second
	}

	return &Service{
		market:      market,
		sources:     sources,
		callTimeout: callTimeout,
		log:         log.With("component", "analysis_service"),
	}
}

// BuildReport assembles a risk report for an address. It never fails:
// every upstream error degrades to a placeholder in the report. The
// market lookup and all mention lookups run in parallel; each call is
// attempted once with a bounded timeout.
func (s *Service) BuildReport(ctx context.Context, address string) *Report {
	report := &Report{
		Address:   address,
		Chain:     chain.Detect(address),
		Mentions:  make(token.MentionCounts, len(s.sources)),
		FetchedAt: time.Now(),
	}

	var wg sync.WaitGroup
	var mentionsMu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()

		pairs := s.fetchPairs(ctx, address)

		pair, ok := token.SelectPreferred(pairs)
		if !ok {
			return
		}

		verdict := risk.Classify(pair)
		report.Pair = &pair
		report.Verdict = &verdict
	}()

	for _, source := range s.sources {
		wg.Add(1)
		go func(source social.MentionSource) {
			defer wg.Done()

			count := s.countMentions(ctx, source, address)

			mentionsMu.Lock()
			report.Mentions[source.Platform()] = count
			mentionsMu.Unlock()
		}(source)
	}

	wg.Wait()

	return report
}

// fetchPairs returns all pairs for the address, or an empty list on any
// failure. Errors are logged, never propagated.
func (s *Service) fetchPairs(ctx context.Context, address string) []token.Pair {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	start := time.Now()
	pairs, err := s.market.TokenPairs(callCtx, address)
	metrics.UpstreamLatency.WithLabelValues("dexscreener").Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("dexscreener", "error").Inc()
		s.log.Warnw("Market data lookup failed", "address", address, "error", err)
		return nil
	}

	metrics.UpstreamRequests.WithLabelValues("dexscreener", "success").Inc()

	return pairs
}

// countMentions returns the mention count from one source, degrading to
// 0 when the source fails.
func (s *Service) countMentions(ctx context.Context, source social.MentionSource, address string) int {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	provider := source.Platform()

	start := time.Now()
	count, err := source.CountMentions(callCtx, address)
	metrics.UpstreamLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(provider, "error").Inc()
		s.log.Warnw("Mention lookup failed", "platform", provider, "address", address, "error", err)
		return 0
	}

	metrics.UpstreamRequests.WithLabelValues(provider, "success").Inc()

	return count
}
