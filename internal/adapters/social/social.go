package social

import (
	"context"
)

// ResultCap is the per-source ceiling on counted mentions. The report
// only needs a rough "is anyone talking about this" signal, so each
// platform is asked for a handful of recent items and no more.
const ResultCap = 5

// MentionSource counts recent public mentions of a query string on one
// social platform. Implementations must be safe for concurrent use: the
// analysis pipeline queries all sources in parallel.
type MentionSource interface {
	// Platform returns the display name of the platform ("Twitter", "Reddit")
	Platform() string

	// CountMentions returns how many recent items mention the query,
	// capped at ResultCap
	CountMentions(ctx context.Context, query string) (int, error)
}
