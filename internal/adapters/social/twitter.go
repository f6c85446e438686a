package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"tokenguard/pkg/errors"
	"tokenguard/pkg/logger"
)

// DefaultTwitterBaseURL is the Twitter API v2 endpoint.
const DefaultTwitterBaseURL = "https://api.twitter.com"

// twitterMinResults is the smallest max_results the recent-search
// endpoint accepts; the counted result is still capped at ResultCap.
const twitterMinResults = 10

// TwitterSource counts recent tweets mentioning a query via the
// Twitter API v2 recent search endpoint.
type TwitterSource struct {
	http        *http.Client
	baseURL     string
	bearerToken string
	userAgent   string
	log         *logger.Logger
}

// TwitterConfig contains Twitter source configuration
type TwitterConfig struct {
	BearerToken string
	BaseURL     string // defaults to DefaultTwitterBaseURL
	UserAgent   string
	Timeout     time.Duration
}

// NewTwitterSource creates a new Twitter mention source
func NewTwitterSource(cfg TwitterConfig, log *logger.Logger) *TwitterSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultTwitterBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "tokenguard/1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &TwitterSource{
		http:        &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		bearerToken: cfg.BearerToken,
		userAgent:   cfg.UserAgent,
		log:         log.With("component", "twitter_source"),
	}
}

// Platform returns the platform display name
func (s *TwitterSource) Platform() string {
	return "Twitter"
}

type twitterSearchResponse struct {
	Data []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Meta struct {
		ResultCount int `json:"result_count"`
	} `json:"meta"`
}

// CountMentions returns the number of recent tweets mentioning the query
func (s *TwitterSource) CountMentions(ctx context.Context, query string) (int, error) {
	if s.bearerToken == "" {
		return 0, errors.Wrap(errors.ErrMissingCredentials, "twitter bearer token not set")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(twitterMinResults))

	endpoint := s.baseURL + "/2/tweets/search/recent?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, errors.Wrap(err, "create twitter request")
	}

	req.Header.Set("Authorization", "Bearer "+s.bearerToken)
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "twitter request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.Wrapf(errors.ErrUpstream, "twitter returned status %d", resp.StatusCode)
	}

	var payload twitterSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, errors.Wrap(errors.ErrBadPayload, err.Error())
	}

	count := len(payload.Data)
	if count > ResultCap {
		count = ResultCap
	}

	s.log.Debugw("Counted Twitter mentions", "query", query, "count", count)

	return count, nil
}
