package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"tokenguard/pkg/errors"
	"tokenguard/pkg/logger"
)

// Reddit API endpoints. The OAuth host issues tokens; the API host
// serves authenticated requests.
const (
	DefaultRedditAuthURL = "https://www.reddit.com"
	DefaultRedditAPIURL  = "https://oauth.reddit.com"
)

// RedditSource counts recent Reddit posts mentioning a query. It uses
// the application-only OAuth flow (client credentials) and refreshes
// the token when it expires.
type RedditSource struct {
	http         *http.Client
	authURL      string
	apiURL       string
	clientID     string
	clientSecret string
	userAgent    string
	log          *logger.Logger

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// RedditConfig contains Reddit source configuration
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	AuthURL      string // defaults to DefaultRedditAuthURL
	APIURL       string // defaults to DefaultRedditAPIURL
	Timeout      time.Duration
}

// NewRedditSource creates a new Reddit mention source
func NewRedditSource(cfg RedditConfig, log *logger.Logger) *RedditSource {
	if cfg.AuthURL == "" {
		cfg.AuthURL = DefaultRedditAuthURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultRedditAPIURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "tokenguard/1.0"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &RedditSource{
		http:         &http.Client{Timeout: cfg.Timeout},
		authURL:      cfg.AuthURL,
		apiURL:       cfg.APIURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		userAgent:    cfg.UserAgent,
		log:          log.With("component", "reddit_source"),
	}
}

// Platform returns the platform display name
func (s *RedditSource) Platform() string {
	return "Reddit"
}

type redditOAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

type redditListingResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				Title     string `json:"title"`
				Subreddit string `json:"subreddit"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// CountMentions returns the number of recent posts mentioning the query
func (s *RedditSource) CountMentions(ctx context.Context, query string) (int, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return 0, errors.Wrap(errors.ErrMissingCredentials, "reddit credentials not set")
	}

	token, err := s.ensureToken(ctx)
	if err != nil {
		return 0, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(ResultCap))

	endpoint := s.apiURL + "/search.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, errors.Wrap(err, "create reddit request")
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "reddit request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.Wrapf(errors.ErrUpstream, "reddit returned status %d", resp.StatusCode)
	}

	var listing redditListingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return 0, errors.Wrap(errors.ErrBadPayload, err.Error())
	}

	count := len(listing.Data.Children)
	if count > ResultCap {
		count = ResultCap
	}

	s.log.Debugw("Counted Reddit mentions", "query", query, "count", count)

	return count, nil
}

// ensureToken returns a valid OAuth token, refreshing it when expired.
func (s *RedditSource) ensureToken(ctx context.Context) (string, error) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.authURL+"/api/v1/access_token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", errors.Wrap(err, "create oauth request")
	}

	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "reddit oauth request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(errors.ErrUpstream, "reddit oauth returned status %d", resp.StatusCode)
	}

	var oauthResp redditOAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", errors.Wrap(errors.ErrBadPayload, err.Error())
	}

	s.accessToken = oauthResp.AccessToken
	// Refresh one minute early so in-flight requests never race expiry.
	s.tokenExpiry = time.Now().Add(time.Duration(oauthResp.ExpiresIn)*time.Second - time.Minute)

	s.log.Debugw("Reddit OAuth token refreshed", "expires_in", oauthResp.ExpiresIn)

	return s.accessToken, nil
}
