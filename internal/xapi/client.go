// Package xapi fetches profile data from twitterapi.io, consulting a
// response cache before every network call.
package xapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"profile-roast/internal/cache"
	"profile-roast/internal/metrics"
)

// DefaultBaseURL is the provider's API root.
const DefaultBaseURL = "https://api.twitterapi.io/twitter"

var (
	// ErrProvider is returned for non-2xx responses and non-success envelopes.
	ErrProvider = errors.New("provider request failed")
	// ErrDecode is returned when the response body is not the expected JSON.
	ErrDecode = errors.New("cannot decode provider response")
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Cache      cache.Cache
	Logger     *zap.Logger
}

// Client is the provider API client.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	cache   cache.Cache
	log     *zap.Logger
}

type envelope struct {
	Status string         `json:"status"`
	Msg    string         `json:"msg"`
	Data   map[string]any `json:"data"`
}

// NewClient builds a Client. A nil Cache means caching is disabled.
func NewClient(opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache(log)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  opts.APIKey,
		http:    hc,
		cache:   c,
		log:     log.Named("xapi"),
	}
}

// Cache returns the cache the client reads through.
func (c *Client) Cache() cache.Cache {
	return c.cache
}

// UserInfo returns the profile object for username.
func (c *Client) UserInfo(ctx context.Context, username string) (map[string]any, error) {
	key := cache.Key("user_info", username)
	params := url.Values{"userName": {username}}
	return c.cached(ctx, key, "user/info", params, zap.String("username", username))
}

// UserTweets returns one page of recent tweets for userID. An empty
// cursor requests the first page.
func (c *Client) UserTweets(ctx context.Context, userID, cursor string) (map[string]any, error) {
	key := cache.Key("user_tweets", userID, cursor)
	params := url.Values{"userId": {userID}, "cursor": {cursor}}
	return c.cached(ctx, key, "user/last_tweets", params, zap.String("user_id", userID))
}

// cached reads key from the cache and falls back to a live request on a
// miss. Cache failures are logged and never block the live request.
func (c *Client) cached(ctx context.Context, key, endpoint string, params url.Values, subject zap.Field) (map[string]any, error) {
	data, ok, err := c.cache.Get(key)
	if err != nil {
		c.log.Warn("cache read failed, fetching live", zap.String("key", key), zap.Error(err))
	}
	if ok {
		c.log.Info("served from cache", zap.String("endpoint", endpoint), subject)
		return data, nil
	}

	c.log.Info("cache miss, requesting provider", zap.String("endpoint", endpoint), subject)
	data, err = c.request(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(key, data); err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return data, nil
}

func (c *Client) request(ctx context.Context, endpoint string, params url.Values) (map[string]any, error) {
	data, err := c.do(ctx, endpoint, params)
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.ProviderRequests.WithLabelValues(endpoint, result).Inc()
	return data, err
}

func (c *Client) do(ctx context.Context, endpoint string, params url.Values) (map[string]any, error) {
	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProvider, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %w", ErrProvider, endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: status %d", ErrProvider, endpoint, resp.StatusCode)
	}

	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, endpoint, err)
	}
	if env.Status != "success" {
		return nil, fmt.Errorf("%w: %s: %s", ErrProvider, endpoint, env.Msg)
	}
	if env.Data == nil {
		env.Data = map[string]any{}
	}
	return env.Data, nil
}
