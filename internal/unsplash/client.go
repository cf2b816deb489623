package unsplash

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/wallflower/internal/browse"
	"github.com/five82/wallflower/internal/wallpaper"
)

// Ensure Client satisfies browse.Source at compile time.
var _ browse.Source = (*Client)(nil)

// Client talks to the Unsplash REST API.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	accessKey   string
	userAgent   string
	orientation string
	randomQuery string
	log         *slog.Logger
}

const (
	DefaultBaseURL     = "https://api.unsplash.com"
	defaultUserAgent   = "wallflower/0.1"
	defaultOrientation = "portrait"
	defaultQuery       = "wallpaper"
	requestTimeout     = 10 * time.Second
	maxRandomCount     = 30
)

// Options tune a Client. Zero values select the defaults.
type Options struct {
	Orientation string
	RandomQuery string
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// NewClient builds a Client for baseURL using the given access key.
func NewClient(baseURL, accessKey string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	orientation := strings.TrimSpace(opts.Orientation)
	if orientation == "" {
		orientation = defaultOrientation
	}
	query := strings.TrimSpace(opts.RandomQuery)
	if query == "" {
		query = defaultQuery
	}
	return &Client{
		baseURL:     base,
		http:        httpClient,
		accessKey:   strings.TrimSpace(accessKey),
		userAgent:   defaultUserAgent,
		orientation: orientation,
		randomQuery: query,
		log:         logger.With("component", "unsplash"),
	}, nil
}

// FetchRandom returns count random wallpapers. Unsplash does not page random
// photos, so page is only recorded in the log; each call yields a fresh set.
func (c *Client) FetchRandom(ctx context.Context, count, page int) ([]wallpaper.Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if count <= 0 {
		count = 1
	}
	if count > maxRandomCount {
		count = maxRandomCount
	}
	values := url.Values{}
	values.Set("count", strconv.Itoa(count))
	values.Set("query", c.randomQuery)
	values.Set("orientation", c.orientation)

	rel := &url.URL{Path: "/photos/random", RawQuery: values.Encode()}
	var photos []Photo
	if err := c.doURL(ctx, rel, &photos, "page", page); err != nil {
		return nil, err
	}
	return Records(photos), nil
}

// Search returns one page of results for query.
func (c *Client) Search(ctx context.Context, query string, perPage, page int) ([]wallpaper.Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query required")
	}
	if page < 1 {
		page = 1
	}
	values := url.Values{}
	values.Set("query", query)
	if perPage > 0 {
		values.Set("per_page", strconv.Itoa(perPage))
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("orientation", c.orientation)

	rel := &url.URL{Path: "/search/photos", RawQuery: values.Encode()}
	var payload SearchResponse
	if err := c.doURL(ctx, rel, &payload); err != nil {
		return nil, err
	}
	return Records(payload.Results), nil
}

// doURL performs a GET and decodes the JSON body into dest. Every failure
// wraps wallpaper.ErrNetwork.
func (c *Client) doURL(ctx context.Context, rel *url.URL, dest any, logAttrs ...any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", wallpaper.ErrNetwork, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", "v1")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.accessKey != "" {
		req.Header.Set("Authorization", "Client-ID "+c.accessKey)
	}

	logger := c.log.With("request_id", requestID, "path", rel.Path)
	logger.Debug("api request", logAttrs...)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("api request failed", "error", err)
		return fmt.Errorf("%w: execute request: %v", wallpaper.ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("api returned error status", "status", resp.StatusCode, "elapsed", time.Since(start))
		return fmt.Errorf("%w: api %s returned status %d", wallpaper.ErrNetwork, rel.Path, resp.StatusCode)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", wallpaper.ErrNetwork, err)
	}
	logger.Debug("api response", "status", resp.StatusCode, "elapsed", time.Since(start))
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
