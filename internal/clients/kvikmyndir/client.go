package kvikmyndir

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultBaseURL  = "https://api.kvikmyndir.is"
	DefaultTokenTTL = 24 * time.Hour

	authEndpoint = "/authenticate"
	tokenHeader  = "x-access-token"
)

type Credentials struct {
	Username string
	Password string
}

type accessToken struct {
	value     string
	expiresAt time.Time
}

// Client talks to the kvikmyndir.is listings API. It owns the access token
// cache; all methods are safe for concurrent use.
type Client struct {
	log     *slog.Logger
	baseURL string
	creds   Credentials
	http    *http.Client
	ttl     time.Duration
	now     func() time.Time

	mu     sync.Mutex
	token  accessToken
	flight singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithClock replaces time.Now for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func New(log *slog.Logger, baseURL string, creds Credentials, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http:    &http.Client{Timeout: 10 * time.Second},
		ttl:     DefaultTokenTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statusText strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" ")
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
