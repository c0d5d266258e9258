package yahoo

import (
	"fmt"
	"net/http"
	"net/url"
)

const (
	// defaultBaseURL is the Yahoo Finance query host.
	defaultBaseURL = "https://query1.finance.yahoo.com"

	// defaultUserAgent is sent when no User-Agent is configured. The chart
	// endpoint rejects requests without a browser-like agent.
	defaultUserAgent = "Mozilla/5.0 (compatible; stockvalues/0.1)"
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Yahoo Finance chart API. It only holds
// configuration fixed at construction time, so one Client may be shared by
// any number of goroutines.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient is the HTTP client.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
}

// Option is a configuration option for the Yahoo client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.header.Set("User-Agent", userAgent)
		}
	}
}

// New creates a new Yahoo Finance client.
func New(options ...Option) (*Client, error) {
	var client = &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
	}
	client.header.Set("User-Agent", defaultUserAgent)
	client.header.Set("Accept", "application/json")
	for _, option := range options {
		option(client)
	}

	u, err := url.Parse(client.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base url: %q is not absolute", client.baseURL)
	}
	if client.httpClient == nil {
		return nil, fmt.Errorf("nil http client")
	}
	return client, nil
}

// Name identifies the provider in logs.
func (c *Client) Name() string { return "Yahoo" }
