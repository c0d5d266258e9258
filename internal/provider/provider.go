package provider

import (
	"context"
	"errors"
	"time"
)

// Symbol identifies a tradable instrument, e.g. "AAPL" or "SHOP.TO".
// It is not validated beyond what the provider reports.
type Symbol string

// Quote is one price record returned by a provider. Only Close is consumed
// by the report.
type Quote struct {
	Symbol    Symbol    `json:"symbol"`
	Close     float64   `json:"close"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrNoQuotes is returned by Response.LastQuote when the response holds no
// usable quote record.
var ErrNoQuotes = errors.New("no quotes in response")

// Response is a provider's answer to a single lookup.
type Response interface {
	LastQuote() (Quote, error)
}

// Provider looks up the most recent quotes for a symbol over interval
// (e.g. "1d"). Implementations must be safe for concurrent use.
//
//go:generate mockgen -package=pipeline_test -destination=../pipeline/mock_provider_test.go -source=provider.go Provider,Response
type Provider interface {
	Name() string
	FetchLatest(ctx context.Context, symbol Symbol, interval string) (Response, error)
}
