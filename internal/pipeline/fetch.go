package pipeline

import (
	"context"
	"fmt"
	"math"

	"stockvalues/internal/provider"
)

// Interval is the quote interval requested from the provider.
const Interval = "1d"

// Fetch asks p for the latest quote of sym exactly once and folds the answer
// into an Outcome.
func Fetch(ctx context.Context, p provider.Provider, sym provider.Symbol) Outcome {
	return fetchInterval(ctx, p, sym, Interval)
}

func fetchInterval(ctx context.Context, p provider.Provider, sym provider.Symbol, interval string) Outcome {
	resp, err := p.FetchLatest(ctx, sym, interval)
	if err != nil {
		return Failure(sym, &FetchError{Symbol: sym, Err: err})
	}
	if resp == nil {
		return Failure(sym, &NoQuoteError{Symbol: sym, Err: provider.ErrNoQuotes})
	}
	q, err := resp.LastQuote()
	if err != nil {
		return Failure(sym, &NoQuoteError{Symbol: sym, Err: err})
	}
	if math.IsNaN(q.Close) || math.IsInf(q.Close, 0) {
		return Failure(sym, &NoQuoteError{Symbol: sym, Err: fmt.Errorf("non-finite close %v", q.Close)})
	}
	return Success(sym, q.Close)
}
