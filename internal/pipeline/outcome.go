// Package pipeline fetches the latest price of many symbols concurrently and
// turns the per-symbol results into a report and an error log.
package pipeline

import (
	"fmt"

	"stockvalues/internal/provider"
)

// Outcome is the result of looking up one symbol. Err is nil on success, in
// which case Price holds the last close.
type Outcome struct {
	Symbol provider.Symbol
	Price  float64
	Err    error
}

// Success returns a successful outcome for sym.
func Success(sym provider.Symbol, price float64) Outcome {
	return Outcome{Symbol: sym, Price: price}
}

// Failure returns a failed outcome for sym.
func Failure(sym provider.Symbol, reason error) Outcome {
	return Outcome{Symbol: sym, Err: reason}
}

// OK reports whether the lookup succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// FetchError is a provider call that failed outright.
type FetchError struct {
	Symbol provider.Symbol
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("Error fetching %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NoQuoteError is a provider answer without a usable quote.
type NoQuoteError struct {
	Symbol provider.Symbol
	Err    error
}

func (e *NoQuoteError) Error() string {
	return fmt.Sprintf("No quote data found for %s", e.Symbol)
}

func (e *NoQuoteError) Unwrap() error { return e.Err }

// TaskError is a fault inside the lookup task itself, e.g. a panic.
type TaskError struct {
	Symbol provider.Symbol
	Cause  any
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("Task error: %s: %v", e.Symbol, e.Cause)
}
