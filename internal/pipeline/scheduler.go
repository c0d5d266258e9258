package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"stockvalues/internal/provider"
)

// Scheduler fans out one lookup per symbol and joins all of them.
//
// The provider is shared by every task and must be safe for concurrent use;
// wrap it with serial.New when it is not. The scheduler imposes no timeout of
// its own: a provider that never returns blocks Run.
type Scheduler struct {
	// MaxConcurrency caps in-flight lookups. Zero runs every lookup at once.
	MaxConcurrency int
	// Interval is passed to the provider. Empty means Interval.
	Interval string
	Logger   *slog.Logger
}

// Run looks up every symbol and returns one Outcome per symbol, in input
// order regardless of completion order. A failing or panicking lookup never
// stops the others.
func (s *Scheduler) Run(ctx context.Context, p provider.Provider, symbols []provider.Symbol) []Outcome {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := s.Interval
	if interval == "" {
		interval = Interval
	}

	// Task i owns slot i, so the slots need no lock.
	outcomes := make([]Outcome, len(symbols))

	var g errgroup.Group
	if s.MaxConcurrency > 0 {
		g.SetLimit(s.MaxConcurrency)
	}
	start := time.Now()
	for i, sym := range symbols {
		g.Go(func() error {
			outcomes[i] = runTask(ctx, logger, p, sym, interval)
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("lookups finished",
		"provider", p.Name(),
		"symbols", len(symbols),
		"elapsed", time.Since(start),
	)
	return outcomes
}

// Run looks up symbols with a default Scheduler.
func Run(ctx context.Context, p provider.Provider, symbols []provider.Symbol) []Outcome {
	var s Scheduler
	return s.Run(ctx, p, symbols)
}

func runTask(ctx context.Context, logger *slog.Logger, p provider.Provider, sym provider.Symbol, interval string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("lookup task panicked", "symbol", sym, "panic", r)
			out = Failure(sym, &TaskError{Symbol: sym, Cause: r})
		}
	}()

	start := time.Now()
	out = fetchInterval(ctx, p, sym, interval)
	if out.OK() {
		logger.Debug("quote fetched", "symbol", sym, "close", out.Price, "elapsed", time.Since(start))
	} else {
		logger.Debug("quote failed", "symbol", sym, "error", out.Err, "elapsed", time.Since(start))
	}
	return out
}
