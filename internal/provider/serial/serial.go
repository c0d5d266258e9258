// Package serial funnels concurrent lookups through a single goroutine for
// providers that cannot be called from several goroutines at once.
package serial

import (
	"context"
	"errors"
	"sync"

	"stockvalues/internal/provider"
)

// ErrClosed is returned for lookups issued after Close.
var ErrClosed = errors.New("serial provider closed")

type request struct {
	ctx      context.Context
	symbol   provider.Symbol
	interval string
	reply    chan result
}

type result struct {
	resp  provider.Response
	err   error
	panic any
}

// Provider wraps a non-reentrant provider behind a request queue consumed by
// one goroutine. Calls are served in arrival order.
type Provider struct {
	P provider.Provider

	reqs      chan request
	done      chan struct{}
	closeOnce sync.Once
}

// New starts the consumer goroutine. Call Close to stop it.
func New(p provider.Provider) *Provider {
	s := &Provider{
		P:    p,
		reqs: make(chan request),
		done: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Provider) Name() string { return s.P.Name() }

// FetchLatest queues the lookup and waits for its answer. A panic in the
// wrapped provider is re-raised in the caller's goroutine.
func (s *Provider) FetchLatest(ctx context.Context, symbol provider.Symbol, interval string) (provider.Response, error) {
	req := request{ctx: ctx, symbol: symbol, interval: interval, reply: make(chan result, 1)}
	select {
	case s.reqs <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return nil, ErrClosed
	}
	r := <-req.reply
	if r.panic != nil {
		panic(r.panic)
	}
	return r.resp, r.err
}

// Close stops the consumer. Lookups already queued still complete.
func (s *Provider) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *Provider) loop() {
	for {
		select {
		case req := <-s.reqs:
			req.reply <- s.call(req)
		case <-s.done:
			return
		}
	}
}

func (s *Provider) call(req request) (r result) {
	defer func() {
		if p := recover(); p != nil {
			r = result{panic: p}
		}
	}()
	resp, err := s.P.FetchLatest(req.ctx, req.symbol, req.interval)
	return result{resp: resp, err: err}
}
