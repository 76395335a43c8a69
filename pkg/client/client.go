// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client is the convenience surface over package search. A Client
// builds requests from search.Params, sends them through a Transport and can
// serve repeats from a response cache and record every search.
package client

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/peoplesearch/internal/cache"
	"github.com/pdiddy/peoplesearch/internal/metrics"
	"github.com/pdiddy/peoplesearch/pkg/search"
	"github.com/pdiddy/peoplesearch/pkg/transport"
)

const defaultConcurrency = 4

// Cache stores raw response bodies by request key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// Recorder keeps a log of sent searches. Exactly one of resp and err is set.
type Recorder interface {
	Record(ctx context.Context, req *search.Request, resp *search.Response, err error) error
}

// Client sends searches. It is safe for concurrent use.
type Client struct {
	cfg         *search.Configuration
	transport   search.Transport
	cache       Cache
	cacheTTL    time.Duration
	recorder    Recorder
	strict      bool
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// New returns a client using an HTTP transport with default settings unless
// WithTransport says otherwise.
func New(opts ...Option) *Client {
	c := &Client{
		strict:      true,
		concurrency: defaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.transport == nil {
		c.transport = transport.New(transport.WithLogger(c.logger), transport.WithMetrics(c.metrics))
	}
	return c
}

// Search builds a request from p and sends it.
func (c *Client) Search(ctx context.Context, p search.Params) (*search.Response, error) {
	req, err := search.NewRequest(p, c.cfg)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, req)
}

// Do sends req, or answers it from the cache. Requests without their own
// configuration use the client's.
func (c *Client) Do(ctx context.Context, req *search.Request) (*search.Response, error) {
	if req.Configuration == nil && c.cfg != nil {
		r := *req
		r.Configuration = c.cfg
		req = &r
	}
	start := time.Now()
	resp, cached, err := c.do(ctx, req)
	c.metrics.ObserveSearch(err, time.Since(start))

	fields := []zap.Field{zap.Duration("duration", time.Since(start)), zap.Bool("cache_hit", cached)}
	if err != nil {
		c.logger.Warn("search failed", append(fields, zap.Error(err))...)
	} else {
		c.logger.Info("search completed", append(fields,
			zap.String("search_id", resp.SearchID),
			zap.Int("status", resp.HTTPStatusCode),
			zap.Int("persons_count", resp.PersonsCount),
		)...)
	}
	return resp, err
}

func (c *Client) do(ctx context.Context, req *search.Request) (*search.Response, bool, error) {
	if err := req.Validate(c.strict); err != nil {
		return nil, false, err
	}

	var key string
	if c.cache != nil {
		form, err := req.Params()
		if err != nil {
			return nil, false, err
		}
		key = cache.Key(req.URL(), form)
		if resp, ok := c.lookup(ctx, key); ok {
			return resp, true, nil
		}
	}

	resp, err := req.Send(ctx, c.transport, c.strict)
	if c.recorder != nil {
		if rerr := c.recorder.Record(ctx, req, resp, err); rerr != nil {
			c.logger.Warn("recording search failed", zap.Error(rerr))
		}
	}
	if err != nil {
		return nil, false, err
	}

	if c.cache != nil && len(resp.Raw) > 0 {
		if serr := c.cache.Set(ctx, key, resp.Raw, c.cacheTTL); serr != nil {
			c.logger.Warn("caching response failed", zap.Error(serr))
		}
	}
	return resp, false, nil
}

// lookup serves key from the cache. Cache failures and undecodable entries
// count as misses.
func (c *Client) lookup(ctx context.Context, key string) (*search.Response, bool) {
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("cache lookup failed", zap.Error(err))
	}
	if err != nil || !ok {
		c.metrics.ObserveCache(false)
		return nil, false
	}
	resp, err := search.Interpret(&search.TransportResponse{StatusCode: 200, Body: body}, nil)
	if err != nil {
		c.logger.Warn("discarding cached response", zap.Error(err))
		c.metrics.ObserveCache(false)
		return nil, false
	}
	c.metrics.ObserveCache(true)
	return resp, true
}

// Result is the outcome of one search in a batch.
type Result struct {
	Params   search.Params
	Response *search.Response
	Err      error
}

// SearchMany runs the searches with bounded concurrency and returns one
// Result per input, in input order. A failed search does not stop the
// others; the returned error is only set when ctx ends first.
func (c *Client) SearchMany(ctx context.Context, params []search.Params) ([]Result, error) {
	results := make([]Result, len(params))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, p := range params {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Params: p, Err: err}
				return nil
			}
			resp, err := c.Search(gctx, p)
			results[i] = Result{Params: p, Response: resp, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
