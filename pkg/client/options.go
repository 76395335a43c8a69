// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/peoplesearch/internal/metrics"
	"github.com/pdiddy/peoplesearch/pkg/search"
)

// Option configures the Client.
type Option interface {
	apply(*Client)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*Client)

func (f optionFunc) apply(c *Client) { f(c) }

// WithConfiguration sets the configuration used for every request. Without
// it the client uses search.DefaultConfiguration.
func WithConfiguration(cfg *search.Configuration) Option {
	return optionFunc(func(c *Client) { c.cfg = cfg })
}

// WithTransport replaces the default HTTP transport.
func WithTransport(t search.Transport) Option {
	return optionFunc(func(c *Client) {
		if t != nil {
			c.transport = t
		}
	})
}

// WithCache stores successful response bodies in cache for ttl. A zero ttl
// keeps entries until the cache evicts them.
func WithCache(cache Cache, ttl time.Duration) Option {
	return optionFunc(func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	})
}

// WithRecorder records every sent search, failed ones included.
func WithRecorder(r Recorder) Option {
	return optionFunc(func(c *Client) { c.recorder = r })
}

// WithStrict turns the full local validation on or off. It is on by default.
func WithStrict(strict bool) Option {
	return optionFunc(func(c *Client) { c.strict = strict })
}

// WithConcurrency bounds the parallel searches SearchMany runs. Defaults to 4.
func WithConcurrency(n int) Option {
	return optionFunc(func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	})
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *Client) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithMetrics counts searches and cache lookups in m.
func WithMetrics(m *metrics.Metrics) Option {
	return optionFunc(func(c *Client) { c.metrics = m })
}
