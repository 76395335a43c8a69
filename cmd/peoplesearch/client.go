// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"

	"github.com/pdiddy/peoplesearch/internal/cache"
	"github.com/pdiddy/peoplesearch/internal/history"
	"github.com/pdiddy/peoplesearch/pkg/client"
	"github.com/pdiddy/peoplesearch/pkg/transport"
	"github.com/pdiddy/peoplesearch/pkg/types"
)

// newClient builds a client from the loaded configuration. The returned
// function releases the history database and the cache connection.
func newClient(ctx context.Context, flags types.SearchFlags) (*client.Client, func(), error) {
	cfg := app.cfg
	cleanup := func() {}

	tr := transport.New(
		transport.WithTimeout(cfg.HTTP.Timeout),
		transport.WithMaxRetries(cfg.HTTP.MaxRetries),
		transport.WithQPS(cfg.HTTP.QPS),
		transport.WithUserAgent(cfg.HTTP.UserAgent),
		transport.WithLogger(app.log),
		transport.WithMetrics(app.metrics),
	)
	opts := []client.Option{
		client.WithConfiguration(flags.Configuration()),
		client.WithTransport(tr),
		client.WithStrict(flags.Strict),
		client.WithConcurrency(cfg.HTTP.Concurrency),
		client.WithLogger(app.log),
		client.WithMetrics(app.metrics),
	}

	c, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	if c != nil {
		opts = append(opts, client.WithCache(c, cfg.Cache.TTL))
		if closer, ok := c.(io.Closer); ok {
			cleanup = func() { closer.Close() }
		}
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, client.WithRecorder(store))
		closeCache := cleanup
		cleanup = func() {
			store.Close()
			closeCache()
		}
	}
	return client.New(opts...), cleanup, nil
}
