// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transport sends search requests over HTTP. It implements
// search.Transport with optional client-side pacing, retries on HTTP 429,
// structured logging, tracing and metrics.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/peoplesearch/internal/httputil"
	"github.com/pdiddy/peoplesearch/internal/logger"
	"github.com/pdiddy/peoplesearch/internal/metrics"
	"github.com/pdiddy/peoplesearch/pkg/search"
)

// DefaultTimeout bounds a single HTTP call when no client is supplied.
const DefaultTimeout = 30 * time.Second

// SpanName is the name of the span wrapping every send.
const SpanName = "peoplesearch.search"

const tracerName = "github.com/pdiddy/peoplesearch/pkg/transport"

// HTTP is a search.Transport over net/http.
type HTTP struct {
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	userAgent  string
	logger     *zap.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

var _ search.Transport = (*HTTP)(nil)

// Option configures an HTTP transport.
type Option func(*HTTP)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithTimeout sets the per-call timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) {
		if d > 0 {
			h.client = &http.Client{Timeout: d}
		}
	}
}

// WithQPS paces outgoing calls to at most qps per second. Zero disables
// pacing.
func WithQPS(qps float64) Option {
	return func(h *HTTP) {
		if qps > 0 {
			burst := max(int(qps), 1)
			h.limiter = rate.NewLimiter(rate.Limit(qps), burst)
		} else {
			h.limiter = nil
		}
	}
}

// WithMaxRetries retries calls answered with HTTP 429 up to n times. Zero
// disables retries.
func WithMaxRetries(n int) Option {
	return func(h *HTTP) { h.maxRetries = max(n, 0) }
}

// WithUserAgent overrides the User-Agent set by the request.
func WithUserAgent(ua string) Option {
	return func(h *HTTP) { h.userAgent = ua }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(h *HTTP) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMetrics records HTTP calls, retries and quota headers in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *HTTP) { h.metrics = m }
}

// WithTracerProvider takes spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(h *HTTP) {
		if tp != nil {
			h.tracer = tp.Tracer(tracerName)
		}
	}
}

// New returns an HTTP transport with a DefaultTimeout client, no pacing and
// no retries.
func New(opts ...Option) *HTTP {
	h := &HTTP{
		client: &http.Client{Timeout: DefaultTimeout},
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Send posts req.Form to req.URL and returns the status, body and headers.
// A non-2xx status is not an error here; the caller interprets it. Header
// names in the result are lower case.
func (h *HTTP) Send(ctx context.Context, req *search.TransportRequest) (*search.TransportResponse, error) {
	ctx, span := h.tracer.Start(ctx, SpanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("url.full", req.URL)),
	)
	defer span.End()

	resp, err := h.send(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 400 {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

func (h *HTTP) send(ctx context.Context, req *search.TransportRequest) (*search.TransportResponse, error) {
	if h.limiter != nil {
		if err := h.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, strings.NewReader(req.Form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}
	if h.userAgent != "" {
		httpReq.Header.Set("User-Agent", h.userAgent)
	}

	start := time.Now()
	var resp *http.Response
	if h.maxRetries > 0 {
		resp, err = httputil.DoWithRetry(logger.ContextWithLogger(ctx, h.logger), h.client, httpReq, h.maxRetries,
			func(int, time.Duration) { h.metrics.ObserveRetry() })
	} else {
		resp, err = h.client.Do(httpReq)
	}
	if err != nil {
		h.metrics.ObserveRequest(0)
		h.logger.Warn("search request failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("search API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.metrics.ObserveRequest(0)
		return nil, fmt.Errorf("reading search API response: %w", err)
	}

	out := &search.TransportResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     lowerHeaders(resp.Header),
	}
	h.metrics.ObserveRequest(resp.StatusCode)
	h.metrics.SetQuota(search.QuotaFromHeaders(out.Header))
	h.logger.Debug("search request completed",
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)
	return out, nil
}

// lowerHeaders flattens h, joining repeated values with ", ".
func lowerHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[strings.ToLower(k)] = strings.Join(v, ", ")
	}
	return out
}
