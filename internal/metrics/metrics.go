// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics holds the prometheus collectors for searches, transport
// calls, cache lookups and the quota the API reports.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/peoplesearch/pkg/search"
)

const namespace = "peoplesearch"

// Search outcomes used as the status label.
const (
	StatusOK             = "ok"
	StatusInvalid        = "invalid"
	StatusUserError      = "user_error"
	StatusProviderError  = "provider_error"
	StatusTransportError = "transport_error"
	StatusMalformed      = "malformed"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	searches     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	requests     *prometheus.CounterVec
	retries      prometheus.Counter
	cacheLookups *prometheus.CounterVec
	quota        *prometheus.GaugeVec
}

// New registers the collectors on reg. Collectors already registered by an
// earlier call are reused.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Searches by outcome.",
		}, []string{"status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search latency in seconds, cache hits included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP calls to the search API by status code.",
		}, []string{"code"}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "retries_total",
			Help:      "Requests repeated after HTTP 429.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		quota: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quota",
			Help:      "Last quota values reported in response headers.",
		}, []string{"name"}),
	}
	if err := registerOrReuse(reg, &m.searches); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.requests); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.retries); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.cacheLookups); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.quota); err != nil {
		return nil, err
	}
	return m, nil
}

func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("registering metric: %w", err)
	}
	return nil
}

// Status classifies the outcome of a search.
func Status(err error) string {
	if err == nil {
		return StatusOK
	}
	var apiErr *search.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 0:
		return StatusTransportError
	case errors.As(err, &apiErr) && apiErr.IsUserError():
		return StatusUserError
	case errors.As(err, &apiErr):
		return StatusProviderError
	case errors.Is(err, search.ErrMalformedResponse):
		return StatusMalformed
	default:
		return StatusInvalid
	}
}

// ObserveSearch counts one search and records its latency.
func (m *Metrics) ObserveSearch(err error, d time.Duration) {
	if m == nil {
		return
	}
	status := Status(err)
	m.searches.WithLabelValues(status).Inc()
	m.duration.WithLabelValues(status).Observe(d.Seconds())
}

// ObserveRequest counts one HTTP call; code 0 means no response.
func (m *Metrics) ObserveRequest(code int) {
	if m == nil {
		return
	}
	label := "none"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	m.requests.WithLabelValues(label).Inc()
}

// ObserveRetry counts one retried request.
func (m *Metrics) ObserveRetry() {
	if m == nil {
		return
	}
	m.retries.Inc()
}

// ObserveCache counts one cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// SetQuota publishes the quota values present in q.
func (m *Metrics) SetQuota(q search.Quota) {
	if m == nil {
		return
	}
	for name, v := range map[string]*int{
		"qps_allotted":        q.QPSAllotted,
		"qps_current":         q.QPSCurrent,
		"qps_live_allotted":   q.QPSLiveAllotted,
		"qps_live_current":    q.QPSLiveCurrent,
		"qps_demo_allotted":   q.QPSDemoAllotted,
		"qps_demo_current":    q.QPSDemoCurrent,
		"quota_allotted":      q.QuotaAllotted,
		"quota_current":       q.QuotaCurrent,
		"demo_usage_allotted": q.DemoUsageAllotted,
		"demo_usage_current":  q.DemoUsageCurrent,
	} {
		if v != nil {
			m.quota.WithLabelValues(name).Set(float64(*v))
		}
	}
}
