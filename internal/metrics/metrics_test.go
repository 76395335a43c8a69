// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/peoplesearch/pkg/search"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", want: StatusOK},
		{name: "user error", err: &search.APIError{HTTPStatusCode: 403}, want: StatusUserError},
		{name: "provider error", err: &search.APIError{HTTPStatusCode: 503}, want: StatusProviderError},
		{name: "no response", err: &search.APIError{}, want: StatusTransportError},
		{name: "malformed", err: search.ErrMalformedResponse, want: StatusMalformed},
		{name: "local validation", err: search.ErrMissingAPIKey, want: StatusInvalid},
		{name: "context", err: context.Canceled, want: StatusInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.ObserveSearch(nil, time.Millisecond)
	m.ObserveSearch(nil, time.Millisecond)
	m.ObserveSearch(&search.APIError{HTTPStatusCode: 400}, time.Millisecond)
	m.ObserveRequest(200)
	m.ObserveRequest(0)
	m.ObserveRetry()
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.searches.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.searches.WithLabelValues(StatusUserError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.retries))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
}

func TestSetQuota(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.SetQuota(search.QuotaFromHeaders(map[string]string{
		"X-QPS-Allotted":          "10",
		"x-apikey-quota-current": "0",
	}))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.quota.WithLabelValues("qps_allotted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.quota.WithLabelValues("quota_current")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.quota))
}

func TestNewReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	require.NoError(t, err)
	second, err := New(reg)
	require.NoError(t, err)

	first.ObserveRetry()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.retries))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSearch(errors.New("x"), time.Second)
		m.ObserveRequest(500)
		m.ObserveRetry()
		m.ObserveCache(true)
		m.SetQuota(search.Quota{})
	})
}
