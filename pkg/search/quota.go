// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strconv"
	"strings"
	"time"
)

// QuotaTimeLayout is the layout of the x-quota-reset and x-demo-usage-expiry
// headers, e.g. "Tuesday, May 02, 2017 12:00:00 AM UTC".
const QuotaTimeLayout = "Monday, January 02, 2006 15:04:05 PM MST"

// Quota is the rate and usage information the API reports in response
// headers. A nil field means the header was absent or unparseable.
type Quota struct {
	QPSAllotted       *int       `json:"qps_allotted,omitempty" yaml:"qps_allotted,omitempty"`
	QPSCurrent        *int       `json:"qps_current,omitempty" yaml:"qps_current,omitempty"`
	QPSLiveAllotted   *int       `json:"qps_live_allotted,omitempty" yaml:"qps_live_allotted,omitempty"`
	QPSLiveCurrent    *int       `json:"qps_live_current,omitempty" yaml:"qps_live_current,omitempty"`
	QPSDemoAllotted   *int       `json:"qps_demo_allotted,omitempty" yaml:"qps_demo_allotted,omitempty"`
	QPSDemoCurrent    *int       `json:"qps_demo_current,omitempty" yaml:"qps_demo_current,omitempty"`
	QuotaAllotted     *int       `json:"quota_allotted,omitempty" yaml:"quota_allotted,omitempty"`
	QuotaCurrent      *int       `json:"quota_current,omitempty" yaml:"quota_current,omitempty"`
	QuotaReset        *time.Time `json:"quota_reset,omitempty" yaml:"quota_reset,omitempty"`
	DemoUsageAllotted *int       `json:"demo_usage_allotted,omitempty" yaml:"demo_usage_allotted,omitempty"`
	DemoUsageCurrent  *int       `json:"demo_usage_current,omitempty" yaml:"demo_usage_current,omitempty"`
	DemoUsageExpiry   *time.Time `json:"demo_usage_expiry,omitempty" yaml:"demo_usage_expiry,omitempty"`
}

// QuotaFromHeaders reads the quota headers. Header names are matched
// case-insensitively.
func QuotaFromHeaders(headers map[string]string) Quota {
	h := make(map[string]string, len(headers))
	for k, v := range headers {
		h[strings.ToLower(k)] = strings.TrimSpace(v)
	}
	return Quota{
		QPSAllotted:       headerInt(h, "x-qps-allotted"),
		QPSCurrent:        headerInt(h, "x-qps-current"),
		QPSLiveAllotted:   headerInt(h, "x-qps-live-allotted"),
		QPSLiveCurrent:    headerInt(h, "x-qps-live-current"),
		QPSDemoAllotted:   headerInt(h, "x-qps-demo-allotted"),
		QPSDemoCurrent:    headerInt(h, "x-qps-demo-current"),
		QuotaAllotted:     headerInt(h, "x-apikey-quota-allotted"),
		QuotaCurrent:      headerInt(h, "x-apikey-quota-current"),
		QuotaReset:        headerTime(h, "x-quota-reset"),
		DemoUsageAllotted: headerInt(h, "x-demo-usage-allotted"),
		DemoUsageCurrent:  headerInt(h, "x-demo-usage-current"),
		DemoUsageExpiry:   headerTime(h, "x-demo-usage-expiry"),
	}
}

func headerInt(h map[string]string, key string) *int {
	v, ok := h[key]
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func headerTime(h map[string]string, key string) *time.Time {
	v, ok := h[key]
	if !ok || v == "" {
		return nil
	}
	t, err := time.Parse(QuotaTimeLayout, v)
	if err != nil {
		return nil
	}
	return &t
}
