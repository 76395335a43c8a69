// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/peoplesearch/pkg/containers"
)

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

const fullResponse = `{
	"@http_status_code": 200,
	"@visible_sources": 3,
	"@available_sources": 7,
	"@search_id": "1507091034523545731",
	"@persons_count": 1,
	"warnings": ["Parameter 'x' was ignored"],
	"query": {"names": [{"first": "Clark", "last": "Kent"}]},
	"person": {
		"@id": "P1",
		"@match": 1,
		"names": [{"first": "Clark", "last": "Kent"}],
		"emails": [{"address": "c@example.com"}],
		"phones": [{"country_code": 1, "number": 9785550145}],
		"jobs": [{"title": "Reporter"}],
		"relationships": [{"@type": "family", "names": [{"first": "Martha"}]}],
		"gender": {"content": "male"},
		"dob": {"date_range": {"start": "1980-01-01", "end": "1980-12-31"}}
	},
	"sources": [
		{"@id": "s1", "@domain": "a.example", "@category": "news", "@match": 1},
		{"@id": "s2", "@domain": "b.example", "@category": "news", "@match": 0.5},
		{"@id": "s3", "@domain": "a.example", "@category": "social", "@match": 1}
	],
	"available_data": {"premium": {"jobs": 4}},
	"match_requirements": "name",
	"source_category_requirements": "news"
}`

// --- decoding ---

func TestResponseEndToEnd(t *testing.T) {
	r, err := ResponseFromWire(decodeJSON(t, `{"@http_status_code":200,"person":{"names":[{"first":"Clark","last":"Kent"}],"emails":[{"address":"c@example.com"}]}}`), nil)
	require.NoError(t, err)

	require.NotNil(t, r.Name())
	assert.Equal(t, "Kent", r.Name().Last)
	require.NotNil(t, r.Email())
	assert.Equal(t, "c@example.com", r.Email().Address)
	assert.Equal(t, 1, r.PersonsCount)
	assert.Equal(t, 200, r.HTTPStatusCode)
}

func TestResponseFromWire(t *testing.T) {
	r, err := ResponseFromWire(decodeJSON(t, fullResponse), map[string]string{"X-QPS-Allotted": "10"})
	require.NoError(t, err)

	assert.Equal(t, 3, r.VisibleSources)
	assert.Equal(t, 7, r.AvailableSources)
	assert.Equal(t, "1507091034523545731", r.SearchID)
	assert.Equal(t, []string{"Parameter 'x' was ignored"}, r.Warnings)
	require.NotNil(t, r.Query)
	assert.Equal(t, "Clark", r.Query.Names[0].First)
	assert.Equal(t, "P1", r.Person.ID)
	assert.Len(t, r.Sources, 3)
	assert.Equal(t, 4, r.AvailableData.Premium.Jobs)
	assert.Equal(t, "name", r.MatchRequirements)
	assert.Equal(t, "news", r.SourceCategoryRequirements)
	require.NotNil(t, r.Quota.QPSAllotted)
	assert.Equal(t, 10, *r.Quota.QPSAllotted)

	assert.Equal(t, int64(9785550145), r.Phone().Number)
	assert.Equal(t, "Reporter", r.Job().Title)
	assert.Equal(t, "Martha", r.Relationship().String())
	assert.Equal(t, "Male", r.Gender().String())
	assert.Equal(t, 1980, r.DOB().DateRange.Start.Year())
	assert.Nil(t, r.Address())
	assert.Nil(t, r.Vehicle())
	assert.Nil(t, r.Image())
}

func TestResponseAccessorsWithoutPerson(t *testing.T) {
	r := &Response{}
	assert.Nil(t, r.Name())
	assert.Nil(t, r.Email())
	assert.Nil(t, r.DOB())
	assert.Nil(t, r.Gender())
	assert.Nil(t, r.Relationship())
}

func TestPersonsCount(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"explicit", `{"@persons_count": 5, "possible_persons": [{}, {}]}`, 5},
		{"person present", `{"person": {"names": [{"first": "Clark"}]}}`, 1},
		{"possible persons", `{"possible_persons": [{"@id": "a"}, {"@id": "b"}, {"@id": "c"}]}`, 3},
		{"nothing", `{}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ResponseFromWire(decodeJSON(t, tt.body), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.PersonsCount)
		})
	}
}

func TestResponseToWireRoundTrip(t *testing.T) {
	first, err := ResponseFromWire(decodeJSON(t, fullResponse), nil)
	require.NoError(t, err)

	data, err := json.Marshal(first.ToWire())
	require.NoError(t, err)
	assert.JSONEq(t, fullResponse, string(data))
}

// --- grouping ---

func TestGroupSources(t *testing.T) {
	r, err := ResponseFromWire(decodeJSON(t, fullResponse), nil)
	require.NoError(t, err)

	byDomain := r.GroupSourcesByDomain()
	require.Len(t, byDomain["a.example"], 2)
	assert.Equal(t, "s1", byDomain["a.example"][0].ID)
	assert.Equal(t, "s3", byDomain["a.example"][1].ID)
	assert.Len(t, byDomain["b.example"], 1)

	byCategory := r.GroupSourcesByCategory()
	assert.Len(t, byCategory["news"], 2)
	assert.Len(t, byCategory["social"], 1)

	byMatch := r.GroupSourcesByMatch()
	assert.Len(t, byMatch[1.0], 2)
	assert.Len(t, byMatch[0.5], 1)

	byPremium := GroupSources(r, func(s *containers.Source) bool { return s.Premium })
	assert.Len(t, byPremium[false], 3)
}

// --- errors and quota ---

func TestAPIErrorClassification(t *testing.T) {
	tests := []struct {
		status   int
		user     bool
		provider bool
	}{
		{400, true, false},
		{403, true, false},
		{499, true, false},
		{500, false, true},
		{0, false, true},
		{399, false, true},
	}
	for _, tt := range tests {
		e := &APIError{HTTPStatusCode: tt.status}
		assert.Equal(t, tt.user, e.IsUserError(), "status %d", tt.status)
		assert.Equal(t, tt.provider, e.IsProviderError(), "status %d", tt.status)
	}
}

func TestAPIErrorFromWire(t *testing.T) {
	e := APIErrorFromWire(decodeJSON(t, `{"error":"The query does not contain any valid name","warnings":["w1"],"@http_status_code":400}`),
		map[string]string{"x-apikey-quota-current": "0"})

	assert.Equal(t, "The query does not contain any valid name", e.Message)
	assert.Equal(t, []string{"w1"}, e.Warnings)
	assert.Equal(t, 400, e.HTTPStatusCode)
	assert.True(t, e.IsUserError())
	require.NotNil(t, e.Quota.QuotaCurrent)
	assert.Equal(t, 0, *e.Quota.QuotaCurrent)
	assert.Nil(t, e.Quota.QuotaAllotted)
	assert.Equal(t, "search API error (HTTP 400): The query does not contain any valid name", e.Error())
	assert.Equal(t, map[string]any{
		"error":             "The query does not contain any valid name",
		"@http_status_code": 400,
		"warnings":          []string{"w1"},
	}, e.ToWire())
}

func TestQuotaFromHeaders(t *testing.T) {
	q := QuotaFromHeaders(map[string]string{
		"x-qps-allotted":          "10",
		"x-qps-current":           "2",
		"x-qps-live-allotted":     "5",
		"x-qps-live-current":      "1",
		"x-qps-demo-allotted":     "3",
		"x-qps-demo-current":      "0",
		"x-apikey-quota-allotted": "1000",
		"x-apikey-quota-current":  "999",
		"x-quota-reset":           "Tuesday, May 02, 2017 12:00:00 AM UTC",
		"x-demo-usage-allotted":   "50",
		"x-demo-usage-current":    "49",
		"x-demo-usage-expiry":     "Friday, December 01, 2017 03:30:00 PM UTC",
	})

	for name, got := range map[string]*int{
		"qps allotted": q.QPSAllotted, "qps current": q.QPSCurrent,
		"live allotted": q.QPSLiveAllotted, "live current": q.QPSLiveCurrent,
		"demo allotted": q.QPSDemoAllotted, "demo current": q.QPSDemoCurrent,
		"quota allotted": q.QuotaAllotted, "quota current": q.QuotaCurrent,
		"usage allotted": q.DemoUsageAllotted, "usage current": q.DemoUsageCurrent,
	} {
		assert.NotNil(t, got, name)
	}
	assert.Equal(t, 1000, *q.QuotaAllotted)
	assert.Equal(t, 0, *q.QPSDemoCurrent)

	require.NotNil(t, q.QuotaReset)
	assert.True(t, q.QuotaReset.Equal(time.Date(2017, 5, 2, 0, 0, 0, 0, time.UTC)), q.QuotaReset.String())
	require.NotNil(t, q.DemoUsageExpiry)
	assert.True(t, q.DemoUsageExpiry.Equal(time.Date(2017, 12, 1, 15, 30, 0, 0, time.UTC)), q.DemoUsageExpiry.String())
}

func TestQuotaAbsentIsNil(t *testing.T) {
	q := QuotaFromHeaders(map[string]string{"x-qps-allotted": "lots", "x-quota-reset": "tomorrow"})
	assert.Equal(t, Quota{}, q)
}

// --- Interpret ---

func TestInterpretSuccess(t *testing.T) {
	body := []byte(`{"@http_status_code":200,"person":{"names":[{"first":"Clark","last":"Kent"}]}}`)
	r, err := Interpret(&TransportResponse{StatusCode: 200, Body: body, Header: map[string]string{"x-qps-current": "1"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, body, r.Raw)
	assert.Equal(t, "Kent", r.Name().Last)
	assert.Equal(t, 1, *r.Quota.QPSCurrent)
}

func TestInterpretMalformedSuccess(t *testing.T) {
	for _, body := range []string{"<html>", "null", "[]", ""} {
		_, err := Interpret(&TransportResponse{StatusCode: 200, Body: []byte(body)}, nil)
		assert.ErrorIs(t, err, ErrMalformedResponse, "body %q", body)
	}
}

func TestInterpretAPIError(t *testing.T) {
	_, err := Interpret(&TransportResponse{
		StatusCode: 403,
		Body:       []byte(`{"error":"API key is invalid","@http_status_code":403}`),
		Header:     map[string]string{"x-apikey-quota-allotted": "100"},
	}, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "API key is invalid", apiErr.Message)
	assert.Equal(t, 403, apiErr.HTTPStatusCode)
	assert.True(t, apiErr.IsUserError())
	assert.Equal(t, 100, *apiErr.Quota.QuotaAllotted)
}

func TestInterpretErrorBodyWithoutStatus(t *testing.T) {
	_, err := Interpret(&TransportResponse{StatusCode: 502, Body: []byte(`{"error":"upstream"}`)}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 502, apiErr.HTTPStatusCode)
	assert.True(t, apiErr.IsProviderError())
}

func TestInterpretNonJSONErrorBody(t *testing.T) {
	_, err := Interpret(&TransportResponse{StatusCode: 503, Body: []byte("Service Unavailable\n")}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Service Unavailable", apiErr.Message)
	assert.Equal(t, 503, apiErr.HTTPStatusCode)
}

func TestInterpretTransportFailure(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	_, err := Interpret(nil, cause)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "dial tcp: connection refused", apiErr.Message)
	assert.Equal(t, 0, apiErr.HTTPStatusCode)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "search API error: dial tcp: connection refused", err.Error())
}

func TestInterpretEmptyErrorBody(t *testing.T) {
	_, err := Interpret(&TransportResponse{StatusCode: 500}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.HTTPStatusCode)
	assert.Equal(t, "Internal Server Error", apiErr.Message)
}
