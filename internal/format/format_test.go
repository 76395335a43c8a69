// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/peoplesearch/internal/history"
	"github.com/pdiddy/peoplesearch/pkg/search"
)

func decode(t *testing.T, body string) *search.Response {
	t.Helper()
	resp, err := search.Interpret(&search.TransportResponse{StatusCode: 200, Body: []byte(body)}, nil)
	require.NoError(t, err)
	return resp
}

const matched = `{
	"@search_id": "1234",
	"@visible_sources": 2,
	"@available_sources": 5,
	"warnings": ["Parameter 'x' was ignored"],
	"person": {
		"@match": 1.0,
		"names": [{"display": "Clark Joseph Kent", "first": "Clark", "last": "Kent"}],
		"emails": [{"address": "clark.kent@example.com"}],
		"phones": [{"display": "978-555-0145", "number": 9785550145}]
	},
	"sources": [
		{"@category": "personal_profiles", "@name": "A"},
		{"@category": "personal_profiles", "@name": "B"},
		{"@category": "background_reports", "@name": "C"}
	]
}`

const possible = `{
	"@search_id": "5678",
	"possible_persons": [
		{"@match": 0.75, "names": [{"display": "Clark Kent"}], "addresses": [{"display": "Smallville, Kansas"}]},
		{"@match": 0.25, "names": [{"display": "Kal-El"}]}
	]
}`

// --- table ---

func TestWriteTableDefinitivePerson(t *testing.T) {
	var b bytes.Buffer
	WriteTable(&b, decode(t, matched))
	out := b.String()

	assert.Contains(t, out, "Search 1234: 1 person(s), 2 of 5 sources visible")
	assert.Contains(t, out, "warning: Parameter 'x' was ignored")
	assert.Contains(t, out, "Names:         Clark Joseph Kent")
	assert.Contains(t, out, "Emails:        clark.kent@example.com")
	assert.Contains(t, out, "Match:         1.00")
	assert.NotContains(t, out, "Vehicles:")
	assert.Contains(t, out, "background_reports")
	assert.Regexp(t, `personal_profiles\s+2`, out)
}

func TestWriteTablePossiblePersons(t *testing.T) {
	var b bytes.Buffer
	WriteTable(&b, decode(t, possible))
	out := b.String()

	assert.Contains(t, out, "Search 5678: 2 person(s)")
	assert.Regexp(t, `1\s+0\.75\s+Clark Kent`, out)
	assert.Contains(t, out, "Smallville, Kansas")
	assert.Regexp(t, `2\s+0\.25\s+Kal-El`, out)
}

func TestWriteTableNoPersons(t *testing.T) {
	var b bytes.Buffer
	WriteTable(&b, decode(t, `{}`))
	assert.Contains(t, b.String(), "Search -: 0 person(s)")
	assert.Contains(t, b.String(), "No persons found.")
}

// --- Write ---

func TestWriteFormats(t *testing.T) {
	resp := decode(t, matched)

	var j bytes.Buffer
	require.NoError(t, Write(&j, JSON, resp))
	assert.Contains(t, j.String(), `"@search_id": "1234"`)

	var y bytes.Buffer
	require.NoError(t, Write(&y, YAML, resp))
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(y.Bytes(), &m))
	assert.Equal(t, "1234", m["@search_id"])

	var r bytes.Buffer
	require.NoError(t, Write(&r, Raw, resp))
	assert.Equal(t, matched+"\n", r.String())

	assert.ErrorContains(t, Write(&r, "xml", resp), `unknown output format "xml"`)
	assert.ErrorContains(t, Write(&r, Raw, &search.Response{}), "no raw body")
}

// --- history ---

func TestWriteHistory(t *testing.T) {
	var b bytes.Buffer
	WriteHistory(&b, nil)
	assert.Equal(t, "No searches recorded.\n", b.String())

	b.Reset()
	WriteHistory(&b, []history.Entry{
		{ID: "id-1", CreatedAt: time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC), HTTPStatusCode: 200, PersonsCount: 1, Query: `{"names":[{"first":"Clark"}]}`},
		{ID: "id-2", CreatedAt: time.Date(2026, 2, 3, 4, 5, 7, 0, time.UTC), HTTPStatusCode: 403, SearchPointer: "ptr", Error: "bad key"},
	})
	out := b.String()
	assert.Contains(t, out, "2026-02-03 04:05:06")
	assert.Contains(t, out, `{"names":[{"first":"Clark"}]}`)
	assert.Contains(t, out, "pointer ptr  (bad key)")
}
