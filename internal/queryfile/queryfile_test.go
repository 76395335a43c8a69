// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package queryfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/peoplesearch/pkg/search"
	"github.com/pdiddy/peoplesearch/pkg/types"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "query.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// --- Read ---

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []search.Params
		wantErr string
	}{
		{
			name: "single query",
			content: `
query:
  first_name: Clark
  last_name: Kent
  from_age: 30
`,
			want: []search.Params{{FirstName: "Clark", LastName: "Kent", FromAge: 30}},
		},
		{
			name: "batch",
			content: `
queries:
  - email: clark.kent@example.com
  - phone: "+1 978 555 0145"
    country: US
`,
			want: []search.Params{
				{Email: "clark.kent@example.com"},
				{Phone: "+1 978 555 0145", Country: "US"},
			},
		},
		{
			name: "query and batch",
			content: `
query: {username: ckent}
queries: [{search_pointer: abc}]
`,
			want: []search.Params{{Username: "ckent"}, {SearchPointer: "abc"}},
		},
		{
			name:    "empty file",
			content: "config:\n  show_sources: all\n",
			wantErr: "has no query or queries",
		},
		{
			name:    "bad yaml",
			content: "query: [",
			wantErr: "parsing query file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qf, err := Read(writeFile(t, tt.content))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, qf.All())
		})
	}
}

func TestReadConfig(t *testing.T) {
	qf, err := Read(writeFile(t, `
query: {email: c@example.com}
config:
  show_sources: matching
  minimum_match: 0.8
  strict: true
`))
	require.NoError(t, err)
	require.NotNil(t, qf.Config)
	assert.Equal(t, types.SearchFlags{ShowSources: "matching", MinimumMatch: 0.8, Strict: true}, *qf.Config)
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "reading query file")
}

// --- Write / Summarize ---

func TestWriteRoundTrip(t *testing.T) {
	p := search.Params{FirstName: "Clark", LastName: "Kent"}
	resp, err := search.Interpret(&search.TransportResponse{
		StatusCode: 200,
		Body:       []byte(`{"@search_id":"9","warnings":["w"],"person":{"names":[{"display":"Clark Kent","first":"Clark","last":"Kent"}]}}`),
	}, nil)
	require.NoError(t, err)

	qf := &QueryFile{
		Query: &p,
		Results: []Summary{
			Summarize(p, resp, nil),
			Summarize(search.Params{Email: "x"}, nil, errors.New("boom")),
		},
	}
	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, Write(path, qf))

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got.Results, 2)
	assert.Equal(t, p, *got.Query)

	first := got.Results[0]
	assert.Equal(t, "9", first.SearchID)
	assert.Equal(t, 200, first.HTTPStatusCode)
	assert.Equal(t, 1, first.PersonsCount)
	assert.Equal(t, "Clark Kent", first.Name)
	assert.Equal(t, []string{"w"}, first.Warnings)
	assert.False(t, first.Timestamp.IsZero())

	assert.Equal(t, "boom", got.Results[1].Error)
	assert.Equal(t, 0, got.Results[1].PersonsCount)
}
