// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package queryfile reads and writes YAML query files. A file holds one
// query, a batch of queries, or both, plus optional search flags and a
// summary of the last run.
package queryfile

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/peoplesearch/pkg/search"
	"github.com/pdiddy/peoplesearch/pkg/types"
)

// QueryFile is the on-disk representation of one or more searches.
type QueryFile struct {
	Query   *search.Params     `yaml:"query,omitempty"`
	Queries []search.Params    `yaml:"queries,omitempty"`
	Config  *types.SearchFlags `yaml:"config,omitempty"`
	Results []Summary          `yaml:"results,omitempty"`
}

// Summary records the outcome of one query so a file can be reviewed later
// without calling the API.
type Summary struct {
	Query          search.Params `yaml:"query"`
	SearchID       string        `yaml:"search_id,omitempty"`
	HTTPStatusCode int           `yaml:"http_status_code,omitempty"`
	PersonsCount   int           `yaml:"persons_count"`
	Name           string        `yaml:"name,omitempty"`
	Warnings       []string      `yaml:"warnings,omitempty"`
	Error          string        `yaml:"error,omitempty"`
	Timestamp      time.Time     `yaml:"timestamp"`
}

// Read loads a query file from disk.
func Read(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	if qf.Query == nil && len(qf.Queries) == 0 {
		return nil, fmt.Errorf("query file %s has no query or queries", path)
	}
	return &qf, nil
}

// Write saves qf as YAML.
func Write(path string, qf *QueryFile) error {
	data, err := yaml.Marshal(qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// All returns Query followed by Queries.
func (qf *QueryFile) All() []search.Params {
	var all []search.Params
	if qf.Query != nil {
		all = append(all, *qf.Query)
	}
	return append(all, qf.Queries...)
}

// Summarize builds the summary for one query and its outcome.
func Summarize(p search.Params, resp *search.Response, err error) Summary {
	s := Summary{Query: p, Timestamp: time.Now().UTC()}
	if resp != nil {
		s.SearchID = resp.SearchID
		s.HTTPStatusCode = resp.HTTPStatusCode
		s.PersonsCount = resp.PersonsCount
		s.Warnings = resp.Warnings
		if n := resp.Name(); n != nil {
			s.Name = n.String()
		}
	}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}
