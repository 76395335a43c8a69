// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package containers

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/pdiddy/peoplesearch/pkg/fields"
)

var sourceKinds = append(slices.Clone(baseKinds), fields.KindRelationship, fields.KindTag)

// Source is the data found on one page or record, with attributes saying
// where it came from and how well it matches the query.
type Source struct {
	Container
	Name      string
	Category  string
	OriginURL string
	Sponsored bool
	Domain    string
	PersonID  string
	ID        string
	Premium   bool
	// Match is the likelihood, between 0 and 1, that the source describes the
	// person in the query.
	Match      float64
	ValidSince time.Time
}

// AddFields appends list-kind fields and replaces DOB and Gender. Sources
// accept every field kind plus Relationship and Tag.
func (s *Source) AddFields(fs ...fields.Field) error {
	return s.add(sourceKinds, fs)
}

// AllFields returns every contained field in registry order.
func (s *Source) AllFields() []fields.Field {
	return s.all(sourceKinds)
}

// SourceFromWire decodes a source object. The identifier is read from "@id",
// falling back to "@source_id".
func SourceFromWire(m map[string]any) (*Source, error) {
	a := attrs(m)
	validSince, err := a.date("valid_since")
	if err != nil {
		return nil, fmt.Errorf("decoding source: %w", err)
	}
	s := &Source{
		Name:       a.str("name"),
		Category:   a.str("category"),
		OriginURL:  a.str("origin_url"),
		Sponsored:  a.bool("sponsored"),
		Domain:     a.str("domain"),
		PersonID:   a.str("person_id"),
		ID:         a.str("id"),
		Premium:    a.bool("premium"),
		Match:      a.float("match"),
		ValidSince: validSince,
	}
	if s.ID == "" {
		s.ID = a.str("source_id")
	}
	if err := s.fromWire(sourceKinds, m); err != nil {
		return nil, fmt.Errorf("decoding source %s: %w", s.ID, err)
	}
	return s, nil
}

func (s *Source) ToWire() map[string]any {
	m := map[string]any{}
	setAttr(m, "valid_since", s.ValidSince)
	setAttr(m, "match", s.Match)
	setAttr(m, "name", s.Name)
	setAttr(m, "category", s.Category)
	setAttr(m, "origin_url", s.OriginURL)
	setAttr(m, "sponsored", s.Sponsored)
	setAttr(m, "domain", s.Domain)
	setAttr(m, "person_id", s.PersonID)
	setAttr(m, "id", s.ID)
	setAttr(m, "premium", s.Premium)
	maps.Copy(m, s.toWire(sourceKinds))
	return m
}
