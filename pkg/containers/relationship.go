// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package containers

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/pdiddy/peoplesearch/pkg/fields"
)

// RelationshipTypes are the allowed values of Relationship.Type.
var RelationshipTypes = []string{"friend", "family", "work", "other"}

// Relationship describes another person related to the one holding it. The
// related person's data is carried as ordinary fields.
type Relationship struct {
	Container
	// Type is one of RelationshipTypes.
	Type string
	// Subtype is free text, for example "Father" when Type is "family".
	Subtype    string
	ValidSince time.Time
	Inferred   bool
	LastSeen   time.Time
}

// NewRelationship returns a relationship of the given type holding fs.
func NewRelationship(typ, subtype string, fs ...fields.Field) (*Relationship, error) {
	if err := checkRelationshipType(typ); err != nil {
		return nil, err
	}
	r := &Relationship{Type: typ, Subtype: subtype}
	if err := r.AddFields(fs...); err != nil {
		return nil, err
	}
	return r, nil
}

func checkRelationshipType(typ string) error {
	if typ != "" && !slices.Contains(RelationshipTypes, typ) {
		return fmt.Errorf("%w: Invalid type for Relationship %s", fields.ErrInvalidArgument, typ)
	}
	return nil
}

func (r *Relationship) Kind() fields.Kind { return fields.KindRelationship }

// IsSearchable is always true; a relationship never narrows a query.
func (r *Relationship) IsSearchable() bool { return true }

// AddFields accepts the same kinds as any container, excluding nested
// relationships and tags.
func (r *Relationship) AddFields(fs ...fields.Field) error {
	return r.add(baseKinds, fs)
}

func (r *Relationship) AllFields() []fields.Field {
	return r.all(baseKinds)
}

// RelationshipFromWire decodes a relationship object.
func RelationshipFromWire(m map[string]any) (*Relationship, error) {
	a := attrs(m)
	r := &Relationship{
		Type:     a.str("type"),
		Subtype:  a.str("subtype"),
		Inferred: a.bool("inferred"),
	}
	if err := checkRelationshipType(r.Type); err != nil {
		return nil, err
	}
	var err error
	if r.ValidSince, err = a.date("valid_since"); err != nil {
		return nil, err
	}
	if r.LastSeen, err = a.date("last_seen"); err != nil {
		return nil, err
	}
	if err := r.fromWire(baseKinds, m); err != nil {
		return nil, fmt.Errorf("decoding relationship: %w", err)
	}
	return r, nil
}

func (r *Relationship) ToWire() map[string]any {
	m := map[string]any{}
	setAttr(m, "valid_since", r.ValidSince)
	setAttr(m, "inferred", r.Inferred)
	setAttr(m, "type", r.Type)
	setAttr(m, "subtype", r.Subtype)
	setAttr(m, "last_seen", r.LastSeen)
	maps.Copy(m, r.toWire(baseKinds))
	return m
}

// Representation renders the relationship's attributes and the related
// person's first name, for diagnostics.
func (r *Relationship) Representation() string {
	var parts []string
	for _, kv := range [][2]string{{"type", r.Type}, {"subtype", r.Subtype}, {"name", r.String()}} {
		if kv[1] != "" {
			parts = append(parts, kv[0]+"="+kv[1])
		}
	}
	if !r.ValidSince.IsZero() {
		parts = append(parts, "valid_since="+r.ValidSince.Format(fields.DateFormat))
	}
	return "Relationship(" + strings.Join(parts, ", ") + ")"
}

// String returns the first name of the related person, or "".
func (r *Relationship) String() string {
	if len(r.Names) > 0 {
		return r.Names[0].First
	}
	return ""
}
