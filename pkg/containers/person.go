// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package containers

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pdiddy/peoplesearch/pkg/fields"
)

var personKinds = append(slices.Clone(baseKinds), fields.KindRelationship)

// Person is everything known about one individual. It is used both as a
// query and as a result: the definitive match, one of the possible persons,
// or the query as the API understood it.
type Person struct {
	Container
	ID string
	// SearchPointer identifies a candidate person for a drill-down search.
	// A query carrying one needs no other searchable data.
	SearchPointer string
	// Match is the provider's confidence, between 0 and 1.
	Match    float64
	Inferred bool
}

// NewPerson returns a person holding fs.
func NewPerson(fs ...fields.Field) (*Person, error) {
	p := &Person{}
	if err := p.AddFields(fs...); err != nil {
		return nil, err
	}
	return p, nil
}

// AddFields appends list-kind fields and replaces DOB and Gender. Persons
// accept every field kind except Tag, plus Relationship.
func (p *Person) AddFields(fs ...fields.Field) error {
	return p.add(personKinds, fs)
}

// AllFields returns every contained field: list kinds in registry order,
// then DOB and Gender.
func (p *Person) AllFields() []fields.Field {
	return p.all(personKinds)
}

// IsSearchable reports whether the person carries enough data to be sent as
// a query: a search pointer, an address detailed enough on its own, or at
// least one searchable name, email, phone, username, user ID, URL or vehicle.
func (p *Person) IsSearchable() bool {
	if p.SearchPointer != "" {
		return true
	}
	for _, a := range p.Addresses {
		if a.IsSoleSearchable() {
			return true
		}
	}
	for _, k := range []fields.Kind{
		fields.KindName, fields.KindEmail, fields.KindPhone, fields.KindUsername,
		fields.KindUserID, fields.KindURL, fields.KindVehicle,
	} {
		for _, f := range p.list(k) {
			if f.IsSearchable() {
				return true
			}
		}
	}
	return false
}

// UnsearchableFields lists the names, emails, phones, usernames, addresses,
// user IDs, URLs and DOB that would be ignored by a search, in that order.
func (p *Person) UnsearchableFields() []fields.Field {
	var out []fields.Field
	for _, k := range []fields.Kind{
		fields.KindName, fields.KindEmail, fields.KindPhone, fields.KindUsername,
		fields.KindAddress, fields.KindUserID, fields.KindURL,
	} {
		for _, f := range p.list(k) {
			if !f.IsSearchable() {
				out = append(out, f)
			}
		}
	}
	if p.DOB != nil && !p.DOB.IsSearchable() {
		out = append(out, p.DOB)
	}
	return out
}

// PersonFromWire decodes a person object.
func PersonFromWire(m map[string]any) (*Person, error) {
	a := attrs(m)
	p := &Person{
		ID:            a.str("id"),
		SearchPointer: a.str("search_pointer"),
		Match:         a.float("match"),
		Inferred:      a.bool("inferred"),
	}
	if err := p.fromWire(personKinds, m); err != nil {
		return nil, fmt.Errorf("decoding person: %w", err)
	}
	return p, nil
}

// ToWire encodes the person with "@id", "@match", "@search_pointer" and
// "@inferred" followed by its fields.
func (p *Person) ToWire() map[string]any {
	m := map[string]any{}
	setAttr(m, "id", p.ID)
	setAttr(m, "match", p.Match)
	setAttr(m, "search_pointer", p.SearchPointer)
	setAttr(m, "inferred", p.Inferred)
	maps.Copy(m, p.toWire(personKinds))
	return m
}
