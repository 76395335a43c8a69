// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"

	"github.com/pdiddy/peoplesearch/pkg/containers"
	"github.com/pdiddy/peoplesearch/pkg/fields"
)

// Response is a successful search result.
type Response struct {
	HTTPStatusCode   int
	VisibleSources   int
	AvailableSources int
	SearchID         string
	// PersonsCount is the number of persons the API matched: the reported
	// count, else 1 when Person is set, else len(PossiblePersons).
	PersonsCount int
	Warnings     []string

	// Query is the query person as the API understood it.
	Query *containers.Person
	// Person is set when the API found a single definitive match.
	Person          *containers.Person
	PossiblePersons []*containers.Person
	Sources         []*containers.Source
	AvailableData   *containers.AvailableData

	MatchRequirements          string
	SourceCategoryRequirements string

	Quota Quota
	// Raw is the response body exactly as received.
	Raw []byte
}

// ResponseFromWire decodes a response body and its headers.
func ResponseFromWire(m map[string]any, headers map[string]string) (*Response, error) {
	r := &Response{
		HTTPStatusCode:             num(m["@http_status_code"]),
		VisibleSources:             num(m["@visible_sources"]),
		AvailableSources:           num(m["@available_sources"]),
		SearchID:                   str(m["@search_id"]),
		Warnings:                   strs(m["warnings"]),
		MatchRequirements:          str(m["match_requirements"]),
		SourceCategoryRequirements: str(m["source_category_requirements"]),
		Quota:                      QuotaFromHeaders(headers),
	}

	var err error
	if q, ok := m["query"].(map[string]any); ok && len(q) > 0 {
		if r.Query, err = containers.PersonFromWire(q); err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
	}
	if p, ok := m["person"].(map[string]any); ok && len(p) > 0 {
		if r.Person, err = containers.PersonFromWire(p); err != nil {
			return nil, fmt.Errorf("person: %w", err)
		}
	}
	for i, obj := range objects(m["possible_persons"]) {
		p, err := containers.PersonFromWire(obj)
		if err != nil {
			return nil, fmt.Errorf("possible_persons[%d]: %w", i, err)
		}
		r.PossiblePersons = append(r.PossiblePersons, p)
	}
	for i, obj := range objects(m["sources"]) {
		s, err := containers.SourceFromWire(obj)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		r.Sources = append(r.Sources, s)
	}
	if d, ok := m["available_data"].(map[string]any); ok && len(d) > 0 {
		r.AvailableData = containers.AvailableDataFromWire(d)
	}

	r.PersonsCount = num(m["@persons_count"])
	if r.PersonsCount == 0 {
		if r.Person != nil {
			r.PersonsCount = 1
		} else {
			r.PersonsCount = len(r.PossiblePersons)
		}
	}
	return r, nil
}

// ToWire encodes the response with the keys ResponseFromWire reads. Unset
// values are left out.
func (r *Response) ToWire() map[string]any {
	m := map[string]any{}
	set := func(k string, v any, ok bool) {
		if ok {
			m[k] = v
		}
	}
	set("@http_status_code", r.HTTPStatusCode, r.HTTPStatusCode != 0)
	set("@visible_sources", r.VisibleSources, r.VisibleSources != 0)
	set("@available_sources", r.AvailableSources, r.AvailableSources != 0)
	set("@search_id", r.SearchID, r.SearchID != "")
	set("@persons_count", r.PersonsCount, r.PersonsCount != 0)
	set("warnings", r.Warnings, len(r.Warnings) > 0)
	if r.Query != nil {
		m["query"] = r.Query.ToWire()
	}
	if r.Person != nil {
		m["person"] = r.Person.ToWire()
	}
	if len(r.PossiblePersons) > 0 {
		pp := make([]map[string]any, len(r.PossiblePersons))
		for i, p := range r.PossiblePersons {
			pp[i] = p.ToWire()
		}
		m["possible_persons"] = pp
	}
	if len(r.Sources) > 0 {
		ss := make([]map[string]any, len(r.Sources))
		for i, s := range r.Sources {
			ss[i] = s.ToWire()
		}
		m["sources"] = ss
	}
	if r.AvailableData != nil {
		m["available_data"] = r.AvailableData.ToWire()
	}
	set("match_requirements", r.MatchRequirements, r.MatchRequirements != "")
	set("source_category_requirements", r.SourceCategoryRequirements, r.SourceCategoryRequirements != "")
	return m
}

// GroupSources groups the sources by key, keeping their order inside each
// group.
func GroupSources[K comparable](r *Response, key func(*containers.Source) K) map[K][]*containers.Source {
	groups := make(map[K][]*containers.Source)
	for _, s := range r.Sources {
		k := key(s)
		groups[k] = append(groups[k], s)
	}
	return groups
}

func (r *Response) GroupSourcesByDomain() map[string][]*containers.Source {
	return GroupSources(r, func(s *containers.Source) string { return s.Domain })
}

func (r *Response) GroupSourcesByCategory() map[string][]*containers.Source {
	return GroupSources(r, func(s *containers.Source) string { return s.Category })
}

func (r *Response) GroupSourcesByMatch() map[float64][]*containers.Source {
	return GroupSources(r, func(s *containers.Source) float64 { return s.Match })
}

// first returns the first element picked from the matched person, or the
// zero value when there is no match or the list is empty.
func first[T any](r *Response, pick func(*containers.Person) []T) T {
	var zero T
	if r.Person == nil {
		return zero
	}
	if s := pick(r.Person); len(s) > 0 {
		return s[0]
	}
	return zero
}

// The accessors below return the matched person's first field of a kind, or
// nil.

func (r *Response) Name() *fields.Name {
	return first(r, func(p *containers.Person) []*fields.Name { return p.Names })
}

func (r *Response) Address() *fields.Address {
	return first(r, func(p *containers.Person) []*fields.Address { return p.Addresses })
}

func (r *Response) Phone() *fields.Phone {
	return first(r, func(p *containers.Person) []*fields.Phone { return p.Phones })
}

func (r *Response) Email() *fields.Email {
	return first(r, func(p *containers.Person) []*fields.Email { return p.Emails })
}

func (r *Response) Username() *fields.Username {
	return first(r, func(p *containers.Person) []*fields.Username { return p.Usernames })
}

func (r *Response) Vehicle() *fields.Vehicle {
	return first(r, func(p *containers.Person) []*fields.Vehicle { return p.Vehicles })
}

func (r *Response) UserID() *fields.UserID {
	return first(r, func(p *containers.Person) []*fields.UserID { return p.UserIDs })
}

func (r *Response) Image() *fields.Image {
	return first(r, func(p *containers.Person) []*fields.Image { return p.Images })
}

func (r *Response) Job() *fields.Job {
	return first(r, func(p *containers.Person) []*fields.Job { return p.Jobs })
}

func (r *Response) Education() *fields.Education {
	return first(r, func(p *containers.Person) []*fields.Education { return p.Educations })
}

func (r *Response) Ethnicity() *fields.Ethnicity {
	return first(r, func(p *containers.Person) []*fields.Ethnicity { return p.Ethnicities })
}

func (r *Response) Language() *fields.Language {
	return first(r, func(p *containers.Person) []*fields.Language { return p.Languages })
}

func (r *Response) OriginCountry() *fields.OriginCountry {
	return first(r, func(p *containers.Person) []*fields.OriginCountry { return p.OriginCountries })
}

func (r *Response) Relationship() *containers.Relationship {
	return first(r, func(p *containers.Person) []*containers.Relationship { return p.Relationships })
}

func (r *Response) URL() *fields.URL {
	return first(r, func(p *containers.Person) []*fields.URL { return p.URLs })
}

func (r *Response) DOB() *fields.DOB {
	if r.Person == nil {
		return nil
	}
	return r.Person.DOB
}

func (r *Response) Gender() *fields.Gender {
	if r.Person == nil {
		return nil
	}
	return r.Person.Gender
}
