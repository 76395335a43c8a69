// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search builds, validates and sends person searches and decodes
// what comes back.
//
// A Request owns the query Person and, optionally, a Configuration. Validate
// runs every local check before anything touches the network; Send validates,
// hands the form to a Transport and interprets the reply as a Response or an
// *APIError.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/peoplesearch/pkg/containers"
	"github.com/pdiddy/peoplesearch/pkg/fields"
)

// publicEndpoint is the API host and path; the scheme comes from
// Configuration.UseHTTPS.
const publicEndpoint = "api.pipl.com/search/"

// maxAge is the open upper bound used when only FromAge is given.
const maxAge = 1000

var showSourcesValues = []string{"matching", "all", "true"}

// Params are the convenience inputs a query person is built from. Each
// non-empty value adds one field, except Country, State and City, which
// together add one Address, and FromAge and ToAge, which add one DOB.
type Params struct {
	// Person, when set, is extended in place instead of starting from an
	// empty one. Building two requests from the same Params adds the fields
	// to it twice.
	Person *containers.Person `json:"-" yaml:"-"`

	FirstName     string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	MiddleName    string `json:"middle_name,omitempty" yaml:"middle_name,omitempty"`
	LastName      string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	RawName       string `json:"raw_name,omitempty" yaml:"raw_name,omitempty"`
	Email         string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone         string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Username      string `json:"username,omitempty" yaml:"username,omitempty"`
	UserID        string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	URL           string `json:"url,omitempty" yaml:"url,omitempty"`
	Country       string `json:"country,omitempty" yaml:"country,omitempty"`
	State         string `json:"state,omitempty" yaml:"state,omitempty"`
	City          string `json:"city,omitempty" yaml:"city,omitempty"`
	RawAddress    string `json:"raw_address,omitempty" yaml:"raw_address,omitempty"`
	FromAge       int    `json:"from_age,omitempty" yaml:"from_age,omitempty"`
	ToAge         int    `json:"to_age,omitempty" yaml:"to_age,omitempty"`
	SearchPointer string `json:"search_pointer,omitempty" yaml:"search_pointer,omitempty"`
}

// Request is a single search: the query person plus an optional
// configuration. A nil Configuration means DefaultConfiguration.
type Request struct {
	Person        *containers.Person
	Configuration *Configuration
}

// NewRequest builds the query person from p. It fails only when a value
// cannot become a field, such as a negative age.
func NewRequest(p Params, cfg *Configuration) (*Request, error) {
	person := p.Person
	if person == nil {
		person = &containers.Person{}
	}

	var fs []fields.Field
	if p.FirstName != "" || p.MiddleName != "" || p.LastName != "" {
		fs = append(fs, &fields.Name{First: p.FirstName, Middle: p.MiddleName, Last: p.LastName})
	}
	if p.RawName != "" {
		fs = append(fs, &fields.Name{Raw: p.RawName})
	}
	if p.Email != "" {
		fs = append(fs, &fields.Email{Address: p.Email})
	}
	if p.Phone != "" {
		fs = append(fs, fields.PhoneFromText(p.Phone))
	}
	if p.Username != "" {
		fs = append(fs, &fields.Username{Content: p.Username})
	}
	if p.UserID != "" {
		fs = append(fs, &fields.UserID{Content: p.UserID})
	}
	if p.URL != "" {
		fs = append(fs, &fields.URL{URL: p.URL})
	}
	if p.Country != "" || p.State != "" || p.City != "" {
		fs = append(fs, &fields.Address{Country: p.Country, State: p.State, City: p.City})
	}
	if p.RawAddress != "" {
		fs = append(fs, &fields.Address{Raw: p.RawAddress})
	}
	if p.FromAge != 0 || p.ToAge != 0 {
		to := p.ToAge
		if to == 0 {
			to = maxAge
		}
		dob, err := fields.DOBFromAgeRange(p.FromAge, to)
		if err != nil {
			return nil, fmt.Errorf("age range: %w", err)
		}
		fs = append(fs, dob)
	}
	if err := person.AddFields(fs...); err != nil {
		return nil, err
	}
	if p.SearchPointer != "" {
		person.SearchPointer = p.SearchPointer
	}
	return &Request{Person: person, Configuration: cfg}, nil
}

// EffectiveConfiguration returns the request's configuration, falling back to
// the process-wide default.
func (r *Request) EffectiveConfiguration() *Configuration {
	if r.Configuration != nil {
		return r.Configuration
	}
	if c := DefaultConfiguration(); c != nil {
		return c
	}
	return NewConfiguration("")
}

// Validate runs the local checks. The API key and the person's searchability
// are always checked; strict adds the flag values, each field's type and the
// list of fields a search would ignore.
func (r *Request) Validate(strict bool) error {
	cfg := r.EffectiveConfiguration()
	if cfg.APIKey == "" {
		return ErrMissingAPIKey
	}
	if r.Person == nil {
		return fmt.Errorf("%w: No valid name/username/phone/email/address/user_id/url in request", ErrUnsearchable)
	}

	if strict {
		if cfg.ShowSources != "" && !slices.Contains(showSourcesValues, cfg.ShowSources) {
			return fmt.Errorf(`%w: show_sources has a wrong value, should be "matching", "all" or "true"`, ErrInvalidArgument)
		}
		if err := checkUnitInterval("minimum_probability", cfg.MinimumProbability); err != nil {
			return err
		}
		if err := checkUnitInterval("minimum_match", cfg.MinimumMatch); err != nil {
			return err
		}
		for _, f := range r.Person.AllFields() {
			if err := fields.Validate(f); err != nil {
				return err
			}
		}
		if unsearchable := r.Person.UnsearchableFields(); len(unsearchable) > 0 {
			reps := make([]string, len(unsearchable))
			for i, f := range unsearchable {
				reps[i] = f.Representation()
			}
			return fmt.Errorf("%w: Some fields are unsearchable: %s", ErrUnsearchable, strings.Join(reps, ", "))
		}
	}

	if !r.Person.IsSearchable() {
		return fmt.Errorf("%w: No valid name/username/phone/email/address/user_id/url in request", ErrUnsearchable)
	}
	return nil
}

func checkUnitInterval(name string, v *float64) error {
	if v != nil && (*v <= 0 || *v > 1) {
		return fmt.Errorf("%w: %s should be a float between 0 and 1", ErrInvalidArgument, name)
	}
	return nil
}

// URL returns the endpoint the request is posted to.
func (r *Request) URL() string {
	cfg := r.EffectiveConfiguration()
	if cfg.Endpoint != "" {
		return cfg.Endpoint
	}
	if cfg.UseHTTPS {
		return "https://" + publicEndpoint
	}
	return "http://" + publicEndpoint
}

// Params returns the form sent to the API: the key, the search pointer or
// the person as a JSON string, and every configuration flag that is set.
func (r *Request) Params() (url.Values, error) {
	cfg := r.EffectiveConfiguration()
	form := url.Values{}
	form.Set("key", cfg.APIKey)

	if r.Person != nil && r.Person.SearchPointer != "" {
		form.Set("search_pointer", r.Person.SearchPointer)
	} else if r.Person != nil {
		data, err := json.Marshal(r.Person.ToWire())
		if err != nil {
			return nil, fmt.Errorf("encoding person: %w", err)
		}
		form.Set("person", string(data))
	}

	setString(form, "show_sources", cfg.ShowSources)
	setBool(form, "live_feeds", cfg.LiveFeeds)
	setBool(form, "hide_sponsored", cfg.HideSponsored)
	setFloat(form, "minimum_probability", cfg.MinimumProbability)
	setFloat(form, "minimum_match", cfg.MinimumMatch)
	setString(form, "match_requirements", cfg.MatchRequirements)
	setString(form, "source_category_requirements", cfg.SourceCategoryRequirements)
	setBool(form, "infer_persons", cfg.InferPersons)
	setBool(form, "top_match", cfg.TopMatch)
	return form, nil
}

func setString(form url.Values, key, v string) {
	if v != "" {
		form.Set(key, v)
	}
}

func setBool(form url.Values, key string, v *bool) {
	if v != nil {
		form.Set(key, strconv.FormatBool(*v))
	}
}

func setFloat(form url.Values, key string, v *float64) {
	if v != nil {
		form.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

// Send validates the request, makes one call through t and interprets the
// reply. Provider failures come back as *APIError.
func (r *Request) Send(ctx context.Context, t Transport, strict bool) (*Response, error) {
	if err := r.Validate(strict); err != nil {
		return nil, err
	}
	form, err := r.Params()
	if err != nil {
		return nil, err
	}
	resp, err := t.Send(ctx, &TransportRequest{
		URL:    r.URL(),
		Method: http.MethodPost,
		Form:   form,
		Header: map[string]string{"User-Agent": UserAgent},
	})
	return Interpret(resp, err)
}

// Interpret turns a transport result into a Response or an error.
//
//   - 2xx: the body is decoded as a Response with Raw set. A body that is not
//     a JSON object yields ErrMalformedResponse.
//   - other status with a body: the body is decoded as an *APIError.
//   - no response or no body: a synthetic *APIError carries the transport
//     error text and the status code, 0 when unknown.
func Interpret(resp *TransportResponse, sendErr error) (*Response, error) {
	if resp == nil {
		return nil, transportError(sendErr, 0, nil)
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		var m map[string]any
		if err := json.Unmarshal(resp.Body, &m); err != nil || m == nil {
			if err == nil {
				err = errors.New("body is not a JSON object")
			}
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		out, err := ResponseFromWire(m, resp.Header)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		out.Raw = resp.Body
		if out.HTTPStatusCode == 0 {
			out.HTTPStatusCode = resp.StatusCode
		}
		return out, nil
	}

	if len(resp.Body) == 0 {
		return nil, transportError(sendErr, resp.StatusCode, resp.Header)
	}
	var m map[string]any
	if err := json.Unmarshal(resp.Body, &m); err != nil || m == nil {
		apiErr := transportError(sendErr, resp.StatusCode, resp.Header)
		if sendErr == nil {
			apiErr.Message = strings.TrimSpace(string(resp.Body))
		}
		return nil, apiErr
	}
	apiErr := APIErrorFromWire(m, resp.Header)
	if apiErr.HTTPStatusCode == 0 {
		apiErr.HTTPStatusCode = resp.StatusCode
	}
	return nil, apiErr
}
