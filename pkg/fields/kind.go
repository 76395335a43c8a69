// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fields models the atomic units of personal data exchanged with the
// people-search API: names, addresses, phones, emails and the rest.
//
// Every variant is a plain struct that embeds Common. Values travel over the
// wire as JSON objects whose attribute keys carry a leading "@" (for example
// "@type", "@valid_since") while child keys are bare ("first", "number").
// ToWire and FromWire convert between the two forms; unknown wire keys are
// ignored so newer API versions can add data without breaking old clients.
package fields

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidArgument reports a local validation failure: a type value outside
// the variant's allowed set, a date range without bounds, bad thumbnail input.
var ErrInvalidArgument = errors.New("invalid argument")

// Kind identifies a field variant. The declaration order of the list kinds is
// the order containers use for AllFields and for wire serialization.
type Kind int

const (
	KindName Kind = iota + 1
	KindAddress
	KindPhone
	KindEmail
	KindJob
	KindEthnicity
	KindOriginCountry
	KindLanguage
	KindEducation
	KindImage
	KindUsername
	KindVehicle
	KindUserID
	KindURL
	KindDOB
	KindGender
	KindTag
	KindRelationship
)

var kindNames = map[Kind]string{
	KindName:          "Name",
	KindAddress:       "Address",
	KindPhone:         "Phone",
	KindEmail:         "Email",
	KindJob:           "Job",
	KindEthnicity:     "Ethnicity",
	KindOriginCountry: "OriginCountry",
	KindLanguage:      "Language",
	KindEducation:     "Education",
	KindImage:         "Image",
	KindUsername:      "Username",
	KindVehicle:       "Vehicle",
	KindUserID:        "UserID",
	KindURL:           "URL",
	KindDOB:           "DOB",
	KindGender:        "Gender",
	KindTag:           "Tag",
	KindRelationship:  "Relationship",
}

var containerKeys = map[Kind]string{
	KindName:          "names",
	KindAddress:       "addresses",
	KindPhone:         "phones",
	KindEmail:         "emails",
	KindJob:           "jobs",
	KindEthnicity:     "ethnicities",
	KindOriginCountry: "origin_countries",
	KindLanguage:      "languages",
	KindEducation:     "educations",
	KindImage:         "images",
	KindUsername:      "usernames",
	KindVehicle:       "vehicles",
	KindUserID:        "user_ids",
	KindURL:           "urls",
	KindDOB:           "dob",
	KindGender:        "gender",
	KindTag:           "tags",
	KindRelationship:  "relationships",
}

// String returns the variant name used in representations and error messages.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ContainerKey returns the wire key a container stores this kind under
// ("names", "addresses", ..., "dob", "gender").
func (k Kind) ContainerKey() string {
	return containerKeys[k]
}

// Singular reports whether a container holds at most one field of this kind.
func (k Kind) Singular() bool {
	return k == KindDOB || k == KindGender
}

// Field is implemented by every variant in this package and by
// containers.Relationship, which can be stored alongside fields. The
// variants' methods of the same names follow the contracts below.
type Field interface {
	// Kind identifies the variant and the container slot it is stored in.
	Kind() Kind
	// IsSearchable reports whether the API accepts the field as a search
	// criterion on its own.
	IsSearchable() bool
	// ToWire encodes the field as a JSON object, "@"-prefixed attributes
	// first. Unset values are left out.
	ToWire() map[string]any
	// Representation is "Kind(key=value, ...)", used in validation errors.
	Representation() string
	// String is the human-readable display value.
	String() string
}

// schema lists a variant's wire names in declaration order and, for variants
// with a "type" attribute, the values that attribute may take.
type schema struct {
	attributes []string
	children   []string
	types      []string
}

var schemas = map[Kind]schema{
	KindName: {
		attributes: []string{"type"},
		children:   []string{"first", "middle", "last", "prefix", "suffix", "raw", "display"},
		types:      []string{"present", "maiden", "former", "alias", "alternative", "autogenerated"},
	},
	KindAddress: {
		attributes: []string{"type"},
		children:   []string{"country", "state", "city", "po_box", "zip_code", "street", "house", "apartment", "raw", "display"},
		types:      []string{"home", "work", "old"},
	},
	KindPhone: {
		attributes: []string{"type", "do_not_call", "voip"},
		children:   []string{"country_code", "number", "extension", "raw", "display", "display_international"},
		types:      []string{"mobile", "home_phone", "home_fax", "work_phone", "work_fax", "pager", "voip"},
	},
	KindEmail: {
		attributes: []string{"type", "disposable", "email_provider"},
		children:   []string{"address", "address_md5"},
		types:      []string{"personal", "work"},
	},
	KindJob:           {children: []string{"title", "organization", "industry", "date_range", "display"}},
	KindEthnicity:     {children: []string{"content"}},
	KindOriginCountry: {children: []string{"country"}},
	KindLanguage:      {children: []string{"language", "region", "display"}},
	KindEducation:     {children: []string{"degree", "school", "date_range", "display"}},
	KindImage:         {children: []string{"url", "thumbnail_token"}},
	KindUsername:      {children: []string{"content"}},
	KindVehicle: {
		attributes: []string{"is_vin_valid"},
		children:   []string{"vin", "year", "make", "model", "color", "vehicle_type", "display"},
	},
	KindUserID: {children: []string{"content"}},
	KindURL: {
		attributes: []string{"category", "sponsored", "source_id", "name", "domain"},
		children:   []string{"url"},
	},
	KindDOB:    {children: []string{"date_range", "display"}},
	KindGender: {children: []string{"content"}},
	KindTag: {
		attributes: []string{"classification"},
		children:   []string{"content"},
	},
}

// Types returns the allowed values of the variant's "type" attribute, or nil
// when the variant has no such attribute.
func (k Kind) Types() []string {
	return slices.Clone(schemas[k].types)
}

func checkType(k Kind, value string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(schemas[k].types, value) {
		return fmt.Errorf("%w: Invalid type for %s %s", ErrInvalidArgument, k, value)
	}
	return nil
}

// Validate checks the type attribute of f against its variant's allowed set.
// Fields built with New or FromWire are already validated; Validate exists for
// fields assembled as struct literals.
func Validate(f Field) error {
	switch v := f.(type) {
	case *Name:
		return checkType(KindName, v.Type)
	case *Address:
		return checkType(KindAddress, v.Type)
	case *Phone:
		return checkType(KindPhone, v.Type)
	case *Email:
		return checkType(KindEmail, v.Type)
	}
	return nil
}

// New builds a field of the given kind from a parameter map keyed by bare
// names ("first", "type", "valid_since"). Values may be wire-typed (strings,
// float64 numbers, nested maps) or Go-typed (time.Time, *DateRange, int).
// Unrecognized keys are ignored.
func New(kind Kind, params map[string]any) (Field, error) {
	return decode(kind, normalize(params))
}

// FromWire builds a field from its wire object. Leading "@" markers are
// stripped from keys, dates are parsed and nested date ranges decoded.
func FromWire(kind Kind, wire map[string]any) (Field, error) {
	return decode(kind, normalize(wire))
}

func decode(kind Kind, m wireMap) (Field, error) {
	var f interface {
		Field
		decode(wireMap) error
	}
	switch kind {
	case KindName:
		f = &Name{}
	case KindAddress:
		f = &Address{}
	case KindPhone:
		f = &Phone{}
	case KindEmail:
		f = &Email{}
	case KindJob:
		f = &Job{}
	case KindEthnicity:
		f = &Ethnicity{}
	case KindOriginCountry:
		f = &OriginCountry{}
	case KindLanguage:
		f = &Language{}
	case KindEducation:
		f = &Education{}
	case KindImage:
		f = &Image{}
	case KindUsername:
		f = &Username{}
	case KindVehicle:
		f = &Vehicle{}
	case KindUserID:
		f = &UserID{}
	case KindURL:
		f = &URL{}
	case KindDOB:
		f = &DOB{}
	case KindGender:
		f = &Gender{}
	case KindTag:
		f = &Tag{}
	default:
		return nil, fmt.Errorf("%w: %s is not a field kind", ErrInvalidArgument, kind)
	}
	if err := f.decode(m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}
	return f, nil
}
