// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package containers groups fields into the aggregates the people-search API
// exchanges: the Person being searched for or returned, the Source a piece of
// data came from, and the Relationship linking a person to someone else.
//
// Each aggregate embeds Container and declares which field kinds it accepts.
// Adding a field of any other kind fails; unknown keys inside a single field's
// wire object are ignored by the fields package.
package containers

import (
	"fmt"
	"slices"

	"github.com/pdiddy/peoplesearch/pkg/fields"
)

// baseKinds is the list-kind registry shared by every container, in the
// order AllFields and ToWire walk it.
var baseKinds = []fields.Kind{
	fields.KindName,
	fields.KindAddress,
	fields.KindPhone,
	fields.KindEmail,
	fields.KindJob,
	fields.KindEthnicity,
	fields.KindOriginCountry,
	fields.KindLanguage,
	fields.KindEducation,
	fields.KindImage,
	fields.KindUsername,
	fields.KindVehicle,
	fields.KindUserID,
	fields.KindURL,
}

var singularKinds = []fields.Kind{fields.KindDOB, fields.KindGender}

// Container holds fields grouped by kind. List kinds keep insertion order and
// allow duplicates; DOB and Gender hold at most one value each.
//
// The zero value is empty and ready to use through the embedding type.
type Container struct {
	Names           []*fields.Name
	Addresses       []*fields.Address
	Phones          []*fields.Phone
	Emails          []*fields.Email
	Jobs            []*fields.Job
	Ethnicities     []*fields.Ethnicity
	OriginCountries []*fields.OriginCountry
	Languages       []*fields.Language
	Educations      []*fields.Education
	Images          []*fields.Image
	Usernames       []*fields.Username
	Vehicles        []*fields.Vehicle
	UserIDs         []*fields.UserID
	URLs            []*fields.URL
	Relationships   []*Relationship
	Tags            []*fields.Tag

	DOB    *fields.DOB
	Gender *fields.Gender
}

func invalidField(k fields.Kind) error {
	return fmt.Errorf("%w: Object of type %s is an invalid field", fields.ErrInvalidArgument, k)
}

// add stores each field in its slot. Fields whose kind is not in kinds (or
// one of the singular kinds) are rejected and nothing after them is added.
func (c *Container) add(kinds []fields.Kind, fs []fields.Field) error {
	for _, f := range fs {
		if f == nil {
			return fmt.Errorf("%w: Object of type nil is an invalid field", fields.ErrInvalidArgument)
		}
		k := f.Kind()
		if !k.Singular() && !slices.Contains(kinds, k) {
			return invalidField(k)
		}
		switch v := f.(type) {
		case *fields.Name:
			c.Names = append(c.Names, v)
		case *fields.Address:
			c.Addresses = append(c.Addresses, v)
		case *fields.Phone:
			c.Phones = append(c.Phones, v)
		case *fields.Email:
			c.Emails = append(c.Emails, v)
		case *fields.Job:
			c.Jobs = append(c.Jobs, v)
		case *fields.Ethnicity:
			c.Ethnicities = append(c.Ethnicities, v)
		case *fields.OriginCountry:
			c.OriginCountries = append(c.OriginCountries, v)
		case *fields.Language:
			c.Languages = append(c.Languages, v)
		case *fields.Education:
			c.Educations = append(c.Educations, v)
		case *fields.Image:
			c.Images = append(c.Images, v)
		case *fields.Username:
			c.Usernames = append(c.Usernames, v)
		case *fields.Vehicle:
			c.Vehicles = append(c.Vehicles, v)
		case *fields.UserID:
			c.UserIDs = append(c.UserIDs, v)
		case *fields.URL:
			c.URLs = append(c.URLs, v)
		case *Relationship:
			c.Relationships = append(c.Relationships, v)
		case *fields.Tag:
			c.Tags = append(c.Tags, v)
		case *fields.DOB:
			c.DOB = v
		case *fields.Gender:
			c.Gender = v
		default:
			return invalidField(k)
		}
	}
	return nil
}

func asFields[T fields.Field](s []T) []fields.Field {
	out := make([]fields.Field, len(s))
	for i, f := range s {
		out[i] = f
	}
	return out
}

// list returns the fields stored under a list kind.
func (c *Container) list(k fields.Kind) []fields.Field {
	switch k {
	case fields.KindName:
		return asFields(c.Names)
	case fields.KindAddress:
		return asFields(c.Addresses)
	case fields.KindPhone:
		return asFields(c.Phones)
	case fields.KindEmail:
		return asFields(c.Emails)
	case fields.KindJob:
		return asFields(c.Jobs)
	case fields.KindEthnicity:
		return asFields(c.Ethnicities)
	case fields.KindOriginCountry:
		return asFields(c.OriginCountries)
	case fields.KindLanguage:
		return asFields(c.Languages)
	case fields.KindEducation:
		return asFields(c.Educations)
	case fields.KindImage:
		return asFields(c.Images)
	case fields.KindUsername:
		return asFields(c.Usernames)
	case fields.KindVehicle:
		return asFields(c.Vehicles)
	case fields.KindUserID:
		return asFields(c.UserIDs)
	case fields.KindURL:
		return asFields(c.URLs)
	case fields.KindRelationship:
		return asFields(c.Relationships)
	case fields.KindTag:
		return asFields(c.Tags)
	}
	return nil
}

// singular returns the DOB or Gender field, or nil when unset.
func (c *Container) singular(k fields.Kind) fields.Field {
	switch {
	case k == fields.KindDOB && c.DOB != nil:
		return c.DOB
	case k == fields.KindGender && c.Gender != nil:
		return c.Gender
	}
	return nil
}

// all flattens the container: list kinds in registry order, then DOB and
// Gender when set.
func (c *Container) all(kinds []fields.Kind) []fields.Field {
	var out []fields.Field
	for _, k := range kinds {
		out = append(out, c.list(k)...)
	}
	for _, k := range singularKinds {
		if f := c.singular(k); f != nil {
			out = append(out, f)
		}
	}
	return out
}

// fieldsFromWire decodes every registered kind present in m. Keys of other
// kinds are ignored.
func fieldsFromWire(kinds []fields.Kind, m map[string]any) ([]fields.Field, error) {
	var out []fields.Field
	for _, k := range kinds {
		for i, obj := range objects(m[k.ContainerKey()]) {
			f, err := fieldFromWire(k, obj)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", k.ContainerKey(), i, err)
			}
			out = append(out, f)
		}
	}
	for _, k := range singularKinds {
		obj, ok := object(m[k.ContainerKey()])
		if !ok {
			continue
		}
		f, err := fields.FromWire(k, obj)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k.ContainerKey(), err)
		}
		out = append(out, f)
	}
	return out, nil
}

func fieldFromWire(k fields.Kind, obj map[string]any) (fields.Field, error) {
	if k == fields.KindRelationship {
		return RelationshipFromWire(obj)
	}
	return fields.FromWire(k, obj)
}

// fromWire decodes m and adds the result to c.
func (c *Container) fromWire(kinds []fields.Kind, m map[string]any) error {
	fs, err := fieldsFromWire(kinds, m)
	if err != nil {
		return err
	}
	return c.add(kinds, fs)
}

// toWire encodes the non-empty kinds under their container keys.
func (c *Container) toWire(kinds []fields.Kind) map[string]any {
	m := map[string]any{}
	for _, k := range kinds {
		fs := c.list(k)
		if len(fs) == 0 {
			continue
		}
		objs := make([]map[string]any, len(fs))
		for i, f := range fs {
			objs[i] = f.ToWire()
		}
		m[k.ContainerKey()] = objs
	}
	for _, k := range singularKinds {
		if f := c.singular(k); f != nil {
			m[k.ContainerKey()] = f.ToWire()
		}
	}
	return m
}
