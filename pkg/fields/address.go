// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import "strings"

// Address is a postal address, parsed or raw.
type Address struct {
	Common
	// Type is one of home, work, old.
	Type      string
	Country   string
	State     string
	City      string
	POBox     string
	ZipCode   string
	Street    string
	House     string
	Apartment string
	Raw       string
	Display   string
}

func (a *Address) Kind() Kind { return KindAddress }

func (a *Address) decode(m wireMap) error {
	if err := a.Common.decode(m); err != nil {
		return err
	}
	a.Type = m.str("type")
	a.Country = m.str("country")
	a.State = m.str("state")
	a.City = m.str("city")
	a.POBox = m.str("po_box")
	a.ZipCode = m.str("zip_code")
	a.Street = m.str("street")
	a.House = m.str("house")
	a.Apartment = m.str("apartment")
	a.Raw = m.str("raw")
	a.Display = m.str("display")
	return checkType(KindAddress, a.Type)
}

func (a *Address) ToWire() map[string]any {
	w := a.Common.writer()
	w.attr("type", a.Type)
	w.child("country", a.Country)
	w.child("state", a.State)
	w.child("city", a.City)
	w.child("po_box", a.POBox)
	w.child("zip_code", a.ZipCode)
	w.child("street", a.Street)
	w.child("house", a.House)
	w.child("apartment", a.Apartment)
	w.child("raw", a.Raw)
	w.child("display", a.Display)
	return w.m
}

func (a *Address) Representation() string { return representation(KindAddress, a.ToWire()) }

// IsSearchable reports whether the address can narrow a query.
func (a *Address) IsSearchable() bool {
	return a.Raw != "" || a.City != "" || a.State != "" || a.Country != ""
}

// IsSoleSearchable reports whether the address is detailed enough to anchor
// a query on its own.
func (a *Address) IsSoleSearchable() bool {
	return a.Raw != "" || (a.City != "" && a.Street != "" && a.House != "")
}

// IsValidCountry reports whether Country is a known country code.
func (a *Address) IsValidCountry() bool {
	_, ok := countries[strings.ToUpper(a.Country)]
	return a.Country != "" && ok
}

// IsValidState reports whether State is a known code for a country that has
// a state table (US, CA, AU, GB).
func (a *Address) IsValidState() bool {
	if !a.IsValidCountry() || a.State == "" {
		return false
	}
	table, ok := states[strings.ToUpper(a.Country)]
	if !ok {
		return false
	}
	_, ok = table[strings.ToUpper(a.State)]
	return ok
}

// CountryFull returns the country's full name, or "" if unknown.
//
//	(&Address{Country: "FR"}).CountryFull() // "France"
func (a *Address) CountryFull() string {
	return countries[strings.ToUpper(a.Country)]
}

// StateFull returns the state's full name, or "" if the state is not valid.
//
//	(&Address{Country: "US", State: "CO"}).StateFull() // "Colorado"
func (a *Address) StateFull() string {
	if !a.IsValidState() {
		return ""
	}
	return states[strings.ToUpper(a.Country)][strings.ToUpper(a.State)]
}

// String is Display, else Raw, else the set address parts.
func (a *Address) String() string {
	if a.Display != "" {
		return a.Display
	}
	if a.Raw != "" {
		return a.Raw
	}
	var parts []string
	street := strings.TrimSpace(a.House + " " + a.Street)
	for _, p := range []string{street, a.City, a.State, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
