// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import "strconv"

// Phone is a phone number, parsed into country code and number or raw.
type Phone struct {
	Common
	// Type is one of mobile, home_phone, home_fax, work_phone, work_fax, pager, voip.
	Type      string
	DoNotCall bool
	VoIP      bool

	CountryCode          int64
	Number               int64
	Extension            int64
	Raw                  string
	Display              string
	DisplayInternational string
}

// PhoneFromText returns a phone holding an unparsed number.
func PhoneFromText(text string) *Phone {
	return &Phone{Raw: text}
}

func (p *Phone) Kind() Kind { return KindPhone }

func (p *Phone) decode(m wireMap) error {
	if err := p.Common.decode(m); err != nil {
		return err
	}
	p.Type = m.str("type")
	p.DoNotCall = m.bool("do_not_call")
	p.VoIP = m.bool("voip")
	p.CountryCode = m.int("country_code")
	p.Number = m.int("number")
	p.Extension = m.int("extension")
	p.Raw = m.str("raw")
	p.Display = m.str("display")
	p.DisplayInternational = m.str("display_international")
	return checkType(KindPhone, p.Type)
}

func (p *Phone) ToWire() map[string]any {
	w := p.Common.writer()
	w.attr("type", p.Type)
	w.attr("do_not_call", p.DoNotCall)
	w.attr("voip", p.VoIP)
	w.child("country_code", p.CountryCode)
	w.child("number", p.Number)
	w.child("extension", p.Extension)
	w.child("raw", p.Raw)
	w.child("display", p.Display)
	w.child("display_international", p.DisplayInternational)
	return w.m
}

func (p *Phone) Representation() string { return representation(KindPhone, p.ToWire()) }

// IsSearchable accepts a raw number, or a parsed number that is domestic to
// North America (no country code, or code 1).
func (p *Phone) IsSearchable() bool {
	return p.Raw != "" || (p.Number != 0 && (p.CountryCode == 0 || p.CountryCode == 1))
}

// String is Display, else Raw, else "+code number".
func (p *Phone) String() string {
	switch {
	case p.Display != "":
		return p.Display
	case p.Raw != "":
		return p.Raw
	case p.Number != 0:
		s := strconv.FormatInt(p.Number, 10)
		if p.CountryCode != 0 {
			s = "+" + strconv.FormatInt(p.CountryCode, 10) + " " + s
		}
		return s
	}
	return ""
}
