// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9'._%\-+]+@[a-zA-Z0-9._%\-]+\.[a-zA-Z]{2,24}$`)

// Email is an email address, or the MD5 of one.
type Email struct {
	Common
	// Type is one of personal, work.
	Type          string
	Disposable    bool
	EmailProvider bool

	Address    string
	AddressMD5 string
}

func (e *Email) Kind() Kind { return KindEmail }

func (e *Email) decode(m wireMap) error {
	if err := e.Common.decode(m); err != nil {
		return err
	}
	e.Type = m.str("type")
	e.Disposable = m.bool("disposable")
	e.EmailProvider = m.bool("email_provider")
	e.Address = m.str("address")
	e.AddressMD5 = m.str("address_md5")
	return checkType(KindEmail, e.Type)
}

func (e *Email) ToWire() map[string]any {
	w := e.Common.writer()
	w.attr("type", e.Type)
	w.attr("disposable", e.Disposable)
	w.attr("email_provider", e.EmailProvider)
	w.child("address", e.Address)
	w.child("address_md5", e.AddressMD5)
	return w.m
}

func (e *Email) Representation() string { return representation(KindEmail, e.ToWire()) }

// IsValidEmail reports whether Address is syntactically an email address.
func (e *Email) IsValidEmail() bool {
	return e.Address != "" && emailPattern.MatchString(e.Address)
}

// IsSearchable accepts a valid address or an address MD5.
func (e *Email) IsSearchable() bool {
	return e.AddressMD5 != "" || e.IsValidEmail()
}

// Username returns the part before "@", or "" if the address is invalid.
//
//	(&Email{Address: "clark.kent@example.com"}).Username() // "clark.kent"
func (e *Email) Username() string {
	if !e.IsValidEmail() {
		return ""
	}
	user, _, _ := strings.Cut(e.Address, "@")
	return user
}

// Domain returns the part after "@", or "" if the address is invalid.
func (e *Email) Domain() string {
	if !e.IsValidEmail() {
		return ""
	}
	_, domain, _ := strings.Cut(e.Address, "@")
	return domain
}

// String is the address, or its MD5 when only that is known.
func (e *Email) String() string {
	if e.Address != "" {
		return e.Address
	}
	return e.AddressMD5
}
