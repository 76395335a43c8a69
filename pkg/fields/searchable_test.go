// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// --- Name ---

func TestNameIsSearchable(t *testing.T) {
	tests := []struct {
		name string
		in   Name
		want bool
	}{
		{"two letter first and last", Name{First: "Al", Last: "Li"}, true},
		{"one letter first", Name{First: "A", Last: "Li"}, false},
		{"digits do not count", Name{First: "A1", Last: "Li"}, false},
		{"punctuation stripped", Name{First: "J.R.", Last: "O'Neil"}, true},
		{"raw too short", Name{Raw: "Bob"}, false},
		{"raw long enough", Name{Raw: "Bobby"}, true},
		{"raw with spaces", Name{Raw: "Al Li"}, true},
		{"unicode letters", Name{First: "Zoë", Last: "Ñu"}, true},
		{"empty", Name{}, false},
		{"last only", Name{Last: "Kent"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.IsSearchable())
		})
	}
}

// --- Email ---

func TestEmailSearchableAndAccessors(t *testing.T) {
	valid := &Email{Address: "clark.kent@example.com"}
	assert.True(t, valid.IsSearchable())
	assert.True(t, valid.IsValidEmail())
	assert.Equal(t, "clark.kent", valid.Username())
	assert.Equal(t, "example.com", valid.Domain())

	invalid := &Email{Address: "not-an-email"}
	assert.False(t, invalid.IsSearchable())
	assert.False(t, invalid.IsValidEmail())
	assert.Empty(t, invalid.Username())
	assert.Empty(t, invalid.Domain())

	md5Only := &Email{AddressMD5: "e0f6a1d2b3c4d5e6f7a8b9c0d1e2f3a4"}
	assert.True(t, md5Only.IsSearchable())
	assert.False(t, md5Only.IsValidEmail())
}

func TestEmailPattern(t *testing.T) {
	tests := []struct {
		addr string
		want bool
	}{
		{"o'brien+tag@mail.example.org", true},
		{"user@example.c", false},
		{"user@example.abcdefghijklmnopqrstuvwxyz", false},
		{"user@@example.com", false},
		{"@example.com", false},
		{"user@example", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Email{Address: tt.addr}).IsValidEmail())
		})
	}
}

// --- Phone ---

func TestPhoneIsSearchable(t *testing.T) {
	tests := []struct {
		name string
		in   Phone
		want bool
	}{
		{"raw", Phone{Raw: "(978) 555-0145"}, true},
		{"number without country code", Phone{Number: 9785550145}, true},
		{"number with country code 1", Phone{CountryCode: 1, Number: 9785550145}, true},
		{"number with foreign country code", Phone{CountryCode: 972, Number: 35550145}, false},
		{"foreign code but raw", Phone{CountryCode: 972, Raw: "+972 3 555 0145"}, true},
		{"empty", Phone{}, false},
		{"country code only", Phone{CountryCode: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.IsSearchable())
		})
	}
}

func TestPhoneFromText(t *testing.T) {
	p := PhoneFromText("978-555-0145")
	assert.Equal(t, "978-555-0145", p.Raw)
	assert.True(t, p.IsSearchable())
}

// --- Username / UserID / URL ---

func TestUsernameIsSearchable(t *testing.T) {
	assert.True(t, (&Username{Content: "ck1"}).IsSearchable())
	assert.False(t, (&Username{Content: "c.k"}).IsSearchable())
	assert.False(t, (&Username{}).IsSearchable())

	old := MinUsernameLength
	t.Cleanup(func() { MinUsernameLength = old })
	MinUsernameLength = 4
	assert.False(t, (&Username{Content: "ck1"}).IsSearchable())
	assert.True(t, (&Username{Content: "ck12"}).IsSearchable())
}

func TestUserIDIsSearchable(t *testing.T) {
	tests := []struct {
		content string
		want    bool
	}{
		{"11231@facebook", true},
		{"a@b", true},
		{"@facebook", false},
		{"11231@", false},
		{"11231", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			assert.Equal(t, tt.want, (&UserID{Content: tt.content}).IsSearchable())
		})
	}
}

func TestURLIsSearchable(t *testing.T) {
	u := &URL{URL: "https://www.linkedin.com/in/clark-kent"}
	assert.True(t, u.IsSearchable())
	assert.True(t, u.IsValidURL())

	bad := &URL{URL: "linkedin clark kent"}
	assert.True(t, bad.IsSearchable())
	assert.False(t, bad.IsValidURL())

	assert.False(t, (&URL{}).IsSearchable())
}

// --- Address ---

func TestAddressSearchability(t *testing.T) {
	tests := []struct {
		name       string
		in         Address
		searchable bool
		sole       bool
	}{
		{"raw", Address{Raw: "10 Hickory Lane, Smallville, KS"}, true, true},
		{"city only", Address{City: "Metropolis"}, true, false},
		{"country only", Address{Country: "US"}, true, false},
		{"state only", Address{State: "KS"}, true, false},
		{"city street house", Address{City: "Smallville", Street: "Hickory Lane", House: "10"}, true, true},
		{"street and house without city", Address{Street: "Hickory Lane", House: "10"}, false, false},
		{"empty", Address{}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.searchable, tt.in.IsSearchable())
			assert.Equal(t, tt.sole, tt.in.IsSoleSearchable())
		})
	}
}

// --- defaults ---

func TestAlwaysSearchableVariants(t *testing.T) {
	for _, f := range []Field{
		&Job{}, &Education{}, &Image{}, &Gender{}, &Ethnicity{},
		&Language{}, &OriginCountry{}, &Tag{},
	} {
		assert.True(t, f.IsSearchable(), f.Kind().String())
	}
}

func TestDOBIsSearchable(t *testing.T) {
	assert.False(t, (&DOB{}).IsSearchable())
	r, err := NewDateRange(time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	assert.NoError(t, err)
	assert.True(t, (&DOB{DateRange: r}).IsSearchable())
}
