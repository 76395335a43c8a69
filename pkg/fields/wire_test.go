// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wireSamples holds one fully populated wire object per variant, as the
// provider would send it.
var wireSamples = map[Kind]string{
	KindName: `{"@type":"present","@valid_since":"2010-05-03","@last_seen":"2019-01-01","@current":true,
		"first":"Clark","middle":"Joseph","last":"Kent","prefix":"Mr.","suffix":"Jr.","raw":"Clark Joseph Kent","display":"Clark Kent"}`,
	KindAddress: `{"@type":"home","country":"US","state":"KS","city":"Smallville","po_box":"12","zip_code":"66605",
		"street":"Hickory Lane","house":"10","apartment":"1","raw":"10 Hickory Lane","display":"10-1 Hickory Lane, Smallville, Kansas"}`,
	KindPhone: `{"@type":"mobile","@do_not_call":true,"@voip":true,"country_code":1,"number":9785550145,"extension":12,
		"raw":"978-555-0145","display":"978-555-0145","display_international":"+1 978-555-0145"}`,
	KindEmail:         `{"@type":"work","@disposable":true,"@email_provider":true,"address":"clark.kent@example.com","address_md5":"abc123"}`,
	KindJob:           `{"title":"Reporter","organization":"Daily Planet","industry":"Media","date_range":{"start":"2000-01-01","end":"2010-12-31"},"display":"Reporter at Daily Planet"}`,
	KindEthnicity:     `{"@inferred":true,"content":"white"}`,
	KindOriginCountry: `{"country":"US"}`,
	KindLanguage:      `{"language":"en","region":"US","display":"English"}`,
	KindEducation:     `{"degree":"B.Sc Journalism","school":"Metropolis University","date_range":{"start":"1990-09-01","end":"1994-06-30"},"display":"B.Sc Journalism from Metropolis University"}`,
	KindImage:         `{"url":"https://example.com/clark.jpg","thumbnail_token":"AE2861B2&dsid=56140"}`,
	KindUsername:      `{"content":"superman"}`,
	KindVehicle:       `{"@is_vin_valid":true,"vin":"1M8GDM9AXKP042788","year":2012,"make":"toyota","model":"camry","color":"silver","vehicle_type":"sedan"}`,
	KindUserID:        `{"content":"11231@facebook"}`,
	KindURL:           `{"@category":"professional_and_business","@sponsored":true,"@source_id":"1a2b","@name":"LinkedIn","@domain":"linkedin.com","url":"https://linkedin.com/in/ck"}`,
	KindDOB:           `{"date_range":{"start":"1986-01-01","end":"1986-12-31"},"display":"36 years old"}`,
	KindGender:        `{"content":"male"}`,
	KindTag:           `{"@classification":"keyword","content":"journalism"}`,
}

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

// --- round trip ---

func TestFromWireToWireRoundTrip(t *testing.T) {
	for kind, sample := range wireSamples {
		t.Run(kind.String(), func(t *testing.T) {
			first, err := FromWire(kind, decodeJSON(t, sample))
			require.NoError(t, err)
			assert.Equal(t, kind, first.Kind())

			// Through the in-memory map.
			second, err := FromWire(kind, first.ToWire())
			require.NoError(t, err)
			assert.Equal(t, first, second)

			// Through JSON text, as a real request would travel.
			data, err := json.Marshal(first.ToWire())
			require.NoError(t, err)
			third, err := FromWire(kind, decodeJSON(t, string(data)))
			require.NoError(t, err)
			assert.Equal(t, first, third)
		})
	}
}

func TestToWireMatchesProviderShape(t *testing.T) {
	for kind, sample := range wireSamples {
		if kind == KindVehicle {
			continue // display is derived locally
		}
		t.Run(kind.String(), func(t *testing.T) {
			f, err := FromWire(kind, decodeJSON(t, sample))
			require.NoError(t, err)
			data, err := json.Marshal(f.ToWire())
			require.NoError(t, err)
			assert.JSONEq(t, sample, string(data))
		})
	}
}

func TestToWireOmitsUnsetValues(t *testing.T) {
	n := &Name{First: "Clark"}
	assert.Equal(t, map[string]any{"first": "Clark"}, n.ToWire())

	p := &Phone{Number: 9785550145}
	assert.Equal(t, map[string]any{"number": int64(9785550145)}, p.ToWire())
}

func TestToWireMetadata(t *testing.T) {
	n := &Name{
		Common: Common{
			ValidSince: time.Date(2010, 5, 3, 0, 0, 0, 0, time.UTC),
			LastSeen:   time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Last: "Kent",
	}
	assert.Equal(t, map[string]any{
		"@valid_since": "2010-05-03",
		"@last_seen":   "2019-01-01",
		"last":         "Kent",
	}, n.ToWire())
}

// --- permissive construction ---

func TestFromWireIgnoresUnknownKeys(t *testing.T) {
	f, err := FromWire(KindName, map[string]any{
		"first":          "Clark",
		"@favorite_food": "pie",
		"superpower":     "flight",
	})
	require.NoError(t, err)
	assert.Equal(t, &Name{First: "Clark"}, f)
}

func TestFromWireAcceptsEitherKeyForm(t *testing.T) {
	a, err := FromWire(KindEmail, map[string]any{"@type": "work", "address": "ck@example.com"})
	require.NoError(t, err)
	b, err := FromWire(KindEmail, map[string]any{"type": "work", "@address": "ck@example.com"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewAcceptsGoTypedValues(t *testing.T) {
	since := time.Date(2015, 2, 1, 0, 0, 0, 0, time.UTC)
	r, err := NewDateRange(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := New(KindJob, map[string]any{
		"title":       "Reporter",
		"valid_since": since,
		"date_range":  r,
	})
	require.NoError(t, err)
	job := f.(*Job)
	assert.Equal(t, "Reporter", job.Title)
	assert.Equal(t, since, job.ValidSince)
	assert.Same(t, r, job.DateRange)

	f, err = New(KindPhone, map[string]any{"country_code": 1, "number": "9785550145"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), f.(*Phone).CountryCode)
	assert.Equal(t, int64(9785550145), f.(*Phone).Number)
}

// --- type validation ---

func TestTypeValidation(t *testing.T) {
	tests := []struct {
		kind  Kind
		value string
		ok    bool
	}{
		{KindName, "maiden", true},
		{KindName, "nickname", false},
		{KindAddress, "work", true},
		{KindAddress, "vacation", false},
		{KindPhone, "home_fax", true},
		{KindPhone, "satellite", false},
		{KindEmail, "personal", true},
		{KindEmail, "spam", false},
		{KindName, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.value, func(t *testing.T) {
			_, err := New(tt.kind, map[string]any{"type": tt.value})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), "Invalid type for "+tt.kind.String())
		})
	}
}

func TestValidateStructLiteral(t *testing.T) {
	assert.NoError(t, Validate(&Name{Type: "alias"}))
	assert.ErrorIs(t, Validate(&Name{Type: "bogus"}), ErrInvalidArgument)
	assert.ErrorIs(t, Validate(&Phone{Type: "bogus"}), ErrInvalidArgument)
	assert.NoError(t, Validate(&Username{Content: "anything"}))
}

func TestFromWireBadDate(t *testing.T) {
	_, err := FromWire(KindName, map[string]any{"first": "Clark", "@valid_since": "May 3rd"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromWire(KindJob, map[string]any{"date_range": map[string]any{}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFromWireUnknownKind(t *testing.T) {
	_, err := FromWire(KindRelationship, map[string]any{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// --- representation ---

func TestRepresentation(t *testing.T) {
	n := &Name{
		Common: Common{ValidSince: time.Date(2010, 5, 3, 0, 0, 0, 0, time.UTC)},
		Type:   "present",
		First:  "Clark",
		Last:   "Kent",
	}
	assert.Equal(t, "Name(type=present, first=Clark, last=Kent, valid_since=2010-05-03)", n.Representation())

	assert.Equal(t, "Name(first=a)", (&Name{First: "a"}).Representation())
	assert.Equal(t, "Username()", (&Username{}).Representation())

	r, err := NewDateRange(time.Date(1986, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(1986, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "DOB(date_range=1986-01-01 - 1986-12-31)", (&DOB{DateRange: r}).Representation())

	p := &Phone{Type: "mobile", VoIP: true, CountryCode: 1, Number: 9785550145}
	assert.Equal(t, "Phone(type=mobile, voip=true, country_code=1, number=9785550145)", p.Representation())
}

// --- kinds ---

func TestKindMetadata(t *testing.T) {
	assert.Equal(t, "names", KindName.ContainerKey())
	assert.Equal(t, "origin_countries", KindOriginCountry.ContainerKey())
	assert.Equal(t, "user_ids", KindUserID.ContainerKey())
	assert.Equal(t, "dob", KindDOB.ContainerKey())
	assert.True(t, KindDOB.Singular())
	assert.True(t, KindGender.Singular())
	assert.False(t, KindName.Singular())
	assert.Equal(t, "Kind(99)", Kind(99).String())
	assert.Contains(t, KindPhone.Types(), "voip")
	assert.Nil(t, KindUsername.Types())
}

// --- display strings ---

func TestStringers(t *testing.T) {
	tests := []struct {
		f    Field
		want string
	}{
		{&Name{First: "Clark", Last: "Kent"}, "Clark Kent"},
		{&Name{Display: "Clark J. Kent", First: "Clark"}, "Clark J. Kent"},
		{&Gender{Content: "male"}, "Male"},
		{&Ethnicity{Content: "native_american"}, "Native American"},
		{&OriginCountry{Country: "fr"}, "France"},
		{&OriginCountry{Country: "ZZ"}, "ZZ"},
		{&Language{Language: "en", Region: "US"}, "en_US"},
		{&Language{Language: "en"}, "en"},
		{&Job{Title: "Reporter", Organization: "Daily Planet"}, "Reporter at Daily Planet"},
		{&Phone{CountryCode: 1, Number: 9785550145}, "+1 9785550145"},
		{&Email{Address: "ck@example.com"}, "ck@example.com"},
		{&Vehicle{VIN: "1M8GDM9AXKP042788", Year: 2012, Make: "TOYOTA", Model: "camry", VehicleType: "sedan", Color: "silver"},
			"2012 Toyota Camry Sedan Silver - VIN 1M8GDM9AXKP042788"},
		{&Vehicle{}, "VIN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.f.String())
		})
	}
}
