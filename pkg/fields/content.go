// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MinUsernameLength is the number of letters and digits a username needs to
// be searchable.
var MinUsernameLength = 3

var userIDPattern = regexp.MustCompile(`.@.`)

var titleCaser = cases.Title(language.Und)

func title(s string) string {
	return titleCaser.String(strings.ToLower(s))
}

// Username is a login name on some service.
type Username struct {
	Common
	Content string
}

func (u *Username) Kind() Kind { return KindUsername }

func (u *Username) decode(m wireMap) error {
	if err := u.Common.decode(m); err != nil {
		return err
	}
	u.Content = m.str("content")
	return nil
}

func (u *Username) ToWire() map[string]any {
	w := u.Common.writer()
	w.child("content", u.Content)
	return w.m
}

func (u *Username) Representation() string { return representation(KindUsername, u.ToWire()) }

// IsSearchable requires MinUsernameLength letters or digits.
func (u *Username) IsSearchable() bool { return alnumLen(u.Content) >= MinUsernameLength }

func (u *Username) String() string { return u.Content }

// UserID is a service-scoped identifier written as "id@service".
type UserID struct {
	Common
	Content string
}

func (u *UserID) Kind() Kind { return KindUserID }

func (u *UserID) decode(m wireMap) error {
	if err := u.Common.decode(m); err != nil {
		return err
	}
	u.Content = m.str("content")
	return nil
}

func (u *UserID) ToWire() map[string]any {
	w := u.Common.writer()
	w.child("content", u.Content)
	return w.m
}

func (u *UserID) Representation() string { return representation(KindUserID, u.ToWire()) }

// IsSearchable requires the "id@service" form.
func (u *UserID) IsSearchable() bool { return userIDPattern.MatchString(u.Content) }

func (u *UserID) String() string { return u.Content }

// Gender is "male" or "female" on the wire.
type Gender struct {
	Common
	Content string
}

func (g *Gender) Kind() Kind { return KindGender }

func (g *Gender) decode(m wireMap) error {
	if err := g.Common.decode(m); err != nil {
		return err
	}
	g.Content = m.str("content")
	return nil
}

func (g *Gender) ToWire() map[string]any {
	w := g.Common.writer()
	w.child("content", g.Content)
	return w.m
}

func (g *Gender) Representation() string { return representation(KindGender, g.ToWire()) }

func (g *Gender) IsSearchable() bool { return true }

// String is the title-cased content, e.g. "Male".
func (g *Gender) String() string { return title(g.Content) }

// Ethnicity uses the provider's snake_case vocabulary, e.g. "native_american".
type Ethnicity struct {
	Common
	Content string
}

func (e *Ethnicity) Kind() Kind { return KindEthnicity }

func (e *Ethnicity) decode(m wireMap) error {
	if err := e.Common.decode(m); err != nil {
		return err
	}
	e.Content = m.str("content")
	return nil
}

func (e *Ethnicity) ToWire() map[string]any {
	w := e.Common.writer()
	w.child("content", e.Content)
	return w.m
}

func (e *Ethnicity) Representation() string { return representation(KindEthnicity, e.ToWire()) }

func (e *Ethnicity) IsSearchable() bool { return true }

// String is the content with underscores as spaces, title-cased.
func (e *Ethnicity) String() string { return title(strings.ReplaceAll(e.Content, "_", " ")) }

// OriginCountry is a two-letter country code.
type OriginCountry struct {
	Common
	Country string
}

func (o *OriginCountry) Kind() Kind { return KindOriginCountry }

func (o *OriginCountry) decode(m wireMap) error {
	if err := o.Common.decode(m); err != nil {
		return err
	}
	o.Country = m.str("country")
	return nil
}

func (o *OriginCountry) ToWire() map[string]any {
	w := o.Common.writer()
	w.child("country", o.Country)
	return w.m
}

func (o *OriginCountry) Representation() string {
	return representation(KindOriginCountry, o.ToWire())
}

func (o *OriginCountry) IsSearchable() bool { return true }

// String is the country's full name, or the code when unknown.
func (o *OriginCountry) String() string {
	if full := countries[strings.ToUpper(o.Country)]; full != "" {
		return full
	}
	return o.Country
}

// Tag is a free-form label attached to a source.
type Tag struct {
	Common
	Classification string
	Content        string
}

func (t *Tag) Kind() Kind { return KindTag }

func (t *Tag) decode(m wireMap) error {
	if err := t.Common.decode(m); err != nil {
		return err
	}
	t.Classification = m.str("classification")
	t.Content = m.str("content")
	return nil
}

func (t *Tag) ToWire() map[string]any {
	w := t.Common.writer()
	w.attr("classification", t.Classification)
	w.child("content", t.Content)
	return w.m
}

func (t *Tag) Representation() string { return representation(KindTag, t.ToWire()) }

func (t *Tag) IsSearchable() bool { return true }

func (t *Tag) String() string { return t.Content }

// Language is a language with an optional region, e.g. en / US.
type Language struct {
	Common
	Language string
	Region   string
	Display  string
}

func (l *Language) Kind() Kind { return KindLanguage }

func (l *Language) decode(m wireMap) error {
	if err := l.Common.decode(m); err != nil {
		return err
	}
	l.Language = m.str("language")
	l.Region = m.str("region")
	l.Display = m.str("display")
	return nil
}

func (l *Language) ToWire() map[string]any {
	w := l.Common.writer()
	w.child("language", l.Language)
	w.child("region", l.Region)
	w.child("display", l.Display)
	return w.m
}

func (l *Language) Representation() string { return representation(KindLanguage, l.ToWire()) }

func (l *Language) IsSearchable() bool { return true }

// String is Display, else "language_REGION".
func (l *Language) String() string {
	switch {
	case l.Display != "":
		return l.Display
	case l.Region != "":
		return l.Language + "_" + l.Region
	}
	return l.Language
}
