// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DateFormat is the layout of every date on the wire.
const DateFormat = "2006-01-02"

// now is the clock used by age arithmetic. Tests pin it.
var now = time.Now

// today returns the current UTC date at midnight.
func today() time.Time {
	t := now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Common holds the metadata every field carries.
type Common struct {
	// ValidSince is when the provider first saw this data.
	ValidSince time.Time
	// LastSeen is when the provider last saw this data.
	LastSeen time.Time
	Current  bool
	// Inferred marks data the provider derived rather than observed.
	Inferred bool
}

func (c *Common) decode(m wireMap) error {
	var err error
	if c.ValidSince, err = m.date("valid_since"); err != nil {
		return err
	}
	if c.LastSeen, err = m.date("last_seen"); err != nil {
		return err
	}
	c.Current = m.bool("current")
	c.Inferred = m.bool("inferred")
	return nil
}

func (c Common) writer() *wireWriter {
	w := &wireWriter{m: map[string]any{}}
	w.attr("valid_since", c.ValidSince)
	w.attr("last_seen", c.LastSeen)
	w.attr("current", c.Current)
	w.attr("inferred", c.Inferred)
	return w
}

// wireMap is a parameter or wire map with "@" markers stripped from its keys.
type wireMap map[string]any

func normalize(m map[string]any) wireMap {
	out := make(wireMap, len(m))
	for k, v := range m {
		out[strings.TrimPrefix(k, "@")] = v
	}
	return out
}

func (m wireMap) str(key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	case fmt.Stringer:
		return v.String()
	}
	return ""
}

func (m wireMap) int(key string) int64 {
	switch v := m[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n
	}
	return 0
}

func (m wireMap) bool(key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}

func (m wireMap) date(key string) (time.Time, error) {
	switch v := m[key].(type) {
	case time.Time:
		return v, nil
	case string:
		if v == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(DateFormat, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid date %s %q", ErrInvalidArgument, key, v)
		}
		return t, nil
	}
	return time.Time{}, nil
}

func (m wireMap) dateRange(key string) (*DateRange, error) {
	switch v := m[key].(type) {
	case *DateRange:
		return v, nil
	case DateRange:
		return &v, nil
	case map[string]any:
		return DateRangeFromWire(v)
	}
	return nil, nil
}

// wireWriter accumulates a field's wire object, skipping unset values.
type wireWriter struct {
	m map[string]any
}

func (w *wireWriter) attr(name string, v any) {
	w.set("@"+name, v)
}

func (w *wireWriter) child(name string, v any) {
	w.set(name, v)
}

func (w *wireWriter) set(key string, v any) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return
		}
	case int64:
		if x == 0 {
			return
		}
	case bool:
		if !x {
			return
		}
	case time.Time:
		if x.IsZero() {
			return
		}
		v = x.Format(DateFormat)
	case *DateRange:
		if x == nil {
			return
		}
		v = x.ToWire()
	}
	w.m[key] = v
}

// representation renders "Kind(name=value, ...)" over the set attributes and
// children in declaration order, followed by valid_since.
func representation(k Kind, wire map[string]any) string {
	s := schemas[k]
	var parts []string
	for _, name := range s.attributes {
		if v, ok := wire["@"+name]; ok {
			parts = append(parts, name+"="+reprValue(v))
		}
	}
	for _, name := range s.children {
		if v, ok := wire[name]; ok {
			parts = append(parts, name+"="+reprValue(v))
		}
	}
	if v, ok := wire["@valid_since"]; ok {
		parts = append(parts, "valid_since="+reprValue(v))
	}
	return k.String() + "(" + strings.Join(parts, ", ") + ")"
}

func reprValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case map[string]any:
		start, _ := x["start"].(string)
		end, _ := x["end"].(string)
		switch {
		case start != "" && end != "":
			return start + " - " + end
		case start != "":
			return start
		}
		return end
	}
	return fmt.Sprint(v)
}

func countRunes(s string, keep func(rune) bool) int {
	n := 0
	for _, r := range s {
		if keep(r) {
			n++
		}
	}
	return n
}

func alphaLen(s string) int {
	return countRunes(s, unicode.IsLetter)
}

func alnumLen(s string) int {
	return countRunes(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	})
}
