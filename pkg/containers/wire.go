// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package containers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/pdiddy/peoplesearch/pkg/fields"
)

// object accepts a decoded JSON object or a map built in memory.
func object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// objects accepts a decoded JSON array of objects ([]any) or the
// []map[string]any that ToWire produces. Non-object elements are skipped.
func objects(v any) []map[string]any {
	switch x := v.(type) {
	case []map[string]any:
		return x
	case []any:
		out := make([]map[string]any, 0, len(x))
		for _, e := range x {
			if m, ok := object(e); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// attrs reads container attributes. The "@" form of a key wins over the bare
// form.
type attrs map[string]any

func (a attrs) get(name string) any {
	if v, ok := a["@"+name]; ok {
		return v
	}
	return a[name]
}

func (a attrs) str(name string) string {
	switch v := a.get(name).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	}
	return ""
}

func (a attrs) float(name string) float64 {
	switch v := a.get(name).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

func (a attrs) bool(name string) bool {
	switch v := a.get(name).(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

func (a attrs) date(name string) (time.Time, error) {
	switch v := a.get(name).(type) {
	case time.Time:
		return v, nil
	case string:
		if v == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(fields.DateFormat, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: invalid date %s %q", fields.ErrInvalidArgument, name, v)
		}
		return t, nil
	}
	return time.Time{}, nil
}

// setAttr writes "@name" unless v is a zero value.
func setAttr(m map[string]any, name string, v any) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return
		}
	case float64:
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
		v = x.Format(fields.DateFormat)
	}
	m["@"+name] = v
}
