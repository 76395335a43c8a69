// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import "strings"

// Name is a full or partial person name.
type Name struct {
	Common
	// Type is one of present, maiden, former, alias, alternative, autogenerated.
	Type    string
	First   string
	Middle  string
	Last    string
	Prefix  string
	Suffix  string
	Raw     string
	Display string
}

func (n *Name) Kind() Kind { return KindName }

func (n *Name) decode(m wireMap) error {
	if err := n.Common.decode(m); err != nil {
		return err
	}
	n.Type = m.str("type")
	n.First = m.str("first")
	n.Middle = m.str("middle")
	n.Last = m.str("last")
	n.Prefix = m.str("prefix")
	n.Suffix = m.str("suffix")
	n.Raw = m.str("raw")
	n.Display = m.str("display")
	return checkType(KindName, n.Type)
}

func (n *Name) ToWire() map[string]any {
	w := n.Common.writer()
	w.attr("type", n.Type)
	w.child("first", n.First)
	w.child("middle", n.Middle)
	w.child("last", n.Last)
	w.child("prefix", n.Prefix)
	w.child("suffix", n.Suffix)
	w.child("raw", n.Raw)
	w.child("display", n.Display)
	return w.m
}

func (n *Name) Representation() string { return representation(KindName, n.ToWire()) }

// IsSearchable requires a first and last name of at least two letters each,
// or a raw name of at least four letters.
func (n *Name) IsSearchable() bool {
	return (alphaLen(n.First) >= 2 && alphaLen(n.Last) >= 2) || alphaLen(n.Raw) >= 4
}

// String is Display, else the set name parts joined by spaces, else Raw.
func (n *Name) String() string {
	if n.Display != "" {
		return n.Display
	}
	var parts []string
	for _, p := range []string{n.Prefix, n.First, n.Middle, n.Last, n.Suffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return n.Raw
	}
	return strings.Join(parts, " ")
}
