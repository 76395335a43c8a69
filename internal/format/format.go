// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders search responses and history entries for the
// terminal as a table, JSON, YAML or the raw response body.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/peoplesearch/internal/history"
	"github.com/pdiddy/peoplesearch/pkg/containers"
	"github.com/pdiddy/peoplesearch/pkg/search"
)

// Output formats accepted by Write.
const (
	Table = "table"
	JSON  = "json"
	YAML  = "yaml"
	Raw   = "raw"
)

// Write renders resp in the named format.
func Write(w io.Writer, format string, resp *search.Response) error {
	switch format {
	case "", Table:
		WriteTable(w, resp)
		return nil
	case JSON:
		return WriteJSON(w, resp)
	case YAML:
		return WriteYAML(w, resp)
	case Raw:
		if len(resp.Raw) == 0 {
			return fmt.Errorf("response has no raw body")
		}
		_, err := w.Write(append(resp.Raw, '\n'))
		return err
	default:
		return fmt.Errorf("unknown output format %q (want table, json, yaml or raw)", format)
	}
}

// WriteJSON writes the response in its wire shape as indented JSON.
func WriteJSON(w io.Writer, resp *search.Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp.ToWire())
}

// WriteYAML writes the response in its wire shape as YAML.
func WriteYAML(w io.Writer, resp *search.Response) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(resp.ToWire()); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteTable writes a human-readable summary: the definitive person in
// detail, or one row per possible person, then source counts by category.
func WriteTable(w io.Writer, resp *search.Response) {
	fmt.Fprintf(w, "Search %s: %d person(s), %d of %d sources visible\n",
		orDash(resp.SearchID), resp.PersonsCount, resp.VisibleSources, resp.AvailableSources)
	for _, warning := range resp.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	switch {
	case resp.Person != nil:
		fmt.Fprintln(w)
		writePerson(w, resp.Person)
	case len(resp.PossiblePersons) > 0:
		fmt.Fprintln(w)
		writePossiblePersons(w, resp.PossiblePersons)
	default:
		fmt.Fprintln(w, "\nNo persons found.")
	}

	if len(resp.Sources) > 0 {
		fmt.Fprintln(w, "\nSources by category:")
		groups := resp.GroupSourcesByCategory()
		cats := make([]string, 0, len(groups))
		for c := range groups {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Fprintf(w, "  %-30s %d\n", orDash(c), len(groups[c]))
		}
	}
}

func writePerson(w io.Writer, p *containers.Person) {
	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-14s %s\n", label+":", value)
		}
	}
	if p.Match != 0 {
		row("Match", fmt.Sprintf("%.2f", p.Match))
	}
	row("Names", join(p.Names))
	if p.DOB != nil {
		row("Born", p.DOB.String())
	}
	if p.Gender != nil {
		row("Gender", p.Gender.String())
	}
	row("Addresses", join(p.Addresses))
	row("Phones", join(p.Phones))
	row("Emails", join(p.Emails))
	row("Jobs", join(p.Jobs))
	row("Education", join(p.Educations))
	row("Usernames", join(p.Usernames))
	row("User IDs", join(p.UserIDs))
	row("URLs", join(p.URLs))
	row("Vehicles", join(p.Vehicles))
	row("Languages", join(p.Languages))
	row("Relationships", join(p.Relationships))
	row("Pointer", p.SearchPointer)
}

func writePossiblePersons(w io.Writer, persons []*containers.Person) {
	fmt.Fprintf(w, "%-4s  %-5s  %-30s  %-4s  %s\n", "Rank", "Match", "Name", "Age", "Location")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for i, p := range persons {
		name := ""
		if len(p.Names) > 0 {
			name = p.Names[0].String()
		}
		age := ""
		if p.DOB != nil {
			if a, ok := p.DOB.Age(); ok {
				age = fmt.Sprintf("%d", a)
			}
		}
		location := ""
		if len(p.Addresses) > 0 {
			location = p.Addresses[0].String()
		}
		fmt.Fprintf(w, "%-4d  %-5.2f  %-30s  %-4s  %s\n",
			i+1, p.Match, truncate(name, 30), age, truncate(location, 40))
	}
}

// WriteHistory writes history entries as a table, newest first.
func WriteHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No searches recorded.")
		return
	}
	fmt.Fprintf(w, "%-36s  %-20s  %-6s  %-7s  %s\n", "ID", "When", "Status", "Persons", "Query")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, e := range entries {
		query := e.Query
		if e.SearchPointer != "" {
			query = "pointer " + e.SearchPointer
		}
		if e.Error != "" {
			query += "  (" + e.Error + ")"
		}
		fmt.Fprintf(w, "%-36s  %-20s  %-6d  %-7d  %s\n",
			e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), e.HTTPStatusCode, e.PersonsCount, truncate(query, 60))
	}
}

func join[T fmt.Stringer](items []T) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if s := it.String(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "; ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
