// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdiddy/peoplesearch/internal/format"
	"github.com/pdiddy/peoplesearch/internal/queryfile"
	"github.com/pdiddy/peoplesearch/pkg/search"
	"github.com/pdiddy/peoplesearch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search for one person",
	Long: `Search builds a query person from the flags (or the query of a YAML query
file), validates it locally and sends it to the search API.

At least one searchable value is needed: a full name, an email, a phone, a
username, a user ID, a URL, a detailed address or a search pointer from an
earlier response.`,
	Example: `  peoplesearch search --first-name Clark --last-name Kent --state KS --country US
  peoplesearch search --email clark.kent@example.com -o json
  peoplesearch search --search-pointer 8a1d...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := paramsFromFlags(cmd.Flags())
		flags := searchFlags(cmd.Flags(), app.cfg.Search)

		if path, _ := cmd.Flags().GetString("query-file"); path != "" {
			qf, err := queryfile.Read(path)
			if err != nil {
				return err
			}
			if qf.Query == nil {
				return fmt.Errorf("query file %s has no single query; use the batch command", path)
			}
			p = *qf.Query
			if qf.Config != nil {
				flags = mergeFlags(flags, *qf.Config)
			}
		}

		c, cleanup, err := newClient(cmd.Context(), flags)
		if err != nil {
			return err
		}
		defer cleanup()

		resp, err := c.Search(cmd.Context(), p)
		if save, _ := cmd.Flags().GetString("save"); save != "" {
			saved := flags
			saved.APIKey = ""
			qf := &queryfile.QueryFile{Query: &p, Config: &saved, Results: []queryfile.Summary{queryfile.Summarize(p, resp, err)}}
			if werr := queryfile.Write(save, qf); werr != nil {
				return werr
			}
			fmt.Fprintf(os.Stderr, "Saved query to %s\n", save)
		}
		if err != nil {
			return err
		}
		return format.Write(cmd.OutOrStdout(), outputFormat(cmd), resp)
	},
}

func init() {
	f := searchCmd.Flags()
	f.String("first-name", "", "first name")
	f.String("middle-name", "", "middle name")
	f.String("last-name", "", "last name")
	f.String("raw-name", "", "unparsed full name")
	f.String("email", "", "email address")
	f.String("phone", "", "phone number, any format")
	f.String("username", "", "username or screen name")
	f.String("user-id", "", "service user ID, e.g. 11231@facebook")
	f.String("url", "", "profile URL")
	f.String("country", "", "ISO 3166 country code")
	f.String("state", "", "state or province code")
	f.String("city", "", "city")
	f.String("raw-address", "", "unparsed address")
	f.Int("from-age", 0, "minimum age")
	f.Int("to-age", 0, "maximum age")
	f.String("search-pointer", "", "search pointer from an earlier response")
	f.String("query-file", "", "read the query from a YAML query file")
	f.String("save", "", "save the query and a result summary to this YAML file")
	addSearchFlags(f)

	rootCmd.AddCommand(searchCmd)
}

// addSearchFlags registers the flags that override the search section of
// the configuration.
func addSearchFlags(f *pflag.FlagSet) {
	f.String("show-sources", "", `include sources: "matching", "all" or "true"`)
	f.Float64("minimum-probability", 0, "minimum probability (0-1] for a possible person")
	f.Float64("minimum-match", 0, "minimum match (0-1] for a source or person")
	f.String("match-requirements", "", `criteria a match must meet, e.g. "name and phone"`)
	f.String("source-category-requirements", "", "source categories a match must come from")
	f.Bool("live-feeds", false, "use live data feeds")
	f.Bool("hide-sponsored", false, "hide sponsored results")
	f.Bool("infer-persons", false, "let the API infer persons")
	f.Bool("top-match", false, "return only the best match")
	f.Bool("strict", true, "run the full local validation before sending")
	f.String("endpoint", "", "API URL override")
}

func paramsFromFlags(f *pflag.FlagSet) search.Params {
	s := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}
	i := func(name string) int {
		v, _ := f.GetInt(name)
		return v
	}
	return search.Params{
		FirstName:     s("first-name"),
		MiddleName:    s("middle-name"),
		LastName:      s("last-name"),
		RawName:       s("raw-name"),
		Email:         s("email"),
		Phone:         s("phone"),
		Username:      s("username"),
		UserID:        s("user-id"),
		URL:           s("url"),
		Country:       s("country"),
		State:         s("state"),
		City:          s("city"),
		RawAddress:    s("raw-address"),
		FromAge:       i("from-age"),
		ToAge:         i("to-age"),
		SearchPointer: s("search-pointer"),
	}
}

// searchFlags applies the flags the user changed on top of base. Unchanged
// booleans stay unset so the API default applies.
func searchFlags(f *pflag.FlagSet, base types.SearchFlags) types.SearchFlags {
	out := base
	if f.Changed("show-sources") {
		out.ShowSources, _ = f.GetString("show-sources")
	}
	if f.Changed("minimum-probability") {
		out.MinimumProbability, _ = f.GetFloat64("minimum-probability")
	}
	if f.Changed("minimum-match") {
		out.MinimumMatch, _ = f.GetFloat64("minimum-match")
	}
	if f.Changed("match-requirements") {
		out.MatchRequirements, _ = f.GetString("match-requirements")
	}
	if f.Changed("source-category-requirements") {
		out.SourceCategoryRequirements, _ = f.GetString("source-category-requirements")
	}
	if f.Changed("endpoint") {
		out.Endpoint, _ = f.GetString("endpoint")
	}
	if f.Changed("strict") {
		out.Strict, _ = f.GetBool("strict")
	}
	for name, dst := range map[string]**bool{
		"live-feeds":     &out.LiveFeeds,
		"hide-sponsored": &out.HideSponsored,
		"infer-persons":  &out.InferPersons,
		"top-match":      &out.TopMatch,
	} {
		if f.Changed(name) {
			v, _ := f.GetBool(name)
			*dst = &v
		}
	}
	return out
}

// mergeFlags fills the values flags leaves empty from file.
func mergeFlags(flags, file types.SearchFlags) types.SearchFlags {
	out := flags
	if out.ShowSources == "" {
		out.ShowSources = file.ShowSources
	}
	if out.MinimumProbability == 0 {
		out.MinimumProbability = file.MinimumProbability
	}
	if out.MinimumMatch == 0 {
		out.MinimumMatch = file.MinimumMatch
	}
	if out.MatchRequirements == "" {
		out.MatchRequirements = file.MatchRequirements
	}
	if out.SourceCategoryRequirements == "" {
		out.SourceCategoryRequirements = file.SourceCategoryRequirements
	}
	if out.LiveFeeds == nil {
		out.LiveFeeds = file.LiveFeeds
	}
	if out.HideSponsored == nil {
		out.HideSponsored = file.HideSponsored
	}
	if out.InferPersons == nil {
		out.InferPersons = file.InferPersons
	}
	if out.TopMatch == nil {
		out.TopMatch = file.TopMatch
	}
	if out.Endpoint == "" {
		out.Endpoint = file.Endpoint
	}
	return out
}
