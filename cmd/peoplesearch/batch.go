// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/peoplesearch/internal/queryfile"
	"github.com/pdiddy/peoplesearch/pkg/client"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Run every query in a YAML query file",
	Long: `Batch reads a query file and sends its query and queries with bounded
concurrency (http.concurrency). A failed search does not stop the others.
With --out the file is written back with a summary per query.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		qf, err := queryfile.Read(args[0])
		if err != nil {
			return err
		}
		flags := searchFlags(cmd.Flags(), app.cfg.Search)
		if qf.Config != nil {
			flags = mergeFlags(flags, *qf.Config)
		}

		c, cleanup, err := newClient(cmd.Context(), flags)
		if err != nil {
			return err
		}
		defer cleanup()

		results, err := c.SearchMany(cmd.Context(), qf.All())
		writeBatch(cmd.OutOrStdout(), results)

		if out, _ := cmd.Flags().GetString("out"); out != "" {
			qf.Results = qf.Results[:0]
			for _, r := range results {
				qf.Results = append(qf.Results, queryfile.Summarize(r.Params, r.Response, r.Err))
			}
			if werr := queryfile.Write(out, qf); werr != nil {
				return werr
			}
			fmt.Fprintf(os.Stderr, "Saved %d results to %s\n", len(results), out)
		}
		if err != nil {
			return err
		}
		for _, r := range results {
			if r.Err != nil {
				return fmt.Errorf("some searches failed")
			}
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().String("out", "", "write the query file with result summaries to this path")
	addSearchFlags(batchCmd.Flags())
	rootCmd.AddCommand(batchCmd)
}

func writeBatch(w io.Writer, results []client.Result) {
	fmt.Fprintf(w, "%-4s  %-6s  %-24s  %-7s  %s\n", "#", "Status", "Search ID", "Persons", "Name / error")
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%-4d  %-6s  %-24s  %-7s  %v\n", i+1, "error", "-", "-", r.Err)
			continue
		}
		name := "-"
		if n := r.Response.Name(); n != nil {
			name = n.String()
		}
		fmt.Fprintf(w, "%-4d  %-6d  %-24s  %-7d  %s\n",
			i+1, r.Response.HTTPStatusCode, r.Response.SearchID, r.Response.PersonsCount, name)
	}
}
