// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/peoplesearch/internal/format"
	"github.com/pdiddy/peoplesearch/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded searches",
	Long: `History reads the SQLite database that records sent searches when
history.enabled is set. Stored responses can be shown again without
calling the API.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent searches, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(app.cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}
		format.WriteHistory(cmd.OutOrStdout(), entries)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print a recorded response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(app.cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		e, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if e.Error != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Search failed: %s\n", e.Error)
			return nil
		}
		resp, err := e.Response()
		if err != nil {
			return err
		}
		return format.Write(cmd.OutOrStdout(), outputFormat(cmd), resp)
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(app.cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		var w io.Writer = cmd.OutOrStdout()
		if out, _ := cmd.Flags().GetString("out"); out != "" {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()
			w = f
		}

		switch fmtName, _ := cmd.Flags().GetString("format"); fmtName {
		case "yaml":
			return store.ExportYAML(cmd.Context(), w)
		case "json":
			return store.ExportJSON(cmd.Context(), w)
		default:
			return fmt.Errorf("unknown export format %q (want yaml or json)", fmtName)
		}
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 50, "maximum number of entries")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "write to this file instead of stdout")

	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
