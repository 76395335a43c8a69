// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/peoplesearch/pkg/search"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of peoplesearch",
	// Skip the root's config, secrets and logger setup.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("peoplesearch %s (API %s)\n", version, search.APIVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
