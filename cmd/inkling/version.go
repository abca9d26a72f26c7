package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/inkling"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of inkling",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "inkling version %s\n", strings.TrimSpace(inkling.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
