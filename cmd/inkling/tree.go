package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/inkling/internal/cli"
)

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Print the content hierarchy of a tree document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		point, _ := cmd.Flags().GetString("point")
		opts := cli.TreeOptions{File: args[0], Point: point}
		if cmd.Flags().Changed("color") {
			color, _ := cmd.Flags().GetBool("color")
			opts.Color = &color
		}
		return cli.Tree(cmd.OutOrStdout(), opts, logger)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <file> <path>",
	Short: "Resolve a content path, falling back to the closest ancestor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		return cli.Resolve(cmd.OutOrStdout(), args[0], args[1], logger)
	},
}

var leafCmd = &cobra.Command{
	Use:   "leaf <file> [path]",
	Short: "Print where a divert to path would land",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		raw := ""
		if len(args) > 1 {
			raw = args[1]
		}
		return cli.Leaf(cmd.OutOrStdout(), args[0], raw, logger)
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file> <path>",
	Short: "Print a report about the object at a path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		opts := cli.InspectOptions{File: args[0], Path: args[1]}
		if cmd.Flags().Changed("markdown") {
			md, _ := cmd.Flags().GetBool("markdown")
			opts.Markdown = &md
		}
		return cli.Inspect(cmd.OutOrStdout(), opts, logger)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd, resolveCmd, leafCmd, inspectCmd)

	treeCmd.Flags().String("point", "", "Mark the object at this path")
	treeCmd.Flags().Bool("color", false, "Force syntax highlighting on or off")
	inspectCmd.Flags().Bool("markdown", false, "Force markdown rendering on or off")
}
