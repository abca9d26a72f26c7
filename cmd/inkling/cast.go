package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/inkling/internal/cli"
)

var castCmd = &cobra.Command{
	Use:   "cast <literal> <type>",
	Short: "Cast a literal to another value type",
	Long: `Parses a literal of the --from type and casts it to <type>.

Types: bool, int, float, string, list, divert, pointer.
Lists are written as 'origin.item=1,other.item=2' and pointers as 'name@ci'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		return cli.Cast(cmd.OutOrStdout(), args[0], from, args[1])
	},
}

func init() {
	rootCmd.AddCommand(castCmd)
	castCmd.Flags().String("from", "string", "Type of the literal")
}
