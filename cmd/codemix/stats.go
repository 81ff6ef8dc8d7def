package main

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning cache and engine statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")

		ctx := cmd.Context()
		eng, err := openEngine(ctx, cmd)
		if err != nil {
			return err
		}
		defer closeEngine(ctx, eng)

		st := eng.Service().Statistics(ctx)
		if format == formatPretty {
			writeStats(cmd.OutOrStdout(), st)
			return nil
		}
		return encode(cmd.OutOrStdout(), format, st)
	},
}

func init() {
	statsCmd.Flags().String("format", formatPretty, "output format (pretty|json|yaml)")
}
