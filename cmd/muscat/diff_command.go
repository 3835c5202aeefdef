package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"muscat/internal/catalog"
	"muscat/internal/config"
	"muscat/internal/reconcile"
)

func newDiffCountCommand(ctx *commandContext) *cobra.Command {
	var originScan string
	var destScan string

	cmd := &cobra.Command{
		Use:   "diff-count",
		Short: "Count files in the origin scan with no match in the destination scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				engine := reconcile.New(store)
				count, err := engine.Count(cmd.Context(), originScan, destScan)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Different files count between %s and %s: %d\n",
					originScan, destScan, count)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&originScan, "origin-scan", "", "Origin scan name")
	cmd.Flags().StringVar(&destScan, "dest-scan", "", "Destination scan name")
	_ = cmd.MarkFlagRequired("origin-scan")
	_ = cmd.MarkFlagRequired("dest-scan")
	return cmd
}
