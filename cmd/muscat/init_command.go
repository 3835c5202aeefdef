package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"muscat/internal/catalog"
	"muscat/internal/config"
)

func newInitStoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init-store",
		Short: "Bootstrap the catalog database schema",
		Long:  "Creates the catalog database and its schema if they do not exist. Safe to run repeatedly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Catalog initialized at %s\n", store.Path())
				return nil
			})
		},
	}
}
