package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"muscat/internal/catalog"
	"muscat/internal/config"
	"muscat/internal/scanner"
	"muscat/internal/tags"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var path string
	var scanName string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Catalogue a directory tree as a named scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				s := scanner.New(cfg, store, tags.NewReader(), logger)
				out := cmd.OutOrStdout()
				s.SetProgressSink(scanner.ProgressFunc(func(processed int) {
					fmt.Fprintf(out, "%d files processed.\n", processed)
				}))

				summary, err := s.StartScan(cmd.Context(), path, scanName)
				if errors.Is(err, catalog.ErrScanExists) {
					// a claimed name is an operator mistake, not a failure
					fmt.Fprintf(out, "Scan name %s already exists.\n", scanName)
					return nil
				}
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "Scan complete (%d files, %d taggable, %d errors) for directory: %s\n",
					summary.Processed, summary.Taggable, summary.Errors, summary.Root)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Directory to scan")
	cmd.Flags().StringVar(&scanName, "scan-name", "", "Unique name for this scan session")
	_ = cmd.MarkFlagRequired("path")
	_ = cmd.MarkFlagRequired("scan-name")
	return cmd
}
