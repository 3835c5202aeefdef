package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"muscat/internal/catalog"
	"muscat/internal/config"
	"muscat/internal/copier"
	"muscat/internal/reconcile"
)

func newCopyDiffCommand(ctx *commandContext) *cobra.Command {
	var originScan string
	var destScan string
	var folder string

	cmd := &cobra.Command{
		Use:   "copy-diff",
		Short: "Copy the diff between two scans into a folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				c := copier.New(cfg, reconcile.New(store), logger)
				out := cmd.OutOrStdout()
				c.SetProgressSink(newCopyProgressSink(out))

				report, err := c.CopyDiff(cmd.Context(), originScan, destScan, folder)
				if err != nil {
					return err
				}

				if report.Missing > 0 {
					fmt.Fprintf(out, "%d source files were missing.\n", report.Missing)
				}
				fmt.Fprintf(out, "done: %d files out of %d copied\n", report.Copied, report.Total)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&originScan, "origin-scan", "", "Origin scan name")
	cmd.Flags().StringVar(&destScan, "dest-scan", "", "Destination scan name")
	cmd.Flags().StringVar(&folder, "folder", "", "Folder to copy files into")
	_ = cmd.MarkFlagRequired("origin-scan")
	_ = cmd.MarkFlagRequired("dest-scan")
	_ = cmd.MarkFlagRequired("folder")
	return cmd
}

// newCopyProgressSink renders a live bar on a terminal and plain percentage
// lines everywhere else.
func newCopyProgressSink(out io.Writer) copier.ProgressSink {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		var bar *progressbar.ProgressBar
		return copier.ProgressFunc(func(copied, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("copying"),
					progressbar.OptionSetWriter(out),
				)
			}
			_ = bar.Set(copied)
		})
	}
	return copier.ProgressFunc(func(copied, total int) {
		percent := float64(copied) / float64(total) * 100
		fmt.Fprintf(out, "%.2f%%: %d files out of %d copied\n", percent, copied, total)
	})
}
