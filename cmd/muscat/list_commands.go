package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"muscat/internal/catalog"
	"muscat/internal/config"
)

func newExtsCommand(ctx *commandContext) *cobra.Command {
	var scanName string

	cmd := &cobra.Command{
		Use:   "exts",
		Short: "Show the extension histogram for a scan or the whole catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				out := cmd.OutOrStdout()

				if scanName != "" {
					count, err := store.CountFiles(cmd.Context(), scanName)
					if err != nil {
						return err
					}
					if count == 0 {
						fmt.Fprintf(out, "No records found for scan name: %s\n", scanName)
						return nil
					}
				}

				counts, err := store.ExtensionCounts(cmd.Context(), scanName)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(counts))
				for _, entry := range counts {
					rows = append(rows, []string{entry.Extension, strconv.Itoa(entry.Count)})
				}
				fmt.Fprintln(out, renderTable(
					[]column{{"Extension", alignLeft}, {"Files", alignRight}},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&scanName, "scan-name", "", "Scan name to filter by")
	return cmd
}

func newListFilesCommand(ctx *commandContext) *cobra.Command {
	var ext string
	var limit int
	var offset int

	cmd := &cobra.Command{
		Use:   "list-files",
		Short: "List catalogued files by extension",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				records, err := store.FilesByExtension(cmd.Context(), ext, limit, offset)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(records))
				for _, record := range records {
					year := ""
					if record.Year != nil {
						year = strconv.Itoa(*record.Year)
					}
					rows = append(rows, []string{
						record.ScanName,
						record.FileName,
						record.SongTitle,
						record.AlbumName,
						year,
						record.FullPath,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]column{
						{"Scan", alignLeft},
						{"File", alignLeft},
						{"Title", alignLeft},
						{"Album", alignLeft},
						{"Year", alignRight},
						{"Path", alignLeft},
					},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "", "File extension to filter by")
	cmd.Flags().IntVar(&limit, "limit", 25, "Limit the number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset for the results")
	_ = cmd.MarkFlagRequired("ext")
	return cmd
}

func newScansCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scans",
		Short: "List scan sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				sessions, err := store.ListScans(cmd.Context())
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(sessions))
				for _, session := range sessions {
					start := session.StartTime
					rows = append(rows, []string{
						session.Name,
						formatScanTime(&start),
						formatScanTime(session.EndTime),
						formatCounter(session.NumFiles),
						formatCounter(session.NumTaggable),
						formatCounter(session.NumErrors),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]column{
						{"Scan", alignLeft},
						{"Started", alignLeft},
						{"Ended", alignLeft},
						{"Files", alignRight},
						{"Taggable", alignRight},
						{"Errors", alignRight},
					},
					rows,
				))
				return nil
			})
		},
	}
}
