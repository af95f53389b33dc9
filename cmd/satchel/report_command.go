package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"satchel/internal/catalog"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the outcome of a recorded extraction run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.CatalogPath())
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			var run catalog.Run
			if runID != "" {
				run, err = store.RunByID(cmd.Context(), runID)
			} else {
				run, err = store.LatestRun(cmd.Context())
			}
			if err != nil {
				if errors.Is(err, catalog.ErrNoRuns) {
					return fmt.Errorf("no extraction runs recorded yet; run `satchel extract` first")
				}
				return fmt.Errorf("load run: %w", err)
			}

			items, err := store.Items(cmd.Context(), run.ID)
			if err != nil {
				return fmt.Errorf("load run items: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:      %s\n", run.ID)
			fmt.Fprintf(out, "Started:  %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
			if !run.FinishedAt.IsZero() {
				fmt.Fprintf(out, "Finished: %s\n", run.FinishedAt.Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintf(out, "Archive:  %s\n", run.ArchiveRoot)
			fmt.Fprintf(out, "Output:   %s\n", run.OutputDir)
			fmt.Fprintf(out, "Totals:   %d section(s), %d copied, %d skipped\n", run.Sections, run.Copied, run.Skipped)

			if len(items) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, item := range items {
				detail := item.DestPath
				if item.Status == catalog.StatusSkipped {
					detail = item.Reason
				}
				slot := "-"
				if item.Ordinal > 0 {
					slot = strconv.Itoa(item.Ordinal)
				}
				rows = append(rows, []string{
					strconv.Itoa(item.SectionNumber),
					slot,
					item.RefID,
					item.Kind,
					item.DisplayName,
					item.Status,
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Section", "Slot", "Ref", "Kind", "Title", "Status", "Detail"},
				rows,
				[]columnAlignment{alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Report a specific run id instead of the latest")
	return cmd
}
