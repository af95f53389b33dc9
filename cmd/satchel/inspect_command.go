package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"satchel/internal/activity"
	"satchel/internal/archive"
	"satchel/internal/blobindex"
	"satchel/internal/config"
	"satchel/internal/textutil"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var archiveDir string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Preview what an extraction would do without copying anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if archiveDir != "" {
				expanded, err := config.ExpandPath(archiveDir)
				if err != nil {
					return fmt.Errorf("resolve archive path: %w", err)
				}
				cfg.Paths.ArchiveDir = expanded
			}

			layout := archive.NewLayout(cfg.Paths.ArchiveDir)
			index, err := blobindex.Build(layout.ManifestPath())
			if err != nil {
				return fmt.Errorf("build blob index: %w", err)
			}
			sectionDirs, err := archive.SectionDirs(layout)
			if err != nil {
				return fmt.Errorf("list sections: %w", err)
			}

			out := cmd.OutOrStdout()
			var rows [][]string
			var extractable, skipped, badSections int
			for _, dir := range sectionDirs {
				section, err := archive.ParseSection(dir)
				if err != nil {
					badSections++
					fmt.Fprintf(out, "warning: skipping section %s: %v\n", dir, err)
					continue
				}
				ordinal := 0
				for _, refID := range section.Sequence {
					row := inspectEntry(layout, index, refID, &ordinal)
					if row.extractable {
						extractable++
					} else {
						skipped++
					}
					rows = append(rows, []string{
						strconv.Itoa(section.Number),
						textutil.SanitizeFileName(section.Name),
						row.slot,
						refID,
						row.kind,
						row.name,
						row.status,
					})
				}
			}

			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Section", "Name", "Slot", "Ref", "Kind", "Title", "Status"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignRight},
				))
			}
			fmt.Fprintf(out, "Would extract %d file(s), skip %d entr(ies)", extractable, skipped)
			if badSections > 0 {
				fmt.Fprintf(out, ", %d malformed section(s)", badSections)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&archiveDir, "archive", "", "Archive root to inspect (overrides config)")
	return cmd
}

type inspectRow struct {
	slot        string
	kind        string
	name        string
	status      string
	extractable bool
}

// inspectEntry classifies one sequence entry the way an extraction run would,
// advancing the output slot only for entries that would copy.
func inspectEntry(layout archive.Layout, index blobindex.Index, refID string, ordinal *int) inspectRow {
	record, err := activity.Resolve(layout, refID)
	if err != nil {
		var unsupported *activity.UnsupportedKindError
		var malformed *activity.MalformedRecordError
		switch {
		case errors.As(err, &unsupported):
			return inspectRow{slot: "-", kind: unsupported.Kind, status: "unsupported kind"}
		case errors.As(err, &malformed):
			return inspectRow{slot: "-", status: "malformed record"}
		case errors.Is(err, activity.ErrNotFound):
			return inspectRow{slot: "-", status: "reference not found"}
		default:
			return inspectRow{slot: "-", status: err.Error()}
		}
	}

	row := inspectRow{kind: string(record.Kind), name: record.DisplayName}
	entry, ok := index[record.ContextID]
	if !ok {
		row.slot = "-"
		row.status = "no index entry"
		return row
	}
	blobPath := layout.BlobPath(entry.ContentHash)
	if blobPath == "" || !fileExists(blobPath) {
		row.slot = "-"
		row.status = "blob missing"
		return row
	}

	*ordinal++
	row.slot = strconv.Itoa(*ordinal)
	row.status = "ok"
	row.extractable = true
	return row
}
