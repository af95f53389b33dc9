package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"satchel/internal/catalog"
	"satchel/internal/config"
	"satchel/internal/extract"
	"satchel/internal/logging"
	"satchel/internal/preflight"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var archiveDir string
	var outputDir string
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract archive content into the output folder tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyPathOverrides(cfg, archiveDir, outputDir); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !skipPreflight {
				results := preflight.RunAll(cfg)
				if !preflight.Passed(results) {
					fmt.Fprintln(out, renderPreflight(results))
					return fmt.Errorf("preflight checks failed")
				}
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			extractor := extract.New(cfg, logger)
			if cfg.Catalog.Enabled {
				store, err := catalog.Open(cfg.CatalogPath())
				if err != nil {
					return fmt.Errorf("open catalog: %w", err)
				}
				defer store.Close()
				extractor = extract.NewWithCatalog(cfg, logger, store)
			}

			summary, err := extractor.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Run %s finished\n", summary.RunID)
			fmt.Fprintf(out, "Sections extracted: %d (skipped %d)\n", summary.Sections, summary.SectionsSkipped)
			fmt.Fprintf(out, "Files copied: %d, skipped: %d\n", summary.Copied, summary.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&archiveDir, "archive", "", "Archive root to extract (overrides config)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Destination directory (overrides config)")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks before extracting")
	return cmd
}

func applyPathOverrides(cfg *config.Config, archiveDir, outputDir string) error {
	if archiveDir != "" {
		expanded, err := config.ExpandPath(archiveDir)
		if err != nil {
			return fmt.Errorf("resolve archive path: %w", err)
		}
		cfg.Paths.ArchiveDir = expanded
	}
	if outputDir != "" {
		expanded, err := config.ExpandPath(outputDir)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		cfg.Paths.OutputDir = expanded
		if err := cfg.EnsureDirectories(); err != nil {
			return err
		}
	}
	return nil
}

func renderPreflight(results []preflight.Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "FAIL"
		if r.Passed {
			status = "ok"
		}
		rows = append(rows, []string{r.Name, status, r.Detail})
	}
	return renderTable([]string{"Check", "Status", "Detail"}, rows, nil)
}
