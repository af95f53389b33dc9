package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"satchel/internal/activity"
	"satchel/internal/archive"
	"satchel/internal/blobindex"
	"satchel/internal/catalog"
	"satchel/internal/config"
	"satchel/internal/fileutil"
	"satchel/internal/logging"
	"satchel/internal/textutil"
)

// Extractor copies a course backup's content files into a browsable output
// tree.
type Extractor struct {
	cfg    *config.Config
	layout archive.Layout
	logger *slog.Logger
	store  *catalog.Store

	// runID is assigned at the start of Run and stamped on catalog rows.
	runID string
}

// New constructs an extractor without catalog recording.
func New(cfg *config.Config, logger *slog.Logger) *Extractor {
	return NewWithCatalog(cfg, logger, nil)
}

// NewWithCatalog constructs an extractor that records outcomes in store.
// A nil store disables recording.
func NewWithCatalog(cfg *config.Config, logger *slog.Logger, store *catalog.Store) *Extractor {
	return &Extractor{
		cfg:    cfg,
		layout: archive.NewLayout(cfg.Paths.ArchiveDir),
		logger: logging.NewComponentLogger(logger, "extractor"),
		store:  store,
	}
}

// Run performs one full extraction pass.
//
// It fails outright only when the blob index cannot be built, the sections
// directory is unreadable, or another run holds the output lock. Everything
// below that is reported and skipped: a bad section never aborts the run,
// and a bad activity never aborts its section.
func (e *Extractor) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	e.runID = summary.RunID
	logger := e.logger.With(logging.String(logging.FieldRunID, summary.RunID))

	index, err := blobindex.Build(e.layout.ManifestPath())
	if err != nil {
		return summary, fmt.Errorf("build blob index: %w", err)
	}
	logger.Info("blob index built",
		logging.String("manifest", e.layout.ManifestPath()),
		logging.Int("entries", len(index)))

	sectionDirs, err := archive.SectionDirs(e.layout)
	if err != nil {
		return summary, fmt.Errorf("list sections: %w", err)
	}

	if err := os.MkdirAll(e.cfg.Paths.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("create output dir: %w", err)
	}

	lock := flock.New(filepath.Join(e.cfg.Paths.OutputDir, ".satchel.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return summary, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return summary, fmt.Errorf("output dir %s is locked by another extraction", e.cfg.Paths.OutputDir)
	}
	defer func() { _ = lock.Unlock() }()

	if e.store != nil {
		if err := e.store.BeginRun(ctx, catalog.Run{
			ID:          summary.RunID,
			ArchiveRoot: e.layout.Root(),
			OutputDir:   e.cfg.Paths.OutputDir,
		}); err != nil {
			logger.Warn("catalog run not recorded", logging.Error(err))
		}
	}

	for _, dir := range sectionDirs {
		section, err := archive.ParseSection(dir)
		if err != nil {
			summary.SectionsSkipped++
			logger.Error("skipping section", logging.String("dir", dir), logging.Error(err))
			continue
		}
		e.extractSection(ctx, logger, index, section, &summary)
	}

	if e.store != nil {
		if err := e.store.FinishRun(ctx, summary.RunID, summary.Sections, summary.Copied, summary.Skipped); err != nil {
			logger.Warn("catalog run not finalized", logging.Error(err))
		}
	}

	logger.Info("extraction completed",
		logging.Int("sections", summary.Sections),
		logging.Int("sections_skipped", summary.SectionsSkipped),
		logging.Int("copied", summary.Copied),
		logging.Int("skipped", summary.Skipped))
	return summary, nil
}

func (e *Extractor) extractSection(ctx context.Context, logger *slog.Logger, index blobindex.Index, section archive.Section, summary *Summary) {
	sectionDir := filepath.Join(e.cfg.Paths.OutputDir, e.sectionFolderName(section))
	if err := os.MkdirAll(sectionDir, 0o755); err != nil {
		summary.SectionsSkipped++
		logger.Error("skipping section",
			logging.String("section", section.Name),
			logging.Error(fmt.Errorf("create section folder: %w", err)))
		return
	}
	summary.Sections++

	// A section with an empty sequence still gets its (empty) folder.
	// Output numbering is dense over items that extract end-to-end: the next
	// slot is consumed only on success, so a failed entry never leaves a gap.
	ordinal := 0
	for _, refID := range section.Sequence {
		if e.extractItem(ctx, logger, index, section, sectionDir, ordinal+1, refID) {
			ordinal++
			summary.Copied++
		} else {
			summary.Skipped++
		}
	}
}

// extractItem processes one sequence entry and reports whether a file was
// copied. The ordinal is the output slot the entry will occupy if it
// extracts; the caller advances it only on success.
func (e *Extractor) extractItem(ctx context.Context, logger *slog.Logger, index blobindex.Index, section archive.Section, sectionDir string, ordinal int, refID string) bool {
	itemLogger := logger.With(
		logging.String("section", section.Name),
		logging.String("ref_id", refID),
		logging.Int("ordinal", ordinal))

	record, err := activity.Resolve(e.layout, refID)
	if err != nil {
		reason, detail := classifyResolution(err)
		itemLogger.Error("skipping item", logging.String("reason", reason), logging.Error(detail))
		e.recordSkip(ctx, section, ordinal, refID, activity.Record{}, "", reason)
		return false
	}

	entry, ok := index[record.ContextID]
	if !ok {
		itemLogger.Error("skipping item",
			logging.String("reason", ReasonNoIndexEntry),
			logging.String("context_id", record.ContextID),
			logging.String("record", fmt.Sprintf("%s_%s", record.Kind, record.RefID)))
		e.recordSkip(ctx, section, ordinal, refID, record, "", ReasonNoIndexEntry)
		return false
	}

	source := e.layout.BlobPath(entry.ContentHash)
	if source == "" {
		itemLogger.Error("skipping item",
			logging.String("reason", ReasonBlobMissing),
			logging.String("content_hash", entry.ContentHash))
		e.recordSkip(ctx, section, ordinal, refID, record, "", ReasonBlobMissing)
		return false
	}
	if _, err := os.Stat(source); err != nil {
		itemLogger.Error("skipping item",
			logging.String("reason", ReasonBlobMissing),
			logging.String("source", source),
			logging.String("name", record.DisplayName))
		e.recordSkip(ctx, section, ordinal, refID, record, source, ReasonBlobMissing)
		return false
	}

	dest := filepath.Join(sectionDir, e.destFileName(ordinal, record.DisplayName, entry.Extension))
	if err := e.copy(source, dest); err != nil {
		itemLogger.Error("skipping item",
			logging.String("reason", ReasonCopyFailed),
			logging.String("source", source),
			logging.String("dest", dest),
			logging.Error(err))
		e.recordSkip(ctx, section, ordinal, refID, record, source, ReasonCopyFailed)
		return false
	}

	itemLogger.Info("copied file",
		logging.String("source", source),
		logging.String("dest", dest))
	if e.store != nil {
		item := e.catalogItem(section, ordinal, refID, record, source, catalog.StatusCopied, "")
		item.DestPath = dest
		if err := e.store.RecordItem(ctx, item); err != nil {
			itemLogger.Warn("catalog item not recorded", logging.Error(err))
		}
	}
	return true
}

func (e *Extractor) copy(source, dest string) error {
	if e.cfg.Extraction.VerifyCopies {
		return fileutil.CopyFileVerified(source, dest)
	}
	if e.cfg.Extraction.PreserveTimes {
		return fileutil.CopyFilePreserveTimes(source, dest)
	}
	return fileutil.CopyFile(source, dest)
}

// sectionFolderName builds "<ordinal> <label> <name>", e.g.
// "03 Chapter Week 3". The label is omitted cleanly when configured empty.
func (e *Extractor) sectionFolderName(section archive.Section) string {
	ordinal := fmt.Sprintf("%0*d", e.cfg.Extraction.OrdinalWidth, section.Number)
	name := textutil.SanitizeFileName(section.Name)
	if label := e.cfg.Extraction.SectionLabel; label != "" {
		return fmt.Sprintf("%s %s %s", ordinal, label, name)
	}
	return fmt.Sprintf("%s %s", ordinal, name)
}

func (e *Extractor) destFileName(ordinal int, displayName, extension string) string {
	return fmt.Sprintf("%0*d %s.%s",
		e.cfg.Extraction.OrdinalWidth, ordinal, textutil.SanitizeFileName(displayName), extension)
}

func (e *Extractor) recordSkip(ctx context.Context, section archive.Section, ordinal int, refID string, record activity.Record, source, reason string) {
	if e.store == nil {
		return
	}
	item := e.catalogItem(section, ordinal, refID, record, source, catalog.StatusSkipped, reason)
	if err := e.store.RecordItem(ctx, item); err != nil {
		e.logger.Warn("catalog item not recorded", logging.Error(err))
	}
}

func (e *Extractor) catalogItem(section archive.Section, ordinal int, refID string, record activity.Record, source, status, reason string) catalog.Item {
	return catalog.Item{
		RunID:         e.runID,
		SectionNumber: section.Number,
		SectionName:   section.Name,
		Ordinal:       ordinal,
		RefID:         refID,
		Kind:          string(record.Kind),
		ContextID:     record.ContextID,
		DisplayName:   record.DisplayName,
		SourcePath:    source,
		Status:        status,
		Reason:        reason,
	}
}

// classifyResolution maps a resolver error to its skip reason and the detail
// worth logging alongside it.
func classifyResolution(err error) (string, error) {
	var unsupported *activity.UnsupportedKindError
	if errors.As(err, &unsupported) {
		return ReasonUnsupportedKind, fmt.Errorf("skipping because it is %s and not page or resource", unsupported.Kind)
	}
	var malformed *activity.MalformedRecordError
	if errors.As(err, &malformed) {
		return ReasonMalformedRecord, err
	}
	if errors.Is(err, activity.ErrNotFound) {
		return ReasonNotFound, err
	}
	return ReasonMalformedRecord, err
}
