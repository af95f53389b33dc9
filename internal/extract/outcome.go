package extract

// Skip reasons recorded on diagnostics and catalog rows.
const (
	ReasonUnsupportedKind = "unsupported kind"
	ReasonNotFound        = "reference not found"
	ReasonMalformedRecord = "malformed record"
	ReasonNoIndexEntry    = "no index entry"
	ReasonBlobMissing     = "blob missing"
	ReasonCopyFailed      = "copy failed"
)

// Summary totals one extraction pass.
type Summary struct {
	RunID           string
	Sections        int
	SectionsSkipped int
	Copied          int
	Skipped         int
}
