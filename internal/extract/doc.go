// Package extract drives an extraction pass: it joins the blob index against
// each section's resolved activities and materializes the content under the
// output tree.
//
// The driver is a straight fold over the archive's sections. There is no
// rollback; partial output is expected on partial failure, and re-running
// against an unchanged archive overwrites the same paths with the same
// bytes. Every skip is reported with enough context to locate the offending
// archive entry, and only manifest-level problems abort the run.
package extract
