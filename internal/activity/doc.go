// Package activity resolves a section's reference identifiers to activity
// records.
//
// Resolution probes record folders by naming convention (resource first, then
// page), falls back to a scan that recognizes unsupported kinds so they can
// be reported by name, and parses the matching record descriptor. Failures
// are typed so callers can distinguish policy skips from broken data:
// errors.Is(err, ErrNotFound), errors.As for *UnsupportedKindError and
// *MalformedRecordError.
package activity
