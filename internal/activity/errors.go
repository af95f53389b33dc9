package activity

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a reference identifier with no activity folder of any
// kind.
var ErrNotFound = errors.New("no activity folder for reference")

// UnsupportedKindError reports a reference whose folder exists but declares a
// kind the extractor does not handle. This is a policy skip, not a parse
// failure; the kind name travels with the error so diagnostics can show it.
type UnsupportedKindError struct {
	RefID string
	Kind  string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("reference %s is kind %q, not resource or page", e.RefID, e.Kind)
}

// MalformedRecordError reports a record descriptor that exists but cannot
// supply the fields extraction needs.
type MalformedRecordError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s in %s: %v", e.Reason, e.Path, e.Err)
	}
	return fmt.Sprintf("%s in %s", e.Reason, e.Path)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
