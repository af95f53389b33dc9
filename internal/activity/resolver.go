package activity

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"satchel/internal/archive"
)

// Kind is an activity record's declared type. Only resource and page records
// carry extractable content.
type Kind string

const (
	KindResource Kind = "resource"
	KindPage     Kind = "page"
)

// supportedKinds is the fixed probe order: the first matching folder
// determines the record's kind.
var supportedKinds = []Kind{KindResource, KindPage}

// Record is one resolved activity.
type Record struct {
	RefID string
	Kind  Kind
	// ContextID joins the record to the blob index. It is the record's
	// context identifier, a different namespace from RefID; the two must
	// never be conflated.
	ContextID   string
	DisplayName string
}

type recordXML struct {
	ContextID string      `xml:"contextid,attr"`
	Resource  *recordBody `xml:"resource"`
	Page      *recordBody `xml:"page"`
}

type recordBody struct {
	Name string `xml:"name"`
}

// Resolve locates and parses the activity record for refID.
//
// It returns ErrNotFound when no folder matches, *UnsupportedKindError when a
// folder matches by suffix but declares another kind, and
// *MalformedRecordError when the matching descriptor cannot be parsed or is
// missing required fields.
func Resolve(layout archive.Layout, refID string) (Record, error) {
	for _, kind := range supportedKinds {
		path := recordPath(layout, kind, refID)
		if _, err := os.Stat(path); err == nil {
			return parseRecord(path, kind, refID)
		}
	}

	if kind, found := scanOtherKinds(layout, refID); found {
		return Record{}, &UnsupportedKindError{RefID: refID, Kind: kind}
	}
	return Record{}, fmt.Errorf("%w: %s", ErrNotFound, refID)
}

// recordPath is the conventional descriptor location for a kind:
// activities/<kind>_<refid>/<kind>.xml.
func recordPath(layout archive.Layout, kind Kind, refID string) string {
	folder := fmt.Sprintf("%s_%s", kind, refID)
	return filepath.Join(layout.ActivitiesDir(), folder, string(kind)+".xml")
}

// scanOtherKinds looks for any activity folder ending in _<refID> that is not
// a resource or page folder, and reports its kind prefix.
func scanOtherKinds(layout archive.Layout, refID string) (string, bool) {
	entries, err := os.ReadDir(layout.ActivitiesDir())
	if err != nil {
		return "", false
	}
	suffix := "_" + refID
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		if strings.HasPrefix(name, string(KindResource)+"_") || strings.HasPrefix(name, string(KindPage)+"_") {
			continue
		}
		kind, _, _ := strings.Cut(name, "_")
		return kind, true
	}
	return "", false
}

func parseRecord(path string, kind Kind, refID string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, fmt.Errorf("%w: %s", ErrNotFound, refID)
		}
		return Record{}, &MalformedRecordError{Path: path, Reason: "read record", Err: err}
	}

	var raw recordXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return Record{}, &MalformedRecordError{Path: path, Reason: "parse record", Err: err}
	}

	contextID := strings.TrimSpace(raw.ContextID)
	if contextID == "" {
		return Record{}, &MalformedRecordError{Path: path, Reason: "missing contextid attribute"}
	}

	var body *recordBody
	switch kind {
	case KindResource:
		body = raw.Resource
	case KindPage:
		body = raw.Page
	}
	if body == nil {
		return Record{}, &MalformedRecordError{Path: path, Reason: fmt.Sprintf("missing <%s> element", kind)}
	}

	name := strings.TrimSpace(body.Name)
	if name == "" {
		return Record{}, &MalformedRecordError{Path: path, Reason: fmt.Sprintf("missing %s name", kind)}
	}

	return Record{RefID: refID, Kind: kind, ContextID: contextID, DisplayName: name}, nil
}
