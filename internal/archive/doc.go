// Package archive describes the fixed on-disk shape of an unpacked course
// backup and parses its per-section descriptors.
//
// An archive root contains:
//
//	files.xml      manifest of every stored content blob
//	sections/      one subfolder per course section with a section.xml
//	activities/    one subfolder per activity named <kind>_<refid>
//	files/         content-addressed blob store, <hash[:2]>/<hash>
//
// The archive is read-only input. Nothing in this package writes to it.
package archive
