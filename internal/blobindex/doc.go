// Package blobindex builds the lookup table from a content identifier to the
// physical blob holding that content, as declared by the archive manifest.
package blobindex
