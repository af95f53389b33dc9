// Package textutil provides filename sanitization helpers shared by the
// extraction pipeline. Display names in course archives routinely contain
// characters that are illegal or surprising in filesystem paths; everything
// that ends up in an output path goes through this package first.
package textutil
