// Package catalog persists per-run extraction outcomes in SQLite.
//
// Every run gets a row keyed by its run id, and every processed sequence
// entry gets an item row recording where it came from, where it went, and
// why it was skipped if it was. The `satchel report` command reads this
// database; extraction works fine with the catalog disabled.
package catalog
