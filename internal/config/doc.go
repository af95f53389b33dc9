// Package config loads, normalizes, and validates Satchel's TOML
// configuration.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/satchel/config.toml, then ./satchel.toml, falling back to
// defaults when no file exists. All directory values are expanded (~ and
// relative paths) to absolute paths during Load, so downstream packages can
// treat them as ready to use.
package config
