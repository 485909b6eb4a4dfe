// Package config loads, normalizes, and validates playhead configuration.
//
// Configuration lives in a TOML file resolved from an explicit path, then
// ~/.config/playhead/config.toml, then ./playhead.toml. Missing files are not
// an error; defaults apply. Path fields are tilde-expanded and made absolute
// during load so downstream code never handles relative paths.
package config
