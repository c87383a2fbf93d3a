// Package config loads, normalizes, and validates adrtools configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// ADRTOOLS_REGISTRY. The Config type centralizes the timing, matching and
// batch knobs every pipeline stage receives explicitly.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
