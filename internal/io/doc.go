// Package ioutils provides file system utilities for the catalog
// builder.
//
// This package contains functions for:
//   - Atomic artifact publishing (write to temp file, then rename)
//   - Directory creation
//   - Cover thumbnail generation
//
// Atomic publishing matters for the two build artifacts: an
// interrupted build must leave the previous gamelist.json in place
// rather than a truncated one.
package ioutils
