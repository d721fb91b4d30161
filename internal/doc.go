// Package internal contains the core implementation packages for basset.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the basset CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - engine: the asset internalization engine and its decision pipeline
//   - cachemap: the persistent identifier->path index
//   - storage: the disk abstraction internalized assets are written to
//   - fetcher: HTTP download of remote assets
//   - archive: archive extraction for bundled assets
//   - validation: identifier-to-path sanitization
//   - watcher: debounced re-internalization of local directories
//   - config: viper-backed configuration loading and validation
//   - logging: structured logging built on log/slog
//   - errors: structured error taxonomy for internalization failures
//   - version: build metadata
package internal
