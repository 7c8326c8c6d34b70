// Package version exposes build metadata for the medical alert binaries.
//
// Version, Commit and BuildTime are injected with -ldflags "-X" at build time.
package version
