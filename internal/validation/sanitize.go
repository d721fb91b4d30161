// Package validation provides the path sanitizer that maps arbitrary asset
// identifiers (local absolute paths, CDN URLs, inline-block keys) to safe
// storage-relative paths, preventing path traversal and unsafe characters
// from reaching the storage disk or emitted URLs.
package validation

import "strings"

// unsafe is the character blacklist removed from every identifier. The
// sanitizer is a single deterministic pass: protocol markers first, then
// this list in order, then backslash normalization, then traversal removal.
var unsafe = []string{
	"<",
	">",
	":",
	"\"",
	"|",
	"?",
	"\x00",
	"*",
	"`",
	";",
	"'",
	"+",
}

// SanitizePath resolves an asset identifier to a storage-relative path
// rooted under basePath. root is the absolute local prefix (the project
// root) stripped from local filesystem identifiers so paths stay portable.
//
// The function never fails; malformed input produces best-effort-safe
// output. It performs no I/O.
func SanitizePath(identifier, root, basePath string) string {
	s := identifier

	if root != "" {
		s = strings.TrimPrefix(s, root)
	}

	s = strings.ReplaceAll(s, "http://", "")
	s = strings.ReplaceAll(s, "https://", "")
	s = strings.ReplaceAll(s, "://", "")

	for _, c := range unsafe {
		s = strings.ReplaceAll(s, c, "")
	}

	s = strings.ReplaceAll(s, "\\", "/")

	// Removing ".." can juxtapose two remaining dots, so repeat until the
	// sequence is gone. Length strictly decreases, so this terminates.
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", "")
	}

	s = strings.TrimLeft(s, "/")

	base := strings.Trim(strings.ReplaceAll(basePath, "\\", "/"), "/")
	if base == "" {
		return s
	}

	return base + "/" + s
}
