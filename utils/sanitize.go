package utils

import (
	"strings"
)

// keyReplacer rewrites the characters the storage backend rejects in
// record keys. Kept as a package-level replacer so sanitization is a
// single table shared by every caller.
var keyReplacer = strings.NewReplacer(
	".", "_",
	"#", "_",
	"$", "_",
	"[", "_",
	"]", "_",
	"/", "_",
)

// SanitizeKey rewrites storage-restricted characters ('.', '#', '$', '[',
// ']', '/') in a record key to '_'. Applying it twice yields the same
// result as applying it once.
func SanitizeKey(key string) string {
	return keyReplacer.Replace(key)
}

// SanitizeKeys returns a copy of the attribute map with every key
// sanitized. Values are left untouched. When two keys collapse to the same
// sanitized form, the last one written wins.
func SanitizeKeys(attrs map[string]string) map[string]string {
	sanitized := make(map[string]string, len(attrs))
	for key, value := range attrs {
		sanitized[SanitizeKey(key)] = value
	}
	return sanitized
}

// PrettifyKey turns a sanitized attribute key back into a display label
// by replacing underscores with spaces
func PrettifyKey(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
