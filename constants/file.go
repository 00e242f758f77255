package constants

import "strings"

// AllowedExtensions holds the file extensions accepted for ingestion.
// The engine consumes recognized text, so only plain-text OCR dumps qualify.
var AllowedExtensions = map[string]struct{}{
	"txt": {},
	"ocr": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether a file extension is ingestible.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
