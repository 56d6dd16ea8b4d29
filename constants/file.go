package constants

import "strings"

// AllowedExtensions holds the file extensions batch ingestion will pick up.
// The core only consumes text; OCR output dumps are expected as .txt.
var AllowedExtensions = map[string]struct{}{
	"txt": {},
	"ocr": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt reports whether a file extension is accepted for batch runs.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}
