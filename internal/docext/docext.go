// Package docext extracts plain text from the PDF and DOCX documents the
// drafting pipeline consumes. Extraction is deliberately lossy: the parsers
// downstream work on cleaned line-oriented text, not layout.
package docext

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SupportedExtension reports whether the file extension is one the
// extraction layer understands.
func SupportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return true
	}
	return false
}

// ExtractText extracts cleaned text from a PDF or DOCX file, dispatching on
// the file extension.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ExtractPDFText(path)
	case ".docx":
		return ExtractDOCXText(path)
	default:
		return "", fmt.Errorf("unsupported file type: %s (expected .pdf or .docx)", filepath.Ext(path))
	}
}
