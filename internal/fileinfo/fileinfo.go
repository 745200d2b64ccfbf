package fileinfo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

// Package fileinfo classifies MIME types and validates uploads before any
// byte reaches the blob store.

// DefaultMaxUploadBytes is the upload ceiling applied when no limit is
// configured.
const DefaultMaxUploadBytes = 50 << 20 // 50 MiB

var (
	ErrNameRequired    = errors.New("file name is required")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType = errors.New("file type is not supported")
)

var typeLabels = map[string]string{
	"application/pdf":    "PDF",
	"application/msword": "DOC",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "DOCX",
	"application/vnd.ms-excel": "XLS",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": "XLSX",
	"application/vnd.ms-powerpoint":                                     "PPT",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "PPTX",
	"text/plain":                   "TXT",
	"text/csv":                     "CSV",
	"image/jpeg":                   "JPG",
	"image/png":                    "PNG",
	"image/gif":                    "GIF",
	"image/svg+xml":                "SVG",
	"application/zip":              "ZIP",
	"application/x-rar-compressed": "RAR",
}

// TypeLabel returns the short display label for a MIME type, falling back to
// the uppercased subtype.
func TypeLabel(mimeType string) string {
	if label, ok := typeLabels[mimeType]; ok {
		return label
	}
	if _, sub, ok := strings.Cut(mimeType, "/"); ok && sub != "" {
		return strings.ToUpper(sub)
	}
	return "FILE"
}

// IsSupported reports whether a MIME type is accepted for upload. Every
// image/* type is accepted in addition to the explicit allowlist.
func IsSupported(mimeType string) bool {
	if _, ok := typeLabels[mimeType]; ok {
		return true
	}
	return strings.HasPrefix(mimeType, "image/")
}

// ValidateUpload checks a prospective upload against the size limit and the
// supported-type allowlist. maxBytes <= 0 applies DefaultMaxUploadBytes.
func ValidateUpload(name string, sizeBytes int64, mimeType string, maxBytes int64) error {
	if name == "" {
		return ErrNameRequired
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if sizeBytes > maxBytes {
		return fmt.Errorf("%w (%s > %s)", ErrFileTooLarge, FormatSize(sizeBytes), FormatSize(maxBytes))
	}
	if !IsSupported(mimeType) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	return nil
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeName replaces characters unsafe for storage keys or download
// headers with underscores.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// FormatSize renders a byte count for humans, e.g. "2.0 KiB".
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
