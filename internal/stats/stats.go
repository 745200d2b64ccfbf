package stats

import (
	"strings"

	"clouddocs/internal/model"
)

// Usage summarizes a user's storage consumption. It is a pure reduce over a
// document snapshot; nothing here talks to the backend.
type Usage struct {
	UsedBytes    int64          `json:"used_bytes"`
	QuotaBytes   int64          `json:"quota_bytes"`
	Files        int            `json:"files"`
	AverageBytes int64          `json:"average_bytes"`
	Breakdown    map[string]int `json:"breakdown"`
}

// Compute derives storage usage from a document snapshot against the given
// quota.
func Compute(docs []model.Document, quotaBytes int64) Usage {
	u := Usage{
		QuotaBytes: quotaBytes,
		Files:      len(docs),
		Breakdown:  make(map[string]int),
	}
	for _, d := range docs {
		u.UsedBytes += d.SizeBytes
		u.Breakdown[Category(d.MimeType)]++
	}
	if len(docs) > 0 {
		u.AverageBytes = u.UsedBytes / int64(len(docs))
	}
	return u
}

// Category buckets a MIME type into a display group.
func Category(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "pdf"):
		return "PDFs"
	case strings.Contains(mimeType, "image"):
		return "Images"
	case strings.Contains(mimeType, "word"), strings.Contains(mimeType, "document"):
		return "Documents"
	case strings.Contains(mimeType, "excel"), strings.Contains(mimeType, "spreadsheet"):
		return "Spreadsheets"
	case strings.Contains(mimeType, "presentation"):
		return "Presentations"
	case strings.Contains(mimeType, "text"):
		return "Text Files"
	default:
		return "Other"
	}
}
