package projection

import (
	"sort"
	"strings"
	"time"

	"clouddocs/internal/model"
)

// Package projection derives the displayed document list from the
// authoritative one. Project is a pure function of its inputs: same snapshot,
// search term, and sort key always yield the same output, and the output never
// shares backing storage with the input.

// SortKey selects the comparator used to order the display list.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByCreatedAt SortKey = "createdAt"
	SortBySize      SortKey = "size"
	SortByType      SortKey = "type"
)

// ParseSortKey maps a request parameter onto a SortKey, falling back to the
// default createdAt ordering for anything unrecognized.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortByName, SortBySize, SortByType, SortByCreatedAt:
		return SortKey(s)
	default:
		return SortByCreatedAt
	}
}

// Project filters docs by searchTerm and orders the survivors by key.
//
// The filter keeps a record iff the term is empty or is contained
// case-insensitively in the name or description. Direction is always
// descending ("Newest First" is a fixed policy, only the key is selectable);
// ties keep their input order.
func Project(docs []model.Document, searchTerm string, key SortKey) []model.Document {
	out := make([]model.Document, 0, len(docs))
	term := strings.ToLower(searchTerm)
	for _, d := range docs {
		if term == "" || matches(d, term) {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[j], out[i], key)
	})
	return out
}

func matches(d model.Document, lowerTerm string) bool {
	if strings.Contains(strings.ToLower(d.Name), lowerTerm) {
		return true
	}
	return d.Description != "" && strings.Contains(strings.ToLower(d.Description), lowerTerm)
}

func less(a, b model.Document, key SortKey) bool {
	switch key {
	case SortByName:
		return a.Name < b.Name
	case SortByType:
		return a.MimeType < b.MimeType
	case SortBySize:
		return a.SizeBytes < b.SizeBytes
	default:
		return epochMillis(a.CreatedAt) < epochMillis(b.CreatedAt)
	}
}

// epochMillis normalizes a timestamp to a comparable instant; a missing
// timestamp sorts as epoch 0.
func epochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// EmptyState distinguishes the two reasons a display list can be empty: the
// user has no documents at all, or the search term matched none of them.
type EmptyState int

const (
	EmptyNone EmptyState = iota
	EmptyNoDocuments
	EmptyNoMatches
)

// Empty classifies the display list given the authoritative and displayed
// counts.
func Empty(authoritative, displayed int) EmptyState {
	switch {
	case authoritative == 0:
		return EmptyNoDocuments
	case displayed == 0:
		return EmptyNoMatches
	default:
		return EmptyNone
	}
}

func (s EmptyState) String() string {
	switch s {
	case EmptyNoDocuments:
		return "no_documents"
	case EmptyNoMatches:
		return "no_matches"
	default:
		return ""
	}
}
