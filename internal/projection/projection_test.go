package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clouddocs/internal/model"
)

func docAt(id, name string, size int64, createdAtMillis int64) model.Document {
	var created time.Time
	if createdAtMillis != 0 {
		created = time.UnixMilli(createdAtMillis).UTC()
	}
	return model.Document{
		ID:        id,
		Name:      name,
		MimeType:  "application/octet-stream",
		SizeBytes: size,
		CreatedAt: created,
		OwnerID:   "u1",
	}
}

func ids(docs []model.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortByName, ParseSortKey("name"))
	assert.Equal(t, SortBySize, ParseSortKey("size"))
	assert.Equal(t, SortByType, ParseSortKey("type"))
	assert.Equal(t, SortByCreatedAt, ParseSortKey("createdAt"))
	assert.Equal(t, SortByCreatedAt, ParseSortKey(""))
	assert.Equal(t, SortByCreatedAt, ParseSortKey("bogus"))
}

func TestProject_Scenarios(t *testing.T) {
	l := []model.Document{
		docAt("1", "Report.pdf", 2048, 100),
		docAt("2", "Photo.png", 4096, 200),
	}

	tests := []struct {
		name    string
		search  string
		sort    SortKey
		wantIDs []string
	}{
		{
			name:    "default sort newest first",
			sort:    SortByCreatedAt,
			wantIDs: []string{"2", "1"},
		},
		{
			name:    "search filters by name case-insensitively",
			search:  "report",
			sort:    SortByCreatedAt,
			wantIDs: []string{"1"},
		},
		{
			name:    "size sorts descending",
			sort:    SortBySize,
			wantIDs: []string{"2", "1"},
		},
		{
			name:    "name sorts descending lexicographically",
			sort:    SortByName,
			wantIDs: []string{"1", "2"}, // "Report.pdf" > "Photo.png"
		},
		{
			name:    "no matches yields empty display list",
			search:  "nothing-here",
			sort:    SortByCreatedAt,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(l, tt.search, tt.sort)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestProject_SearchMatchesDescription(t *testing.T) {
	l := []model.Document{
		docAt("1", "scan-001.png", 10, 100),
		docAt("2", "scan-002.png", 10, 200),
	}
	l[0].Description = "Tax Return 2025"

	got := Project(l, "tax", SortByCreatedAt)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestProject_EmptySearchKeepsAllRecords(t *testing.T) {
	l := []model.Document{
		docAt("1", "a", 1, 300),
		docAt("2", "b", 2, 100),
		docAt("3", "c", 3, 200),
	}

	got := Project(l, "", SortByCreatedAt)
	assert.Len(t, got, len(l))
	assert.ElementsMatch(t, ids(l), ids(got))
}

func TestProject_MissingTimestampSortsAsEpochZero(t *testing.T) {
	l := []model.Document{
		docAt("no-ts", "x", 1, 0),
		docAt("recent", "y", 1, 500),
	}

	got := Project(l, "", SortByCreatedAt)
	assert.Equal(t, []string{"recent", "no-ts"}, ids(got))
}

func TestProject_TiesKeepInputOrder(t *testing.T) {
	l := []model.Document{
		docAt("first", "same", 7, 100),
		docAt("second", "same", 7, 100),
		docAt("third", "same", 7, 100),
	}

	for _, key := range []SortKey{SortByName, SortByCreatedAt, SortBySize, SortByType} {
		got := Project(l, "", key)
		assert.Equal(t, []string{"first", "second", "third"}, ids(got), "key %s", key)
	}
}

func TestProject_Idempotent(t *testing.T) {
	l := []model.Document{
		docAt("1", "b.txt", 10, 300),
		docAt("2", "a.txt", 30, 100),
		docAt("3", "c.txt", 20, 200),
	}

	first := Project(l, "", SortBySize)
	second := Project(l, "", SortBySize)
	assert.Equal(t, first, second)

	// Re-projecting the projection yields the same order.
	again := Project(first, "", SortBySize)
	assert.Equal(t, first, again)
}

func TestProject_DoesNotAliasInput(t *testing.T) {
	l := []model.Document{
		docAt("1", "a", 1, 100),
		docAt("2", "b", 2, 200),
	}

	got := Project(l, "", SortByCreatedAt)
	got[0].Name = "mutated"

	assert.Equal(t, "a", l[0].Name)
	assert.Equal(t, "b", l[1].Name)
}

func TestProject_EmptyInput(t *testing.T) {
	assert.Empty(t, Project(nil, "", SortByCreatedAt))
	assert.Empty(t, Project(nil, "anything", SortBySize))
}

func TestEmpty(t *testing.T) {
	assert.Equal(t, EmptyNoDocuments, Empty(0, 0))
	assert.Equal(t, EmptyNoMatches, Empty(3, 0))
	assert.Equal(t, EmptyNone, Empty(3, 2))

	assert.Equal(t, "no_documents", EmptyNoDocuments.String())
	assert.Equal(t, "no_matches", EmptyNoMatches.String())
	assert.Equal(t, "", EmptyNone.String())
}
