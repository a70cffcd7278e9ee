package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func fixturePosts() []Summary {
	return []Summary{
		{
			Slug: "go-generics", Title: "Go Generics in Practice",
			Description: "Type parameters after a year of use",
			Date:        day("2025-03-10"), Tags: []string{"go", "generics"},
			Category: CategoryBlog, Locale: LocaleEN, ReadingTime: 8,
			Featured: true, Views: 300,
		},
		{
			Slug: "nanoblog-cli", Title: "nanoblog",
			Description: "A terminal blog client",
			Date:        day("2025-06-01"), Tags: []string{"go", "tui"},
			Category: CategoryProjects, Locale: LocaleEN, ReadingTime: 3,
			Stars: 42, Forks: 7,
		},
		{
			Slug: "kyoto-trip", Title: "京都の旅",
			Description: "A week in Kyoto",
			Date:        day("2024-11-20"), Tags: []string{"travel"},
			Category: CategoryLife, Locale: LocaleZH, ReadingTime: 12,
		},
		{
			Slug: "wip-draft", Title: "Untitled Draft",
			Description: "work in progress",
			Date:        day("2025-07-15"), Tags: []string{"go"},
			Category: CategoryBlog, Locale: LocaleEN, ReadingTime: 1,
			Draft: true,
		},
		{
			Slug: "bbolt-notes", Title: "bbolt field notes",
			Description: "Embedded KV stores compared",
			Date:        day("2025-01-05"), Tags: []string{"storage", "bbolt"},
			Category: CategoryNotes, Locale: LocaleEN, ReadingTime: 5,
			Stars: 3, Forks: 1,
		},
	}
}

func slugs(posts []Summary) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func TestApplyIsPure(t *testing.T) {
	posts := fixturePosts()
	original := slugs(posts)

	first := Apply(posts, Filter{Category: CategoryBlog, SortBy: SortByTitle})
	second := Apply(posts, Filter{Category: CategoryBlog, SortBy: SortByTitle})

	assert.Equal(t, original, slugs(posts), "input slice must not be reordered")
	assert.Equal(t, first, second, "same input and filter must give the same output")
}

func TestApplyPredicates(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "no filter returns everything newest first",
			filter: Filter{},
			want:   []string{"wip-draft", "nanoblog-cli", "go-generics", "bbolt-notes", "kyoto-trip"},
		},
		{
			name:   "category exact match",
			filter: Filter{Category: CategoryNotes},
			want:   []string{"bbolt-notes"},
		},
		{
			name:   "tags match any within the list",
			filter: Filter{Tags: []string{"tui", "travel"}},
			want:   []string{"nanoblog-cli", "kyoto-trip"},
		},
		{
			name:   "locale",
			filter: Filter{Locale: LocaleZH},
			want:   []string{"kyoto-trip"},
		},
		{
			name:   "featured only filters when set",
			filter: Filter{Featured: true},
			want:   []string{"go-generics"},
		},
		{
			name:   "draft false excludes drafts",
			filter: Filter{Draft: ExcludeDrafts()},
			want:   []string{"nanoblog-cli", "go-generics", "bbolt-notes", "kyoto-trip"},
		},
		{
			name:   "search is case-insensitive over title description and tags",
			filter: Filter{Search: "BBOLT"},
			want:   []string{"bbolt-notes"},
		},
		{
			name:   "search matches description",
			filter: Filter{Search: "terminal"},
			want:   []string{"nanoblog-cli"},
		},
		{
			name:   "predicates combine with AND",
			filter: Filter{Category: CategoryBlog, Tags: []string{"go"}, Draft: ExcludeDrafts()},
			want:   []string{"go-generics"},
		},
		{
			name:   "date range is inclusive of both boundary days",
			filter: Filter{DateFrom: day("2025-01-05"), DateTo: day("2025-06-01")},
			want:   []string{"nanoblog-cli", "go-generics", "bbolt-notes"},
		},
		{
			name:   "no match yields empty not nil",
			filter: Filter{Search: "quantum"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixturePosts(), tt.filter)
			assert.Equal(t, tt.want, slugs(got))
		})
	}
}

func TestApplySorting(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "popularity descending weighs stars double",
			filter: Filter{SortBy: SortByPopularity},
			want:   []string{"nanoblog-cli", "bbolt-notes", "go-generics", "kyoto-trip", "wip-draft"},
		},
		{
			name:   "reading time ascending",
			filter: Filter{SortBy: SortByReadingTime, SortOrder: OrderAsc},
			want:   []string{"wip-draft", "nanoblog-cli", "bbolt-notes", "go-generics", "kyoto-trip"},
		},
		{
			name:   "date ascending",
			filter: Filter{SortBy: SortByDate, SortOrder: OrderAsc},
			want:   []string{"kyoto-trip", "bbolt-notes", "go-generics", "nanoblog-cli", "wip-draft"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixturePosts(), tt.filter)
			assert.Equal(t, tt.want, slugs(got))
		})
	}
}

func TestApplyDefaultSortIsDateDescending(t *testing.T) {
	got := Apply(fixturePosts(), Filter{})
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.After(got[i-1].Date),
			"dates must be non-increasing, %s is newer than %s", got[i].Slug, got[i-1].Slug)
	}
}

func TestApplyTitleSortIsStable(t *testing.T) {
	posts := []Summary{
		{Slug: "b-first", Title: "same", Date: day("2025-01-01")},
		{Slug: "b-second", Title: "same", Date: day("2025-02-01")},
		{Slug: "a", Title: "aaa", Date: day("2025-03-01")},
	}
	got := Apply(posts, Filter{SortBy: SortByTitle, SortOrder: OrderAsc})
	assert.Equal(t, []string{"a", "b-first", "b-second"}, slugs(got),
		"equal titles keep their input order")
}

func TestPopularity(t *testing.T) {
	assert.Equal(t, 0, Summary{}.Popularity())
	assert.Equal(t, 91, Summary{Stars: 42, Forks: 7}.Popularity())
}
