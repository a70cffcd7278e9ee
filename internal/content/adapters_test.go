package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nanobanana/nanoblog/internal/api"
)

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2025-03-10T08:30:00Z", time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)},
		{"rfc3339 nano", "2025-03-10T08:30:00.123456Z", time.Date(2025, 3, 10, 8, 30, 0, 123456000, time.UTC)},
		{"no zone", "2025-03-10T08:30:00", time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)},
		{"date only", "2025-03-10", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"garbage", "soon", time.Time{}},
		{"empty", "", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, parseDate(tt.input).Equal(tt.want))
		})
	}
}

func TestSummaryFromIndex(t *testing.T) {
	rec := api.IndexRecord{
		ID:             7,
		Slug:           "go-generics",
		Title:          "Go Generics in Practice",
		Description:    "Type parameters after a year of use",
		AuthorUsername: "admin",
		AuthorNickname: "Nano",
		CategorySlug:   "notes",
		TagsNames:      []string{"go", "generics"},
		Locale:         "en",
		Status:         "published",
		Featured:       true,
		ReadingTime:    8,
		PublishedAt:    "2025-03-10T08:30:00Z",
		CreatedAt:      "2025-03-01T00:00:00Z",
		ViewCount:      300,
	}

	got := SummaryFromIndex(rec)

	assert.Equal(t, "go-generics", got.Slug)
	assert.Equal(t, CategoryNotes, got.Category)
	assert.Equal(t, LocaleEN, got.Locale)
	assert.Equal(t, []string{"go", "generics"}, got.Tags)
	assert.Equal(t, "Nano", got.Author, "nickname wins over username")
	assert.False(t, got.Draft)
	assert.Equal(t, 300, got.Views)
	assert.Equal(t, time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC), got.Date,
		"published_at wins over created_at")
}

func TestSummaryFromIndexDefaults(t *testing.T) {
	got := SummaryFromIndex(api.IndexRecord{
		Slug:           "wip",
		AuthorUsername: "admin",
		CategorySlug:   "space-lasers",
		Status:         "draft",
		CreatedAt:      "2025-07-15",
	})

	assert.Equal(t, CategoryBlog, got.Category, "unknown categories map to blog")
	assert.True(t, got.Draft)
	assert.Equal(t, "admin", got.Author, "username fills in for a missing nickname")
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), got.Date,
		"created_at fills in for a missing published_at")
}

func TestSummaryFromArticle(t *testing.T) {
	article := api.Article{
		Slug:         "nanoblog-cli",
		Title:        "nanoblog",
		Content:      "# nanoblog\n\nA terminal blog client.",
		Author:       &api.Author{Username: "admin"},
		CategoryType: "projects",
		Tags:         []api.TagRef{{ID: 1, Name: "go"}, {ID: 2, Name: "tui"}},
		Locale:       "en",
		Status:       "published",
		PublishedAt:  "2025-06-01T12:00:00Z",
		Stars:        42,
		Forks:        7,
		Repo:         "https://github.com/nanobanana/nanoblog",
	}

	got := SummaryFromArticle(article)

	assert.Equal(t, CategoryProjects, got.Category)
	assert.Equal(t, []string{"go", "tui"}, got.Tags)
	assert.Equal(t, "admin", got.Author)
	assert.Equal(t, "# nanoblog\n\nA terminal blog client.", got.Content,
		"the body rides along on the detail shape")
	assert.Equal(t, 91, got.Popularity())
}

func TestSummaryFromHit(t *testing.T) {
	hit := api.SearchHit{
		ID:          3,
		Slug:        "kyoto-trip",
		Title:       "京都の旅",
		Category:    &api.CategoryRef{Slug: "life", Name: "Life"},
		Tags:        []api.TagRef{{Name: "travel"}},
		Locale:      "zh",
		PublishedAt: "2024-11-20",
	}

	got := SummaryFromHit(hit)

	assert.Equal(t, CategoryLife, got.Category)
	assert.Equal(t, LocaleZH, got.Locale)
	assert.Equal(t, []string{"travel"}, got.Tags)
	assert.False(t, got.Draft, "the search index never serves drafts")

	// Hits without a category land in blog.
	assert.Equal(t, CategoryBlog, SummaryFromHit(api.SearchHit{Slug: "x"}).Category)
}
