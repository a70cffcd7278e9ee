package content

import (
	"time"

	"github.com/nanobanana/nanoblog/internal/api"
)

// The adapters below are the only place upstream records become
// Summaries. Each upstream shape has its own constructor, chosen by the
// endpoint that produced the record, so a record's shape is fixed at
// the API boundary instead of being sniffed from field presence later.

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func pickDate(publishedAt, createdAt string) time.Time {
	if publishedAt != "" {
		return parseDate(publishedAt)
	}
	return parseDate(createdAt)
}

// SummaryFromIndex converts a flattened index record (list endpoint).
func SummaryFromIndex(rec api.IndexRecord) Summary {
	tags := rec.TagsNames
	if tags == nil {
		tags = []string{}
	}

	author := rec.AuthorNickname
	if author == "" {
		author = rec.AuthorUsername
	}

	return Summary{
		Slug:        rec.Slug,
		Title:       rec.Title,
		Description: rec.Description,
		Date:        pickDate(rec.PublishedAt, rec.CreatedAt),
		Tags:        tags,
		Category:    ParseCategory(rec.CategorySlug),
		Locale:      Locale(rec.Locale),
		ReadingTime: rec.ReadingTime,
		Image:       rec.CoverImage,
		Featured:    rec.Featured,
		Draft:       rec.Status == "draft",
		Views:       rec.ViewCount,
		Author:      author,
		Stars:       rec.Stars,
		Forks:       rec.Forks,
		Repo:        rec.Repo,
		Demo:        rec.Demo,
		TechStack:   rec.TechStack,
	}
}

// SummaryFromArticle converts a relational record (detail endpoint).
// The article body is carried along for reading and editing.
func SummaryFromArticle(a api.Article) Summary {
	tags := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, t.Name)
	}

	var author string
	if a.Author != nil {
		author = a.Author.Nickname
		if author == "" {
			author = a.Author.Username
		}
	}

	return Summary{
		Slug:        a.Slug,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Date:        pickDate(a.PublishedAt, a.CreatedAt),
		Tags:        tags,
		Category:    ParseCategory(a.CategoryType),
		Locale:      Locale(a.Locale),
		ReadingTime: a.ReadingTime,
		Image:       a.CoverImage,
		Featured:    a.Featured,
		Draft:       a.Status == "draft",
		Views:       a.ViewCount,
		Author:      author,
		Stars:       a.Stars,
		Forks:       a.Forks,
		Repo:        a.Repo,
		Demo:        a.Demo,
		TechStack:   a.TechStack,
	}
}

// SummaryFromHit converts a remote search hit. The search index only
// carries publishable content, so draft is always false.
func SummaryFromHit(h api.SearchHit) Summary {
	tags := make([]string, 0, len(h.Tags))
	for _, t := range h.Tags {
		tags = append(tags, t.Name)
	}

	category := CategoryBlog
	if h.Category != nil {
		if h.Category.Slug != "" {
			category = ParseCategory(h.Category.Slug)
		} else {
			category = ParseCategory(h.Category.Name)
		}
	}

	return Summary{
		Slug:        h.Slug,
		Title:       h.Title,
		Description: h.Description,
		Date:        parseDate(h.PublishedAt),
		Tags:        tags,
		Category:    category,
		Locale:      Locale(h.Locale),
		ReadingTime: h.ReadingTime,
		Featured:    h.Featured,
		Draft:       false,
		Views:       h.ViewCount,
	}
}
