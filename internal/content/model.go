package content

import "time"

// Category is the fixed set of blog sections.
type Category string

const (
	CategoryBlog     Category = "blog"
	CategoryProjects Category = "projects"
	CategoryLife     Category = "life"
	CategoryNotes    Category = "notes"
)

// ParseCategory maps a backend category identifier onto the fixed set,
// defaulting to blog for anything unknown.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryBlog, CategoryProjects, CategoryLife, CategoryNotes:
		return Category(s)
	default:
		return CategoryBlog
	}
}

// Locale is a supported content language.
type Locale string

const (
	LocaleZH Locale = "zh"
	LocaleEN Locale = "en"
)

// Summary is the normalized, display-ready representation of one
// article/post/project entry. Both upstream shapes (index record and
// relational record) are reconciled into exactly this shape before
// entering a store.
type Summary struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags"`
	Category    Category  `json:"category"`
	Locale      Locale    `json:"locale"`
	ReadingTime int       `json:"reading_time,omitempty"`
	Image       string    `json:"image,omitempty"`
	Featured    bool      `json:"featured"`
	Draft       bool      `json:"draft"`
	Views       int       `json:"views"`
	Author      string    `json:"author,omitempty"`

	// Project-only fields.
	Stars     int      `json:"stars,omitempty"`
	Forks     int      `json:"forks,omitempty"`
	Repo      string   `json:"repo,omitempty"`
	Demo      string   `json:"demo,omitempty"`
	TechStack []string `json:"tech_stack,omitempty"`
}

// Popularity scores a post as stars*2 + forks; non-project entries
// score zero.
func (s Summary) Popularity() int {
	return s.Stars*2 + s.Forks
}

// HasTag reports whether the post carries the given tag name.
func (s Summary) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SortBy selects the sort key for filtered listings.
type SortBy string

const (
	SortByDate        SortBy = "date"
	SortByPopularity  SortBy = "popularity"
	SortByReadingTime SortBy = "readingTime"
	SortByTitle       SortBy = "title"
)

// SortOrder selects the sort direction.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Filter is a pure query descriptor over the post collection. Zero
// values mean "don't filter on this". SortBy defaults to date and
// SortOrder to descending.
type Filter struct {
	Category Category
	Tags     []string
	Locale   Locale
	Draft    *bool
	Featured bool
	Search   string

	SortBy    SortBy
	SortOrder SortOrder

	DateFrom time.Time
	DateTo   time.Time
}

// ExcludeDrafts is a convenience for the common draft:false filter.
func ExcludeDrafts() *bool {
	exclude := false
	return &exclude
}
