package content

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply filters and sorts a post collection according to the filter.
// It is a pure function: the input slice and the filter are never
// mutated, and a fresh ordered slice is returned. Predicates combine
// with AND semantics; an unset filter field skips its predicate.
func Apply(posts []Summary, f Filter) []Summary {
	filtered := make([]Summary, 0, len(posts))
	for _, p := range posts {
		if matches(p, f) {
			filtered = append(filtered, p)
		}
	}
	sortSummaries(filtered, f.SortBy, f.SortOrder)
	return filtered
}

func matches(p Summary, f Filter) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}

	// Tag predicate: at least one requested tag present (OR within the
	// list, AND with everything else).
	if len(f.Tags) > 0 {
		found := false
		for _, tag := range f.Tags {
			if p.HasTag(tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Locale != "" && p.Locale != f.Locale {
		return false
	}

	if f.Featured && !p.Featured {
		return false
	}

	if f.Draft != nil && !*f.Draft && p.Draft {
		return false
	}

	if f.Search != "" && !matchesSearch(p, f.Search) {
		return false
	}

	if !f.DateFrom.IsZero() {
		from := startOfDay(f.DateFrom)
		if p.Date.Before(from) {
			return false
		}
	}
	if !f.DateTo.IsZero() {
		to := endOfDay(f.DateTo)
		if p.Date.After(to) {
			return false
		}
	}

	return true
}

func matchesSearch(p Summary, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func sortSummaries(posts []Summary, by SortBy, order SortOrder) {
	if by == "" {
		by = SortByDate
	}
	if order == "" {
		order = OrderDesc
	}

	var cmp func(a, b Summary) int
	switch by {
	case SortByPopularity:
		cmp = func(a, b Summary) int { return a.Popularity() - b.Popularity() }
	case SortByReadingTime:
		cmp = func(a, b Summary) int { return a.ReadingTime - b.ReadingTime }
	case SortByTitle:
		col := collate.New(language.Chinese)
		cmp = func(a, b Summary) int { return col.CompareString(a.Title, b.Title) }
	default: // SortByDate
		cmp = func(a, b Summary) int { return a.Date.Compare(b.Date) }
	}

	sort.SliceStable(posts, func(i, j int) bool {
		c := cmp(posts[i], posts[j])
		if order == OrderAsc {
			return c < 0
		}
		return c > 0
	})
}
