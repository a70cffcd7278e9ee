package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/nanobanana/nanoblog/internal/content"
	"github.com/nanobanana/nanoblog/internal/debuglog"
	"github.com/nanobanana/nanoblog/internal/storage"
)

// State is the lifecycle of one search interaction.
type State int

const (
	StateIdle State = iota
	StateSearching
)

const (
	maxTagSuggestions   = 5
	maxTitleSuggestions = 3
)

// Session drives the hybrid search pipeline for an interactive caller:
// it owns the current query, runs it through the content store, records
// it in the persisted history and keeps the latest result around for
// rendering. Methods are safe for concurrent use.
type Session struct {
	store *content.Store
	db    *storage.Store

	mu        sync.Mutex
	state     State
	query     string
	result    content.Result
	hasResult bool
}

func NewSession(store *content.Store, db *storage.Store) *Session {
	return &Session{store: store, db: db}
}

// SetQuery replaces the pending query. Emptying it drops the held
// results and returns the session to idle.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = strings.TrimSpace(query)
	if s.query == "" {
		s.result = content.Result{}
		s.hasResult = false
		s.state = StateIdle
	}
}

func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the outcome of the last completed run, if any.
func (s *Session) Result() (content.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result, s.hasResult
}

// Run executes the pending query. Drafts never appear in results. The
// query lands in the persisted history only when it actually ran.
func (s *Session) Run(ctx context.Context) content.Result {
	s.mu.Lock()
	query := s.query
	if query == "" {
		s.mu.Unlock()
		return content.Result{}
	}
	s.state = StateSearching
	s.mu.Unlock()

	result := s.store.Search(ctx, content.Filter{
		Search: query,
		Draft:  content.ExcludeDrafts(),
	})

	if err := s.db.AddSearch(query); err != nil {
		debuglog.Warnf("recording search %q failed: %v", query, err)
	}

	s.mu.Lock()
	s.result = result
	s.hasResult = true
	s.state = StateIdle
	s.mu.Unlock()
	return result
}

// Recent returns up to n past queries, most recent first.
func (s *Session) Recent(n int) []string {
	entries, err := s.db.SearchHistory()
	if err != nil {
		debuglog.Warnf("reading search history failed: %v", err)
		return nil
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	queries := make([]string, 0, len(entries))
	for _, e := range entries {
		queries = append(queries, e.Query)
	}
	return queries
}

// ClearHistory drops the persisted query history.
func (s *Session) ClearHistory() error {
	return s.db.ClearSearches()
}

// / Popular suggests starting points when the history is empty: the most
// used tags across the published collection, then the most viewed
// titles.
func (s *Session) Popular() []string {
	posts := s.store.Filter(content.Filter{Draft: content.ExcludeDrafts()})

	counts := map[string]int{}
	for _, p := range posts {
		for _, tag := range p.Tags {
			counts[tag]++
		}
	}
	tags := make([]string, 0, len(counts))
	for tag := range counts {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})
	if len(tags) > maxTagSuggestions {
		tags = tags[:maxTagSuggestions]
	}

	byViews := append([]content.Summary(nil), posts...)
	sort.SliceStable(byViews, func(i, j int) bool { return byViews[i].Views > byViews[j].Views })

	suggestions := tags
	for i, p := range byViews {
		if i == maxTitleSuggestions {
			break
		}
		if p.Title != "" {
			suggestions = append(suggestions, p.Title)
		}
	}
	return suggestions
}
