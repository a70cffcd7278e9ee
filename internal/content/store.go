package content

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/nanobanana/nanoblog/internal/api"
	"github.com/nanobanana/nanoblog/internal/debuglog"
	"github.com/nanobanana/nanoblog/internal/storage"
)

// Store caches the published post collection and answers category,
// locale and featured views plus the search/filter pipeline. The cached
// collection is exclusively owned: callers only ever see copies.
type Store struct {
	articles *api.ArticleService
	search   *api.SearchService
	db       *storage.Store
	pageSize int

	mu      sync.RWMutex
	posts   []Summary
	offline bool
}

func NewStore(services *api.Services, db *storage.Store, pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Store{
		articles: services.Articles,
		search:   services.Search,
		db:       db,
		pageSize: pageSize,
	}
}

// LoadAll fetches the published posts from the backend and replaces the
// cached collection, writing it through to the offline cache. When the
// backend is unreachable the last written offline cache is served
// instead, so filtering keeps working across restarts.
func (s *Store) LoadAll(ctx context.Context) error {
	page, err := s.articles.List(ctx, api.ListParams{
		Status:   "published",
		Page:     1,
		PageSize: s.pageSize,
	})
	if err != nil {
		var cached []Summary
		if cacheErr := s.db.LoadContentCache(&cached); cacheErr == nil {
			debuglog.Warnf("loading content failed, serving offline cache: %v", err)
			s.replace(cached)
			s.setOffline(true)
			return nil
		}
		return err
	}

	posts := make([]Summary, 0, len(page.Results))
	for _, rec := range page.Results {
		posts = append(posts, SummaryFromIndex(rec))
	}
	s.replace(posts)
	s.setOffline(false)

	if err := s.db.SaveContentCache(posts); err != nil {
		debuglog.Warnf("writing offline cache failed: %v", err)
	}
	return nil
}

// Refresh reloads the collection from the backend. Callers that need
// strong consistency after mutations use this instead of trusting the
// cached collection.
func (s *Store) Refresh(ctx context.Context) error {
	return s.LoadAll(ctx)
}

func (s *Store) replace(posts []Summary) {
	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()
}

func (s *Store) setOffline(offline bool) {
	s.mu.Lock()
	s.offline = offline
	s.mu.Unlock()
}

// Offline reports whether the collection was served from the local
// cache because the backend was unreachable.
func (s *Store) Offline() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offline
}

func (s *Store) snapshot() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]Summary, len(s.posts))
	copy(posts, s.posts)
	return posts
}

// Posts returns a copy of the cached collection.
func (s *Store) Posts() []Summary {
	return s.snapshot()
}

// ByCategory returns the cached posts of one category.
func (s *Store) ByCategory(category Category) []Summary {
	return Apply(s.snapshot(), Filter{Category: category})
}

// ByLocale returns the cached posts of one locale.
func (s *Store) ByLocale(locale Locale) []Summary {
	return Apply(s.snapshot(), Filter{Locale: locale})
}

// Featured returns the cached featured posts.
func (s *Store) Featured() []Summary {
	return Apply(s.snapshot(), Filter{Featured: true})
}

// Latest returns the cached posts newest first.
func (s *Store) Latest() []Summary {
	return Apply(s.snapshot(), Filter{})
}

// ProjectStats sums up the cached project entries.
type ProjectStats struct {
	Total      int
	TotalStars int
	TotalForks int
}

func (s *Store) ProjectStats() ProjectStats {
	var stats ProjectStats
	for _, p := range s.snapshot() {
		if p.Category != CategoryProjects {
			continue
		}
		stats.Total++
		stats.TotalStars += p.Stars
		stats.TotalForks += p.Forks
	}
	return stats
}

// AllTags returns the distinct tag names across the cached collection,
// sorted.
func (s *Store) AllTags() []string {
	seen := map[string]bool{}
	for _, p := range s.snapshot() {
		for _, tag := range p.Tags {
			seen[tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// PostBySlug fetches the full relational record for one post. It always
// goes to the backend so the body is current.
func (s *Store) PostBySlug(ctx context.Context, slug string) (*Summary, error) {
	article, err := s.articles.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	post := SummaryFromArticle(*article)
	return &post, nil
}

// IncrementViews bumps the local view counter; the backend counts views
// on its own when the detail endpoint is hit.
func (s *Store) IncrementViews(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].Slug == slug {
			s.posts[i].Views++
			return
		}
	}
}

// Filter applies the deterministic client-side pipeline to the cached
// collection.
func (s *Store) Filter(f Filter) []Summary {
	return Apply(s.snapshot(), f)
}

// Result is the outcome of a search: the posts, the total count
// consistent with whichever path produced them, and, for remote
// results, per-hit highlight fragments keyed by hit id.
type Result struct {
	Posts      []Summary
	Total      int
	Highlights map[string]map[string][]string
	Fallback   bool
}

// Search runs the hybrid pipeline. A non-empty query goes to the remote
// search service; any failure there silently degrades to the
// deterministic client-side filter over the cached collection. An empty
// query filters locally without a network call. Either way the caller
// always gets a result set.
func (s *Store) Search(ctx context.Context, f Filter) Result {
	if f.Search == "" {
		posts := s.Filter(f)
		return Result{Posts: posts, Total: len(posts)}
	}

	resp, err := s.search.Search(ctx, api.SearchParams{
		Query:    f.Search,
		Category: string(f.Category),
		Tags:     f.Tags,
		Locale:   string(f.Locale),
		Page:     1,
		PageSize: s.pageSize,
	})
	if err != nil {
		debuglog.Warnf("remote search failed, falling back to client-side filter: %v", err)
		posts := s.Filter(f)
		return Result{Posts: posts, Total: len(posts), Fallback: true}
	}

	posts := make([]Summary, 0, len(resp.Items))
	highlights := make(map[string]map[string][]string)
	for _, hit := range resp.Items {
		posts = append(posts, SummaryFromHit(hit))
		if len(hit.Highlight) > 0 {
			highlights[strconv.Itoa(hit.ID)] = hit.Highlight
		}
	}

	return Result{Posts: posts, Total: resp.Total, Highlights: highlights}
}
