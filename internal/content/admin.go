package content

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nanobanana/nanoblog/internal/api"
	"github.com/nanobanana/nanoblog/internal/debuglog"
	"github.com/nanobanana/nanoblog/internal/storage"
)

// TagError aggregates the tag names whose remote creation failed during
// a save. Tags created before the failure are not rolled back; they are
// plain reusable tags on the backend.
type TagError struct {
	Failed []string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("creating tags failed: %s", strings.Join(e.Failed, ", "))
}

// PostInput is the full write shape used when creating a post.
type PostInput struct {
	Slug        string
	Title       string
	Description string
	Content     string
	Date        string // YYYY-MM-DD
	Tags        []string
	Category    Category
	Locale      Locale
	ReadingTime int
	Featured    bool
	Draft       bool
	Image       string

	// Project-only fields.
	Stars     int
	Forks     int
	Repo      string
	Demo      string
	TechStack []string
}

// PostChange is the partial write shape used when updating a post. Nil
// fields are left untouched; a nil Tags slice leaves tags unchanged
// while an empty one clears them.
type PostChange struct {
	Title       *string
	Description *string
	Content     *string
	Date        *string // YYYY-MM-DD
	Tags        []string
	Category    *Category
	Locale      *Locale
	ReadingTime *int
	Featured    *bool
	Draft       *bool
	Image       *string

	Stars     *int
	Forks     *int
	Repo      *string
	Demo      *string
	TechStack []string
}

// AdminStore is the CRUD-oriented variant of Store: it loads drafts
// too, owns the category and tag id mappings derived from the loaded
// taxonomy lists, and mutates its cached list optimistically after the
// server confirms each operation.
type AdminStore struct {
	articles   *api.ArticleService
	categories *api.CategoryService
	tags       *api.TagService
	db         *storage.Store
	pageSize   int

	mu          sync.RWMutex
	posts       []Summary
	catList     []api.Category
	tagList     []api.Tag
	categoryIDs map[Category]int
	tagIDs      map[string]int
}

func NewAdminStore(services *api.Services, db *storage.Store, pageSize int) *AdminStore {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &AdminStore{
		articles:   services.Articles,
		categories: services.Categories,
		tags:       services.Tags,
		db:         db,
		pageSize:   pageSize,
	}
}

// LoadAll fetches the post list, drafts included by default.
func (s *AdminStore) LoadAll(ctx context.Context, includeDrafts bool) error {
	params := api.ListParams{Page: 1, PageSize: s.pageSize}
	if !includeDrafts {
		params.Status = "published"
	}

	page, err := s.articles.List(ctx, params)
	if err != nil {
		return err
	}

	posts := make([]Summary, 0, len(page.Results))
	for _, rec := range page.Results {
		posts = append(posts, SummaryFromIndex(rec))
	}

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()
	return nil
}

func (s *AdminStore) snapshot() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]Summary, len(s.posts))
	copy(posts, s.posts)
	return posts
}

func (s *AdminStore) Posts() []Summary { return s.snapshot() }

func (s *AdminStore) Drafts() []Summary {
	var drafts []Summary
	for _, p := range s.snapshot() {
		if p.Draft {
			drafts = append(drafts, p)
		}
	}
	return drafts
}

func (s *AdminStore) Published() []Summary {
	var published []Summary
	for _, p := range s.snapshot() {
		if !p.Draft {
			published = append(published, p)
		}
	}
	return published
}

// Filter applies the deterministic client-side pipeline to the cached
// collection.
func (s *AdminStore) Filter(f Filter) []Summary {
	return Apply(s.snapshot(), f)
}

// LoadCategories fetches the category list and rebuilds the category
// enum to backend id mapping.
func (s *AdminStore) LoadCategories(ctx context.Context) error {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return err
	}

	ids := make(map[Category]int, len(cats))
	for _, c := range cats {
		ids[ParseCategory(c.CategoryType)] = c.ID
	}

	s.mu.Lock()
	s.catList = cats
	s.categoryIDs = ids
	s.mu.Unlock()
	return nil
}

// LoadTags fetches the tag list and rebuilds the name to id mapping.
func (s *AdminStore) LoadTags(ctx context.Context) error {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return err
	}

	ids := make(map[string]int, len(tags))
	for _, t := range tags {
		ids[t.Name] = t.ID
	}

	s.mu.Lock()
	s.tagList = tags
	s.tagIDs = ids
	s.mu.Unlock()
	return nil
}

func (s *AdminStore) Categories() []api.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.Category(nil), s.catList...)
}

func (s *AdminStore) Tags() []api.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]api.Tag(nil), s.tagList...)
}

func (s *AdminStore) categoryID(c Category) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.categoryIDs[c]
	return id, ok
}

func (s *AdminStore) tagID(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tagIDs[name]
	return id, ok
}

// resolveTagIDs maps tag names to backend ids, creating missing tags
// remotely as it goes. Every failed creation is collected; if any name
// failed after all were attempted, the whole resolution fails with a
// TagError naming them. Tags already created stay created.
func (s *AdminStore) resolveTagIDs(ctx context.Context, names []string) ([]int, error) {
	if len(names) == 0 {
		return []int{}, nil
	}

	s.mu.RLock()
	loaded := s.tagIDs != nil
	s.mu.RUnlock()
	if !loaded {
		if err := s.LoadTags(ctx); err != nil {
			return nil, fmt.Errorf("loading tags: %w", err)
		}
	}

	ids := make([]int, 0, len(names))
	var failed []string
	for _, name := range names {
		if id, ok := s.tagID(name); ok {
			ids = append(ids, id)
			continue
		}

		tag, err := s.tags.Create(ctx, name)
		if err != nil {
			debuglog.Warnf("creating tag %q failed: %v", name, err)
			failed = append(failed, name)
			continue
		}
		ids = append(ids, tag.ID)

		// Reload so later names in the same batch see the new tag.
		if err := s.LoadTags(ctx); err != nil {
			debuglog.Warnf("reloading tags after create failed: %v", err)
		}
	}

	if len(failed) > 0 {
		return nil, &TagError{Failed: failed}
	}
	return ids, nil
}

// publishedAtFromDate turns a YYYY-MM-DD date into an RFC 3339 noon
// timestamp, matching how the backend expects published_at.
func publishedAtFromDate(date string) (string, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day.Add(12 * time.Hour).Format(time.RFC3339), nil
}

func statusFor(draft bool) string {
	if draft {
		return "draft"
	}
	return "published"
}

// Create saves a new post and prepends it to the cached list.
func (s *AdminStore) Create(ctx context.Context, input PostInput) (*Summary, error) {
	tagIDs, err := s.resolveTagIDs(ctx, input.Tags)
	if err != nil {
		return nil, err
	}

	draft := api.ArticleDraft{
		Title:       ptr(input.Title),
		Slug:        ptr(input.Slug),
		Description: ptr(input.Description),
		Content:     ptr(input.Content),
		TagIDs:      tagIDs,
		Locale:      ptr(string(input.Locale)),
		Status:      ptr(statusFor(input.Draft)),
		Featured:    ptr(input.Featured),
		CoverImage:  ptr(input.Image),
		Keywords:    ptr(strings.Join(input.Tags, ",")),
	}
	if input.ReadingTime > 0 {
		draft.ReadingTime = ptr(input.ReadingTime)
	}
	if id, ok := s.categoryID(input.Category); ok {
		draft.CategoryID = ptr(id)
	}
	if input.Date != "" {
		publishedAt, err := publishedAtFromDate(input.Date)
		if err != nil {
			return nil, err
		}
		draft.PublishedAt = ptr(publishedAt)
	}
	if input.Category == CategoryProjects {
		draft.Stars = ptr(input.Stars)
		draft.Forks = ptr(input.Forks)
		draft.Repo = ptr(input.Repo)
		draft.Demo = ptr(input.Demo)
		draft.TechStack = input.TechStack
	}

	created, err := s.articles.Create(ctx, draft)
	if err != nil {
		return nil, err
	}

	post := SummaryFromArticle(*created)
	s.mu.Lock()
	s.posts = append([]Summary{post}, s.posts...)
	s.mu.Unlock()
	s.invalidateCache()

	return &post, nil
}

// Update saves a partial change to an existing post and replaces it in
// the cached list.
func (s *AdminStore) Update(ctx context.Context, slug string, change PostChange) (*Summary, error) {
	var draft api.ArticleDraft

	if change.Tags != nil {
		tagIDs, err := s.resolveTagIDs(ctx, change.Tags)
		if err != nil {
			return nil, err
		}
		draft.TagIDs = tagIDs
		draft.Keywords = ptr(strings.Join(change.Tags, ","))
	}

	draft.Title = change.Title
	draft.Description = change.Description
	draft.Content = change.Content
	draft.ReadingTime = change.ReadingTime
	draft.Featured = change.Featured
	if change.Locale != nil {
		draft.Locale = ptr(string(*change.Locale))
	}
	if change.Category != nil {
		if id, ok := s.categoryID(*change.Category); ok {
			draft.CategoryID = ptr(id)
		}
	}
	if change.Image != nil {
		draft.CoverImage = change.Image
	}
	if change.Date != nil {
		publishedAt, err := publishedAtFromDate(*change.Date)
		if err != nil {
			return nil, err
		}
		draft.PublishedAt = ptr(publishedAt)
	}
	if change.Draft != nil {
		draft.Status = ptr(statusFor(*change.Draft))
	}
	if change.Category != nil && *change.Category == CategoryProjects {
		draft.Stars = change.Stars
		draft.Forks = change.Forks
		draft.Repo = change.Repo
		draft.Demo = change.Demo
		draft.TechStack = change.TechStack
	}

	updated, err := s.articles.Update(ctx, slug, draft)
	if err != nil {
		return nil, err
	}

	post := SummaryFromArticle(*updated)
	s.mu.Lock()
	for i := range s.posts {
		if s.posts[i].Slug == slug {
			s.posts[i] = post
			break
		}
	}
	s.mu.Unlock()
	s.invalidateCache()

	return &post, nil
}

// Delete removes a post remotely, then drops it from the cached list.
func (s *AdminStore) Delete(ctx context.Context, slug string) error {
	if err := s.articles.Delete(ctx, slug); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.posts {
		if s.posts[i].Slug == slug {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.invalidateCache()
	return nil
}

// PostBySlug fetches the full record for editing.
func (s *AdminStore) PostBySlug(ctx context.Context, slug string) (*Summary, error) {
	article, err := s.articles.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	post := SummaryFromArticle(*article)
	return &post, nil
}

func (s *AdminStore) invalidateCache() {
	if err := s.db.ClearContentCache(); err != nil {
		debuglog.Warnf("invalidating offline cache failed: %v", err)
	}
}

func ptr[T any](v T) *T { return &v }
