package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanobanana/nanoblog/internal/api"
	"github.com/nanobanana/nanoblog/internal/storage"
)

// adminBackend is a minimal in-memory stand-in for the article and tag
// endpoints, enough to drive the admin flows.
type adminBackend struct {
	mu       sync.Mutex
	tags     []api.Tag
	nextTag  int
	failTags map[string]bool

	created []api.ArticleDraft
	updated []api.ArticleDraft
	deleted []string
}

func newAdminBackend(tags ...api.Tag) *adminBackend {
	next := 1
	for _, t := range tags {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return &adminBackend{tags: tags, nextTag: next, failTags: map[string]bool{}}
}

func (b *adminBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/tags/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			envelope(w, b.tags)
		case http.MethodPost:
			var body struct {
				Name string `json:"name"`
				Slug string `json:"slug"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			if b.failTags[body.Name] {
				http.Error(w, `{"message":"tag rejected"}`, http.StatusBadRequest)
				return
			}
			tag := api.Tag{ID: b.nextTag, Name: body.Name, Slug: body.Slug}
			b.nextTag++
			b.tags = append(b.tags, tag)
			envelope(w, tag)
		}
	})

	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []api.Category{
			{ID: 1, Slug: "blog", Name: "Blog", CategoryType: "blog"},
			{ID: 2, Slug: "projects", Name: "Projects", CategoryType: "projects"},
		})
	})

	mux.HandleFunc("/articles/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			envelope(w, api.Page[api.IndexRecord]{Results: testRecords(), Count: 3})
		case http.MethodPost:
			var draft api.ArticleDraft
			json.NewDecoder(r.Body).Decode(&draft)
			b.created = append(b.created, draft)
			envelope(w, api.Article{
				Slug: deref(draft.Slug), Title: deref(draft.Title),
				CategoryType: "blog", Status: deref(draft.Status),
			})
		case http.MethodPut:
			var draft api.ArticleDraft
			json.NewDecoder(r.Body).Decode(&draft)
			b.updated = append(b.updated, draft)
			envelope(w, api.Article{
				Slug: "go-generics", Title: deref(draft.Title),
				CategoryType: "blog", Status: "published",
			})
		case http.MethodDelete:
			b.deleted = append(b.deleted, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}
	})

	return mux
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func newAdminStore(t *testing.T, backend *adminBackend) (*AdminStore, *storage.Store) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	db := newTestDB(t)
	client := api.NewClient(api.ClientOptions{BaseURL: server.URL, Tokens: db})
	return NewAdminStore(api.NewServices(client), db, 100), db
}

func TestAdminLoadAllIncludesDrafts(t *testing.T) {
	store, _ := newAdminStore(t, newAdminBackend())
	require.NoError(t, store.LoadAll(context.Background(), true))
	assert.Len(t, store.Posts(), 3)
	assert.Len(t, store.Published(), 3)
	assert.Empty(t, store.Drafts())
}

func TestResolveTagIDsCreatesMissing(t *testing.T) {
	backend := newAdminBackend(api.Tag{ID: 1, Name: "go", Slug: "go"})
	store, _ := newAdminStore(t, backend)
	require.NoError(t, store.LoadTags(context.Background()))

	ids, err := store.resolveTagIDs(context.Background(), []string{"go", "tui"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids, "existing id first, freshly minted id second")

	// The new tag survives in the reloaded mapping.
	id, ok := store.tagID("tui")
	assert.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestResolveTagIDsAggregatesFailures(t *testing.T) {
	backend := newAdminBackend(api.Tag{ID: 1, Name: "go", Slug: "go"})
	backend.failTags["bad one"] = true
	backend.failTags["bad two"] = true
	store, _ := newAdminStore(t, backend)
	require.NoError(t, store.LoadTags(context.Background()))

	_, err := store.resolveTagIDs(context.Background(), []string{"go", "bad one", "fresh", "bad two"})

	var tagErr *TagError
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, []string{"bad one", "bad two"}, tagErr.Failed,
		"every failed name is collected, not just the first")

	// The creation that succeeded mid-batch is not rolled back.
	id, ok := store.tagID("fresh")
	assert.True(t, ok)
	assert.Equal(t, 2, id)
}

func TestAdminCreate(t *testing.T) {
	backend := newAdminBackend(api.Tag{ID: 1, Name: "go", Slug: "go"})
	store, db := newAdminStore(t, backend)
	ctx := context.Background()
	require.NoError(t, store.LoadAll(ctx, true))
	require.NoError(t, store.LoadCategories(ctx))
	require.NoError(t, store.LoadTags(ctx))
	require.NoError(t, db.SaveContentCache(store.Posts()))

	post, err := store.Create(ctx, PostInput{
		Slug:     "new-post",
		Title:    "New Post",
		Date:     "2025-08-30",
		Tags:     []string{"go", "tui"},
		Category: CategoryBlog,
		Locale:   LocaleEN,
		Draft:    true,
	})
	require.NoError(t, err)

	require.Len(t, backend.created, 1)
	sent := backend.created[0]
	assert.Equal(t, []int{1, 2}, sent.TagIDs)
	assert.Equal(t, 1, *sent.CategoryID)
	assert.Equal(t, "draft", *sent.Status)
	require.NotNil(t, sent.PublishedAt)
	assert.Contains(t, *sent.PublishedAt, "2025-08-30T12:00:00")

	posts := store.Posts()
	require.Len(t, posts, 4)
	assert.Equal(t, post.Slug, posts[0].Slug, "new posts are prepended")

	var cached []Summary
	assert.ErrorIs(t, db.LoadContentCache(&cached), storage.ErrNoCache,
		"a successful save invalidates the offline cache")
}

func TestAdminCreateAbortsOnTagFailure(t *testing.T) {
	backend := newAdminBackend()
	backend.failTags["nope"] = true
	store, _ := newAdminStore(t, backend)
	ctx := context.Background()
	require.NoError(t, store.LoadAll(ctx, true))
	require.NoError(t, store.LoadTags(ctx))

	_, err := store.Create(ctx, PostInput{Slug: "x", Title: "X", Tags: []string{"nope"}})

	var tagErr *TagError
	require.ErrorAs(t, err, &tagErr)
	assert.Empty(t, backend.created, "the article is never sent when tags fail")
	assert.Len(t, store.Posts(), 3, "the cached list is untouched")
}

func TestAdminUpdateReplacesInPlace(t *testing.T) {
	backend := newAdminBackend()
	store, _ := newAdminStore(t, backend)
	ctx := context.Background()
	require.NoError(t, store.LoadAll(ctx, true))

	title := "Go Generics, Revisited"
	post, err := store.Update(ctx, "go-generics", PostChange{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, post.Title)

	require.Len(t, backend.updated, 1)
	sent := backend.updated[0]
	assert.Nil(t, sent.Content, "untouched fields are not sent")
	assert.Nil(t, sent.Status)
	assert.Nil(t, sent.TagIDs, "a nil tag list leaves tags alone")

	posts := store.Posts()
	require.Len(t, posts, 3)
	assert.Equal(t, title, posts[0].Title, "the entry is replaced, not moved")
}

func TestAdminDelete(t *testing.T) {
	backend := newAdminBackend()
	store, _ := newAdminStore(t, backend)
	ctx := context.Background()
	require.NoError(t, store.LoadAll(ctx, true))

	require.NoError(t, store.Delete(ctx, "kyoto-trip"))
	assert.Equal(t, []string{"/articles/kyoto-trip/"}, backend.deleted)
	assert.Equal(t, []string{"go-generics", "nanoblog-cli"}, slugs(store.Posts()))
}

func TestTagErrorMessage(t *testing.T) {
	err := &TagError{Failed: []string{"a", "b"}}
	assert.Equal(t, "creating tags failed: a, b", err.Error())
	assert.False(t, errors.Is(err, context.Canceled))
}
