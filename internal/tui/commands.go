package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nanobanana/nanoblog/internal/content"
)

const commandTimeout = 30 * time.Second

func (a *App) loadPosts() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		if err := a.store.LoadAll(ctx); err != nil {
			return errorMsg{err: wrapErr("loading posts", err)}
		}
		return postsLoadedMsg{}
	}
}

func (a *App) openPost(post content.Summary) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		full, err := a.store.PostBySlug(ctx, post.Slug)
		if err != nil {
			// The summary is enough to show something when the detail
			// fetch fails.
			full = &post
		}
		a.store.IncrementViews(post.Slug)

		r, rendererErr := a.getRenderer()
		if rendererErr != nil {
			return postRenderedMsg{post: full, content: "Error initializing renderer: " + rendererErr.Error()}
		}

		rendered, renderErr := r.Render(composeMarkdown(*full))
		if renderErr != nil {
			return postRenderedMsg{
				post:    full,
				content: fmt.Sprintf("# Error\n\nFailed to render post: %s\n\nPress Escape to go back.", renderErr.Error()),
			}
		}

		return postRenderedMsg{post: full, content: rendered}
	}
}

// composeMarkdown builds the reader document: metadata header then the
// article body (or the description when no body was fetched).
func composeMarkdown(post content.Summary) string {
	var doc strings.Builder
	doc.WriteString(fmt.Sprintf("# %s\n\n", post.Title))

	var meta []string
	if !post.Date.IsZero() {
		meta = append(meta, post.Date.Format("Jan 2, 2006"))
	}
	if post.Author != "" {
		meta = append(meta, "by "+post.Author)
	}
	if post.ReadingTime > 0 {
		meta = append(meta, fmt.Sprintf("%d min read", post.ReadingTime))
	}
	if len(meta) > 0 {
		doc.WriteString("*" + strings.Join(meta, " · ") + "*\n\n")
	}

	if len(post.Tags) > 0 {
		doc.WriteString("`" + strings.Join(post.Tags, "` `") + "`\n\n")
	}

	if post.Category == content.CategoryProjects && post.Repo != "" {
		doc.WriteString(fmt.Sprintf("[Repository](%s)", post.Repo))
		if post.Demo != "" {
			doc.WriteString(fmt.Sprintf(" · [Demo](%s)", post.Demo))
		}
		doc.WriteString(fmt.Sprintf(" · ★ %d · ⑂ %d\n\n", post.Stars, post.Forks))
	}

	doc.WriteString("---\n\n")

	if post.Content != "" {
		doc.WriteString(post.Content)
	} else {
		doc.WriteString(post.Description)
	}
	return doc.String()
}

func (a *App) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		a.session.SetQuery(query)
		return searchDoneMsg{result: a.session.Run(ctx)}
	}
}

func (a *App) toggleTheme() tea.Cmd {
	return func() tea.Msg {
		name, err := a.themes.Toggle()
		if err != nil {
			return errorMsg{err: wrapErr("switching theme", err)}
		}
		return themeChangedMsg{name: name}
	}
}

type postsLoadedMsg struct{}

type postRenderedMsg struct {
	post    *content.Summary
	content string
}

type searchDoneMsg struct {
	result content.Result
}

type themeChangedMsg struct {
	name string
}

type errorMsg struct {
	err error
}
