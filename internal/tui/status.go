package tui

import "fmt"

// Canonical short status messages used across the app.
const (
	MsgLoading     = "Loading posts…"
	MsgLoadingPost = "Loading post…"
	MsgSearching   = "Searching…"
	MsgNoResults   = "No results"
	MsgOffline     = "Offline — showing cached posts"
)

func MsgResultsCount(n int, fallback bool) string {
	var base string
	if n == 1 {
		base = "1 result"
	} else {
		base = fmt.Sprintf("%d results", n)
	}
	if fallback {
		base += " (local filter)"
	}
	return base
}

func MsgThemeChanged(name string) string {
	return fmt.Sprintf("Theme: %s", name)
}

func MsgPostCount(n int, category string) string {
	if category == "" {
		return fmt.Sprintf("%d posts", n)
	}
	return fmt.Sprintf("%d posts in %s", n, category)
}
