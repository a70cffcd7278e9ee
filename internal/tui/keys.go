package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nanobanana/nanoblog/internal/content"
)

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.view {
	case ViewPosts:
		return a.handlePostsKey(msg)
	case ViewReader:
		return a.handleReaderKey(msg)
	case ViewSearch:
		return a.handleSearchKey(msg)
	}
	return a, nil
}

func (a *App) handlePostsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list's fuzzy filter is open every key belongs to it.
	if a.postList.FilterState() == list.Filtering {
		newList, cmd := a.postList.Update(msg)
		a.postList = newList
		return a, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "/":
		a.view = ViewSearch
		a.searchInput.Focus()
		a.status = ""
		return a, nil

	case "c":
		a.categoryIdx = (a.categoryIdx + 1) % len(categoryCycle)
		a.category = categoryCycle[a.categoryIdx]
		a.refreshPostList()
		return a, nil

	case "L":
		switch a.locale {
		case "":
			a.locale = content.LocaleZH
		case content.LocaleZH:
			a.locale = content.LocaleEN
		default:
			a.locale = ""
		}
		a.refreshPostList()
		return a, nil

	case "f":
		a.featuredOnly = !a.featuredOnly
		a.refreshPostList()
		return a, nil

	case "t":
		return a, a.toggleTheme()

	case "r":
		a.status = MsgLoading
		return a, a.loadPosts()

	case "enter":
		item, ok := a.postList.SelectedItem().(postItem)
		if !ok {
			return a, nil
		}
		a.view = ViewReader
		a.cameFromSearch = false
		a.loadingPost = true
		a.status = ""
		return a, a.openPost(item.post)
	}

	newList, cmd := a.postList.Update(msg)
	a.postList = newList
	return a, cmd
}

func (a *App) handleReaderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		a.currentPost = nil
		if a.cameFromSearch {
			a.view = ViewSearch
		} else {
			a.view = ViewPosts
			a.refreshPostList()
		}
		return a, nil

	case "ctrl+c":
		return a, tea.Quit
	}

	newViewport, cmd := a.viewport.Update(msg)
	a.viewport = newViewport
	return a, cmd
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.view = ViewPosts
		a.searchInput.Blur()
		a.searchInput.SetValue("")
		a.session.SetQuery("")
		a.searchList.SetItems(nil)
		a.refreshPostList()
		return a, nil
	}

	if a.searchInput.Focused() {
		switch msg.String() {
		case "enter":
			query := a.searchInput.Value()
			if query == "" {
				return a, nil
			}
			a.status = MsgSearching
			return a, a.runSearch(query)

		case "tab", "down":
			if len(a.searchList.Items()) > 0 {
				a.searchInput.Blur()
			}
			return a, nil
		}

		newInput, cmd := a.searchInput.Update(msg)
		a.searchInput = newInput
		return a, cmd
	}

	switch msg.String() {
	case "tab", "up":
		if a.searchList.Index() == 0 || msg.String() == "tab" {
			a.searchInput.Focus()
			return a, nil
		}

	case "enter":
		item, ok := a.searchList.SelectedItem().(postItem)
		if !ok {
			return a, nil
		}
		a.view = ViewReader
		a.cameFromSearch = true
		a.loadingPost = true
		return a, a.openPost(item.post)
	}

	newList, cmd := a.searchList.Update(msg)
	a.searchList = newList
	return a, cmd
}
