package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/nanobanana/nanoblog/internal/content"
	"github.com/nanobanana/nanoblog/internal/search"
	"github.com/nanobanana/nanoblog/internal/theme"
)

// categoryCycle is the order the category filter steps through; the
// empty entry means "all categories".
var categoryCycle = []content.Category{
	"",
	content.CategoryBlog,
	content.CategoryProjects,
	content.CategoryLife,
	content.CategoryNotes,
}

type App struct {
	store   *content.Store
	session *search.Session
	themes  *theme.Registry
	styles  Styles

	postList    list.Model
	searchList  list.Model
	searchInput textinput.Model
	viewport    viewport.Model

	view         View
	category     content.Category
	categoryIdx  int
	locale       content.Locale
	featuredOnly bool

	currentPost    *content.Summary
	results        content.Result
	cameFromSearch bool

	width  int
	height int
	status string
	err    error

	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	loadingPost     bool
	loaded          bool
}

func NewApp(store *content.Store, session *search.Session, themes *theme.Registry) *App {
	_, palette := themes.Active()
	styles := NewStyles(palette.Colors())

	postList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	postList.Title = "› posts"
	postList.SetShowStatusBar(false)
	postList.SetFilteringEnabled(true)
	postList.SetShowHelp(true)

	searchList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	searchList.Title = "› search results"
	searchList.SetShowStatusBar(false)
	searchList.SetShowHelp(false)
	searchList.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "Search posts..."

	return &App{
		store:       store,
		session:     session,
		themes:      themes,
		styles:      styles,
		postList:    postList,
		searchList:  searchList,
		searchInput: si,
		viewport:    viewport.New(0, 0),
		view:        ViewPosts,
		status:      MsgLoading,
	}
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wrap := (a.width * 9) / 10
	if wrap > 120 {
		wrap = 120
	}
	if wrap < 40 {
		wrap = 40
	}
	if a.width > 0 && a.width < 50 {
		wrap = a.width - 4
		if wrap < 20 {
			wrap = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wrap) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wrap
	}
	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.loadPosts(),
		tea.EnterAltScreen,
	)
}

// currentFilter is the posts-view filter: drafts never show here.
func (a *App) currentFilter() content.Filter {
	return content.Filter{
		Category: a.category,
		Locale:   a.locale,
		Featured: a.featuredOnly,
		Draft:    content.ExcludeDrafts(),
	}
}

func (a *App) refreshPostList() {
	posts := a.store.Filter(a.currentFilter())
	items := make([]list.Item, len(posts))
	for i, p := range posts {
		items[i] = postItem{post: p, styles: a.styles}
	}
	a.postList.SetItems(items)
	a.postList.Title = a.listTitle()
	a.status = MsgPostCount(len(posts), string(a.category))
}

func (a *App) listTitle() string {
	title := "› posts"
	if a.category != "" {
		title = "› " + string(a.category)
	}
	if a.featuredOnly {
		title += " ★"
	}
	if a.locale != "" {
		title += " [" + string(a.locale) + "]"
	}
	return title
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.postList.SetSize(msg.Width, msg.Height-3)
		searchListHeight := msg.Height - 10
		if searchListHeight < 5 {
			searchListHeight = 5
		}
		a.searchList.SetSize(msg.Width, searchListHeight)
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 3

	case tea.KeyMsg:
		return a.handleKey(msg)

	case postsLoadedMsg:
		a.loaded = true
		a.err = nil
		a.refreshPostList()
		if a.store.Offline() {
			a.status = MsgOffline
		}

	case postRenderedMsg:
		if a.view == ViewReader {
			a.currentPost = msg.post
			a.viewport.SetContent(msg.content)
			a.viewport.GotoTop()
			a.loadingPost = false
		}

	case searchDoneMsg:
		if a.view == ViewSearch {
			a.results = msg.result
			items := make([]list.Item, len(msg.result.Posts))
			for i, p := range msg.result.Posts {
				items[i] = postItem{post: p, styles: a.styles}
			}
			a.searchList.SetItems(items)
			a.status = MsgResultsCount(msg.result.Total, msg.result.Fallback)
		}

	case themeChangedMsg:
		_, palette := a.themes.Active()
		a.styles = NewStyles(palette.Colors())
		a.status = MsgThemeChanged(msg.name)
		a.refreshPostList()

	case errorMsg:
		a.err = msg.err
	}

	switch a.view {
	case ViewPosts:
		newList, cmd := a.postList.Update(msg)
		a.postList = newList
		cmds = append(cmds, cmd)
	case ViewReader:
		switch msg.(type) {
		case tea.KeyMsg, tea.WindowSizeMsg, tea.MouseMsg:
			newViewport, cmd := a.viewport.Update(msg)
			a.viewport = newViewport
			cmds = append(cmds, cmd)
		}
	case ViewSearch:
		newInput, cmd := a.searchInput.Update(msg)
		a.searchInput = newInput
		cmds = append(cmds, cmd)

		newList, listCmd := a.searchList.Update(msg)
		a.searchList = newList
		cmds = append(cmds, listCmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) View() string {
	var body string

	switch a.view {
	case ViewPosts:
		if !a.loaded {
			body = lipgloss.NewStyle().
				Width(a.width).
				Height(a.height-3).
				Align(lipgloss.Center, lipgloss.Center).
				Render(a.styles.WelcomeMessage())
		} else {
			body = a.postList.View()
		}

	case ViewReader:
		if a.loadingPost {
			body = lipgloss.NewStyle().
				Width(a.width).
				Height(a.height-3).
				Align(lipgloss.Center, lipgloss.Center).
				Render(a.styles.Muted.Render(MsgLoadingPost))
		} else {
			body = a.viewport.View()
		}

	case ViewSearch:
		body = a.searchView()
	}

	status := a.statusBar()
	if status == "" {
		return body
	}

	sepWidth := a.width - 2
	if sepWidth < 0 {
		sepWidth = 0
	}
	separator := a.styles.Separator.Render(strings.Repeat("─", sepWidth+1))
	return lipgloss.JoinVertical(lipgloss.Top, body, separator, status)
}

func (a *App) searchView() string {
	inputWidth := a.width - 8
	if inputWidth < 10 {
		inputWidth = a.width - 4
	}
	a.searchInput.Width = inputWidth

	borderColor := a.styles.Colors.Muted
	if a.searchInput.Focused() {
		borderColor = a.styles.Colors.Accent
	}

	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(inputWidth + 4).
		Render(a.searchInput.View())

	var hint string
	switch {
	case a.searchInput.Focused() && a.searchInput.Value() == "":
		hint = a.historyHint()
	case a.searchInput.Focused():
		hint = "Enter: search • Tab/↓: results • Esc: back"
	case len(a.searchList.Items()) > 0:
		hint = "↑↓: navigate • Enter: open • Tab/↑: search box • Esc: back"
	default:
		hint = MsgNoResults + " • Tab/↑: search box • Esc: back"
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height - 3).
		MaxHeight(a.height - 3).
		Render(lipgloss.JoinVertical(
			lipgloss.Top,
			a.styles.Header.Render("› search"),
			"",
			input,
			a.styles.Muted.Render(hint),
			"",
			a.searchList.View(),
		))
}

// historyHint offers the recent queries, or popular starting points
// when the history is empty.
func (a *App) historyHint() string {
	recent := a.session.Recent(5)
	if len(recent) > 0 {
		return "Recent: " + strings.Join(recent, " • ")
	}
	if popular := a.session.Popular(); len(popular) > 0 {
		return "Try: " + strings.Join(popular, " • ")
	}
	return "Type to search"
}

func (a *App) statusBar() string {
	if a.err != nil {
		return a.styles.StatusBar.Width(a.width).Render(
			a.styles.Error.Render(fmt.Sprintf("✗ %v", a.err)))
	}
	if a.status == "" {
		return ""
	}
	return a.styles.StatusBar.Width(a.width).Render(a.status)
}

// postItem renders one summary in a bubbles list.
type postItem struct {
	post   content.Summary
	styles Styles
}

func (i postItem) Title() string {
	title := i.post.Title
	if i.post.Featured {
		title = "★ " + title
	}
	if i.post.Draft {
		return i.styles.Draft.Render(title + " (draft)")
	}
	return title
}

func (i postItem) Description() string {
	desc := truncateEnd(i.post.Description, 80)

	var parts []string
	if desc != "" {
		parts = append(parts, desc)
	}
	if !i.post.Date.IsZero() {
		parts = append(parts, i.post.Date.Format("Jan 2, 2006"))
	}
	if len(i.post.Tags) > 0 {
		parts = append(parts, strings.Join(i.post.Tags, ", "))
	}

	return i.styles.Muted.Render(strings.Join(parts, " • "))
}

func (i postItem) FilterValue() string { return i.post.Title }
