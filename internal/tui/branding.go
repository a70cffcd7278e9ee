package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nanobanana/nanoblog/internal/theme"
)

const AppName = "nanoblog"

var LogoLines = []string{
	"▄▄ ▄▄   ▄▄▄  ▄▄ ▄▄   ▄▄▄",
	"██▀██  ▀▄▄██ ██▀██  ██▀██",
	"██ ██  ██▄██ ██ ██  ██▄█▀ blog",
}

const CompactLogo = `nanoblog ›`

// Styles bundles every lipgloss style the views use, resolved from the
// active theme palette so switching themes restyles the whole app.
type Styles struct {
	Colors theme.Colors

	Logo      lipgloss.Style
	Title     lipgloss.Style
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Muted     lipgloss.Style
	Time      lipgloss.Style
	Featured  lipgloss.Style
	Draft     lipgloss.Style
	Tag       lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Separator lipgloss.Style
}

func NewStyles(colors theme.Colors) Styles {
	return Styles{
		Colors: colors,

		Logo:      lipgloss.NewStyle().Foreground(colors.Primary).Bold(true),
		Title:     lipgloss.NewStyle().Foreground(colors.Text).Bold(true).Padding(0, 2),
		Header:    lipgloss.NewStyle().Foreground(colors.Accent).Bold(true),
		StatusBar: lipgloss.NewStyle().Foreground(colors.Muted).Padding(0, 1),
		Help:      lipgloss.NewStyle().Foreground(colors.Muted).Italic(true),
		Muted:     lipgloss.NewStyle().Foreground(colors.Muted),
		Time:      lipgloss.NewStyle().Foreground(colors.Muted).Faint(true),
		Featured:  lipgloss.NewStyle().Foreground(colors.Accent).Bold(true),
		Draft:     lipgloss.NewStyle().Foreground(colors.Muted).Italic(true),
		Tag:       lipgloss.NewStyle().Foreground(colors.Primary),
		Error:     lipgloss.NewStyle().Foreground(colors.Error).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(colors.Success),
		Separator: lipgloss.NewStyle().Foreground(colors.Border),
	}
}

func (s Styles) WelcomeMessage() string {
	return s.CompactBanner("Press r to load posts, / to search")
}

func (s Styles) CompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, s.Logo.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		s.Help.Render(message),
	)
}

// ShowBanner prints the startup banner outside the TUI, for CLI runs.
func ShowBanner(version string) {
	styles := NewStyles(mustDefaultColors())

	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	tagline := "terminal blog client"
	if version != "" && version != "dev" {
		if version[0] != 'v' && version[0] != 'V' {
			version = "v" + version
		}
		tagline += " " + version
	}
	lines = append(lines, tagline)

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}
		style := styles.Logo
		if i >= len(LogoLines) {
			style = styles.Muted
		}
		coloredLines = append(coloredLines, style.Render(line))
	}

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	fmt.Println(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Colors.Border).
		Padding(1, 3).
		MarginTop(1).
		Render(banner))
}

func mustDefaultColors() theme.Colors {
	return theme.Palette{
		Primary: "#7C3AED", Accent: "#F59E0B", Text: "#E5E7EB",
		Muted: "#6B7280", Background: "#111827", Border: "#374151",
		Error: "#EF4444", Success: "#10B981",
	}.Colors()
}
