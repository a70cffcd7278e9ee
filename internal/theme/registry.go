package theme

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"

	"github.com/nanobanana/nanoblog/internal/storage"
)

//go:embed themes.toml
var themesTOML []byte

const DefaultName = "dark"

// Palette is one named color scheme.
type Palette struct {
	Description string `toml:"description"`
	Primary     string `toml:"primary"`
	Accent      string `toml:"accent"`
	Text        string `toml:"text"`
	Muted       string `toml:"muted"`
	Background  string `toml:"background"`
	Border      string `toml:"border"`
	Error       string `toml:"error"`
	Success     string `toml:"success"`
}

// Colors resolves the palette into lipgloss colors for the TUI.
type Colors struct {
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Border     lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
}

func (p Palette) Colors() Colors {
	return Colors{
		Primary:    lipgloss.Color(p.Primary),
		Accent:     lipgloss.Color(p.Accent),
		Text:       lipgloss.Color(p.Text),
		Muted:      lipgloss.Color(p.Muted),
		Background: lipgloss.Color(p.Background),
		Border:     lipgloss.Color(p.Border),
		Error:      lipgloss.Color(p.Error),
		Success:    lipgloss.Color(p.Success),
	}
}

type themesFile struct {
	Themes map[string]Palette `toml:"themes"`
}

// Registry holds the built-in palettes merged with any user-defined
// ones, and remembers the active selection through the durable store.
type Registry struct {
	themes map[string]Palette
	db     *storage.Store
}

// NewRegistry parses the embedded palettes and merges user overrides
// from the config directory.
func NewRegistry(db *storage.Store) (*Registry, error) {
	var file themesFile
	if err := toml.Unmarshal(themesTOML, &file); err != nil {
		return nil, fmt.Errorf("parsing themes.toml: %w", err)
	}

	r := &Registry{themes: file.Themes, db: db}
	r.loadUserThemes()
	return r, nil
}

func (r *Registry) loadUserThemes() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	data, err := os.ReadFile(filepath.Join(home, ".config", "nanoblog", "themes.toml"))
	if err != nil {
		return
	}

	var file themesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return
	}
	for name, palette := range file.Themes {
		r.themes[name] = palette
	}
}

// Names lists the known palette names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Palette looks a palette up by name.
func (r *Registry) Palette(name string) (Palette, bool) {
	p, ok := r.themes[name]
	return p, ok
}

// Active returns the persisted selection, falling back to the default
// when nothing is stored or the stored name is unknown.
func (r *Registry) Active() (string, Palette) {
	name, err := r.db.Theme()
	if err == nil {
		if p, ok := r.themes[name]; ok {
			return name, p
		}
	}
	return DefaultName, r.themes[DefaultName]
}

// SetActive persists the selection. Unknown names are rejected.
func (r *Registry) SetActive(name string) error {
	if _, ok := r.themes[name]; !ok {
		return fmt.Errorf("unknown theme %q", name)
	}
	return r.db.SetTheme(name)
}

// Toggle flips between the two built-in palettes and persists the
// result.
func (r *Registry) Toggle() (string, error) {
	active, _ := r.Active()
	next := "light"
	if active == "light" {
		next = "dark"
	}
	return next, r.SetActive(next)
}
