package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nanobanana/nanoblog/internal/api"
	"github.com/nanobanana/nanoblog/internal/config"
	"github.com/nanobanana/nanoblog/internal/content"
	"github.com/nanobanana/nanoblog/internal/debuglog"
	"github.com/nanobanana/nanoblog/internal/search"
	"github.com/nanobanana/nanoblog/internal/storage"
	"github.com/nanobanana/nanoblog/internal/theme"
	"github.com/nanobanana/nanoblog/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	flagConfig string
	flagDB     string
	flagQuiet  bool
)

// appEnv holds everything a command needs: the loaded config and the
// wired client/store/session stack backed by the bolt database.
type appEnv struct {
	cfg      *config.Config
	db       *storage.Store
	services *api.Services
	store    *content.Store
	session  *search.Session
	themes   *theme.Registry
}

func (e *appEnv) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = debuglog.Close()
}

func setup() (*appEnv, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// Database path from the flag wins over the config file.
	if flagDB != "" {
		cfg.Database.Path = flagDB
	}
	if len(cfg.Database.Path) >= 2 && cfg.Database.Path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		cfg.Database.Path = filepath.Join(home, cfg.Database.Path[2:])
	}

	if err := debuglog.Setup(debuglog.ParseLevel(cfg.Log.Level), cfg.Log.Path); err != nil {
		log.Printf("debug log unavailable: %v", err)
	}

	db, err := storage.NewStore(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	client := api.NewClient(api.ClientOptions{
		BaseURL:   cfg.Server.BaseURL,
		Timeout:   cfg.Server.Timeout,
		UserAgent: cfg.Server.UserAgent,
		Tokens:    db,
	})
	services := api.NewServices(client)
	store := content.NewStore(services, db, cfg.Server.PageSize)

	themes, err := theme.NewRegistry(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading themes: %w", err)
	}

	return &appEnv{
		cfg:      cfg,
		db:       db,
		services: services,
		store:    store,
		session:  search.NewSession(store, db),
		themes:   themes,
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nanoblog",
		Short:         "Terminal client for the nanoblog",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.Close()

			if !flagQuiet {
				tui.ShowBanner(Version)
			}

			app := tui.NewApp(env.store, env.session, env.themes)
			p := tea.NewProgram(app, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration file")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "Path to database file (overrides config)")
	root.Flags().BoolVar(&flagQuiet, "quiet", false, "Skip startup banner")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newListCmd(),
		newReadCmd(),
		newSearchCmd(),
		newStatsCmd(),
		newChatCmd(),
		newGenerateConfigCmd(),
	)

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newGenerateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-config",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flagConfig
			if path == "" {
				home, _ := os.UserHomeDir()
				path = filepath.Join(home, ".config", "nanoblog", "config.toml")
			}
			if err := config.GenerateDefaultConfig(path); err != nil {
				return fmt.Errorf("generating config: %w", err)
			}
			fmt.Printf("Generated default configuration at: %s\n", path)
			return nil
		},
	}
}
