package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/nanobanana/nanoblog/internal/validation"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	AI       AIConfig       `mapstructure:"ai"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig points the client at the blog backend.
type ServerConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	PageSize  int           `mapstructure:"page_size"`
	UserAgent string        `mapstructure:"user_agent"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type SearchConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// AIConfig configures the blog assistant. The API key is read from the
// NANOBLOG_AI_API_KEY environment variable when not set here.
type AIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	APIKey    string `mapstructure:"api_key"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type UIConfig struct {
	Theme                string `mapstructure:"theme"`
	MaxDescriptionLength int    `mapstructure:"max_description_length"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".nanoblog.db")

	return &Config{
		Server: ServerConfig{
			BaseURL:   "http://localhost:8000/api",
			Timeout:   30 * time.Second,
			PageSize:  100,
			UserAgent: "nanoblog/1.0 (terminal client; github.com/nanobanana/nanoblog)",
		},
		Database: DatabaseConfig{
			Path: dbPath,
		},
		Search: SearchConfig{
			PageSize: 100,
		},
		AI: AIConfig{
			BaseURL:   "https://api.openai.com/v1",
			Model:     "gpt-4o-mini",
			MaxTokens: 1024,
		},
		UI: UIConfig{
			Theme:                "dark",
			MaxDescriptionLength: 150,
		},
		Log: LogConfig{
			Level: "off",
		},
	}
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	cfg := defaultConfig()
	v.SetDefault("server", cfg.Server)
	v.SetDefault("database", cfg.Database)
	v.SetDefault("search", cfg.Search)
	v.SetDefault("ai", cfg.AI)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("log", cfg.Log)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "nanoblog")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NANOBLOG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	baseURL, err := validation.NormalizeBaseURL(config.Server.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("server.base_url: %w", err)
	}
	config.Server.BaseURL = baseURL

	if config.AI.APIKey == "" {
		config.AI.APIKey = os.Getenv("NANOBLOG_AI_API_KEY")
	}

	return &config, nil
}

// expandPath expands ~ to the home directory and makes the path absolute.
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations are written as strings for TOML readability.
	serverCfg := map[string]interface{}{
		"base_url":   config.Server.BaseURL,
		"timeout":    config.Server.Timeout.String(),
		"page_size":  config.Server.PageSize,
		"user_agent": config.Server.UserAgent,
	}

	v.Set("server", serverCfg)
	v.Set("database", config.Database)
	v.Set("search", config.Search)
	v.Set("ai", config.AI)
	v.Set("ui", config.UI)
	v.Set("log", config.Log)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
