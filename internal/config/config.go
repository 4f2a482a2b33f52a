package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/libractl/internal/util"
)

// DefaultBaseURL is used when no gateway URL is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "libractl", "config.yml")
}

// Path returns the config file in use: LIBRACTL_CONFIG or the default.
func Path() string {
	if p := os.Getenv("LIBRACTL_CONFIG"); p != "" {
		return ExpandHome(p)
	}
	return DefaultPath()
}

// Load reads the config from .env, the environment and disk, in that order
// of precedence. A missing file yields the defaults.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.per_page", 10)
	v.SetDefault("session.path", defaultSessionPath())
	v.SetDefault("ui.toast_seconds", 3)
	v.SetDefault("ui.page_window", 0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", defaultLogFile())

	v.SetEnvPrefix("LIBRACTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// LIBRACTL_API_URL is the short form kept in .env files.
	_ = v.BindEnv("api.base_url", "LIBRACTL_API_BASE_URL", "LIBRACTL_API_URL")

	v.SetConfigFile(Path())
	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine; defaults and env still apply.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if os.Getenv("LIBRACTL_DEBUG") == "1" {
		cfg.Log.Level = "debug"
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.Session.Path = ExpandHome(cfg.Session.Path)
	cfg.Log.File = ExpandHome(cfg.Log.File)

	return &cfg, nil
}

// Save writes the config to Path().
func Save(cfg *Config) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return util.WriteFileAtomic(Path(), buf.Bytes(), 0644, 0755)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// loadDotEnv exports the variables of a .env file without overriding ones
// already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func defaultSessionPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "libractl", "session.yml")
}

func defaultLogFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "libractl", "libractl.log")
}
