package config

import "time"

// Config is the top-level libractl configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// APIConfig holds gateway connection settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
	PerPage int           `mapstructure:"per_page" yaml:"per_page"`
}

// SessionConfig says where the signed-in session is kept.
type SessionConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// UIConfig holds interactive-mode settings.
type UIConfig struct {
	ToastSeconds int `mapstructure:"toast_seconds" yaml:"toast_seconds"`
	// PageWindow limits how many page numbers the pager shows. 0 shows all.
	PageWindow int `mapstructure:"page_window" yaml:"page_window"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// EffectivePerPage returns the configured page size or 10.
func (a APIConfig) EffectivePerPage() int {
	if a.PerPage > 0 {
		return a.PerPage
	}
	return 10
}

// EffectiveTimeout returns the configured request timeout or 30s.
func (a APIConfig) EffectiveTimeout() time.Duration {
	if a.Timeout > 0 {
		return a.Timeout
	}
	return 30 * time.Second
}

// ToastDuration is how long a notification stays on screen.
func (u UIConfig) ToastDuration() time.Duration {
	if u.ToastSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(u.ToastSeconds) * time.Second
}
