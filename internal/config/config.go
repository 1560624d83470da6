package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config is the client-side configuration. Everything lives under the data
// dir except the server URL, which points at a remote DevNote deployment.
type Config struct {
	ServerURL string
	DataDir   string
	Timeout   time.Duration
}

// Load reads ~/.config/devnote/config.yaml plus DEVNOTE_* environment
// variables. A missing config file is fine; defaults cover everything.
func Load() (Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}

	v.AddConfigPath(filepath.Join(home, ".config", "devnote"))
	v.SetConfigType("yaml")
	v.SetConfigName("config")

	v.SetEnvPrefix("DEVNOTE")
	v.AutomaticEnv()

	v.SetDefault("server_url", "http://localhost:8000/api")
	v.SetDefault("data_dir", filepath.Join(home, ".local", "share", "devnote"))
	v.SetDefault("timeout_seconds", 15)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	return Config{
		ServerURL: v.GetString("server_url"),
		DataDir:   v.GetString("data_dir"),
		Timeout:   time.Duration(v.GetInt("timeout_seconds")) * time.Second,
	}, nil
}

// SessionPath is where the login cookie is persisted.
func (c Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.json")
}

// PrefsPath is the SQLite file backing per-collection preferences.
func (c Config) PrefsPath() string {
	return filepath.Join(c.DataDir, "prefs.sqlite")
}

// CacheDir holds the offline collection cache.
func (c Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}
