package store

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries everything the client needs to reach the scheduler server
// and its local store.
type Config interface {
	BasePath() string
	BaseURL() string
	CSRFToken() string
	DebounceWindow() time.Duration
}

// LoadConfig reads a .gts config file (yaml, walked from the working
// directory and $HOME) with GTS_-prefixed env overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.gts/store")
	viper.SetDefault("server", "http://localhost:8069")
	viper.SetDefault("debounce", "300ms")
	viper.SetConfigName(".gts") // .yaml is implicit
	viper.SetEnvPrefix("GTS")
	viper.AutomaticEnv()

	if override := os.Getenv("GTS_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	debounce, err := time.ParseDuration(viper.GetString("debounce"))
	if err != nil || debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	return &fileConfig{
		Path:     path,
		Server:   viper.GetString("server"),
		CSRF:     viper.GetString("csrf_token"),
		Debounce: debounce,
	}, nil
}

type fileConfig struct {
	Path     string        `json:"path"`
	Server   string        `json:"server"`
	CSRF     string        `json:"csrf_token"`
	Debounce time.Duration `json:"debounce"`
}

func (f *fileConfig) BasePath() string { return f.Path }

func (f *fileConfig) BaseURL() string { return f.Server }

func (f *fileConfig) CSRFToken() string { return f.CSRF }

func (f *fileConfig) DebounceWindow() time.Duration { return f.Debounce }
