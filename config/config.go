// Package config loads snipbox settings from .snipbox.yaml and SNIPBOX_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendDisk   = "disk"
	BackendMemory = "memory"
)

type Config struct {
	DataDir  string
	Backend  string
	LogLevel string
	AI       AIConfig
}

type AIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Retries int
}

// Load reads configuration. If file is empty, .snipbox.yaml is searched for
// in the working directory and then the home directory; a missing file is
// not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", "~/.snipbox")
	v.SetDefault("backend", BackendSQLite)
	v.SetDefault("log_level", "info")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.retries", 2)

	v.SetEnvPrefix("SNIPBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".snipbox") // .yaml is implicit
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := homedir.Expand(v.GetString("data_dir"))
	if err != nil {
		return nil, fmt.Errorf("expand data_dir: %w", err)
	}

	cfg := &Config{
		DataDir:  dataDir,
		Backend:  strings.ToLower(v.GetString("backend")),
		LogLevel: v.GetString("log_level"),
		AI: AIConfig{
			APIKey:  v.GetString("ai.api_key"),
			Model:   v.GetString("ai.model"),
			BaseURL: v.GetString("ai.base_url"),
			Retries: v.GetInt("ai.retries"),
		},
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	switch cfg.Backend {
	case BackendSQLite, BackendDisk, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return cfg, nil
}

func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "snipbox.db")
}

func (c *Config) DiskPath() string {
	return filepath.Join(c.DataDir, "data")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "snipbox.log")
}
