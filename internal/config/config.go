// Package config loads launcher configuration from an optional YAML
// file, a .env file, and MERAUDIT_-prefixed environment variables, in
// that order of precedence (env wins).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "MERAUDIT_"

// Config holds everything the launcher needs before a run starts.
type Config struct {
	APIKey      string        `koanf:"api_key"`
	BaseURL     string        `koanf:"base_url"`
	ReportRoot  string        `koanf:"report_root"`
	PlaybookDir string        `koanf:"playbook_dir"`
	Timeout     time.Duration `koanf:"timeout"`
}

// Load reads configuration. path may be empty, in which case only .env
// and the environment are consulted.
func Load(path string) (*Config, error) {
	// .env is a convenience for local use; absence is fine.
	_ = godotenv.Load()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// MERAKI_DASHBOARD_API_KEY is what the vendor tooling exports;
	// honor it when nothing meraudit-specific is set.
	if !k.Exists("api_key") {
		if key := os.Getenv("MERAKI_DASHBOARD_API_KEY"); key != "" {
			k.Set("api_key", key)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.ReportRoot == "" {
		cfg.ReportRoot = "reports"
	}
	if cfg.PlaybookDir == "" {
		cfg.PlaybookDir = "playbooks"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &cfg, nil
}
