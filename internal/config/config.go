package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type TokensConfig struct {
	AccessSecret  string        `yaml:"access_secret"`
	AccessExpiry  time.Duration `yaml:"access_expiry"`
	RefreshSecret string        `yaml:"refresh_secret"`
	RefreshExpiry time.Duration `yaml:"refresh_expiry"`
}

// UnmarshalYAML parses the expiry fields as Go duration strings ("15m",
// "720h"), which yaml.v3 will not do for time.Duration on its own.
func (t *TokensConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		AccessSecret  string `yaml:"access_secret"`
		AccessExpiry  string `yaml:"access_expiry"`
		RefreshSecret string `yaml:"refresh_secret"`
		RefreshExpiry string `yaml:"refresh_expiry"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	t.AccessSecret = raw.AccessSecret
	t.RefreshSecret = raw.RefreshSecret
	if raw.AccessExpiry != "" {
		d, err := time.ParseDuration(raw.AccessExpiry)
		if err != nil {
			return fmt.Errorf("tokens.access_expiry: %w", err)
		}
		t.AccessExpiry = d
	}
	if raw.RefreshExpiry != "" {
		d, err := time.ParseDuration(raw.RefreshExpiry)
		if err != nil {
			return fmt.Errorf("tokens.refresh_expiry: %w", err)
		}
		t.RefreshExpiry = d
	}
	return nil
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Tokens TokensConfig `yaml:"tokens"`
}

func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Tokens.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv lets the standard deployment variables override the yaml values.
func (c *Config) applyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("ACCESS_TOKEN_SECRET"); v != "" {
		c.Tokens.AccessSecret = v
	}
	if v := os.Getenv("REFRESH_TOKEN_SECRET"); v != "" {
		c.Tokens.RefreshSecret = v
	}
	if v := os.Getenv("ACCESS_TOKEN_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("ACCESS_TOKEN_EXPIRY: %w", err)
		}
		c.Tokens.AccessExpiry = d
	}
	if v := os.Getenv("REFRESH_TOKEN_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REFRESH_TOKEN_EXPIRY: %w", err)
		}
		c.Tokens.RefreshExpiry = d
	}
	return nil
}

// Validate makes a missing token secret or expiry a startup failure.
func (t TokensConfig) Validate() error {
	if t.AccessSecret == "" {
		return fmt.Errorf("tokens: access secret is required")
	}
	if t.RefreshSecret == "" {
		return fmt.Errorf("tokens: refresh secret is required")
	}
	if t.AccessExpiry <= 0 {
		return fmt.Errorf("tokens: access expiry must be positive")
	}
	if t.RefreshExpiry <= 0 {
		return fmt.Errorf("tokens: refresh expiry must be positive")
	}
	return nil
}
