// Package config holds ceph-safe-disk settings.
//
// Settings are read from $CEPH_SAFE_DISK_CONFIG, or from
// $XDG_CONFIG_HOME/ceph-safe-disk/config.yaml (defaults to
// ~/.config/ceph-safe-disk/config.yaml). A missing file means defaults.
// Command-line flags override anything set here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const envConfig = "CEPH_SAFE_DISK_CONFIG"

const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Ceph selects how the ceph CLI is invoked.
type Ceph struct {
	Binary  string        `yaml:"binary,omitempty"`
	Cluster string        `yaml:"cluster,omitempty"`
	Conf    string        `yaml:"conf,omitempty"`
	ID      string        `yaml:"id,omitempty"`
	Keyring string        `yaml:"keyring,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Docker runs ceph inside a container instead of on the host.
type Docker struct {
	Host      string `yaml:"host,omitempty"`
	Container string `yaml:"container,omitempty"`
}

// S3 reads recorded snapshots from a bucket.
type S3 struct {
	Bucket   string `yaml:"bucket,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

type Log struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

type Diagnose struct {
	Workers   int  `yaml:"workers,omitempty"`
	PoolAware bool `yaml:"pool_aware,omitempty"`
}

// Config is the whole settings file.
type Config struct {
	Format   string        `yaml:"format,omitempty"`
	Textfile string        `yaml:"textfile,omitempty"`
	MaxAge   time.Duration `yaml:"max_age,omitempty"`
	Log      Log           `yaml:"log,omitempty"`
	Ceph     Ceph          `yaml:"ceph,omitempty"`
	Docker   Docker        `yaml:"docker,omitempty"`
	S3       S3            `yaml:"s3,omitempty"`
	Diagnose Diagnose      `yaml:"diagnose,omitempty"`

	path string
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		Format: FormatPretty,
		MaxAge: 15 * time.Minute,
		Log:    Log{Level: "warn", Format: "text"},
		Ceph:   Ceph{Binary: "ceph", Timeout: 30 * time.Second},
	}
}

// Path returns the config file location, honoring CEPH_SAFE_DISK_CONFIG.
func Path() string {
	if fromEnv := strings.TrimSpace(os.Getenv(envConfig)); fromEnv != "" {
		return fromEnv
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "ceph-safe-disk", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "ceph-safe-disk", "config.yaml")
}

// Load reads the config at path, or Path() when path is empty. Fields the
// file leaves out keep their defaults.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = Path()
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}
	cfg.path = path
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatPretty, FormatJSON:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatPretty, FormatJSON, c.Format)
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("max_age must not be negative")
	}
	if c.Ceph.Timeout < 0 {
		return fmt.Errorf("ceph.timeout must not be negative")
	}
	if c.Diagnose.Workers < 0 {
		return fmt.Errorf("diagnose.workers must not be negative")
	}
	if c.S3.Prefix != "" && c.S3.Bucket == "" {
		return fmt.Errorf("s3.prefix set without s3.bucket")
	}
	return nil
}

func (c *Config) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// SetPath sets where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

// Save writes the config back to its path, creating directories as needed.
func (c *Config) Save() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(c.path) == "" {
		c.path = Path()
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir %q: %w", dir, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace config %q: %w", c.path, err)
	}
	return nil
}

// Marshal renders the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
