package model

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

const (
	// ConfigFileName is the optional settings file inside the configuration directory
	ConfigFileName = "config.ini"

	CacheBackendJSON   = "json"
	CacheBackendBolt   = "bolt"
	CacheBackendSQLite = "sqlite"

	GitBackendExec  = "exec"
	GitBackendGoGit = "go-git"
)

type ShowSection struct {
	Days int `ini:"days"`
}

type ScanSection struct {
	Jobs    int      `ini:"jobs"`
	Exclude []string `ini:"exclude" delim:","`
}

type CacheSection struct {
	Backend string `ini:"backend"`
}

type GitSection struct {
	Backend string `ini:"backend"`
	Binary  string `ini:"binary"`
}

type CloneSection struct {
	UpdateCache bool `ini:"update_cache"`
}

// Config holds the application configuration
type Config struct {
	// ConfigDir is where the cache and config.ini live
	ConfigDir string `ini:"-"`

	Show  ShowSection  `ini:"show"`
	Scan  ScanSection  `ini:"scan"`
	Cache CacheSection `ini:"cache"`
	Git   GitSection   `ini:"git"`
	Clone CloneSection `ini:"clone"`
}

// DefaultConfig returns a Config rooted at dir with sensible defaults
func DefaultConfig(dir string) Config {
	return Config{
		ConfigDir: dir,
		Show:      ShowSection{Days: 7},
		Scan:      ScanSection{Jobs: 1},
		Cache:     CacheSection{Backend: CacheBackendJSON},
		Git:       GitSection{Backend: GitBackendExec, Binary: "git"},
		Clone:     CloneSection{UpdateCache: true},
	}
}

// ConfigFile returns the path of config.ini.
func (c Config) ConfigFile() string {
	return filepath.Join(c.ConfigDir, ConfigFileName)
}

// CacheFile returns the cache file path for the configured backend.
func (c Config) CacheFile() string {
	switch c.Cache.Backend {
	case CacheBackendBolt:
		return filepath.Join(c.ConfigDir, ".cache.bolt")
	case CacheBackendSQLite:
		return filepath.Join(c.ConfigDir, ".cache.db")
	default:
		return filepath.Join(c.ConfigDir, ".cache.json")
	}
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if c.ConfigDir == "" {
		return errors.New("config directory is empty")
	}

	switch c.Cache.Backend {
	case CacheBackendJSON, CacheBackendBolt, CacheBackendSQLite:
	default:
		return fmt.Errorf("unknown cache backend %q (want json, bolt or sqlite)", c.Cache.Backend)
	}

	switch c.Git.Backend {
	case GitBackendExec, GitBackendGoGit:
	default:
		return fmt.Errorf("unknown git backend %q (want exec or go-git)", c.Git.Backend)
	}

	if c.Scan.Jobs < 1 {
		return fmt.Errorf("scan jobs must be at least 1, got %d", c.Scan.Jobs)
	}

	if c.Show.Days < 0 {
		return fmt.Errorf("days must not be negative, got %d", c.Show.Days)
	}

	return nil
}

// LoadConfig reads config.ini from dir on top of the defaults.
// A missing file yields the defaults.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig(dir)

	path := cfg.ConfigFile()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	sections := map[string]any{
		"show":  &cfg.Show,
		"scan":  &cfg.Scan,
		"cache": &cfg.Cache,
		"git":   &cfg.Git,
		"clone": &cfg.Clone,
	}

	for name, dst := range sections {
		if !f.HasSection(name) {
			continue
		}

		if err := f.Section(name).MapTo(dst); err != nil {
			return cfg, fmt.Errorf("invalid [%s] section in %s: %w", name, path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to config.ini, creating the directory if needed.
func (c Config) Save() error {
	if err := os.MkdirAll(c.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.ConfigDir, err)
	}

	f, err := c.file()
	if err != nil {
		return err
	}

	if err := f.SaveTo(c.ConfigFile()); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.ConfigFile(), err)
	}

	return nil
}

// Encode writes the configuration in config.ini form to w.
func (c Config) Encode(w io.Writer) error {
	f, err := c.file()
	if err != nil {
		return err
	}

	_, err = f.WriteTo(w)

	return err
}

func (c Config) file() (*ini.File, error) {
	f := ini.Empty()
	if err := ini.ReflectFrom(f, &c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	return f, nil
}
