// Package config loads and saves the two recognized queuectl settings
// (max_retries, backoff_base) plus the ambient state-directory location.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is a plain key/value mapping with exactly two fields a human can
// set via `config set`: MaxRetries and BackoffBase. DataDir is ambient
// (not user-settable) and points at the per-user state directory holding
// queue.db, worker.pid, and worker.stop.
type Config struct {
	DataDir     string `json:"data_dir"`
	MaxRetries  int    `json:"max_retries"`
	BackoffBase int    `json:"backoff_base"`
}

const configFileName = "config.json"

// NewConfig returns a Config with the spec's defaults (max_retries=3,
// backoff_base=2) and a default state directory.
func NewConfig() *Config {
	dir := defaultDataDir()
	return &Config{
		DataDir:     dir,
		MaxRetries:  3,
		BackoffBase: 2,
	}
}

func defaultDataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "./.queuectl"
	}
	return filepath.Join(configDir, "queuectl")
}

func configPath() (string, error) {
	dir := defaultDataDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadConfig reads config.json, seeding it with defaults on first run.
func LoadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet; save the defaults and return them.
			return cfg, SaveConfig(cfg)
		}
		return nil, err
	}
	if err := json.Unmarshal(file, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig persists cfg to config.json.
func SaveConfig(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DBPath returns the path to the Store's single SQLite file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "queue.db")
}

// PidPath returns the path to the Supervisor's pidfile.
func (c *Config) PidPath() string {
	return filepath.Join(c.DataDir, "worker.pid")
}

// StopFlagPath returns the path to the cross-process stop sentinel.
func (c *Config) StopFlagPath() string {
	return filepath.Join(c.DataDir, "worker.stop")
}
