package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfig holds configuration for local daemon mode.
type LocalConfig struct {
	Daemon    DaemonConfig    `yaml:"daemon"`
	Storage   StorageConfig   `yaml:"storage"`
	Interview InterviewConfig `yaml:"interview"`
}

// DaemonConfig holds daemon server settings.
type DaemonConfig struct {
	Port     int    `yaml:"port"`
	Bind     string `yaml:"bind"`
	LogLevel string `yaml:"log_level"`
}

// StorageConfig selects and tunes the persistence backend.
type StorageConfig struct {
	// Backend is "json" or "sqlite".
	Backend string `yaml:"backend"`
	// Path overrides the data location. Empty means ~/.crucible/data
	// for json and ~/.crucible/crucible.db for sqlite.
	Path string `yaml:"path,omitempty"`
}

// InterviewConfig tunes the interview flow.
type InterviewConfig struct {
	// BankPath points at a custom question bank YAML file. Empty uses
	// the built-in bank.
	BankPath string `yaml:"bank_path,omitempty"`
}

// CrucibleDir returns the path to ~/.crucible.
func CrucibleDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".crucible"), nil
}

// EnsureCrucibleDir creates ~/.crucible and its subdirectories.
func EnsureCrucibleDir() (string, error) {
	dir, err := CrucibleDir()
	if err != nil {
		return "", err
	}

	for _, subdir := range []string{"", "logs", "data"} {
		path := filepath.Join(dir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", fmt.Errorf("create dir %s: %w", path, err)
		}
	}

	return dir, nil
}

// DefaultLocalConfig returns sensible defaults for local mode.
func DefaultLocalConfig() *LocalConfig {
	return &LocalConfig{
		Daemon: DaemonConfig{
			Port:     7433,
			Bind:     "127.0.0.1",
			LogLevel: "info",
		},
		Storage: StorageConfig{
			Backend: "json",
		},
	}
}

// LoadLocalConfig loads ~/.crucible/config.yaml, applying environment
// overrides on top. A missing file yields the defaults.
func LoadLocalConfig() (*LocalConfig, error) {
	dir, err := CrucibleDir()
	if err != nil {
		return nil, err
	}

	cfg := DefaultLocalConfig()

	configPath := filepath.Join(dir, "config.yaml")
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.Daemon.Port = getEnvInt("CRUCIBLE_PORT", cfg.Daemon.Port)
	cfg.Daemon.Bind = getEnv("CRUCIBLE_BIND", cfg.Daemon.Bind)
	cfg.Daemon.LogLevel = getEnv("CRUCIBLE_LOG_LEVEL", cfg.Daemon.LogLevel)
	cfg.Storage.Backend = getEnv("CRUCIBLE_STORAGE", cfg.Storage.Backend)
	cfg.Storage.Path = getEnv("CRUCIBLE_STORAGE_PATH", cfg.Storage.Path)
	cfg.Interview.BankPath = getEnv("CRUCIBLE_BANK_PATH", cfg.Interview.BankPath)

	return cfg, nil
}

// SaveLocalConfig writes configuration to ~/.crucible/config.yaml.
func SaveLocalConfig(cfg *LocalConfig) error {
	dir, err := EnsureCrucibleDir()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
