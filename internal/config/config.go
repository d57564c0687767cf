package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const EnvDataDir = "TASKMANAGER_DATA_DIR"

type Config struct {
	DataDir        string `json:"data_dir"`
	Backend        string `json:"backend"`
	DBPath         string `json:"db_path"`
	ReportDir      string `json:"report_dir"`
	WebEnabled     bool   `json:"web_enabled"`
	WebPort        int    `json:"web_port"`
	ReportInterval string `json:"report_interval"`
}

func Default() Config {
	return Config{Backend: "text", WebPort: 8080}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "taskmanager", "config.json"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

// Load reads path, falling back to defaults when it does not exist.
func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, err
	}
	return config, nil
}

// WithEnv returns c with TASKMANAGER_DATA_DIR applied. The result is meant
// for the running process only and should not be passed to Save.
func (c Config) WithEnv() Config {
	if dir := strings.TrimSpace(os.Getenv(EnvDataDir)); dir != "" {
		c.DataDir = dir
	}
	return c
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Interval parses ReportInterval. An empty value disables scheduled reports.
func (c Config) Interval() (time.Duration, error) {
	raw := strings.TrimSpace(c.ReportInterval)
	if raw == "" {
		return 0, nil
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse report_interval: %w", err)
	}
	if interval < 0 {
		return 0, fmt.Errorf("report_interval must not be negative")
	}
	return interval, nil
}
