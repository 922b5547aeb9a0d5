package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv.
const (
	EnvBaseURL      = "REELS_BASE_URL"
	EnvPollInterval = "REELS_POLL_INTERVAL"
	EnvOutputDir    = "REELS_OUTPUT_DIR"
	EnvLanguage     = "REELS_LANGUAGE"
	EnvLogFile      = "REELS_LOG_FILE"
)

// Settings holds all configuration options.
type Settings struct {
	// Backend settings
	BaseURL            string  `json:"base_url"`
	PollIntervalMillis int     `json:"poll_interval_ms"`
	RequestTimeout     float64 `json:"request_timeout"`

	// Output download settings
	OutputDir             string  `json:"output_dir"`
	DownloadMaxRetries    int     `json:"download_max_retries"`
	DownloadRetryCooldown float64 `json:"download_retry_cooldown"`
	DownloadRetryExponent float64 `json:"download_retry_exponent"`

	// Console settings
	Language string `json:"language"` // ar, en
	LogFile  string `json:"log_file"`

	// Form defaults
	DefaultReciter  string `json:"default_reciter"`
	DefaultQuality  string `json:"default_quality"`
	DefaultTemplate string `json:"default_template"`
	DefaultFormat   string `json:"default_format"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		BaseURL:            "http://127.0.0.1:5000",
		PollIntervalMillis: 1000,
		RequestTimeout:     10,

		OutputDir:             filepath.Join(homeDir, "Videos", "QuranReels"),
		DownloadMaxRetries:    5,
		DownloadRetryCooldown: 0.5,
		DownloadRetryExponent: 2.0,

		Language: "ar",
		LogFile:  filepath.Join(configDir(homeDir), "console.log"),

		DefaultQuality:  "medium",
		DefaultTemplate: "normal",
		DefaultFormat:   "reels",
	}
}

// DefaultPath returns the settings file location.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(configDir(homeDir), "settings.json")
}

func configDir(homeDir string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "quran-reels")
	}
	return filepath.Join(homeDir, ".quran-reels")
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv loads the given .env files (missing files are ignored) and
// overrides settings from REELS_* variables. Variables already set in the
// process environment win over .env files.
func (s *Settings) ApplyEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}

	if v := os.Getenv(EnvBaseURL); v != "" {
		s.BaseURL = v
	}
	if v := os.Getenv(EnvPollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			ms, convErr := strconv.Atoi(v)
			if convErr != nil {
				return fmt.Errorf("%s: %w", EnvPollInterval, err)
			}
			d = time.Duration(ms) * time.Millisecond
		}
		s.PollIntervalMillis = int(d / time.Millisecond)
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		s.Language = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		s.LogFile = v
	}
	return nil
}

// PollInterval returns the poll period.
func (s *Settings) PollInterval() time.Duration {
	if s.PollIntervalMillis <= 0 {
		return time.Second
	}
	return time.Duration(s.PollIntervalMillis) * time.Millisecond
}

// Timeout returns the per-request timeout.
func (s *Settings) Timeout() time.Duration {
	if s.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.RequestTimeout * float64(time.Second))
}
