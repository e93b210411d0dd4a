package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const appName = "coordtest"

// Config holds everything the suite reads from the environment.
type Config struct {
	BaseURL     string
	Debug       bool
	RecordVideo bool
	// TestTimeout is the default per-step timeout (TEST_TIMEOUT, in minutes).
	TestTimeout time.Duration
	Parallel    int
	Retries     int
	Profile     string

	Browser BrowserConfig
	Results ResultsConfig
	Log     LogConfig
}

// BrowserConfig selects and launches the shared browser.
type BrowserConfig struct {
	Name          string // chromium, firefox or webkit
	Headless      bool
	LaunchTimeout time.Duration
	// WSEndpoint connects to a running playwright server instead of launching locally.
	WSEndpoint string
}

// ResultsConfig lays out the artifact directories.
type ResultsConfig struct {
	Dir         string
	ProfileFile string
	RerunFile   string
}

// LogConfig configures the optional rotating log file.
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ReportsDir holds machine-readable scenario reports.
func (r ResultsConfig) ReportsDir() string { return filepath.Join(r.Dir, "reports") }

// ScreenshotsDir holds failure screenshots.
func (r ResultsConfig) ScreenshotsDir() string { return filepath.Join(r.Dir, "screenshots") }

// VideosDir holds recordings of failed scenarios.
func (r ResultsConfig) VideosDir() string { return filepath.Join(r.Dir, "videos") }

// SnapshotsDir holds DOM snapshots of failed scenarios.
func (r ResultsConfig) SnapshotsDir() string { return filepath.Join(r.Dir, "snapshots") }

// Load reads env files, environment variables and the optional config file into a new Config.
func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set default values
	v.SetDefault("base.url", "https://default-url.com")
	v.SetDefault("debug", false)
	v.SetDefault("record.video", false)
	v.SetDefault("test.timeout", 5)
	v.SetDefault("parallel", 1)
	v.SetDefault("retries", 0)
	v.SetDefault("profile", "default")
	v.SetDefault("browser.name", "chromium")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.launch_timeout", 30*time.Second)
	v.SetDefault("results.dir", "./test-results")
	v.SetDefault("results.profiles", "profiles.yaml")
	v.SetDefault("results.rerun", "@rerun.txt")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)

	// Environment variables
	v.AutomaticEnv()
	v.BindEnv("base.url", "BASE_URL")
	v.BindEnv("debug", "DEBUG")
	v.BindEnv("record.video", "RECORD_VIDEO")
	v.BindEnv("test.timeout", "TEST_TIMEOUT")
	v.BindEnv("parallel", "PARALLEL_THREAD")
	v.BindEnv("retries", "RETRIES")
	v.BindEnv("profile", "PROFILE")
	v.BindEnv("browser.name", "BROWSER")
	v.BindEnv("browser.headless", "HEADLESS")
	v.BindEnv("browser.ws_endpoint", "PLAYWRIGHT_WS_ENDPOINT")
	v.BindEnv("results.dir", "RESULTS_DIR")
	v.BindEnv("results.profiles", "PROFILES_FILE")
	v.BindEnv("log.file", "LOG_FILE")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Look for config in the following paths
	configPaths := []string{
		".",
		filepath.Join(xdg.ConfigHome, appName),
		"/etc/" + appName,
	}
	for _, path := range configPaths {
		v.AddConfigPath(os.ExpandEnv(path))
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found; ignore error and use defaults
	}

	cfg := &Config{
		BaseURL:     v.GetString("base.url"),
		Debug:       v.GetBool("debug"),
		RecordVideo: v.GetBool("record.video"),
		TestTimeout: time.Duration(v.GetInt("test.timeout")) * time.Minute,
		Parallel:    v.GetInt("parallel"),
		Retries:     v.GetInt("retries"),
		Profile:     v.GetString("profile"),
		Browser: BrowserConfig{
			Name:          v.GetString("browser.name"),
			Headless:      v.GetBool("browser.headless"),
			LaunchTimeout: v.GetDuration("browser.launch_timeout"),
			WSEndpoint:    v.GetString("browser.ws_endpoint"),
		},
		Results: ResultsConfig{
			Dir:         v.GetString("results.dir"),
			ProfileFile: v.GetString("results.profiles"),
			RerunFile:   v.GetString("results.rerun"),
		},
		Log: LogConfig{
			File:       v.GetString("log.file"),
			MaxSizeMB:  v.GetInt("log.max_size"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAgeDays: v.GetInt("log.max_age"),
		},
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.TestTimeout <= 0 {
		return fmt.Errorf("TEST_TIMEOUT must be a positive number of minutes")
	}
	if c.Parallel < 1 {
		c.Parallel = 1
	}
	if c.Retries < 0 {
		return fmt.Errorf("RETRIES must not be negative, got %d", c.Retries)
	}
	switch c.Browser.Name {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("unsupported browser: %s", c.Browser.Name)
	}
	return nil
}

// loadEnvFiles loads .env, or .env.<TEST_ENV> overriding the process environment when
// TEST_ENV is set. A missing file is not an error.
func loadEnvFiles() error {
	testEnv := os.Getenv("TEST_ENV")
	if testEnv == "" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	file := ".env." + testEnv
	if err := godotenv.Overload(file); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("TEST_ENV=%s but %s does not exist", testEnv, file)
		}
		return fmt.Errorf("failed to load %s: %w", file, err)
	}
	return nil
}
