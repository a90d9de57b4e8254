package common

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the suite configuration loaded from config.toml.
// Credentials never live in the TOML file; they come from the environment
// (optionally via a .env file next to the config).
type Config struct {
	Target   TargetConfig   `toml:"target"`
	Browser  BrowserConfig  `toml:"browser"`
	Timeouts TimeoutsConfig `toml:"timeouts"`
	Output   OutputConfig   `toml:"output"`
	Logging  LoggingConfig  `toml:"logging"`
}

// TargetConfig identifies the GoTrade deployment under test.
type TargetConfig struct {
	BaseURL   string `toml:"base_url"`
	LoginPath string `toml:"login_path"` // default "/auth/login"
	TradePath string `toml:"trade_path"` // default "/gotrade"

	// Filled from GOTRADE_EMAIL / GOTRADE_PASSWORD, never from TOML.
	Email    string `toml:"-"`
	Password string `toml:"-"`
}

type BrowserConfig struct {
	Headless     bool `toml:"headless"`
	WindowWidth  int  `toml:"window_width"`
	WindowHeight int  `toml:"window_height"`

	// Minimum spacing between UI actions, e.g. "250ms". Replaces the fixed
	// settle sleeps the UI otherwise needs after each interaction.
	ActionInterval string `toml:"action_interval"`
}

type TimeoutsConfig struct {
	NavigationSeconds int `toml:"navigation_seconds"` // page loads
	ElementSeconds    int `toml:"element_seconds"`    // visibility waits
	OrderSeconds      int `toml:"order_seconds"`      // order appear/disappear
	TestMinutes       int `toml:"test_minutes"`       // whole-test budget
}

type OutputConfig struct {
	ResultsBaseDir string `toml:"results_base_dir"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// LoadConfig reads config.toml from the given path and overlays environment
// credentials. A .env file in the same directory is loaded first when present;
// its absence is not an error.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.applyDefaults()

	_ = godotenv.Load(filepath.Join(filepath.Dir(configPath), ".env"))

	if v := os.Getenv("GOTRADE_BASE_URL"); v != "" {
		config.Target.BaseURL = v
	}
	if v := os.Getenv("GOTRADE_RESULTS_DIR"); v != "" {
		config.Output.ResultsBaseDir = v
	}
	config.Target.Email = os.Getenv("GOTRADE_EMAIL")
	config.Target.Password = os.Getenv("GOTRADE_PASSWORD")

	if config.Target.BaseURL == "" {
		return nil, fmt.Errorf("target.base_url is required (config.toml or GOTRADE_BASE_URL)")
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Target.LoginPath == "" {
		c.Target.LoginPath = "/auth/login"
	}
	if c.Target.TradePath == "" {
		c.Target.TradePath = "/gotrade"
	}
	if c.Browser.WindowWidth == 0 {
		c.Browser.WindowWidth = 1920
	}
	if c.Browser.WindowHeight == 0 {
		c.Browser.WindowHeight = 1080
	}
	if c.Browser.ActionInterval == "" {
		c.Browser.ActionInterval = "250ms"
	}
	if c.Timeouts.NavigationSeconds == 0 {
		c.Timeouts.NavigationSeconds = 60
	}
	if c.Timeouts.ElementSeconds == 0 {
		c.Timeouts.ElementSeconds = 10
	}
	if c.Timeouts.OrderSeconds == 0 {
		c.Timeouts.OrderSeconds = 10
	}
	if c.Timeouts.TestMinutes == 0 {
		c.Timeouts.TestMinutes = 5
	}
	if c.Output.ResultsBaseDir == "" {
		c.Output.ResultsBaseDir = "results"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if len(c.Logging.Output) == 0 {
		c.Logging.Output = []string{"stdout"}
	}
}

// LoginURL returns the absolute login page URL.
func (c *Config) LoginURL() string { return c.Target.BaseURL + c.Target.LoginPath }

// TradeURL returns the absolute GoTrade page URL.
func (c *Config) TradeURL() string { return c.Target.BaseURL + c.Target.TradePath }

// ActionInterval parses browser.action_interval, falling back to 250ms.
func (c *Config) ActionInterval() time.Duration {
	d, err := time.ParseDuration(c.Browser.ActionInterval)
	if err != nil || d <= 0 {
		return 250 * time.Millisecond
	}
	return d
}

// NavigationTimeout returns the page-load timeout.
func (c *Config) NavigationTimeout() time.Duration {
	return time.Duration(c.Timeouts.NavigationSeconds) * time.Second
}

// ElementTimeout returns the element visibility-wait timeout.
func (c *Config) ElementTimeout() time.Duration {
	return time.Duration(c.Timeouts.ElementSeconds) * time.Second
}

// OrderTimeout returns the order appear/disappear wait timeout.
func (c *Config) OrderTimeout() time.Duration {
	return time.Duration(c.Timeouts.OrderSeconds) * time.Second
}

// TestTimeout returns the whole-test budget.
func (c *Config) TestTimeout() time.Duration {
	return time.Duration(c.Timeouts.TestMinutes) * time.Minute
}
