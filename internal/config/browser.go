package config

import (
	"fmt"
	"strconv"
	"time"
)

// Supported automation drivers
const (
	DriverPlaywright = "playwright"
	DriverRod        = "rod"
	DriverSelenium   = "selenium"
)

// Supported browser engines
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// DefaultTimeout is the implicit wait budget for locators and page assertions
const DefaultTimeout = 10 * time.Second

// BrowserConfig holds configuration for the browser automation driver
type BrowserConfig struct {
	Driver      string
	Browser     string
	Headless    bool
	Timeout     time.Duration
	SeleniumURL string
}

// LoadBrowserConfig loads driver configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		Driver:      getenv("SWAG_DRIVER"),
		Browser:     getenv("SWAG_BROWSER"),
		Headless:    true,
		Timeout:     DefaultTimeout,
		SeleniumURL: getenv("SELENIUM_URL"),
	}

	if config.Driver == "" {
		config.Driver = DriverPlaywright
	}
	if config.Browser == "" {
		config.Browser = BrowserChromium
	}

	if raw := getenv("SWAG_HEADLESS"); raw != "" {
		headless, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("SWAG_HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	if raw := getenv("SWAG_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("SWAG_TIMEOUT must be a duration: %w", err)
		}
		config.Timeout = timeout
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the driver and browser combination can be launched
func (c *BrowserConfig) Validate() error {
	switch c.Driver {
	case DriverPlaywright, DriverRod, DriverSelenium:
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}

	switch c.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return fmt.Errorf("unknown browser %q", c.Browser)
	}

	// rod speaks the DevTools protocol only
	if c.Driver == DriverRod && c.Browser != BrowserChromium {
		return fmt.Errorf("driver %q only supports %q", DriverRod, BrowserChromium)
	}
	if c.Driver == DriverSelenium && c.SeleniumURL == "" {
		return fmt.Errorf("SELENIUM_URL is required for the %s driver", DriverSelenium)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	return nil
}
