package config

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public Swag Labs demo shop
const DefaultBaseURL = "https://www.saucedemo.com/"

// SiteTitle is the document title every Swag Labs page carries
const SiteTitle = "Swag Labs"

// Page paths relative to the site root
const (
	InventoryPath        = "inventory.html"
	CartPath             = "cart.html"
	CheckoutStepOnePath  = "checkout-step-one.html"
	CheckoutStepTwoPath  = "checkout-step-two.html"
	CheckoutCompletePath = "checkout-complete.html"
)

// SiteConfig describes the shop the scenarios run against
type SiteConfig struct {
	BaseURL string
}

// LoadSiteConfig loads the target site from environment variables
func LoadSiteConfig(getenv func(string) string) (*SiteConfig, error) {
	base := getenv("SWAG_BASE_URL")
	if base == "" {
		base = DefaultBaseURL
	}

	return NewSiteConfig(base)
}

// NewSiteConfig validates base and normalises it to end with a slash
func NewSiteConfig(base string) (*SiteConfig, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("SWAG_BASE_URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("SWAG_BASE_URL must be an http or https URL, got %q", base)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("SWAG_BASE_URL must include a host, got %q", base)
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return &SiteConfig{BaseURL: base}, nil
}

// URL joins a page path onto the base URL
func (c *SiteConfig) URL(path string) string {
	return c.BaseURL + strings.TrimPrefix(path, "/")
}

// LoginURL returns the site root, where the login form lives
func (c *SiteConfig) LoginURL() string {
	return c.BaseURL
}

// InventoryURL returns the product listing URL
func (c *SiteConfig) InventoryURL() string {
	return c.URL(InventoryPath)
}

// CartURL returns the cart page URL
func (c *SiteConfig) CartURL() string {
	return c.URL(CartPath)
}

// CheckoutStepOneURL returns the shipping information form URL
func (c *SiteConfig) CheckoutStepOneURL() string {
	return c.URL(CheckoutStepOnePath)
}

// CheckoutStepTwoURL returns the order summary URL
func (c *SiteConfig) CheckoutStepTwoURL() string {
	return c.URL(CheckoutStepTwoPath)
}

// CheckoutCompleteURL returns the order confirmation URL
func (c *SiteConfig) CheckoutCompleteURL() string {
	return c.URL(CheckoutCompletePath)
}
