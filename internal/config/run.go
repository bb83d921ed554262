package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Scenario names
const (
	ScenarioLogin     = "login"
	ScenarioAddToCart = "add-to-cart"
	ScenarioCheckout  = "checkout"
)

// AllScenarios lists every scenario in declaration order
var AllScenarios = []string{ScenarioLogin, ScenarioAddToCart, ScenarioCheckout}

// RunConfig selects which scenarios run and their optional checks
type RunConfig struct {
	Scenarios           []string
	VerifyCheckoutBadge bool
}

// LoadRunConfig loads scenario selection from environment variables
func LoadRunConfig(getenv func(string) string) (*RunConfig, error) {
	config := &RunConfig{}

	if raw := getenv("SWAG_SCENARIOS"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				config.Scenarios = append(config.Scenarios, name)
			}
		}
	}
	if len(config.Scenarios) == 0 {
		config.Scenarios = append([]string(nil), AllScenarios...)
	}

	for _, name := range config.Scenarios {
		if !isScenario(name) {
			return nil, fmt.Errorf("unknown scenario %q", name)
		}
	}

	if raw := getenv("SWAG_CHECKOUT_BADGE_CHECK"); raw != "" {
		verify, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("SWAG_CHECKOUT_BADGE_CHECK must be a boolean: %w", err)
		}
		config.VerifyCheckoutBadge = verify
	}

	return config, nil
}

func isScenario(name string) bool {
	for _, known := range AllScenarios {
		if name == known {
			return true
		}
	}
	return false
}
