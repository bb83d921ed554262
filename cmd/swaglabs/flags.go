package main

import (
	"strconv"
	"strings"

	"github.com/adyen/swaglabs/internal/config"
	"github.com/urfave/cli/v2"
)

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "shop to run against",
			Value:   config.DefaultBaseURL,
			EnvVars: []string{"SWAG_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    "driver",
			Usage:   "automation driver: playwright, rod or selenium",
			Value:   config.DriverPlaywright,
			EnvVars: []string{"SWAG_DRIVER"},
		},
		&cli.StringFlag{
			Name:    "browser",
			Usage:   "browser engine: chromium, firefox or webkit",
			Value:   config.BrowserChromium,
			EnvVars: []string{"SWAG_BROWSER"},
		},
		&cli.BoolFlag{
			Name:    "headless",
			Usage:   "run the browser without a window",
			Value:   true,
			EnvVars: []string{"SWAG_HEADLESS"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "how long locators and page assertions wait",
			Value:   config.DefaultTimeout,
			EnvVars: []string{"SWAG_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:    "selenium-url",
			Usage:   "remote WebDriver endpoint for the selenium driver",
			EnvVars: []string{"SELENIUM_URL"},
		},
		&cli.StringSliceFlag{
			Name:    "scenario",
			Usage:   "scenario to run, repeatable (default: all)",
			EnvVars: []string{"SWAG_SCENARIOS"},
		},
		&cli.BoolFlag{
			Name:    "verify-checkout-badge",
			Usage:   "also assert the cart badge grows in the checkout scenario",
			EnvVars: []string{"SWAG_CHECKOUT_BADGE_CHECK"},
		},
	}
}

// flagEnv exposes the run flags under their environment variable names so
// the config loaders validate flag values the same way as the environment
func flagEnv(c *cli.Context) func(string) string {
	return func(key string) string {
		switch key {
		case "SWAG_BASE_URL":
			return c.String("base-url")
		case "SWAG_DRIVER":
			return c.String("driver")
		case "SWAG_BROWSER":
			return c.String("browser")
		case "SWAG_HEADLESS":
			return strconv.FormatBool(c.Bool("headless"))
		case "SWAG_TIMEOUT":
			return c.Duration("timeout").String()
		case "SELENIUM_URL":
			return c.String("selenium-url")
		case "SWAG_SCENARIOS":
			return strings.Join(c.StringSlice("scenario"), ",")
		case "SWAG_CHECKOUT_BADGE_CHECK":
			return strconv.FormatBool(c.Bool("verify-checkout-badge"))
		default:
			return ""
		}
	}
}
