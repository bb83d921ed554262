package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adyen/swaglabs/internal/browser"
	"github.com/adyen/swaglabs/internal/config"
	"github.com/adyen/swaglabs/internal/scenario"
)

// RunDependencies holds everything a scenario run needs
type RunDependencies struct {
	Driver      browser.Driver
	Site        *config.SiteConfig
	Run         *config.RunConfig
	Credentials config.Credentials
}

// RunScenarios runs the selected scenarios concurrently and logs a summary.
// The error is non-nil when any scenario failed.
func RunScenarios(ctx context.Context, deps RunDependencies) ([]scenario.Result, error) {
	selected, err := scenario.Select(deps.Run.Scenarios)
	if err != nil {
		return nil, err
	}

	runner := scenario.NewRunner(deps.Driver, deps.Site, scenario.Options{
		Credentials:         deps.Credentials,
		VerifyCheckoutBadge: deps.Run.VerifyCheckoutBadge,
	})

	log.Printf("Running %d scenarios against %s", len(selected), deps.Site.BaseURL)
	results := runner.RunAll(ctx, selected)

	var failed int
	for _, result := range results {
		status := "PASS"
		if !result.Passed() {
			status = "FAIL"
			failed++
		}
		log.Printf("%s %-12s %-24s %s", status, result.Scenario, result.State, result.Duration.Round(time.Millisecond))
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return results, nil
}
