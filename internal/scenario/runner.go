package scenario

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/adyen/swaglabs/internal/browser"
	"github.com/adyen/swaglabs/internal/config"
)

// Result is the outcome of one scenario run
type Result struct {
	Scenario string
	State    State
	History  []State
	// Item is the inventory entry the scenario picked, if it got that far.
	Item     *Item
	Duration time.Duration
	Err      error
}

// Passed reports whether the scenario reached its final state
func (r Result) Passed() bool {
	return r.Err == nil
}

// LastCheckpoint returns the last state reached before any failure
func (r Result) LastCheckpoint() State {
	for i := len(r.History) - 1; i >= 0; i-- {
		if r.History[i] != StateFailed {
			return r.History[i]
		}
	}
	return StateStart
}

// Runner executes scenarios, each in a fresh session from driver
type Runner struct {
	driver browser.Driver
	site   *config.SiteConfig
	opts   Options
}

// NewRunner creates a runner. Empty credential and shopper fields fall back
// to the defaults one by one.
func NewRunner(driver browser.Driver, site *config.SiteConfig, opts Options) *Runner {
	defaults := config.DefaultCredentials()
	fillEmpty(&opts.Credentials.Standard, defaults.Standard)
	fillEmpty(&opts.Credentials.Locked, defaults.Locked)
	fillEmpty(&opts.Credentials.Error, defaults.Error)
	fillEmpty(&opts.Credentials.Password, defaults.Password)

	fillEmpty(&opts.Shopper.FirstName, DefaultShopper.FirstName)
	fillEmpty(&opts.Shopper.LastName, DefaultShopper.LastName)
	fillEmpty(&opts.Shopper.PostalCode, DefaultShopper.PostalCode)

	return &Runner{
		driver: driver,
		site:   site,
		opts:   opts,
	}
}

func fillEmpty(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
}

// Run executes one scenario in its own session
func (r *Runner) Run(ctx context.Context, sc Scenario) Result {
	start := time.Now()
	progress := NewProgress()

	item, err := r.execute(ctx, sc, progress)
	if err == nil && progress.State() != sc.Final {
		err = fmt.Errorf("%w: scenario %s stopped in %s, want %s", ErrInvalidTransition, sc.Name, progress.State(), sc.Final)
	}

	result := Result{
		Scenario: sc.Name,
		Item:     item,
		Err:      err,
	}

	if err != nil {
		progress.Fail()
	}
	result.State = progress.State()
	result.History = progress.History()
	result.Duration = time.Since(start)

	if err != nil {
		log.Printf("Scenario %s failed after %s: %v", sc.Name, result.LastCheckpoint(), err)
	} else {
		log.Printf("Scenario %s passed in %s", sc.Name, result.Duration.Round(time.Millisecond))
	}

	return result
}

func (r *Runner) execute(ctx context.Context, sc Scenario, progress *Progress) (*Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scenario not started: %w", err)
	}

	session, err := r.driver.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to open browser session: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("Warning: failed to close session for %s: %v", sc.Name, err)
		}
	}()

	e := &execution{
		ctx:      ctx,
		session:  session,
		site:     r.site,
		opts:     r.opts,
		progress: progress,
	}
	err = sc.run(e)
	return e.item, err
}

// RunAll executes scenarios concurrently, one session each. Results are in
// the order of scenarios; one failure does not stop the others.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) []Result {
	results := make([]Result, len(scenarios))

	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func(i int, sc Scenario) {
			defer wg.Done()
			results[i] = r.Run(ctx, sc)
		}(i, sc)
	}
	wg.Wait()

	return results
}
