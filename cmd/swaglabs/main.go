package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/adyen/swaglabs/internal/browser"
	internalcli "github.com/adyen/swaglabs/internal/cli"
	"github.com/adyen/swaglabs/internal/config"
	"github.com/adyen/swaglabs/internal/database"
	"github.com/adyen/swaglabs/internal/repository"
	"github.com/adyen/swaglabs/internal/services"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// buildRunDependencies loads every run setting through the command's flags
func buildRunDependencies(c *cli.Context) (internalcli.RunDependencies, *config.BrowserConfig, error) {
	var deps internalcli.RunDependencies
	getenv := flagEnv(c)

	site, err := config.LoadSiteConfig(getenv)
	if err != nil {
		return deps, nil, fmt.Errorf("invalid site configuration: %w", err)
	}
	deps.Site = site

	run, err := config.LoadRunConfig(getenv)
	if err != nil {
		return deps, nil, fmt.Errorf("invalid scenario selection: %w", err)
	}
	deps.Run = run

	browserConfig, err := config.LoadBrowserConfig(getenv)
	if err != nil {
		return deps, nil, fmt.Errorf("invalid browser configuration: %w", err)
	}

	deps.Credentials = config.DefaultCredentials()

	return deps, browserConfig, nil
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the Swag Labs scenarios in a browser",
		Flags: runFlags(),
		Action: func(c *cli.Context) error {
			deps, browserConfig, err := buildRunDependencies(c)
			if err != nil {
				return err
			}

			driver, err := browser.Open(browserConfig)
			if err != nil {
				return fmt.Errorf("failed to start %s driver: %w", browserConfig.Driver, err)
			}
			defer func() {
				if err := driver.Close(); err != nil {
					log.Printf("Warning: failed to close driver: %v", err)
				}
			}()
			deps.Driver = driver
			log.Printf("Started %s driver (%s, headless=%t)", browserConfig.Driver, browserConfig.Browser, browserConfig.Headless)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if _, err := internalcli.RunScenarios(ctx, deps); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// openOrderRepository uses PostgreSQL when it is configured and memory otherwise.
// The returned function releases the connection.
func openOrderRepository() (services.OrderRepository, func(), error) {
	if !config.PostgresEnabled(os.Getenv) {
		log.Println("POSTGRES_HOSTNAME not set, keeping orders in memory")
		return repository.NewMemoryOrderRepository(), func() {}, nil
	}

	// Connect to database
	if err := database.Connect(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to database successfully")

	// Run database migrations
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	closeDB := func() {
		if err := database.Close(); err != nil {
			log.Printf("Warning: failed to close database: %v", err)
		}
	}
	return repository.NewOrderRepository(), closeDB, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local Swag Labs replica shop",
		Action: func(c *cli.Context) error {
			orderRepo, closeRepo, err := openOrderRepository()
			if err != nil {
				return err
			}
			defer closeRepo()

			serverConfig := config.LoadServerConfig(os.Getenv)
			deps, err := internalcli.BuildShopDependencies(serverConfig, orderRepo)
			if err != nil {
				return err
			}

			log.Printf("Replica shop available at %s", serverConfig.PublicURL)
			return internalcli.RunServe(deps)
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "swaglabs",
		Usage:   "Browser scenarios for the Swag Labs demo shop",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ServeCommand(),
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	if err := newApp().RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
