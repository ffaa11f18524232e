package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/trendops/storecheck/internal/browser"
	internalcli "github.com/trendops/storecheck/internal/cli"
	"github.com/trendops/storecheck/internal/config"
	"github.com/trendops/storecheck/internal/database"
	"github.com/trendops/storecheck/internal/journey"
	"github.com/trendops/storecheck/internal/repository"
	"github.com/trendops/storecheck/internal/screenshot"
	"github.com/trendops/storecheck/internal/services"
	"github.com/trendops/storecheck/internal/shop"
)

var version = "0.1.0"

// setupLogging configures the console logger from the configured level
func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// RunCommand returns the journey runner command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Execute journeys against the storefront",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "journey",
				Usage: "journey to execute, repeatable (default: all)",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "storefront to run against (overrides STORECHECK_BASE_URL)",
			},
			&cli.StringFlag{
				Name:  "keyword",
				Usage: "search keyword (overrides STORECHECK_SEARCH_KEYWORD)",
			},
			&cli.BoolFlag{
				Name:  "headed",
				Usage: "run with a visible browser window",
			},
			&cli.BoolFlag{
				Name:  "isolated",
				Usage: "open a fresh tab for every journey",
			},
		},
		Action: runJourneys,
	}
}

func runJourneys(c *cli.Context) error {
	reportConfig := config.LoadReportConfig(os.Getenv)
	setupLogging(reportConfig.LogLevel)

	targetConfig := config.LoadTargetConfig()
	if base := c.String("base-url"); base != "" {
		targetConfig.BaseURL = base
	}
	if keyword := c.String("keyword"); keyword != "" {
		targetConfig.SearchKeyword = keyword
	}

	browserConfig := config.LoadBrowserConfig(os.Getenv)
	if c.Bool("headed") {
		browserConfig.Headless = false
	}

	journeys, err := journey.Select(c.StringSlice("journey"))
	if err != nil {
		return err
	}

	recorder, cleanup, err := buildRecorder(reportConfig)
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := browser.Launch(browserConfig)
	if err != nil {
		return err
	}
	defer session.Close()

	runner := &journey.Runner{
		Session:  session,
		Target:   targetConfig,
		Recorder: recorder,
		Logger:   log.Logger,
		Isolated: c.Bool("isolated"),
	}
	if reportConfig.ScreenshotOnFailure {
		runner.Capture = func(label string) (string, error) {
			return screenshot.Capture(session.Page(), reportConfig.ScreenshotDir, label)
		}
	}

	runs, err := runner.RunAll(journeys)
	if err != nil {
		return err
	}

	for _, run := range runs {
		fmt.Println("  " + run.Outcome())
	}
	summary := services.Summarize(runs)
	fmt.Println(summary.String())

	if reportConfig.WebhookURL != "" {
		report := services.BuildSuiteReport("storecheck", targetConfig.BaseURL, runs)
		if err := services.NewNotifier(reportConfig.WebhookURL).NotifySuiteFinished(report); err != nil {
			log.Warn().Err(err).Msg("webhook notification failed")
		}
	}

	if !summary.AllPassed() {
		return cli.Exit(fmt.Sprintf("%d of %d journeys failed", summary.Failed, summary.Total), 1)
	}
	return nil
}

// buildRecorder picks the run result sinks: the JSONL artifact always, the
// Postgres store on top when its configuration is present
func buildRecorder(cfg config.ReportConfig) (services.Recorder, func(), error) {
	jsonl := services.NewJSONLRecorder(cfg.ResultsFile)
	if !config.PostgresConfigured(os.Getenv) {
		return jsonl, func() {}, nil
	}

	if err := database.Connect(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	store := services.NewStoreRecorder(repository.NewRunRepository())
	return services.NewMultiRecorder(store, jsonl), func() { database.Close() }, nil
}

// ServeCommand returns the fixture storefront command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local fixture storefront",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "listen port (overrides PORT)",
			},
		},
		Action: func(c *cli.Context) error {
			deps, err := buildStoreDependencies(c.String("port"))
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

// buildStoreDependencies creates all handlers for the fixture storefront
func buildStoreDependencies(portOverride string) (internalcli.StoreDependencies, error) {
	var deps internalcli.StoreDependencies

	deps.ServerConfig = config.LoadServerConfig()
	if portOverride != "" {
		deps.ServerConfig.Port = portOverride
	}

	catalog := shop.NewCatalog()
	carts := shop.NewCartStore()

	homeHandler, err := shop.NewHomeHandler("templates/home.html", catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create home handler: %w", err)
	}
	deps.HomeHandler = homeHandler

	searchHandler, err := shop.NewSearchHandler("templates/search.html", catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create search handler: %w", err)
	}
	deps.SearchHandler = searchHandler

	productHandler, err := shop.NewProductHandler("templates/product.html", catalog)
	if err != nil {
		return deps, fmt.Errorf("failed to create product handler: %w", err)
	}
	deps.ProductHandler = productHandler

	basketHandler, err := shop.NewBasketHandler("templates/cart.html", carts)
	if err != nil {
		return deps, fmt.Errorf("failed to create basket handler: %w", err)
	}
	deps.BasketHandler = basketHandler

	loginHandler, err := shop.NewLoginHandler("templates/login.html")
	if err != nil {
		return deps, fmt.Errorf("failed to create login handler: %w", err)
	}
	deps.LoginHandler = loginHandler

	deps.CartAPIHandler = shop.NewCartAPIHandler(catalog, carts)
	deps.ProductsAPIHandler = shop.NewProductsAPIHandler(catalog)

	return deps, nil
}

// InstallCommand returns the browser install command
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the driver's browsers ahead of time",
		Action: func(c *cli.Context) error {
			if err := playwright.Install(&playwright.RunOptions{
				Browsers: []string{"chromium"},
			}); err != nil {
				return fmt.Errorf("failed to install browsers: %w", err)
			}
			log.Info().Msg("browsers installed")
			return nil
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storecheck",
		Usage:   "Storefront journey checker",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			ServeCommand(),
			InstallCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
