package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maltedev/home-page-e2e/internal/browser"
	"github.com/maltedev/home-page-e2e/internal/config"
	"github.com/maltedev/home-page-e2e/internal/pages"
	"github.com/maltedev/home-page-e2e/pkg/logger"
)

var (
	headless  bool
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "smoke",
	Short: "Open the application home page and report what it shows",
	Long: `Loads the harness configuration from the environment, launches the browser
named by BROWSER, opens APPURL and prints the home page title and whether the
Google heading is visible.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logger.New(logLevel, logFormat))
	},
	RunE: runSmoke,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log format: json, text")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "Run browser in headless mode")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Shutdown signal received")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runSmoke(cmd *cobra.Command, args []string) error {
	log := slog.Default().With("component", "smoke")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	appURL := cfg.AppURL()
	if appURL == "" {
		return fmt.Errorf("invalid configuration: %w", &config.ConfigurationError{
			Key: config.KeyAppURL,
			Err: config.ErrMissingKey,
		})
	}

	opts, err := browser.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	opts.Headless = headless

	log.Info("starting smoke run", "environment", cfg.Environment(), "browser", opts.Browser, "url", appURL)

	session, err := browser.New(opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Error("failed to close browser", "error", err)
		}
	}()

	page, err := session.NewPage()
	if err != nil {
		return err
	}

	if err := session.Open(cmd.Context(), page, appURL); err != nil {
		return err
	}

	home := pages.NewHomePage(page)

	title, err := home.HomePageTitle()
	if err != nil {
		return fmt.Errorf("failed to read page title: %w", err)
	}

	visible, err := browser.IsVisible(page, home.Heading())
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", home.Heading(), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Title: %s\n", title)
	fmt.Fprintf(cmd.OutOrStdout(), "Heading visible: %t\n", visible)

	if !visible {
		if err := session.WaitVisible(page, home.Heading()); err != nil {
			return errors.Join(errHeadingMissing, err)
		}
		log.Info("heading became visible after waiting")
	}

	return nil
}

var errHeadingMissing = errors.New("home page heading not visible")
