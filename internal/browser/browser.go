package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/maltedev/home-page-e2e/internal/config"
	"github.com/maltedev/home-page-e2e/internal/locator"
)

var ErrUnsupportedBrowser = errors.New("unsupported browser")

// Session owns a playwright process, one browser and one context. Pages it
// hands out are borrowed by page objects and die with the session.
type Session struct {
	id      uuid.UUID
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	opts    Options
	logger  *slog.Logger
}

type Options struct {
	Browser         string
	Headless        bool
	ImplicitWait    time.Duration
	ExplicitTimeout time.Duration
	DownloadDir     string
	ViewportWidth   int
	ViewportHeight  int
	Locale          string
}

func DefaultOptions() *Options {
	return &Options{
		Browser:         "chromium",
		Headless:        true,
		ImplicitWait:    10 * time.Second,
		ExplicitTimeout: 30 * time.Second,
		ViewportWidth:   1920,
		ViewportHeight:  1080,
		Locale:          "en-US",
	}
}

// OptionsFromConfig overlays the harness configuration on DefaultOptions.
// Unset keys keep their defaults; a set but malformed wait is an error.
func OptionsFromConfig(cfg *config.Config) (*Options, error) {
	opts := DefaultOptions()

	if name := cfg.Browser(); name != "" {
		opts.Browser = name
	}
	if dir := cfg.DefaultDownloadingDirectory(); dir != "" {
		opts.DownloadDir = dir
	}

	waits := []struct {
		get func() (time.Duration, error)
		dst *time.Duration
	}{
		{cfg.ImplicitWait, &opts.ImplicitWait},
		{cfg.ExplicitWait, &opts.ExplicitTimeout},
	}
	for _, w := range waits {
		d, err := w.get()
		if errors.Is(err, config.ErrMissingKey) {
			continue
		}
		if err != nil {
			return nil, err
		}
		*w.dst = d
	}

	return opts, nil
}

type engine struct {
	name    string
	channel string
}

func resolveEngine(browser string) (engine, error) {
	switch strings.ToLower(strings.TrimSpace(browser)) {
	case "", "chromium":
		return engine{name: "chromium"}, nil
	case "chrome":
		return engine{name: "chromium", channel: "chrome"}, nil
	case "edge", "msedge":
		return engine{name: "chromium", channel: "msedge"}, nil
	case "firefox":
		return engine{name: "firefox"}, nil
	case "webkit", "safari":
		return engine{name: "webkit"}, nil
	default:
		return engine{}, fmt.Errorf("%w: %q", ErrUnsupportedBrowser, browser)
	}
}

func (e engine) browserType(pw *playwright.Playwright) playwright.BrowserType {
	switch e.name {
	case "firefox":
		return pw.Firefox
	case "webkit":
		return pw.WebKit
	default:
		return pw.Chromium
	}
}

func New(opts *Options) (*Session, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	eng, err := resolveEngine(opts.Browser)
	if err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	}
	if eng.channel != "" {
		launchOpts.Channel = playwright.String(eng.channel)
	}
	if opts.DownloadDir != "" {
		launchOpts.DownloadsPath = playwright.String(opts.DownloadDir)
	}

	browser, err := eng.browserType(pw).Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", opts.Browser, err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		AcceptDownloads: playwright.Bool(opts.DownloadDir != ""),
		Locale:          &opts.Locale,
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
	}

	browserCtx, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	id := uuid.New()
	s := &Session{
		id:      id,
		pw:      pw,
		browser: browser,
		context: browserCtx,
		opts:    *opts,
		logger:  slog.Default().With("component", "browser", "session", id.String()),
	}
	s.logger.Info("browser session started", "browser", opts.Browser, "headless", opts.Headless)

	return s, nil
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// NewPage opens a page whose default timeout is the implicit wait and whose
// navigation timeout is the explicit timeout.
func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create new page: %w", err)
	}

	page.SetDefaultTimeout(millis(s.opts.ImplicitWait))
	page.SetDefaultNavigationTimeout(millis(s.opts.ExplicitTimeout))

	return page, nil
}

func (s *Session) Open(ctx context.Context, page playwright.Page, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.logger.Info("opening page", "url", url)
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}

	return nil
}

// WaitVisible blocks until the element is visible or the explicit timeout
// runs out.
func (s *Session) WaitVisible(page playwright.Page, l locator.Locator) error {
	return page.Locator(l.Selector()).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(millis(s.opts.ExplicitTimeout)),
	})
}

func (s *Session) Close() error {
	var errs []error

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %w", errors.Join(errs...))
	}

	s.logger.Info("browser session closed")
	return nil
}

func millis(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
