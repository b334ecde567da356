package browser

import (
	"github.com/playwright-community/playwright-go"

	"github.com/maltedev/home-page-e2e/internal/locator"
)

// TitleSource is anything that can report the current document title.
// playwright.Page satisfies it.
type TitleSource interface {
	Title() (string, error)
}

// PageTitle returns the title of the page behind d. Driver errors are
// returned as is.
func PageTitle(d TitleSource) (string, error) {
	return d.Title()
}

// IsVisible reports whether the first element matching l is visible right now.
func IsVisible(page playwright.Page, l locator.Locator) (bool, error) {
	return page.Locator(l.Selector()).First().IsVisible()
}
