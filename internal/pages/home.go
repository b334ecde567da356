package pages

import (
	"strings"

	"github.com/maltedev/home-page-e2e/internal/browser"
	"github.com/maltedev/home-page-e2e/internal/locator"
)

// Driver is the part of a browser page the page objects need.
// playwright.Page satisfies it.
type Driver interface {
	Title() (string, error)
}

// HomePage models the landing page of the application under test.
//
// The driver is borrowed: HomePage never closes it, and the caller keeps it
// alive for as long as the page object is used. Drivers are not safe for
// concurrent use, so a HomePage belongs to a single scenario.
type HomePage struct {
	driver  Driver
	heading locator.Locator
}

func NewHomePage(driver Driver) *HomePage {
	return &HomePage{
		driver:  driver,
		heading: locator.XPath("//div[text()='Google']"),
	}
}

// HomePageTitle returns the page title without surrounding whitespace.
func (p *HomePage) HomePageTitle() (string, error) {
	title, err := browser.PageTitle(p.driver)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(title), nil
}

// CurrentPageTitle returns the page title exactly as the driver reports it.
func (p *HomePage) CurrentPageTitle() (string, error) {
	return browser.PageTitle(p.driver)
}

// Heading locates the visible "Google" heading.
func (p *HomePage) Heading() locator.Locator {
	return p.heading
}
