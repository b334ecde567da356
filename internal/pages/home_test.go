package pages

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maltedev/home-page-e2e/internal/locator"
)

// MockDriver is a mock for the browser page
type MockDriver struct {
	mock.Mock
}

func (m *MockDriver) Title() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func TestHomePageTitle(t *testing.T) {
	driver := new(MockDriver)
	driver.On("Title").Return("  Google  ", nil)

	page := NewHomePage(driver)

	title, err := page.HomePageTitle()
	require.NoError(t, err)
	assert.Equal(t, "Google", title)

	current, err := page.CurrentPageTitle()
	require.NoError(t, err)
	assert.Equal(t, "  Google  ", current)

	driver.AssertNumberOfCalls(t, "Title", 2)
}

func TestHomePageTitleIsTrimmedCurrentTitle(t *testing.T) {
	titles := []string{"", "Google", "\tGoogle\n", "  Google Search ", "   "}

	for _, raw := range titles {
		driver := new(MockDriver)
		driver.On("Title").Return(raw, nil)
		page := NewHomePage(driver)

		trimmed, err := page.HomePageTitle()
		require.NoError(t, err)
		current, err := page.CurrentPageTitle()
		require.NoError(t, err)

		assert.Equal(t, strings.TrimSpace(current), trimmed)
	}
}

func TestDriverErrorsPropagateUnchanged(t *testing.T) {
	driverErr := errors.New("target page, context or browser has been closed")

	driver := new(MockDriver)
	driver.On("Title").Return("", driverErr)
	page := NewHomePage(driver)

	_, err := page.HomePageTitle()
	assert.Same(t, driverErr, err)

	_, err = page.CurrentPageTitle()
	assert.Same(t, driverErr, err)

	driver.AssertExpectations(t)
}

func TestHeadingLocator(t *testing.T) {
	page := NewHomePage(new(MockDriver))

	heading := page.Heading()
	assert.Equal(t, locator.XPathStrategy, heading.Strategy)
	assert.Equal(t, "//div[text()='Google']", heading.Value)
}
