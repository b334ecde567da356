package locator

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUsage = errors.New("invalid locator template")

type Strategy string

const (
	XPathStrategy Strategy = "xpath"
	CSSStrategy   Strategy = "css"
)

// Locator identifies an element by strategy and selector.
type Locator struct {
	Strategy Strategy
	Value    string
}

func XPath(selector string) Locator {
	return Locator{Strategy: XPathStrategy, Value: selector}
}

func CSS(selector string) Locator {
	return Locator{Strategy: CSSStrategy, Value: selector}
}

// Selector renders the locator in playwright's engine-prefixed form,
// e.g. xpath=//div[text()='Google'].
func (l Locator) Selector() string {
	return string(l.Strategy) + "=" + l.Value
}

func (l Locator) String() string {
	return fmt.Sprintf("By.%s: %s", l.Strategy, l.Value)
}

// PrepareXPathString substitutes value into the single %s placeholder of
// template. A template without a placeholder is returned as is and value is
// dropped. %% renders as a literal percent sign. Any other verb, a dangling
// percent sign or a second %s is rejected with ErrUsage.
func PrepareXPathString(template, value string) (string, error) {
	var b strings.Builder
	b.Grow(len(template) + len(value))

	used := false
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(template) {
			return "", fmt.Errorf("%w: dangling %% at end of %q", ErrUsage, template)
		}
		i++
		switch template[i] {
		case '%':
			b.WriteByte('%')
		case 's':
			if used {
				return "", fmt.Errorf("%w: more than one %%s in %q", ErrUsage, template)
			}
			b.WriteString(value)
			used = true
		default:
			return "", fmt.Errorf("%w: unsupported verb %%%c in %q", ErrUsage, template[i], template)
		}
	}

	return b.String(), nil
}

// MustPrepareXPathString is like PrepareXPathString but panics on a bad template.
func MustPrepareXPathString(template, value string) string {
	s, err := PrepareXPathString(template, value)
	if err != nil {
		panic(err)
	}
	return s
}
