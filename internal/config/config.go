package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment keys read by the harness. ENVIRONEMNT and
// DEFAULT_DOWNLOAD_DIRECTRY are spelled the way existing deployments export them.
const (
	KeyEnvironment     = "ENVIRONEMNT"
	KeyAppURL          = "APPURL"
	KeyBrowser         = "BROWSER"
	KeyImplicitWait    = "IMPLICIT_WAIT"
	KeyExplicitTimeout = "EXPLICIT_TIMEOUT"
	KeyEmailEndpoint   = "EMAILENDPOINT"
	KeyEmailSubject    = "EMAILSUBJECT"
	KeyEmailBody       = "EMAILBODY"
	KeyEmailIsHTML     = "EMAILISHTML"
	KeyEmailToList     = "EMAILTOLIST"
	KeyEmailCCList     = "EMAILCCLIST"
	KeyEmailServiceKey = "EMAILSERVICEKEY"
	KeyTestReportEmail = "TESTREPORTEMAIL"
	KeyTestReportPDF   = "TESTREPORTPDF"
	KeyDownloadDir     = "DEFAULT_DOWNLOAD_DIRECTRY"
)

var (
	ErrConfiguration  = errors.New("configuration error")
	ErrMissingKey     = errors.New("required key is not set")
	ErrInvalidInteger = errors.New("value is not a base-10 integer")
)

// ConfigurationError identifies the key whose value could not be resolved.
type ConfigurationError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if errors.Is(e.Err, ErrMissingKey) {
		return fmt.Sprintf("config %s: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("config %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

type Kind int

const (
	KindString Kind = iota
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	default:
		return "string"
	}
}

// Field binds an accessor to the environment key it reads.
type Field struct {
	Accessor string
	Key      string
	Kind     Kind
	Purpose  string
}

// Schema lists every key the facade knows about, in accessor order.
var Schema = []Field{
	{"Environment", KeyEnvironment, KindString, "deployment tag"},
	{"AppURL", KeyAppURL, KindString, "application entry URL"},
	{"Browser", KeyBrowser, KindString, "browser identifier"},
	{"ImplicitTimeOut", KeyImplicitWait, KindInt, "implicit element wait, seconds"},
	{"ExplicitTimeout", KeyExplicitTimeout, KindInt, "explicit wait budget, seconds"},
	{"EmailEndpoint", KeyEmailEndpoint, KindString, "mail-service URL"},
	{"EmailSubject", KeyEmailSubject, KindString, "report email subject"},
	{"EmailBody", KeyEmailBody, KindString, "report email body template"},
	{"EmailIsHTML", KeyEmailIsHTML, KindString, "whether the body is HTML"},
	{"ToEmailList", KeyEmailToList, KindString, "comma-separated recipients"},
	{"CCEmailList", KeyEmailCCList, KindString, "comma-separated cc recipients"},
	{"EmailServiceKey", KeyEmailServiceKey, KindString, "mail-service credential"},
	{"EmailTestReport", KeyTestReportEmail, KindString, "path or flag for the email report"},
	{"PDFTestReport", KeyTestReportPDF, KindString, "path or flag for the PDF report"},
	{"DefaultDownloadingDirectory", KeyDownloadDir, KindString, "browser download directory"},
}

type intResult struct {
	value int
	err   error
}

// Config is a snapshot of the harness environment. It is immutable once
// loaded and safe for concurrent reads.
//
// String accessors return "" when their key is unset; use Lookup to tell an
// unset key from an empty one. Integer accessors return a
// *ConfigurationError when their key is unset or not a base-10 integer.
type Config struct {
	raw  map[string]string
	ints map[string]intResult
}

// Load snapshots the process environment.
func Load() *Config {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom snapshots the schema keys using lookup. Integer keys are parsed
// here so every later call returns the same result.
func LoadFrom(lookup func(string) (string, bool)) *Config {
	cfg := &Config{
		raw:  make(map[string]string, len(Schema)),
		ints: make(map[string]intResult),
	}

	for _, f := range Schema {
		value, ok := lookup(f.Key)
		if ok {
			cfg.raw[f.Key] = value
		}
		if f.Kind == KindInt {
			cfg.ints[f.Key] = parseInt(f.Key, value, ok)
		}
	}

	return cfg
}

func parseInt(key, value string, ok bool) intResult {
	if !ok {
		return intResult{err: &ConfigurationError{Key: key, Err: ErrMissingKey}}
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return intResult{err: &ConfigurationError{Key: key, Value: value, Err: ErrInvalidInteger}}
	}
	return intResult{value: i}
}

// Validate returns the first integer key that failed to resolve.
func (c *Config) Validate() error {
	for _, f := range Schema {
		if f.Kind != KindInt {
			continue
		}
		if err := c.ints[f.Key].err; err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the raw value for key and whether it was set.
func (c *Config) Lookup(key string) (string, bool) {
	value, ok := c.raw[key]
	return value, ok
}

func (c *Config) str(key string) string {
	return c.raw[key]
}

func (c *Config) integer(key string) (int, error) {
	r, ok := c.ints[key]
	if !ok {
		return 0, &ConfigurationError{Key: key, Err: ErrMissingKey}
	}
	return r.value, r.err
}

func (c *Config) Environment() string { return c.str(KeyEnvironment) }

func (c *Config) AppURL() string { return c.str(KeyAppURL) }

func (c *Config) Browser() string { return c.str(KeyBrowser) }

// ImplicitTimeOut is the implicit element wait in seconds.
func (c *Config) ImplicitTimeOut() (int, error) { return c.integer(KeyImplicitWait) }

// ExplicitTimeout is the explicit wait budget in seconds.
func (c *Config) ExplicitTimeout() (int, error) { return c.integer(KeyExplicitTimeout) }

func (c *Config) EmailEndpoint() string { return c.str(KeyEmailEndpoint) }

func (c *Config) EmailSubject() string { return c.str(KeyEmailSubject) }

func (c *Config) EmailBody() string { return c.str(KeyEmailBody) }

// EmailIsHTML is returned as exported; callers decide how to read it.
func (c *Config) EmailIsHTML() string { return c.str(KeyEmailIsHTML) }

func (c *Config) ToEmailList() string { return c.str(KeyEmailToList) }

func (c *Config) CCEmailList() string { return c.str(KeyEmailCCList) }

func (c *Config) EmailServiceKey() string { return c.str(KeyEmailServiceKey) }

func (c *Config) EmailTestReport() string { return c.str(KeyTestReportEmail) }

func (c *Config) PDFTestReport() string { return c.str(KeyTestReportPDF) }

func (c *Config) DefaultDownloadingDirectory() string { return c.str(KeyDownloadDir) }

func (c *Config) ImplicitWait() (time.Duration, error) {
	return c.seconds(KeyImplicitWait)
}

func (c *Config) ExplicitWait() (time.Duration, error) {
	return c.seconds(KeyExplicitTimeout)
}

func (c *Config) seconds(key string) (time.Duration, error) {
	n, err := c.integer(key)
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

func (c *Config) ToRecipients() []string {
	return splitList(c.ToEmailList())
}

func (c *Config) CCRecipients() []string {
	return splitList(c.CCEmailList())
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
