package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("APPURL", "https://example.test")
	t.Setenv("IMPLICIT_WAIT", "5")

	cfg := Load()

	assert.Equal(t, "https://example.test", cfg.AppURL())
	wait, err := cfg.ImplicitTimeOut()
	require.NoError(t, err)
	assert.Equal(t, 5, wait)
}

func TestStringAccessors(t *testing.T) {
	accessors := map[string]func(*Config) string{
		KeyEnvironment:     (*Config).Environment,
		KeyAppURL:          (*Config).AppURL,
		KeyBrowser:         (*Config).Browser,
		KeyEmailEndpoint:   (*Config).EmailEndpoint,
		KeyEmailSubject:    (*Config).EmailSubject,
		KeyEmailBody:       (*Config).EmailBody,
		KeyEmailIsHTML:     (*Config).EmailIsHTML,
		KeyEmailToList:     (*Config).ToEmailList,
		KeyEmailCCList:     (*Config).CCEmailList,
		KeyEmailServiceKey: (*Config).EmailServiceKey,
		KeyTestReportEmail: (*Config).EmailTestReport,
		KeyTestReportPDF:   (*Config).PDFTestReport,
		KeyDownloadDir:     (*Config).DefaultDownloadingDirectory,
	}

	for _, f := range Schema {
		if f.Kind != KindString {
			continue
		}
		get, ok := accessors[f.Key]
		require.True(t, ok, "no accessor under test for %s", f.Key)

		t.Run(f.Accessor, func(t *testing.T) {
			cfg := LoadFrom(mapLookup(map[string]string{f.Key: "value-of-" + f.Key}))
			assert.Equal(t, "value-of-"+f.Key, get(cfg))

			empty := LoadFrom(mapLookup(nil))
			assert.Equal(t, "", get(empty))
		})
	}
	assert.Len(t, accessors, len(Schema)-2)
}

func TestIntegerAccessors(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		set     bool
		want    int
		wantErr error
	}{
		{"Positive", "5", true, 5, nil},
		{"Zero", "0", true, 0, nil},
		{"Negative", "-3", true, -3, nil},
		{"Explicit plus", "+7", true, 7, nil},
		{"Not numeric", "abc", true, 0, ErrInvalidInteger},
		{"Decimal", "1.5", true, 0, ErrInvalidInteger},
		{"Padded", " 5", true, 0, ErrInvalidInteger},
		{"Empty", "", true, 0, ErrInvalidInteger},
		{"Unset", "", false, 0, ErrMissingKey},
	}

	for _, key := range []string{KeyImplicitWait, KeyExplicitTimeout} {
		for _, tt := range tests {
			t.Run(key+"/"+tt.name, func(t *testing.T) {
				env := map[string]string{}
				if tt.set {
					env[key] = tt.value
				}
				cfg := LoadFrom(mapLookup(env))

				var got int
				var err error
				if key == KeyImplicitWait {
					got, err = cfg.ImplicitTimeOut()
				} else {
					got, err = cfg.ExplicitTimeout()
				}

				if tt.wantErr == nil {
					require.NoError(t, err)
					assert.Equal(t, tt.want, got)
					return
				}

				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrConfiguration)
				assert.Contains(t, err.Error(), key)

				var cerr *ConfigurationError
				require.True(t, errors.As(err, &cerr))
				assert.Equal(t, key, cerr.Key)
			})
		}
	}
}

func TestInvalidImplicitWaitFailsValidation(t *testing.T) {
	cfg := LoadFrom(mapLookup(map[string]string{
		KeyImplicitWait:    "abc",
		KeyExplicitTimeout: "10",
	}))

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "IMPLICIT_WAIT")
}

func TestValidateReportsFirstIntegerKeyInSchemaOrder(t *testing.T) {
	cfg := LoadFrom(mapLookup(nil))

	err := cfg.Validate()
	require.Error(t, err)

	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KeyImplicitWait, cerr.Key)
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestValidatePasses(t *testing.T) {
	cfg := LoadFrom(mapLookup(map[string]string{
		KeyImplicitWait:    "5",
		KeyExplicitTimeout: "30",
	}))

	assert.NoError(t, cfg.Validate())
}

func TestMisspelledKeysOnly(t *testing.T) {
	cfg := LoadFrom(mapLookup(map[string]string{
		"ENVIRONEMNT":                "prod",
		"ENVIRONMENT":                "staging",
		"DEFAULT_DOWNLOAD_DIRECTORY": "/tmp/ignored",
	}))

	assert.Equal(t, "prod", cfg.Environment())
	assert.Equal(t, "", cfg.DefaultDownloadingDirectory())

	cfg = LoadFrom(mapLookup(map[string]string{"ENVIRONMENT": "staging"}))
	assert.Equal(t, "", cfg.Environment())
}

func TestLookupDistinguishesUnsetFromEmpty(t *testing.T) {
	cfg := LoadFrom(mapLookup(map[string]string{KeyBrowser: ""}))

	v, ok := cfg.Lookup(KeyBrowser)
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = cfg.Lookup(KeyAppURL)
	assert.False(t, ok)
}

func TestAccessorsAreStable(t *testing.T) {
	env := map[string]string{
		KeyAppURL:       "https://example.test",
		KeyImplicitWait: "5",
	}
	cfg := LoadFrom(mapLookup(env))

	env[KeyAppURL] = "https://changed.test"
	env[KeyImplicitWait] = "9"

	for i := 0; i < 3; i++ {
		assert.Equal(t, "https://example.test", cfg.AppURL())
		wait, err := cfg.ImplicitTimeOut()
		require.NoError(t, err)
		assert.Equal(t, 5, wait)
	}
}

func TestWaitDurations(t *testing.T) {
	cfg := LoadFrom(mapLookup(map[string]string{
		KeyImplicitWait:    "5",
		KeyExplicitTimeout: "30",
	}))

	implicit, err := cfg.ImplicitWait()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, implicit)

	explicit, err := cfg.ExplicitWait()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, explicit)

	_, err = LoadFrom(mapLookup(nil)).ExplicitWait()
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestRecipients(t *testing.T) {
	cfg := LoadFrom(mapLookup(map[string]string{
		KeyEmailToList: "a@example.test, b@example.test,,",
		KeyEmailCCList: " ",
	}))

	assert.Equal(t, []string{"a@example.test", "b@example.test"}, cfg.ToRecipients())
	assert.Empty(t, cfg.CCRecipients())
	assert.Equal(t, "a@example.test, b@example.test,,", cfg.ToEmailList())
}

func TestSchemaKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Schema {
		assert.False(t, seen[f.Key], "duplicate key %s", f.Key)
		seen[f.Key] = true
	}
	assert.Len(t, Schema, 15)
}
