package i18n_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terassyi/gdvm/internal/i18n"
)

func TestTFormatsWithArgs(t *testing.T) {
	got := i18n.T("error.version_not_found", "4.2")
	assert.Equal(t, `no release matches version "4.2"`, got)
}

func TestTFallsBackToEnUSForUnknownLocale(t *testing.T) {
	t.Setenv("LANG", "xx-XX.UTF-8")
	got := i18n.T("cli.upgrade_up_to_date")
	assert.Equal(t, "gdvm is already up to date", got)
}

func TestTReturnsKeyWhenMissing(t *testing.T) {
	got := i18n.T("no.such.key")
	assert.Equal(t, "no.such.key", got)
}

func TestLocaleStripsEncodingAndNormalizesSeparators(t *testing.T) {
	t.Setenv("LANG", "en_US.UTF-8")
	assert.Equal(t, "en-US", i18n.Locale())

	os.Unsetenv("LANG")
	assert.Equal(t, "en-US", i18n.Locale())
}
