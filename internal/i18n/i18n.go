// Package i18n funnels gdvm's user-facing messages through a
// message-key lookup instead of letting callers concatenate English
// directly (spec §7 "all messages funneled through a localization
// interface"). It implements only the contract the original Rust tool
// built on fluent_bundle/unic_langid: an embedded bundle per locale,
// keyed lookup with Sprintf-style arguments, and a $LANG-driven
// selection that falls back to en-US for an unknown locale or a key
// missing from it.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFS embed.FS

// fallback is the locale every lookup ultimately falls back to.
const fallback = "en-US"

var (
	loadOnce sync.Once
	bundles  map[string]map[string]string
)

func load() {
	bundles = make(map[string]map[string]string)
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			continue
		}
		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			continue
		}
		bundles[name] = messages
	}
}

// Locale reports the effective locale tag, derived from $LANG the way
// the original tool did: the part before an encoding suffix
// ("en_US.UTF-8" -> "en_US"), with underscores normalized to hyphens.
// It does not need to name a locale gdvm actually ships a bundle for;
// T falls back to en-US either way.
func Locale() string {
	lang := os.Getenv("LANG")
	if lang == "" {
		return fallback
	}
	if i := strings.IndexByte(lang, '.'); i >= 0 {
		lang = lang[:i]
	}
	return strings.ReplaceAll(lang, "_", "-")
}

// T looks up key in the locale Locale() selects, falling back to
// en-US when that locale has no bundle or no entry for key, and
// formats the result with args via fmt.Sprintf. An unknown key (a
// typo, or a locale/fallback mismatch) returns the key itself so a
// missing translation is loud rather than silently swallowed.
func T(key string, args ...any) string {
	loadOnce.Do(load)

	tmpl, ok := bundles[Locale()][key]
	if !ok {
		tmpl, ok = bundles[fallback][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
