// Package i18n resolves message keys to localized strings.
//
// Locale tables are flat JSON files embedded at build time. Lookups fall back
// from the requested locale to English and finally to the key itself, so a
// missing translation never breaks composition.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localesFS embed.FS

const DefaultLocale = "en"

// Translator resolves a message key.
type Translator interface {
	T(key string) string
}

// Map is a fixed key table, handy for tests and tools.
type Map map[string]string

func (m Map) T(key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// Bundle holds every embedded locale table.
type Bundle struct {
	tables  map[string]map[string]string
	tags    []language.Tag
	matcher language.Matcher
}

var (
	defaultBundle *Bundle
	loadOnce      sync.Once
	loadErr       error
)

// Default returns the embedded bundle, loading it on first use.
func Default() (*Bundle, error) {
	loadOnce.Do(func() {
		defaultBundle, loadErr = load()
	})
	return defaultBundle, loadErr
}

// MustDefault is Default for init paths where a broken embed is a programming error.
func MustDefault() *Bundle {
	b, err := Default()
	if err != nil {
		panic(err)
	}
	return b
}

func load() (*Bundle, error) {
	entries, err := localesFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	b := &Bundle{tables: make(map[string]map[string]string)}
	// English first so the matcher treats it as the fallback.
	b.tags = append(b.tags, language.English)

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		raw, err := localesFS.ReadFile(path.Join("locales", name))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		table := make(map[string]string)
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		locale := strings.TrimSuffix(name, ".json")
		b.tables[locale] = table
		if locale != DefaultLocale {
			tag, err := language.Parse(locale)
			if err != nil {
				return nil, fmt.Errorf("locale %s: %w", name, err)
			}
			b.tags = append(b.tags, tag)
		}
	}

	if _, ok := b.tables[DefaultLocale]; !ok {
		return nil, fmt.Errorf("missing %s locale", DefaultLocale)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Locales lists the available locale codes.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.tags))
	for _, tag := range b.tags {
		base, _ := tag.Base()
		out = append(out, base.String())
	}
	return out
}

// Match picks the best supported locale for an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}
	_, idx, _ := b.matcher.Match(tags...)
	base, _ := b.tags[idx].Base()
	return base.String()
}

// For returns a Translator bound to locale.
func (b *Bundle) For(locale string) Translator {
	if _, ok := b.tables[locale]; !ok {
		locale = DefaultLocale
	}
	return &localizer{bundle: b, locale: locale}
}

type localizer struct {
	bundle *Bundle
	locale string
}

func (l *localizer) T(key string) string {
	if v, ok := l.bundle.tables[l.locale][key]; ok {
		return v
	}
	if v, ok := l.bundle.tables[DefaultLocale][key]; ok {
		return v
	}
	return key
}
