// Package i18n loads the page copy and user-facing messages for each
// supported locale and hands out printers for them.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is the source locale; every other catalog is checked against it.
const DefaultLocale = "sv-SE"

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds every loaded locale.
type Catalog struct {
	builder   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
	keys      map[string]struct{}
}

// Load parses the embedded locale files.
func Load() (*Catalog, error) {
	return LoadFS(embeddedLocales)
}

// MustLoad is Load for package initialisation paths.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFS parses locales/*.yaml from fsys. The file name must match the
// locale it declares and the default locale must be present.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	files := make(map[string]localeFile, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", p, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", p, err)
		}
		file.Locale = strings.TrimSpace(file.Locale)
		if want := strings.TrimSuffix(path.Base(p), ".yaml"); file.Locale != want {
			return nil, fmt.Errorf("locale %s: declared locale %q must match file name %q", p, file.Locale, want)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("locale %s: messages are required", p)
		}
		files[file.Locale] = file
	}

	base, ok := files[DefaultLocale]
	if !ok {
		return nil, fmt.Errorf("default locale %s is not defined", DefaultLocale)
	}

	baseTag := language.MustParse(DefaultLocale)
	c := &Catalog{
		builder:   catalog.NewBuilder(catalog.Fallback(baseTag)),
		supported: []language.Tag{baseTag},
		keys:      make(map[string]struct{}, len(base.Messages)),
	}
	for key := range base.Messages {
		c.keys[key] = struct{}{}
	}

	locales := make([]string, 0, len(files))
	for locale := range files {
		locales = append(locales, locale)
	}
	sort.Strings(locales)

	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", locale, err)
		}
		for key, msg := range files[locale].Messages {
			if _, known := c.keys[key]; !known {
				return nil, fmt.Errorf("locale %s: key %q is not in %s", locale, key, DefaultLocale)
			}
			if err := c.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("locale %s: set %q: %w", locale, key, err)
			}
		}
		if locale != DefaultLocale {
			c.supported = append(c.supported, tag)
		}
	}
	c.matcher = language.NewMatcher(c.supported)
	return c, nil
}

// Supported reports whether locale resolves to a loaded catalog without
// falling back to the default.
func (c *Catalog) Supported(locale string) bool {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return false
	}
	_, _, confidence := c.matcher.Match(tag)
	return confidence >= language.High
}

// Tag resolves locale (a BCP 47 tag or an Accept-Language value) to one of
// the loaded locales.
func (c *Catalog) Tag(locale string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(strings.TrimSpace(locale))
	if err != nil || len(tags) == 0 {
		return c.supported[0]
	}
	_, idx, _ := c.matcher.Match(tags...)
	return c.supported[idx]
}

// Printer returns a printer for the best match of locale.
func (c *Catalog) Printer(locale string) *message.Printer {
	return message.NewPrinter(c.Tag(locale), message.Catalog(c.builder))
}

// Keys returns every message key of the default locale, sorted.
func (c *Catalog) Keys() []string {
	out := make([]string, 0, len(c.keys))
	for key := range c.keys {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
