// Package i18n holds the display strings of the crew tracker, one YAML file
// per locale and namespace, and exposes them through x/text message printers.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other locale falls back to.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

type localeFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle is the set of loaded locales.
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag
	names   []string
	matcher language.Matcher
	builder *catalog.Builder
}

// Load returns the bundle embedded in the binary.
func Load() (*Bundle, error) {
	return LoadFS(embeddedFS)
}

// LoadFS reads every locales/<locale>/<namespace>.yaml file in fsys.
//
// Precondition: fsys must define BaseLocale.
// Postcondition: every locale contains every BaseLocale key; keys missing
// from a locale carry the BaseLocale text.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("no locale files found")
	}
	slices.Sort(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	var errs []error
	for _, p := range paths {
		if err := b.addFile(fsys, p); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	base, ok := b.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}

	b.names = []string{BaseLocale}
	for locale := range b.locales {
		if locale != BaseLocale {
			b.names = append(b.names, locale)
		}
	}
	slices.Sort(b.names[1:])

	b.builder = catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	for _, locale := range b.names {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		msgs := b.locales[locale]
		for key, text := range base {
			if _, ok := msgs[key]; !ok {
				msgs[key] = text
			}
		}
		for key, text := range msgs {
			if err := b.builder.SetString(tag, key, text); err != nil {
				return nil, fmt.Errorf("register %s %q: %w", locale, key, err)
			}
		}
		b.tags = append(b.tags, tag)
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) addFile(fsys fs.FS, p string) error {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return fmt.Errorf("read %s: %w", p, err)
	}
	var f localeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse %s: %w", p, err)
	}

	dirLocale := path.Base(path.Dir(p))
	fileNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))
	switch {
	case f.Locale != dirLocale:
		return fmt.Errorf("%s: locale %q must match directory %q", p, f.Locale, dirLocale)
	case f.Namespace != fileNamespace:
		return fmt.Errorf("%s: namespace %q must match file name %q", p, f.Namespace, fileNamespace)
	case len(f.Messages) == 0:
		return fmt.Errorf("%s: no messages", p)
	}

	msgs, ok := b.locales[f.Locale]
	if !ok {
		msgs = map[string]string{}
		b.locales[f.Locale] = msgs
	}
	for key, text := range f.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("%s: blank message key", p)
		}
		if _, dup := msgs[key]; dup {
			return fmt.Errorf("%s: duplicate key %q in locale %s", p, key, f.Locale)
		}
		msgs[key] = text
	}
	return nil
}

// Locales returns the loaded locale names, BaseLocale first.
func (b *Bundle) Locales() []string {
	return slices.Clone(b.names)
}

// Match returns the loaded locale closest to the requested one. Unparseable
// or unsupported requests resolve to BaseLocale.
func (b *Bundle) Match(locale string) string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return BaseLocale
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return BaseLocale
	}
	return b.names[idx]
}

// Message returns the text for key in the matched locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	text, ok := b.locales[b.Match(locale)][key]
	return text, ok
}

// Printer returns a printer for the matched locale. Printing an unknown key
// prints the key itself.
func (b *Bundle) Printer(locale string) *message.Printer {
	tag := language.MustParse(b.Match(locale))
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

// Text returns the text for key in the matched locale, or key itself when no
// locale defines it.
func (b *Bundle) Text(locale, key string) string {
	if text, ok := b.Message(locale, key); ok {
		return text
	}
	return key
}

// Localizer renders text and numbers for one locale.
type Localizer struct {
	bundle  *Bundle
	locale  string
	printer *message.Printer
}

// Localizer returns a Localizer for the locale matched from locale.
func (b *Bundle) Localizer(locale string) *Localizer {
	matched := b.Match(locale)
	return &Localizer{bundle: b, locale: matched, printer: b.Printer(matched)}
}

// Locale returns the matched locale name.
func (l *Localizer) Locale() string { return l.locale }

// Text returns the text for key, or key itself when undefined.
func (l *Localizer) Text(key string) string { return l.bundle.Text(l.locale, key) }

// Number formats v with one decimal using the locale's separators.
func (l *Localizer) Number(v float64) string { return l.printer.Sprintf("%.1f", v) }
