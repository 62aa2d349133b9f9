// Package i18n translates user-facing CLI messages. Catalogs are embedded
// YAML files, one per language, keyed by message id.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator resolves message ids for one language.
type Translator struct {
	localizer *goi18n.Localizer
	lang      language.Tag
}

// New loads every embedded catalog and returns a Translator for lang.
// Unknown or malformed tags fall back to English.
func New(lang string) (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile(path.Join("locales", f.Name()))
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.Name(), err)
		}
	}

	tag := language.English
	if parsed, err := language.Parse(lang); err == nil {
		matcher := language.NewMatcher(bundle.LanguageTags())
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = bundle.LanguageTags()[idx]
		}
	}

	return &Translator{localizer: goi18n.NewLocalizer(bundle, tag.String()), lang: tag}, nil
}

// Lang is the catalog actually in use.
func (t *Translator) Lang() string { return t.lang.String() }

// T translates id, filling template fields from data. A missing id is
// returned unchanged.
func (t *Translator) T(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}
