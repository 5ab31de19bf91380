// Package i18n renders user-facing messages in the caller's language.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

type Translator struct {
	bundle   *goi18n.Bundle
	fallback string
}

// New loads the embedded message files. fallback is used when a requested
// language has no translation.
func New(fallback string) (*Translator, error) {
	tag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("invalid default locale %q: %w", fallback, err)
	}

	bundle := goi18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := fs.Glob(locales, "locales/*.json")
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if _, err := bundle.LoadMessageFileFS(locales, f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	return &Translator{bundle: bundle, fallback: tag.String()}, nil
}

// Localize renders message id for lang, which may be an Accept-Language style
// list. Unknown languages fall back to the default locale.
func (t *Translator) Localize(lang, id string, data map[string]interface{}) (string, error) {
	loc := goi18n.NewLocalizer(t.bundle, lang, t.fallback)
	return loc.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
}

func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.String()
	}
	return out
}
