package boot

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// NewBundle returns a message bundle with the built-in English and French
// loading messages. extra file systems are searched for further *.toml files
// at their root, which override or add languages.
func NewBundle(extra ...fs.FS) (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	sources := append([]fs.FS{mustSub(locales, "locales")}, extra...)
	for _, fsys := range sources {
		files, err := fs.Glob(fsys, "*.toml")
		if err != nil {
			return nil, err
		}
		for _, name := range files {
			if _, err := bundle.LoadMessageFileFS(fsys, name); err != nil {
				return nil, fmt.Errorf("failed to load messages %s: %w", name, err)
			}
		}
	}

	return bundle, nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Messages renders loading text in the user's language.
type Messages struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// NewMessages creates messages for the first supported language in langs,
// which may be tags like "fr-CA" or Accept-Language strings. English is the fallback.
func NewMessages(bundle *i18n.Bundle, langs ...string) *Messages {
	matcher := language.NewMatcher(bundle.LanguageTags())
	tag, _ := language.MatchStrings(matcher, langs...)
	base, _ := tag.Base()

	return &Messages{
		localizer: i18n.NewLocalizer(bundle, append(slices.Clone(langs), base.String())...),
		tag:       tag,
	}
}

// Language returns the matched language.
func (m *Messages) Language() language.Tag {
	return m.tag
}

// Progress returns the line shown while item loads.
func (m *Messages) Progress(item Item, current, total int) string {
	return m.localize("LoadingItem", map[string]any{
		"Name":    item.Name,
		"Current": current,
		"Total":   total,
	}, nil)
}

// Completed returns the line shown once count items have loaded.
func (m *Messages) Completed(count int) string {
	if count == 0 {
		return m.localize("LoadingEmpty", nil, nil)
	}
	return m.localize("LoadingComplete", map[string]any{"Count": count}, count)
}

func (m *Messages) localize(id string, data map[string]any, plural any) string {
	s, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
		PluralCount:  plural,
	})
	if err != nil {
		return id
	}
	return s
}
