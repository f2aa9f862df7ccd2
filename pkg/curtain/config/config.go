// Package config loads the TOML manifest that declares a UI's pages, widgets,
// shared data links and startup defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BrandonKowalski/curtain/pkg/curtain"
	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/registry"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
	"github.com/BurntSushi/toml"
)

//go:embed manifest.example.toml
var exampleManifest []byte

// ErrInvalidManifest indicates a manifest that parsed but cannot be used.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is the parsed manifest file.
type Manifest struct {
	Log     LogConfig `toml:"log"`
	UI      UIConfig  `toml:"ui"`
	Pages   []Entry   `toml:"pages"`
	Widgets []Entry   `toml:"widgets"`
	Data    []Link    `toml:"data"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

// UIConfig contains the manager's startup defaults.
type UIConfig struct {
	ViewType     string   `toml:"view_type"`
	StartingPage string   `toml:"starting_page"`
	FadeIn       Duration `toml:"fade_in"`
	FadeOut      Duration `toml:"fade_out"`
}

// Entry declares one page or widget.
type Entry struct {
	ID            element.ID `toml:"id"`
	Path          string     `toml:"path"`
	DataID        element.ID `toml:"data_id"`
	AlwaysUpdate  bool       `toml:"always_update"`
	Priority      int        `toml:"priority"`        // widgets only
	ShowOnStartup bool       `toml:"show_on_startup"` // widgets only
}

// Link ties a data identity to the element that owns the record.
type Link struct {
	ID       element.ID `toml:"id"`
	LinkedTo element.ID `toml:"linked_to"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates manifest TOML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Default returns the manifest embedded in the package.
func Default() *Manifest {
	m, err := Parse(exampleManifest)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded manifest: %v", err))
	}
	return m
}

// LoadOrDefault loads path, or the file named by CURTAIN_MANIFEST when path is
// empty, falling back to the embedded manifest when neither is set.
func LoadOrDefault(path string) (*Manifest, error) {
	if path == "" {
		path = os.Getenv(constants.ManifestPathEnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// CreateManifestFile writes the embedded manifest to path.
func CreateManifestFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("manifest already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleManifest, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// Validate checks identities, links and the view type.
func (m *Manifest) Validate() error {
	var errs []error

	seen := make(map[element.ID]string)
	check := func(kind string, entries []Entry) {
		for i, e := range entries {
			if e.ID == "" {
				errs = append(errs, fmt.Errorf("%s #%d has no id", kind, i+1))
				continue
			}
			if prev, dup := seen[e.ID]; dup {
				errs = append(errs, fmt.Errorf("%s %q already declared as a %s", kind, e.ID, prev))
				continue
			}
			seen[e.ID] = kind
		}
	}
	check("page", m.Pages)
	check("widget", m.Widgets)

	for _, l := range m.Data {
		if _, ok := seen[l.LinkedTo]; !ok {
			errs = append(errs, fmt.Errorf("data %q is linked to unknown element %q", l.ID, l.LinkedTo))
		}
	}

	if _, ok := constants.ParseViewType(m.UI.ViewType); !ok {
		errs = append(errs, fmt.Errorf("unknown view type %q", m.UI.ViewType))
	}

	if m.UI.StartingPage != "" && seen[element.ID(m.UI.StartingPage)] != "page" {
		errs = append(errs, fmt.Errorf("starting page %q is not a declared page", m.UI.StartingPage))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, errors.Join(errs...))
	}
	return nil
}

// PageLookup returns the page lookup, including data linked to pages.
func (m *Manifest) PageLookup() registry.Lookup {
	return m.lookup(m.Pages)
}

// WidgetLookup returns the widget lookup, including data linked to widgets.
func (m *Manifest) WidgetLookup() registry.Lookup {
	return m.lookup(m.Widgets)
}

func (m *Manifest) lookup(entries []Entry) registry.Lookup {
	l := registry.Lookup{}
	owners := make(map[element.ID]bool, len(entries))
	for _, e := range entries {
		l.Add(e.ID, e.Path)
		owners[e.ID] = true
	}
	for _, d := range m.Data {
		if owners[d.LinkedTo] {
			l.Link(d.ID, d.LinkedTo)
		}
	}
	return l
}

// Transition returns the default transition: a fade of FadeIn and FadeOut.
// Both zero means instant.
func (m *Manifest) Transition() *transition.Spec {
	return transition.FadeInOut(m.UI.FadeIn.Duration, m.UI.FadeOut.Duration)
}

// ViewType returns the initial view type.
func (m *Manifest) ViewType() constants.ViewType {
	vt, _ := constants.ParseViewType(m.UI.ViewType)
	return vt
}

// Options builds manager options from the manifest. The builders create each
// lazily requested element from its entry; nil builders create elements without views.
func (m *Manifest) Options(pages PageBuilder, widgets WidgetBuilder) curtain.Options {
	return curtain.Options{
		Pages:              m.PageLookup(),
		Widgets:            m.WidgetLookup(),
		PageInstantiator:   m.PageInstantiator(pages),
		WidgetInstantiator: m.WidgetInstantiator(widgets),
		StartingPage:       element.ID(m.UI.StartingPage),
		ViewType:           m.ViewType(),
		Transition:         m.Transition(),
		LogPath:            m.Log.Path,
		LogFormat:          m.Log.Format,
		LogLevel:           m.Log.Level,
	}
}
