package config

import (
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/registry"
)

// PageBuilder creates a page from its manifest entry. The config passed in
// already carries the entry's identity and flags; builders add views and data.
type PageBuilder func(entry Entry, cfg element.Config) (*element.Page, error)

// WidgetBuilder creates a widget from its manifest entry.
type WidgetBuilder func(entry Entry, cfg element.Config) (*element.Widget, error)

// BasePageBuilder creates a page with no views.
func BasePageBuilder(_ Entry, cfg element.Config) (*element.Page, error) {
	return element.NewPage(cfg), nil
}

// BaseWidgetBuilder creates a widget with no views.
func BaseWidgetBuilder(_ Entry, cfg element.Config) (*element.Widget, error) {
	return element.NewWidget(cfg), nil
}

func (e Entry) config() element.Config {
	return element.Config{
		ID:            e.ID,
		DataID:        e.DataID,
		AlwaysUpdate:  e.AlwaysUpdate,
		Priority:      e.Priority,
		ShowOnStartup: e.ShowOnStartup,
	}
}

// PageInstantiator builds pages declared in the manifest with build.
func (m *Manifest) PageInstantiator(build PageBuilder) registry.Instantiator[*element.Page] {
	if build == nil {
		build = BasePageBuilder
	}
	entries := index(m.Pages)
	return registry.InstantiatorFunc[*element.Page](func(id element.ID, loc registry.Location) (*element.Page, error) {
		e, ok := entries[id]
		if !ok {
			return nil, registry.ErrNotFound
		}
		e.Path = loc.Path
		return build(e, e.config())
	})
}

// WidgetInstantiator builds widgets declared in the manifest with build.
func (m *Manifest) WidgetInstantiator(build WidgetBuilder) registry.Instantiator[*element.Widget] {
	if build == nil {
		build = BaseWidgetBuilder
	}
	entries := index(m.Widgets)
	return registry.InstantiatorFunc[*element.Widget](func(id element.ID, loc registry.Location) (*element.Widget, error) {
		e, ok := entries[id]
		if !ok {
			return nil, registry.ErrNotFound
		}
		e.Path = loc.Path
		return build(e, e.config())
	})
}

func index(entries []Entry) map[element.ID]Entry {
	out := make(map[element.ID]Entry, len(entries))
	for _, e := range entries {
		out[e.ID] = e
	}
	return out
}
