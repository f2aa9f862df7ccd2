// Package overlay manages the set of visible widgets and their z-order.
//
// Widgets are layered in ascending priority. Within a priority band the most
// recently shown (or brought to front) widget draws last. Moving a widget never
// takes it out of its band, so a low priority widget brought to the front still
// draws below every higher priority widget.
package overlay

import (
	"log/slog"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/registry"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
)

// Controller tracks visible widgets. It is not safe for concurrent use; call it
// from the update loop only.
type Controller struct {
	widgets *registry.Registry[*element.Widget]
	anim    element.Animator
	view    element.ViewSource
	layers  []*element.Widget // z-order, front last
	shown   map[element.ID]bool
	logger  *slog.Logger
}

// New creates a controller with no visible widgets. Widgets registered with
// widgets, before or after New, are layered by the controller.
func New(widgets *registry.Registry[*element.Widget], anim element.Animator, view element.ViewSource, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		widgets: widgets,
		anim:    anim,
		view:    view,
		layers:  make([]*element.Widget, 0),
		shown:   make(map[element.ID]bool),
		logger:  logger,
	}

	for _, w := range widgets.All() {
		c.adopt(w)
	}
	widgets.OnRegister(c.adopt)

	return c
}

func (c *Controller) adopt(w *element.Widget) {
	w.SetLayer(c)
	c.insert(w)
}

// Show turns the widget for id on and adds it to the visible set.
func (c *Controller) Show(id element.ID, spec *transition.Spec) (*element.Widget, error) {
	return c.set(id, nil, true, spec)
}

// ShowWith is Show, calling update with the widget's data record first.
func (c *Controller) ShowWith(id element.ID, update func(data any), spec *transition.Spec) (*element.Widget, error) {
	return c.set(id, update, true, spec)
}

// Hide turns the widget for id off and removes it from the visible set.
func (c *Controller) Hide(id element.ID, spec *transition.Spec) (*element.Widget, error) {
	return c.set(id, nil, false, spec)
}

// Toggle hides the widget for id if it is visible and shows it otherwise.
func (c *Controller) Toggle(id element.ID, spec *transition.Spec) (*element.Widget, error) {
	return c.ToggleWith(id, nil, spec)
}

// ToggleWith is Toggle, calling update with the widget's data record first.
func (c *Controller) ToggleWith(id element.ID, update func(data any), spec *transition.Spec) (*element.Widget, error) {
	w, err := c.widgets.Resolve(id)
	if err != nil {
		return nil, err
	}
	return c.set(id, update, !c.shown[w.ID()], spec)
}

func (c *Controller) set(id element.ID, update func(data any), on bool, spec *transition.Spec) (*element.Widget, error) {
	w, err := c.widgets.Resolve(id)
	if err != nil {
		return nil, err
	}

	w.UpdateData(update)

	if on {
		if !c.shown[id] {
			c.place(w)
		}
		c.shown[id] = true
	} else {
		delete(c.shown, id)
	}

	if w.Toggle(c.anim, element.ViewTypeOf(c.view), on, spec) {
		c.logger.Debug("widget toggled", "id", id, "on", on, "shown", len(c.shown))
	}

	return w, nil
}

// ShowAll shows every registered widget in registration order.
func (c *Controller) ShowAll(spec *transition.Spec) {
	for _, w := range c.widgets.All() {
		_, _ = c.set(w.ID(), nil, true, spec)
	}
}

// HideAll hides every registered widget in registration order.
func (c *Controller) HideAll(spec *transition.Spec) {
	for _, w := range c.widgets.All() {
		_, _ = c.set(w.ID(), nil, false, spec)
	}
}

// IsShown reports whether the widget for id is in the visible set.
func (c *Controller) IsShown(id element.ID) bool {
	return c.shown[id]
}

// Shown returns the visible widgets in z-order, front last.
func (c *Controller) Shown() []*element.Widget {
	out := make([]*element.Widget, 0, len(c.shown))
	for _, w := range c.layers {
		if c.shown[w.ID()] {
			out = append(out, w)
		}
	}
	return out
}

// ChangeView switches the widget for id to vt, instantiating it if needed.
func (c *Controller) ChangeView(id element.ID, vt constants.ViewType) error {
	w, err := c.widgets.Resolve(id)
	if err != nil {
		return err
	}
	w.ChangeView(vt)
	return nil
}

// Awaken puts every registered widget in its resting state for vt: hidden,
// except widgets that show on startup, which become visible immediately.
func (c *Controller) Awaken(vt constants.ViewType) {
	for _, w := range c.widgets.All() {
		c.anim.Cancel(w.AnimationKey())
		w.HideAway()
		w.Awaken(vt)
		delete(c.shown, w.ID())
	}

	for _, w := range c.widgets.All() {
		if !w.ShowOnStartup() {
			continue
		}
		c.shown[w.ID()] = true
		w.Toggle(c.anim, vt, true, transition.Reset(0))
	}
}
