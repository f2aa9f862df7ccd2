package element

import (
	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
)

// Widget is an overlay element. Any number of widgets may be visible at once;
// Priority orders them, higher priorities drawing above lower ones even when a
// lower one is brought to the front.
type Widget struct {
	*Element
	priority      int
	showOnStartup bool
}

// NewWidget creates a hidden widget.
func NewWidget(cfg Config) *Widget {
	return &Widget{
		Element:       newElement(KindWidget, cfg),
		priority:      cfg.Priority,
		showOnStartup: cfg.ShowOnStartup,
	}
}

func (w *Widget) Priority() int       { return w.priority }
func (w *Widget) ShowOnStartup() bool { return w.showOnStartup }

// Toggle turns the widget on or off using spec. A spec with ShouldReset
// replays the show cycle from the hidden state even when the widget is already
// on. Returns true if a transition was started.
func (w *Widget) Toggle(anim Animator, vt constants.ViewType, on bool, spec *transition.Spec) bool {
	if w.on == on && !spec.Resets() {
		if w.viewType != vt {
			w.ChangeView(vt)
		}
		return false
	}

	if w.on && on {
		effect := spec.EffectOrDefault()
		effect.Update(w, w.Opacity(), effect.To(w, false), 1.0)
	}

	w.on = on
	if on && spec.FrontOnShow() {
		w.bringToFront()
	}
	w.animate(anim, spec)
	w.enter(vt)

	return true
}

// HideAway puts the widget in its resting state: hidden, unless it shows on startup.
func (w *Widget) HideAway() {
	w.hideAway()
	if w.showOnStartup {
		w.opacity = 1
		w.active = true
		w.on = true
	}
}
