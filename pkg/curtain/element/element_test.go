package element

import (
	"testing"
	"time"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
)

type layerRecorder struct {
	fronts []ID
}

func (l *layerRecorder) BringToFront(id ID) { l.fronts = append(l.fronts, id) }

func TestChangeViewSwitchesActiveView(t *testing.T) {
	kb, gp := NewBasicView("kb"), NewBasicView("gp")
	p := NewPage(Config{ID: "menu", Keyboard: kb, Gamepad: gp})
	p.Awaken(constants.ViewTypeKeyboard)

	var changes []ViewChange
	p.OnViewChanged(func(c ViewChange) { changes = append(changes, c) })

	p.ChangeView(constants.ViewTypeGamepad)

	if kb.Active() || !gp.Active() {
		t.Errorf("keyboard active=%t gamepad active=%t", kb.Active(), gp.Active())
	}
	if kb.Disabled() != 1 || gp.Enabled() != 1 {
		t.Errorf("hooks: keyboard disabled %d, gamepad enabled %d; want 1 and 1", kb.Disabled(), gp.Enabled())
	}
	if len(changes) != 1 || changes[0].OldView != View(kb) || changes[0].NewView != View(gp) || changes[0].Element != p.Element {
		t.Errorf("view change event = %+v", changes)
	}

	// Switching to a modality without a view leaves none active.
	p.ChangeView(constants.ViewTypeMobile)
	if gp.Active() || p.CurrentView() != nil {
		t.Error("mobile switch left the gamepad view active")
	}
}

func TestAwakenActivatesMatchingViewOnly(t *testing.T) {
	kb, gp, mb := NewBasicView("kb"), NewBasicView("gp"), NewBasicView("mb")
	w := NewWidget(Config{ID: "hud", Keyboard: kb, Gamepad: gp, Mobile: mb})
	kb.SetActive(true)

	w.Awaken(constants.ViewTypeMobile)

	if kb.Active() || gp.Active() || !mb.Active() {
		t.Errorf("active: kb=%t gp=%t mb=%t; want only mobile", kb.Active(), gp.Active(), mb.Active())
	}
	if w.ViewType() != constants.ViewTypeMobile {
		t.Errorf("ViewType() = %v", w.ViewType())
	}
}

func TestPageToggle(t *testing.T) {
	sched := transition.NewScheduler(nil)
	layer := &layerRecorder{}

	enabled, disabled := 0, 0
	p := NewPage(Config{
		ID:        "menu",
		OnEnable:  func() { enabled++ },
		OnDisable: func() { disabled++ },
	})
	p.SetLayer(layer)

	var events []string
	p.OnToggledOn(func(*Element) { events = append(events, "on") })
	p.OnToggledOff(func(*Element) { events = append(events, "off") })

	if !p.Toggle(sched, constants.ViewTypeKeyboard, true, transition.Fade(100*time.Millisecond)) {
		t.Fatal("Toggle(on) = false")
	}
	if !p.Visible() || !p.Active() || p.Opacity() != 0 {
		t.Errorf("during show visible=%t active=%t opacity=%v", p.Visible(), p.Active(), p.Opacity())
	}
	if enabled != 1 || len(layer.fronts) != 1 {
		t.Errorf("enabled=%d fronts=%v", enabled, layer.fronts)
	}

	if p.Toggle(sched, constants.ViewTypeKeyboard, true, transition.Fade(100*time.Millisecond)) {
		t.Error("Toggle(on) on a visible page started a transition")
	}

	sched.Tick(100 * time.Millisecond)
	if p.Opacity() != 1 {
		t.Errorf("opacity = %v, want 1", p.Opacity())
	}

	p.Toggle(sched, constants.ViewTypeKeyboard, false, transition.Fade(100*time.Millisecond))
	if p.Visible() || !p.Active() {
		t.Errorf("during hide visible=%t active=%t; want false, true", p.Visible(), p.Active())
	}
	sched.Tick(100 * time.Millisecond)
	if p.Active() || disabled != 1 {
		t.Errorf("after hide active=%t disabled=%d", p.Active(), disabled)
	}

	if len(events) != 2 || events[0] != "on" || events[1] != "off" {
		t.Errorf("events = %v, want [on off]", events)
	}
}

func TestWidgetHideAway(t *testing.T) {
	plain := NewWidget(Config{ID: "plain"})
	startup := NewWidget(Config{ID: "startup", ShowOnStartup: true, Priority: 4})

	plain.SetOpacity(0.7)
	plain.HideAway()
	startup.HideAway()

	if plain.Visible() || plain.Active() || plain.Opacity() != 0 {
		t.Error("plain widget not hidden away")
	}
	if !startup.Visible() || !startup.Active() || startup.Opacity() != 1 {
		t.Error("startup widget not resting visible")
	}
	if startup.Priority() != 4 || !startup.ShowOnStartup() {
		t.Error("widget config not kept")
	}
}

func TestProcess(t *testing.T) {
	ticks := 0
	v := NewBasicView("kb")
	v.OnProcessFunc = func(time.Duration) { ticks++ }

	hidden := NewPage(Config{ID: "hidden", Keyboard: v})
	hidden.Process(time.Millisecond)
	if ticks != 0 {
		t.Fatal("hidden page processed")
	}

	always := NewPage(Config{ID: "always", Keyboard: v, AlwaysUpdate: true})
	always.Process(time.Millisecond)
	if ticks != 1 {
		t.Errorf("AlwaysUpdate page processed %d times, want 1", ticks)
	}
}

func TestDataAndOpacity(t *testing.T) {
	p := NewPage(Config{ID: "bag", Data: []string{"sword"}})
	if p.DataID() != "bag" {
		t.Errorf("DataID() = %q, want the element identity", p.DataID())
	}

	p.SetData([]string{"shield"})
	p.UpdateData(func(data any) {
		if got := data.([]string)[0]; got != "shield" {
			t.Errorf("data = %v", got)
		}
	})
	p.UpdateData(nil)

	for _, tc := range []struct{ in, want float64 }{{-1, 0}, {0.3, 0.3}, {4, 1}} {
		p.SetOpacity(tc.in)
		if p.Opacity() != tc.want {
			t.Errorf("SetOpacity(%v) -> %v, want %v", tc.in, p.Opacity(), tc.want)
		}
	}
}

func TestAnimationKeySeparatesKinds(t *testing.T) {
	p := NewPage(Config{ID: "inventory"})
	w := NewWidget(Config{ID: "inventory"})

	if p.AnimationKey() == w.AnimationKey() {
		t.Errorf("page and widget share animation key %q", p.AnimationKey())
	}
	if p.AnimationKey() != "page:inventory" || w.AnimationKey() != "widget:inventory" {
		t.Errorf("keys = %q, %q", p.AnimationKey(), w.AnimationKey())
	}
}
