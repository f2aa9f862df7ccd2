// Package trigger binds named UI actions to a target element so that
// buttons, scripts and manifests can drive the manager without code.
package trigger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BrandonKowalski/curtain/pkg/curtain"
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/internal"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
)

// Action represents a manager operation a trigger can perform.
type Action int

const (
	ActionOpenPage       Action = iota // Open the target page
	ActionClosePage                    // Close the current page; target is ignored
	ActionShowWidget                   // Show the target widget
	ActionHideWidget                   // Hide the target widget
	ActionToggleWidget                 // Toggle the target widget
	ActionHideAllWidgets               // Hide every widget; target is ignored
)

var actionNames = [...]string{
	ActionOpenPage:       "open_page",
	ActionClosePage:      "close_page",
	ActionShowWidget:     "show_widget",
	ActionHideWidget:     "hide_widget",
	ActionToggleWidget:   "toggle_widget",
	ActionHideAllWidgets: "hide_all_widgets",
}

// ErrUnknownAction is returned by ParseAction for names it does not know.
var ErrUnknownAction = errors.New("unknown trigger action")

// ErrMissingTarget is returned when an action that needs a target has none.
var ErrMissingTarget = errors.New("trigger action needs a target")

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// NeedsTarget reports whether the action operates on a specific element.
func (a Action) NeedsTarget() bool {
	return a != ActionClosePage && a != ActionHideAllWidgets
}

// ParseAction maps names like "open_page" or "OpenPage" to an Action.
func ParseAction(name string) (Action, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for i, n := range actionNames {
		if key == n || key == strings.ReplaceAll(n, "_", "") {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	v, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Trigger is an action bound to a target. A nil Spec uses the manager's
// default transition.
type Trigger struct {
	Action Action           `toml:"action"`
	Target element.ID       `toml:"target"`
	Spec   *transition.Spec `toml:"-"`
}

// New creates a trigger.
func New(action Action, target element.ID) Trigger {
	return Trigger{Action: action, Target: target}
}

// Parse reads a trigger from "action" or "action:target".
func Parse(s string) (Trigger, error) {
	name, target, _ := strings.Cut(s, ":")
	action, err := ParseAction(name)
	if err != nil {
		return Trigger{}, err
	}
	t := Trigger{Action: action, Target: element.ID(strings.TrimSpace(target))}
	return t, t.Validate()
}

// Validate checks that actions needing a target have one.
func (t Trigger) Validate() error {
	if t.Action.NeedsTarget() && t.Target == "" {
		return fmt.Errorf("%w: %s", ErrMissingTarget, t.Action)
	}
	return nil
}

// WithSpec returns a copy of t using spec.
func (t Trigger) WithSpec(spec *transition.Spec) Trigger {
	t.Spec = spec
	return t
}

func (t Trigger) String() string {
	if !t.Action.NeedsTarget() {
		return t.Action.String()
	}
	return t.Action.String() + ":" + t.Target.String()
}

// Fire performs the action on m. Failures are logged by the manager.
func (t Trigger) Fire(m *curtain.Manager) {
	switch t.Action {
	case ActionOpenPage:
		m.OpenPage(t.Target, t.Spec)
	case ActionClosePage:
		m.ClosePage(t.Spec)
	case ActionShowWidget:
		m.ShowWidget(t.Target, t.Spec)
	case ActionHideWidget:
		m.HideWidget(t.Target, t.Spec)
	case ActionToggleWidget:
		m.ToggleWidget(t.Target, t.Spec)
	case ActionHideAllWidgets:
		m.HideAllWidgets(t.Spec)
	}
}

// Func returns a function that fires t on m, suitable for a view's button hook.
func (t Trigger) Func(m *curtain.Manager) func() {
	return func() { t.Fire(m) }
}

// FireDefault fires t on the instance created by curtain.Init.
func (t Trigger) FireDefault() bool {
	m, ok := curtain.Default()
	if !ok {
		internal.GetInternalLogger().Warn(curtain.ErrNotInstantiated.Error(), "op", "fire_trigger", "trigger", t.String())
		return false
	}
	t.Fire(m)
	return true
}
