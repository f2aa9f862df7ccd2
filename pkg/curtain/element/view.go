package element

import (
	"time"

	"github.com/BrandonKowalski/curtain/pkg/curtain/input"
)

// View is one input-modality-specific representation of an element.
// Views hold no state of their own that must survive a view switch; that
// belongs in the element's data record.
type View interface {
	OnEnable()
	OnDisable()
	SetActive(active bool)
}

// InputHandler is implemented by views that consume raw input samples.
type InputHandler interface {
	OnInput(s input.Sample)
}

// Processor is implemented by views that run per-tick logic.
type Processor interface {
	OnProcess(dt time.Duration)
}

// BasicView is a View backed by optional callbacks. It records whether it is
// active so callers and tests can observe view switches.
type BasicView struct {
	Name          string
	OnEnableFunc  func()
	OnDisableFunc func()
	OnInputFunc   func(s input.Sample)
	OnProcessFunc func(dt time.Duration)

	active   bool
	enabled  int
	disabled int
}

var (
	_ View         = (*BasicView)(nil)
	_ InputHandler = (*BasicView)(nil)
	_ Processor    = (*BasicView)(nil)
)

// NewBasicView creates a named inactive view.
func NewBasicView(name string) *BasicView {
	return &BasicView{Name: name}
}

func (v *BasicView) OnEnable() {
	v.enabled++
	if v.OnEnableFunc != nil {
		v.OnEnableFunc()
	}
}

func (v *BasicView) OnDisable() {
	v.disabled++
	if v.OnDisableFunc != nil {
		v.OnDisableFunc()
	}
}

func (v *BasicView) SetActive(active bool) {
	v.active = active
}

func (v *BasicView) OnInput(s input.Sample) {
	if v.OnInputFunc != nil {
		v.OnInputFunc(s)
	}
}

func (v *BasicView) OnProcess(dt time.Duration) {
	if v.OnProcessFunc != nil {
		v.OnProcessFunc(dt)
	}
}

// Active reports whether the view is the one currently presented.
func (v *BasicView) Active() bool { return v.active }

// Enabled returns how many times the enable hook fired.
func (v *BasicView) Enabled() int { return v.enabled }

// Disabled returns how many times the disable hook fired.
func (v *BasicView) Disabled() int { return v.disabled }

func (v *BasicView) String() string { return v.Name }
