package input

import (
	"log/slog"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"go.uber.org/atomic"
)

// Viewer is an element that can switch views and receive input.
type Viewer interface {
	ChangeView(vt constants.ViewType)
	HandleInput(s Sample)
}

// Targets yields the elements that should follow view changes: the current
// page (if any) followed by every visible widget.
type Targets interface {
	ViewTargets() []Viewer
}

// TargetsFunc adapts a function to Targets.
type TargetsFunc func() []Viewer

func (f TargetsFunc) ViewTargets() []Viewer { return f() }

// Adapter tracks the shared view type and pushes changes into the targets.
// Feed must be called from the update loop; ViewType may be read from any goroutine.
type Adapter struct {
	viewType *atomic.Int32
	targets  Targets
	onChange []func(from, to constants.ViewType)
	logger   *slog.Logger
}

// NewAdapter creates an adapter starting at initial.
func NewAdapter(initial constants.ViewType, targets Targets, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		viewType: atomic.NewInt32(int32(initial)),
		targets:  targets,
		logger:   logger,
	}
}

// ViewType returns the shared view type.
func (a *Adapter) ViewType() constants.ViewType {
	return constants.ViewType(a.viewType.Load())
}

// OnChange registers a listener called after every view type change.
func (a *Adapter) OnChange(fn func(from, to constants.ViewType)) {
	a.onChange = append(a.onChange, fn)
}

// Feed classifies s, updates the view type if the modality changed, and then
// forwards s to the targets. Returns true if the view type changed.
func (a *Adapter) Feed(s Sample) bool {
	changed := false
	if vt, ok := Classify(s); ok {
		changed = a.SetViewType(vt)
	}

	if a.targets != nil {
		for _, t := range a.targets.ViewTargets() {
			t.HandleInput(s)
		}
	}

	return changed
}

// SetViewType switches the shared view type and broadcasts ChangeView.
// Returns false if vt is already current.
func (a *Adapter) SetViewType(vt constants.ViewType) bool {
	old := constants.ViewType(a.viewType.Swap(int32(vt)))
	if old == vt {
		return false
	}

	a.logger.Debug("view type changed", "from", old.String(), "to", vt.String())

	if a.targets != nil {
		for _, t := range a.targets.ViewTargets() {
			t.ChangeView(vt)
		}
	}
	for _, fn := range a.onChange {
		fn(old, vt)
	}

	return true
}
