// Package element defines the pages and widgets managed by curtain.
//
// An Element carries its visibility, opacity, active view type, a data record
// and up to one view per input modality. Page and Widget add the toggle rules
// of their variant: a page is either current or not, a widget may be shown
// alongside any number of other widgets and is ordered by priority.
package element

import (
	"time"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/input"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
)

// ID is the stable identity that resolves an element to its single instance.
type ID string

func (id ID) String() string { return string(id) }

// Kind distinguishes the element variants.
type Kind int

const (
	KindPage Kind = iota
	KindWidget
)

func (k Kind) String() string {
	if k == KindWidget {
		return "widget"
	}
	return "page"
}

// Config describes an element at construction time.
type Config struct {
	ID           ID
	DataID       ID   // Identity of the data record; defaults to ID
	Data         any  // Data record shared by every view
	Keyboard     View // View for keyboard and mouse users
	Gamepad      View // View for gamepad users
	Mobile       View // View for touch users
	AlwaysUpdate bool // Process the element even while it is hidden

	Priority      int  // Widgets only: higher priorities draw above lower ones
	ShowOnStartup bool // Widgets only: visible once the manager awakens

	OnEnable  func() // Called when the element is toggled on
	OnDisable func() // Called when the element is toggled off
}

// ViewChange is emitted whenever an element switches views.
type ViewChange struct {
	Element *Element
	OldType constants.ViewType
	NewType constants.ViewType
	OldView View
	NewView View
}

// Child is a page or widget handed to a manager at startup.
type Child interface {
	ID() ID
	Kind() Kind
}

// Layer orders elements within their container.
type Layer interface {
	BringToFront(id ID)
}

// Animator starts and cancels visibility transitions. *transition.Scheduler
// satisfies it.
type Animator interface {
	Start(key string, target transition.Target, req transition.Request) *transition.Handle
	Cancel(key string) bool
}

// Element holds the state shared by pages and widgets.
type Element struct {
	id           ID
	kind         Kind
	dataID       ID
	data         any
	views        [constants.ViewTypeCount]View
	viewType     constants.ViewType
	on           bool
	active       bool
	opacity      float64
	alwaysUpdate bool
	layer        Layer

	onEnable  func()
	onDisable func()

	toggled     []func(*Element)
	toggledOn   []func(*Element)
	toggledOff  []func(*Element)
	viewChanged []func(ViewChange)
}

func newElement(kind Kind, cfg Config) *Element {
	dataID := cfg.DataID
	if dataID == "" {
		dataID = cfg.ID
	}
	e := &Element{
		id:           cfg.ID,
		kind:         kind,
		dataID:       dataID,
		data:         cfg.Data,
		alwaysUpdate: cfg.AlwaysUpdate,
		onEnable:     cfg.OnEnable,
		onDisable:    cfg.OnDisable,
	}
	e.views[constants.ViewTypeKeyboard] = cfg.Keyboard
	e.views[constants.ViewTypeGamepad] = cfg.Gamepad
	e.views[constants.ViewTypeMobile] = cfg.Mobile
	return e
}

func (e *Element) ID() ID                       { return e.id }
func (e *Element) Kind() Kind                   { return e.kind }
func (e *Element) DataID() ID                   { return e.dataID }
func (e *Element) Data() any                    { return e.data }
func (e *Element) ViewType() constants.ViewType { return e.viewType }
func (e *Element) AlwaysUpdate() bool           { return e.alwaysUpdate }

// Visible reports whether the element is toggled on. A hiding element is
// already not visible while its fade-out is still running.
func (e *Element) Visible() bool { return e.on }

// Active reports whether the element participates in the scene: true from the
// start of a show until the end of a hide.
func (e *Element) Active() bool { return e.active }

func (e *Element) Opacity() float64 { return e.opacity }

func (e *Element) SetOpacity(alpha float64) {
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	e.opacity = alpha
}

// SetData replaces the data record.
func (e *Element) SetData(data any) { e.data = data }

// UpdateData calls fn with the data record when fn is not nil.
func (e *Element) UpdateData(fn func(data any)) {
	if fn != nil {
		fn(e.data)
	}
}

// SetLayer attaches the container that orders this element.
func (e *Element) SetLayer(l Layer) { e.layer = l }

// View returns the view for vt. Unknown view types resolve to the keyboard view.
func (e *Element) View(vt constants.ViewType) View {
	if !vt.Valid() {
		vt = constants.ViewTypeKeyboard
	}
	return e.views[vt]
}

// CurrentView returns the view for the element's view type.
func (e *Element) CurrentView() View { return e.View(e.viewType) }

// OnToggled registers a listener fired once per completed toggle.
func (e *Element) OnToggled(fn func(*Element)) { e.toggled = append(e.toggled, fn) }

// OnToggledOn registers a listener fired once per completed show.
func (e *Element) OnToggledOn(fn func(*Element)) { e.toggledOn = append(e.toggledOn, fn) }

// OnToggledOff registers a listener fired once per completed hide.
func (e *Element) OnToggledOff(fn func(*Element)) { e.toggledOff = append(e.toggledOff, fn) }

// OnViewChanged registers a listener fired on every ChangeView.
func (e *Element) OnViewChanged(fn func(ViewChange)) { e.viewChanged = append(e.viewChanged, fn) }

// ChangeView switches the element to the view for vt, emitting a ViewChange.
func (e *Element) ChangeView(vt constants.ViewType) {
	change := ViewChange{
		Element: e,
		OldType: e.viewType,
		NewType: vt,
		OldView: e.View(e.viewType),
		NewView: e.View(vt),
	}
	for _, fn := range e.viewChanged {
		fn(change)
	}
	e.switchView(vt)
}

// switchView deactivates the current view and activates the one for vt.
func (e *Element) switchView(vt constants.ViewType) {
	if vt != e.viewType {
		if old := e.View(e.viewType); old != nil {
			old.OnDisable()
			old.SetActive(false)
		}
	}

	e.viewType = vt
	if v := e.View(vt); v != nil {
		v.OnEnable()
		v.SetActive(true)
	}
}

// HandleInput forwards s to the current view when it consumes input.
func (e *Element) HandleInput(s input.Sample) {
	if h, ok := e.CurrentView().(InputHandler); ok {
		h.OnInput(s)
	}
}

// Process runs the current view's per-tick logic while the element is on or
// marked AlwaysUpdate.
func (e *Element) Process(dt time.Duration) {
	if !e.on && !e.alwaysUpdate {
		return
	}
	if p, ok := e.CurrentView().(Processor); ok {
		p.OnProcess(dt)
	}
}

// Awaken sets the initial view type and activates only the matching view.
func (e *Element) Awaken(vt constants.ViewType) {
	e.viewType = vt
	for i, v := range e.views {
		if v != nil {
			v.SetActive(constants.ViewType(i) == vt)
		}
	}
}

// AnimationKey identifies the element's transitions. Pages and widgets live in
// separate tables, so the key carries the kind as well as the identity.
func (e *Element) AnimationKey() string { return e.kind.String() + ":" + string(e.id) }

// hideAway puts the element in its hidden resting state without events.
func (e *Element) hideAway() {
	e.opacity = 0
	e.active = false
	e.on = false
}

// animate starts the visibility transition for the element's current on state.
func (e *Element) animate(anim Animator, spec *transition.Spec) {
	if e.on {
		e.active = true
	}
	anim.Start(e.AnimationKey(), e, transition.Request{
		On:         e.on,
		Duration:   spec.Duration(e.on),
		Effect:     spec.EffectOrDefault(),
		OnComplete: e.finishToggle,
	})
}

// finishToggle applies the terminal state of a toggle and fires its events.
func (e *Element) finishToggle() {
	e.active = e.on
	for _, fn := range e.toggled {
		fn(e)
	}
	if e.on {
		for _, fn := range e.toggledOn {
			fn(e)
		}
	} else {
		for _, fn := range e.toggledOff {
			fn(e)
		}
	}
}

// enter runs the hooks of a toggle that just started.
func (e *Element) enter(vt constants.ViewType) {
	if e.on {
		if e.onEnable != nil {
			e.onEnable()
		}
		e.switchView(vt)
		return
	}
	if e.onDisable != nil {
		e.onDisable()
	}
}

func (e *Element) bringToFront() {
	if e.layer != nil {
		e.layer.BringToFront(e.id)
	}
}

// ViewSource reports the view type newly shown elements should present.
// *input.Adapter satisfies it.
type ViewSource interface {
	ViewType() constants.ViewType
}

// FixedView is a ViewSource that always reports the same view type.
type FixedView constants.ViewType

func (v FixedView) ViewType() constants.ViewType { return constants.ViewType(v) }

// ViewTypeOf returns the view type of src, or keyboard when src is nil.
func ViewTypeOf(src ViewSource) constants.ViewType {
	if src == nil {
		return constants.ViewTypeKeyboard
	}
	return src.ViewType()
}
