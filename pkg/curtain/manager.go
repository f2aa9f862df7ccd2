package curtain

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/input"
	"github.com/BrandonKowalski/curtain/pkg/curtain/internal"
	"github.com/BrandonKowalski/curtain/pkg/curtain/overlay"
	"github.com/BrandonKowalski/curtain/pkg/curtain/registry"
	"github.com/BrandonKowalski/curtain/pkg/curtain/router"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
	"go.uber.org/atomic"
)

// Manager owns the registries, the transition scheduler, the router, the
// overlay controller and the presentation adapter of one UI.
//
// Every method except Post, AddSource, ViewType, Running and Close mutates
// engine state and must be called from the update loop: from Run's goroutine
// (inside a Post callback or an element hook) or from a caller's own loop that
// also calls Tick.
type Manager struct {
	pages    *registry.Registry[*element.Page]
	widgets  *registry.Registry[*element.Widget]
	sched    *transition.Scheduler
	router   *router.Router
	overlay  *overlay.Controller
	adapter  *input.Adapter
	starting element.ID
	fallback *transition.Spec

	posted    chan func(*Manager)
	samples   chan input.Sample
	done      chan struct{}
	closeOnce sync.Once
	sourcesMu sync.Mutex
	sources   []input.Source
	running   *atomic.Bool

	logger *slog.Logger
}

// New creates a Manager. Nothing is shown until Awaken or an Open/Show call.
func New(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = internal.GetInternalLogger()
	}

	size := opts.QueueSize
	if size <= 0 {
		size = constants.DefaultSampleQueueSize
	}

	m := &Manager{
		starting: opts.StartingPage,
		fallback: opts.Transition,
		posted:   make(chan func(*Manager), size),
		samples:  make(chan input.Sample, size),
		done:     make(chan struct{}),
		running:  atomic.NewBool(false),
		logger:   logger,
	}

	m.pages = registry.New[*element.Page]("page", opts.Pages, opts.PageInstantiator, logger)
	m.widgets = registry.New[*element.Widget]("widget", opts.Widgets, opts.WidgetInstantiator, logger)
	m.sched = transition.NewScheduler(logger)
	m.adapter = input.NewAdapter(opts.ViewType, m, logger)
	m.router = router.New(m.pages, m.sched, m.adapter, logger)
	m.overlay = overlay.New(m.widgets, m.sched, m.adapter, logger)

	return m
}

func (m *Manager) spec(s *transition.Spec) *transition.Spec {
	if s == nil {
		return m.fallback
	}
	return s
}

// AddPage registers a preloaded page. A duplicate identity is discarded.
func (m *Manager) AddPage(p *element.Page) bool {
	return m.pages.Register(p)
}

// AddWidget registers a preloaded widget in its priority band.
// A duplicate identity is discarded.
func (m *Manager) AddWidget(w *element.Widget) bool {
	return m.widgets.Register(w)
}

// Adopt registers static children built at startup and returns how many were
// kept. Duplicates of an identity already registered are discarded.
func (m *Manager) Adopt(children ...element.Child) int {
	kept := 0
	for _, c := range children {
		var ok bool
		switch v := c.(type) {
		case *element.Page:
			ok = m.AddPage(v)
		case *element.Widget:
			ok = m.AddWidget(v)
		}
		if ok {
			kept++
		}
	}
	return kept
}

// Awaken puts every registered element in its resting state, shows the
// widgets marked ShowOnStartup and opens the starting page, if any.
func (m *Manager) Awaken() {
	vt := m.adapter.ViewType()

	for _, p := range m.pages.All() {
		m.sched.Cancel(p.AnimationKey())
		p.HideAway()
		p.Awaken(vt)
	}
	m.overlay.Awaken(vt)

	if m.starting != "" {
		if _, err := m.router.Start(m.starting); err != nil {
			m.logger.Warn("could not open starting page", "id", m.starting, "error", err)
		}
	}

	m.logger.Debug("manager awakened",
		"pages", m.pages.Len(),
		"widgets", m.widgets.Len(),
		"shown", len(m.overlay.Shown()),
		"view_type", vt.String())
}

// OpenPage hides the current page and shows the page for id.
// Returns nil if id cannot be resolved.
func (m *Manager) OpenPage(id element.ID, spec *transition.Spec) *element.Page {
	p, err := m.router.Open(id, m.spec(spec))
	if err != nil {
		m.logger.Warn("could not open page", "id", id, "error", err)
		return nil
	}
	return p
}

// OpenPageWith is OpenPage, calling update with the page's data first.
func (m *Manager) OpenPageWith(id element.ID, update func(data any), spec *transition.Spec) *element.Page {
	p, err := m.router.OpenWith(id, update, m.spec(spec))
	if err != nil {
		m.logger.Warn("could not open page", "id", id, "error", err)
		return nil
	}
	return p
}

// ClosePage hides the current page, leaving none current.
func (m *Manager) ClosePage(spec *transition.Spec) *element.Page {
	p, err := m.router.Close(m.spec(spec))
	if err != nil {
		m.logger.Debug("nothing to close", "error", err)
		return nil
	}
	return p
}

// ClosePageIf closes the current page only if it is the page for id.
func (m *Manager) ClosePageIf(id element.ID, spec *transition.Spec) *element.Page {
	p, err := m.router.CloseIf(id, m.spec(spec))
	if err != nil {
		m.logger.Debug("nothing to close", "id", id, "error", err)
		return nil
	}
	return p
}

// GoBack reopens the previous page. Returns nil when there is no history.
func (m *Manager) GoBack(spec *transition.Spec) *element.Page {
	p, err := m.router.Back(m.spec(spec))
	if err != nil {
		m.logger.Warn("could not go back", "error", err)
		return nil
	}
	return p
}

// GoForward reopens the page left by the last GoBack. Returns nil when there
// is no future.
func (m *Manager) GoForward(spec *transition.Spec) *element.Page {
	p, err := m.router.Forward(m.spec(spec))
	if err != nil {
		m.logger.Warn("could not go forward", "error", err)
		return nil
	}
	return p
}

// ShowWidget shows the widget for id. Returns nil if id cannot be resolved.
func (m *Manager) ShowWidget(id element.ID, spec *transition.Spec) *element.Widget {
	return m.widgetOp("show", id)(m.overlay.Show(id, m.spec(spec)))
}

// ShowWidgetWith is ShowWidget, calling update with the widget's data first.
func (m *Manager) ShowWidgetWith(id element.ID, update func(data any), spec *transition.Spec) *element.Widget {
	return m.widgetOp("show", id)(m.overlay.ShowWith(id, update, m.spec(spec)))
}

// HideWidget hides the widget for id.
func (m *Manager) HideWidget(id element.ID, spec *transition.Spec) *element.Widget {
	return m.widgetOp("hide", id)(m.overlay.Hide(id, m.spec(spec)))
}

// ToggleWidget hides the widget for id if shown and shows it otherwise.
func (m *Manager) ToggleWidget(id element.ID, spec *transition.Spec) *element.Widget {
	return m.widgetOp("toggle", id)(m.overlay.Toggle(id, m.spec(spec)))
}

// ToggleWidgetWith is ToggleWidget, calling update with the widget's data first.
func (m *Manager) ToggleWidgetWith(id element.ID, update func(data any), spec *transition.Spec) *element.Widget {
	return m.widgetOp("toggle", id)(m.overlay.ToggleWith(id, update, m.spec(spec)))
}

func (m *Manager) widgetOp(op string, id element.ID) func(*element.Widget, error) *element.Widget {
	return func(w *element.Widget, err error) *element.Widget {
		if err != nil {
			m.logger.Warn("could not "+op+" widget", "id", id, "error", err)
			return nil
		}
		return w
	}
}

// ShowAllWidgets shows every registered widget.
func (m *Manager) ShowAllWidgets(spec *transition.Spec) {
	m.overlay.ShowAll(m.spec(spec))
}

// HideAllWidgets hides every registered widget.
func (m *Manager) HideAllWidgets(spec *transition.Spec) {
	m.overlay.HideAll(m.spec(spec))
}

// ChangeCurrentPageView switches the current page to vt.
func (m *Manager) ChangeCurrentPageView(vt constants.ViewType) {
	m.router.ChangeCurrentView(vt)
}

// ChangePageView switches the page for id to vt.
func (m *Manager) ChangePageView(id element.ID, vt constants.ViewType) {
	if err := m.router.ChangeView(id, vt); err != nil {
		m.logger.Warn("could not change page view", "id", id, "error", err)
	}
}

// ChangeWidgetView switches the widget for id to vt.
func (m *Manager) ChangeWidgetView(id element.ID, vt constants.ViewType) {
	if err := m.overlay.ChangeView(id, vt); err != nil {
		m.logger.Warn("could not change widget view", "id", id, "error", err)
	}
}

// GetPage returns the page for id, instantiating it if needed.
func (m *Manager) GetPage(id element.ID) *element.Page {
	p, _ := m.pages.Get(id)
	return p
}

// GetWidget returns the widget for id, instantiating it if needed.
func (m *Manager) GetWidget(id element.ID) *element.Widget {
	w, _ := m.widgets.Get(id)
	return w
}

// GetData resolves a data record shared by a page or widget.
func (m *Manager) GetData(dataID element.ID) (any, bool) {
	if data, ok := m.pages.Data(dataID); ok {
		return data, true
	}
	if data, ok := m.widgets.Data(dataID); ok {
		return data, true
	}
	m.logger.Warn("could not find data", "id", dataID)
	return nil, false
}

func (m *Manager) ContainsPage(id element.ID) bool   { return m.pages.Contains(id) }
func (m *Manager) ContainsWidget(id element.ID) bool { return m.widgets.Contains(id) }

// CurrentPage returns the current page, or nil.
func (m *Manager) CurrentPage() *element.Page { return m.router.Current() }

// PreviousPage returns the identity GoBack would open.
func (m *Manager) PreviousPage() (element.ID, bool) { return m.router.Previous() }

// NextPage returns the identity GoForward would open.
func (m *Manager) NextPage() (element.ID, bool) { return m.router.Next() }

// ShownWidgets returns the visible widgets in z-order, front last.
func (m *Manager) ShownWidgets() []*element.Widget { return m.overlay.Shown() }

// ViewType returns the shared view type. Safe to call from any goroutine.
func (m *Manager) ViewType() constants.ViewType { return m.adapter.ViewType() }

// SetViewType switches the shared view type as if input of that modality arrived.
func (m *Manager) SetViewType(vt constants.ViewType) bool { return m.adapter.SetViewType(vt) }

// OnViewTypeChanged registers a listener for shared view type changes.
func (m *Manager) OnViewTypeChanged(fn func(from, to constants.ViewType)) { m.adapter.OnChange(fn) }

// Feed hands one input sample to the presentation adapter.
func (m *Manager) Feed(s input.Sample) bool { return m.adapter.Feed(s) }

// ViewTargets returns the current page followed by the visible widgets.
func (m *Manager) ViewTargets() []input.Viewer {
	shown := m.overlay.Shown()
	targets := make([]input.Viewer, 0, len(shown)+1)
	if p := m.router.Current(); p != nil {
		targets = append(targets, p)
	}
	for _, w := range shown {
		targets = append(targets, w)
	}
	return targets
}

func (m *Manager) Router() *router.Router           { return m.router }
func (m *Manager) Overlay() *overlay.Controller     { return m.overlay }
func (m *Manager) Scheduler() *transition.Scheduler { return m.sched }

// Tick advances transitions by dt and runs the per-tick logic of visible
// elements and of elements marked AlwaysUpdate.
func (m *Manager) Tick(dt time.Duration) {
	m.sched.Tick(dt)
	for _, p := range m.pages.All() {
		p.Process(dt)
	}
	for _, w := range m.widgets.All() {
		w.Process(dt)
	}
}

// AddSource forwards samples from src to the update loop until src's channel
// closes or the manager is closed. Safe to call from any goroutine.
func (m *Manager) AddSource(src input.Source) {
	m.sourcesMu.Lock()
	m.sources = append(m.sources, src)
	m.sourcesMu.Unlock()

	go func() {
		samples := src.Samples()
		for {
			select {
			case s, ok := <-samples:
				if !ok {
					return
				}
				select {
				case m.samples <- s:
				case <-m.done:
					return
				}
			case <-m.done:
				return
			}
		}
	}()
}

// Post schedules fn to run on the update loop. Safe to call from any
// goroutine. Returns false if the manager is closed.
func (m *Manager) Post(fn func(*Manager)) bool {
	select {
	case <-m.done:
		return false
	default:
	}

	select {
	case m.posted <- fn:
		return true
	case <-m.done:
		return false
	}
}

// Running reports whether Run is active.
func (m *Manager) Running() bool {
	return m.running.Load()
}

// Run is the update loop. It runs posted closures and input samples as they
// arrive and ticks every interval, until ctx is cancelled or the manager is closed.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if !m.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer m.running.Store(false)

	if interval <= 0 {
		interval = constants.DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.logger.Debug("update loop started", "interval", interval)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return nil
		case fn := <-m.posted:
			fn(m)
		case s := <-m.samples:
			m.Feed(s)
		case now := <-ticker.C:
			m.Tick(now.Sub(last))
			last = now
		}
	}
}

// Close stops the update loop and closes every input source.
func (m *Manager) Close() error {
	var errs []error
	m.closeOnce.Do(func() {
		close(m.done)

		m.sourcesMu.Lock()
		defer m.sourcesMu.Unlock()
		for _, src := range m.sources {
			if err := src.Close(); err != nil {
				errs = append(errs, NewInfrastructureError("close_source", err))
			}
		}
	})
	return errors.Join(errs...)
}
