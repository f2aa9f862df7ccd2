package router

import (
	"errors"
	"log/slog"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/registry"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
)

var (
	// ErrEmptyHistory indicates Back was called with nothing to go back to.
	ErrEmptyHistory = errors.New("nothing to go back to")

	// ErrEmptyFuture indicates Forward was called with nothing to go forward to.
	ErrEmptyFuture = errors.New("nothing to go forward to")

	// ErrNoCurrentPage indicates Close was called while no page is current.
	ErrNoCurrentPage = errors.New("no current page")
)

// Router manages the current page and its back and forward history.
// It is not safe for concurrent use; call it from the update loop only.
type Router struct {
	pages   *registry.Registry[*element.Page]
	anim    element.Animator
	view    element.ViewSource
	current *element.Page
	history *Stack
	future  *Stack
	order   []element.ID // page z-order, front last
	logger  *slog.Logger
}

// New creates a router without a current page. Pages registered with pages,
// before or after New, are layered by the router.
func New(pages *registry.Registry[*element.Page], anim element.Animator, view element.ViewSource, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Router{
		pages:   pages,
		anim:    anim,
		view:    view,
		history: NewStack(),
		future:  NewStack(),
		order:   make([]element.ID, 0),
		logger:  logger,
	}

	for _, p := range pages.All() {
		r.adopt(p)
	}
	pages.OnRegister(r.adopt)

	return r
}

func (r *Router) adopt(p *element.Page) {
	p.SetLayer(r)
	r.order = append(r.order, p.ID())
}

// Open hides the current page and shows the page for id.
//
// The previously current page is pushed onto the history and the future is
// cleared. If id is already current, only its view is switched when the shared
// view type changed.
func (r *Router) Open(id element.ID, spec *transition.Spec) (*element.Page, error) {
	return r.open(id, nil, spec, false)
}

// OpenWith is Open, calling update with the page's data record before it shows.
func (r *Router) OpenWith(id element.ID, update func(data any), spec *transition.Spec) (*element.Page, error) {
	return r.open(id, update, spec, false)
}

func (r *Router) open(id element.ID, update func(data any), spec *transition.Spec, replay bool) (*element.Page, error) {
	page, err := r.pages.Resolve(id)
	if err != nil {
		return nil, err
	}

	vt := element.ViewTypeOf(r.view)

	if page == r.current {
		page.UpdateData(update)
		page.Toggle(r.anim, vt, true, spec)
		return page, nil
	}

	if prev := r.current; prev != nil {
		if !replay {
			r.history.Push(prev.ID())
		}
		prev.Toggle(r.anim, vt, false, spec)
	}

	page.UpdateData(update)
	page.Toggle(r.anim, vt, true, spec)
	r.current = page

	if !replay {
		r.future.Clear()
	}

	r.logger.Debug("page opened", "id", id, "replay", replay, "history", r.history.Len(), "future", r.future.Len())

	return page, nil
}

// Close hides the current page and pushes it onto the history, leaving no
// page current. The future is cleared.
func (r *Router) Close(spec *transition.Spec) (*element.Page, error) {
	page := r.current
	if page == nil {
		return nil, ErrNoCurrentPage
	}

	r.history.Push(page.ID())
	page.Toggle(r.anim, element.ViewTypeOf(r.view), false, spec)
	r.current = nil
	r.future.Clear()

	r.logger.Debug("page closed", "id", page.ID(), "history", r.history.Len())

	return page, nil
}

// CloseIf closes the current page only if its identity is id.
// Returns nil without error when another page (or none) is current.
func (r *Router) CloseIf(id element.ID, spec *transition.Spec) (*element.Page, error) {
	if r.current == nil || r.current.ID() != id {
		return nil, nil
	}
	return r.Close(spec)
}

// Back opens the most recent page in the history, moving the current page
// onto the future. Returns ErrEmptyHistory and changes nothing when there is
// no history.
func (r *Router) Back(spec *transition.Spec) (*element.Page, error) {
	return r.replay(r.history, r.future, ErrEmptyHistory, spec)
}

// Forward opens the most recent page in the future, moving the current page
// onto the history. Returns ErrEmptyFuture and changes nothing when there is
// no future.
func (r *Router) Forward(spec *transition.Spec) (*element.Page, error) {
	return r.replay(r.future, r.history, ErrEmptyFuture, spec)
}

func (r *Router) replay(from, to *Stack, empty error, spec *transition.Spec) (*element.Page, error) {
	id, ok := from.Peek()
	if !ok {
		return nil, empty
	}

	// Resolve before touching the stacks so a failure leaves them intact.
	if _, err := r.pages.Resolve(id); err != nil {
		return nil, err
	}

	from.Pop()
	if r.current != nil {
		to.Push(r.current.ID())
	}

	return r.open(id, nil, spec, true)
}

// Start instantly shows the page for id as the starting page. It does not
// record the previously current page, if any, in the history.
func (r *Router) Start(id element.ID) (*element.Page, error) {
	return r.open(id, nil, transition.Instant(), true)
}

// Current returns the current page, or nil.
func (r *Router) Current() *element.Page {
	return r.current
}

// Previous returns the identity Back would open.
func (r *Router) Previous() (element.ID, bool) {
	return r.history.Peek()
}

// Next returns the identity Forward would open.
func (r *Router) Next() (element.ID, bool) {
	return r.future.Peek()
}

// History returns the back stack, oldest first.
func (r *Router) History() []element.ID {
	return r.history.Entries()
}

// Future returns the forward stack, oldest first.
func (r *Router) Future() []element.ID {
	return r.future.Entries()
}

// ChangeCurrentView switches the current page, if any, to vt.
func (r *Router) ChangeCurrentView(vt constants.ViewType) {
	if r.current != nil {
		r.current.ChangeView(vt)
	}
}

// ChangeView switches the page for id to vt, instantiating it if needed.
func (r *Router) ChangeView(id element.ID, vt constants.ViewType) error {
	page, err := r.pages.Resolve(id)
	if err != nil {
		return err
	}
	page.ChangeView(vt)
	return nil
}

// BringToFront moves the page for id to the end of the page order.
func (r *Router) BringToFront(id element.ID) {
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			r.order = append(r.order, id)
			return
		}
	}
}

// Order returns the page identities in drawing order, front last.
func (r *Router) Order() []element.ID {
	out := make([]element.ID, len(r.order))
	copy(out, r.order)
	return out
}
