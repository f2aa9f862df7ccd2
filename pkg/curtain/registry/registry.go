// Package registry resolves element identities to their single live instance.
//
// A Registry keeps one table per element variant. Instances either arrive
// already built (Register) or are created lazily from a static Lookup the
// first time their identity is requested (Get).
package registry

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
)

var (
	// ErrNotFound indicates the identity is neither registered nor in the lookup.
	ErrNotFound = errors.New("identity not found")

	// ErrInstantiationFailed indicates the instantiator could not build the element.
	ErrInstantiationFailed = errors.New("instantiation failed")
)

// Error records a failed registry operation for one identity.
type Error struct {
	Op  string     // Operation that failed (e.g., "resolve", "instantiate")
	ID  element.ID // Identity being resolved
	Err error      // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("registry: %s %q: %v", e.Op, e.ID, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Entry is an element the registry can hold.
type Entry interface {
	comparable
	ID() element.ID
	DataID() element.ID
	Data() any
}

// Instantiator builds a live element from its declared location.
// Failures must be reported through the error.
type Instantiator[T Entry] interface {
	Instantiate(id element.ID, loc Location) (T, error)
}

// InstantiatorFunc adapts a function to Instantiator.
type InstantiatorFunc[T Entry] func(id element.ID, loc Location) (T, error)

func (f InstantiatorFunc[T]) Instantiate(id element.ID, loc Location) (T, error) {
	return f(id, loc)
}

// Registry maps identities to instances of one element variant.
type Registry[T Entry] struct {
	name         string
	items        map[element.ID]T
	order        []element.ID // registration order
	lookup       Lookup
	instantiator Instantiator[T]
	onRegister   []func(T)
	logger       *slog.Logger
}

// New creates an empty registry. name is used in log output ("page", "widget").
// lookup and instantiator may be nil, in which case only registered instances resolve.
func New[T Entry](name string, lookup Lookup, instantiator Instantiator[T], logger *slog.Logger) *Registry[T] {
	if lookup == nil {
		lookup = Lookup{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Registry[T]{
		name:         name,
		items:        make(map[element.ID]T),
		order:        make([]element.ID, 0),
		lookup:       lookup,
		instantiator: instantiator,
		logger:       logger,
	}
}

// Get returns the instance for id, instantiating and registering it from the
// lookup if needed. Unresolvable identities are logged and report false.
func (r *Registry[T]) Get(id element.ID) (T, bool) {
	item, err := r.Resolve(id)
	if err != nil {
		r.logger.Warn("could not resolve "+r.name, "id", id, "error", err)
		return item, false
	}
	return item, true
}

// Resolve is Get without logging; failures are returned as *Error.
func (r *Registry[T]) Resolve(id element.ID) (T, error) {
	var zero T

	if item, ok := r.items[id]; ok {
		return item, nil
	}

	loc, ok := r.lookup[id]
	if !ok || r.instantiator == nil {
		return zero, &Error{Op: "resolve", ID: id, Err: ErrNotFound}
	}

	item, err := r.instantiator.Instantiate(id, loc)
	if err != nil {
		return zero, &Error{Op: "instantiate", ID: id, Err: fmt.Errorf("%w: %s: %v", ErrInstantiationFailed, loc.Path, err)}
	}
	if item == zero {
		return zero, &Error{Op: "instantiate", ID: id, Err: fmt.Errorf("%w: %s: no instance", ErrInstantiationFailed, loc.Path)}
	}

	if got := item.ID(); got != id {
		return zero, &Error{Op: "instantiate", ID: id, Err: fmt.Errorf("%w: %s: built %q", ErrInstantiationFailed, loc.Path, got)}
	}
	if !r.Register(item) {
		return zero, &Error{Op: "register", ID: id, Err: ErrInstantiationFailed}
	}
	r.logger.Debug("instantiated "+r.name, "id", id, "path", loc.Path)

	return item, nil
}

// Register adds item to the registry. A duplicate identity is discarded and
// reports false; the instance already registered stays live.
func (r *Registry[T]) Register(item T) bool {
	var zero T
	if item == zero {
		return false
	}

	id := item.ID()
	if _, exists := r.items[id]; exists {
		return false
	}

	r.items[id] = item
	r.order = append(r.order, id)

	for _, fn := range r.onRegister {
		fn(item)
	}

	return true
}

// OnRegister registers a hook called after every successful registration.
func (r *Registry[T]) OnRegister(fn func(T)) {
	r.onRegister = append(r.onRegister, fn)
}

// Contains reports whether an instance for id is registered.
func (r *Registry[T]) Contains(id element.ID) bool {
	_, ok := r.items[id]
	return ok
}

// Lookup returns the instance for id without instantiating it.
func (r *Registry[T]) Lookup(id element.ID) (T, bool) {
	item, ok := r.items[id]
	return item, ok
}

// All returns every registered instance in registration order.
func (r *Registry[T]) All() []T {
	items := make([]T, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id])
	}
	return items
}

// Len returns the number of registered instances.
func (r *Registry[T]) Len() int {
	return len(r.order)
}

// Data resolves a data record by its identity. A lookup entry linking dataID
// to an element identity wins; otherwise registered elements are scanned for a
// data record with that identity.
func (r *Registry[T]) Data(dataID element.ID) (any, bool) {
	if loc, ok := r.lookup[dataID]; ok && loc.LinkedTo != "" {
		item, err := r.Resolve(loc.LinkedTo)
		if err != nil {
			r.logger.Warn("could not resolve linked "+r.name, "data", dataID, "linked_to", loc.LinkedTo, "error", err)
			return nil, false
		}
		return item.Data(), true
	}

	for _, id := range r.order {
		if item := r.items[id]; item.DataID() == dataID {
			return item.Data(), true
		}
	}

	return nil, false
}
