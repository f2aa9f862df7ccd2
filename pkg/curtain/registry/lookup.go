package registry

import "github.com/BrandonKowalski/curtain/pkg/curtain/element"

// Location is where an identity's resource lives.
type Location struct {
	Path     string     // Resource location handed to the instantiator
	LinkedTo element.ID // Element owning the data record, for data identities
}

// Lookup is the static identity → location table, built at startup.
type Lookup map[element.ID]Location

// Add declares a resource location for id and returns the lookup for chaining.
func (l Lookup) Add(id element.ID, path string) Lookup {
	loc := l[id]
	loc.Path = path
	l[id] = loc
	return l
}

// Link declares that the data record dataID belongs to the element owner.
func (l Lookup) Link(dataID, owner element.ID) Lookup {
	loc := l[dataID]
	loc.LinkedTo = owner
	l[dataID] = loc
	return l
}

// Merge copies entries from other, overwriting existing ones.
func (l Lookup) Merge(other Lookup) Lookup {
	for id, loc := range other {
		l[id] = loc
	}
	return l
}
