package router

import "github.com/BrandonKowalski/curtain/pkg/curtain/element"

// Stack holds page identities for back and forward navigation.
// The most recently pushed identity is on top.
type Stack struct {
	entries []element.ID
}

// NewStack creates a new empty navigation stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]element.ID, 0),
	}
}

// Push adds a page identity to the top of the stack.
func (s *Stack) Push(id element.ID) {
	s.entries = append(s.entries, id)
}

// Pop removes and returns the top identity.
// Returns false if the stack is empty.
func (s *Stack) Pop() (element.ID, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	id := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return id, true
}

// Peek returns the top identity without removing it.
// Returns false if the stack is empty.
func (s *Stack) Peek() (element.ID, bool) {
	if len(s.entries) == 0 {
		return "", false
	}
	return s.entries[len(s.entries)-1], true
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	s.entries = s.entries[:0]
}

// Entries returns a copy of the stack, bottom first.
func (s *Stack) Entries() []element.ID {
	out := make([]element.ID, len(s.entries))
	copy(out, s.entries)
	return out
}
