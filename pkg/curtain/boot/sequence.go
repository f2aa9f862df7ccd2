package boot

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/BrandonKowalski/curtain/pkg/curtain"
)

// LoadingScreen displays boot progress.
type LoadingScreen interface {
	// UpdateProgress is called after each item loads.
	UpdateProgress(item Item, current, total int)
	// LoadingCompleted is called once every item has loaded. The screen calls
	// done when it is ready to hand over, which may be later.
	LoadingCompleted(count int, done func())
}

// Sequence loads content behind a loading screen, then awakens the manager,
// which opens its starting page.
type Sequence struct {
	Loader  *Loader
	Screen  LoadingScreen
	Manager *curtain.Manager

	items []Item
}

// Run loads every item and passes control to the screen. The manager is awakened
// when the screen calls done, which must happen on the manager's update loop.
func (s *Sequence) Run(ctx context.Context) ([]Item, error) {
	items, err := s.Loader.Load(ctx, func(item Item, current, total int) {
		if s.Screen != nil {
			s.Screen.UpdateProgress(item, current, total)
		}
	})
	if err != nil {
		return items, err
	}
	s.items = items

	if s.Screen == nil {
		s.start()
		return items, nil
	}
	s.Screen.LoadingCompleted(len(items), s.start)
	return items, nil
}

// Items returns the items loaded by the last Run.
func (s *Sequence) Items() []Item {
	return s.items
}

func (s *Sequence) start() {
	if s.Manager == nil {
		return
	}
	s.Manager.Awaken()
}

// TextScreen is a LoadingScreen that writes a progress bar to w.
type TextScreen struct {
	w        io.Writer
	messages *Messages
	width    int
}

// NewTextScreen creates a text screen with a bar width of 20 cells.
func NewTextScreen(w io.Writer, messages *Messages) *TextScreen {
	return &TextScreen{w: w, messages: messages, width: 20}
}

func (t *TextScreen) UpdateProgress(item Item, current, total int) {
	filled := 0
	if total > 0 {
		filled = current * t.width / total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", t.width-filled)
	fmt.Fprintf(t.w, "[%s] %s\n", bar, t.messages.Progress(item, current, total))
}

func (t *TextScreen) LoadingCompleted(count int, done func()) {
	fmt.Fprintln(t.w, t.messages.Completed(count))
	done()
}
