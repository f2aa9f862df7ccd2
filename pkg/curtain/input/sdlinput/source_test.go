package sdlinput

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/BrandonKowalski/curtain/pkg/curtain/input"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

func newTestSource(size int) *Source {
	return &Source{
		samples:     make(chan input.Sample, size),
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
		closing:     atomic.NewBool(false),
		logger:      slog.New(slog.DiscardHandler),
	}
}

func TestCloseWhileQueueing(t *testing.T) {
	s := newTestSource(4)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 1000 {
			s.queue(input.Sample{Kind: input.KindKey, Pressed: true})
			select {
			case <-s.samples:
			default:
			}
		}
	}()
	go func() {
		defer wg.Done()
		_ = s.Close()
	}()
	wg.Wait()

	if !s.Closed() {
		t.Fatal("Closed() = false after Close")
	}
	if n := s.Poll(); n != 0 {
		t.Errorf("Poll() after Close = %d, want 0", n)
	}
	for range s.Samples() {
	}
	if n := s.Poll(); n != 0 {
		t.Errorf("second Poll() after Close = %d, want 0", n)
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	s := newTestSource(1)

	if !s.queue(input.Sample{Kind: input.KindKey}) {
		t.Fatal("queue() on an empty queue = false")
	}
	if s.queue(input.Sample{Kind: input.KindKey}) {
		t.Error("queue() on a full queue = true, want dropped")
	}
}
