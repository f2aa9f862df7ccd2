package sdlinput

import (
	"log/slog"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/input"
	"github.com/BrandonKowalski/curtain/pkg/curtain/internal"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

// Init initializes the SDL subsystems needed for input.
func Init() error {
	return sdl.Init(sdl.INIT_EVENTS | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK)
}

// Quit shuts SDL down.
func Quit() {
	sdl.Quit()
}

// Source polls SDL for input. SDL requires Poll to run on the thread that
// initialized it, so the owner calls Poll every frame and the manager reads
// the samples from the channel.
//
// Close may be called from any goroutine. It only marks the source; the next
// Poll releases the controllers and closes the sample channel on the SDL thread.
type Source struct {
	samples     chan input.Sample
	controllers map[sdl.JoystickID]*sdl.GameController
	onQuit      []func()

	closing  *atomic.Bool
	released bool
	logger   *slog.Logger
}

// NewSource creates a source and opens every connected game controller.
func NewSource(queueSize int, logger *slog.Logger) *Source {
	if queueSize <= 0 {
		queueSize = constants.DefaultSampleQueueSize
	}
	if logger == nil {
		logger = internal.GetInternalLogger()
	}

	s := &Source{
		samples:     make(chan input.Sample, queueSize),
		controllers: make(map[sdl.JoystickID]*sdl.GameController),
		closing:     atomic.NewBool(false),
		logger:      logger,
	}

	for i := 0; i < sdl.NumJoysticks(); i++ {
		s.openController(i)
	}

	return s
}

// OnQuit registers a function called when SDL reports a quit request.
func (s *Source) OnQuit(fn func()) {
	s.onQuit = append(s.onQuit, fn)
}

// Samples returns the sample channel. It is closed by the first Poll after Close.
func (s *Source) Samples() <-chan input.Sample {
	return s.samples
}

// Poll drains pending SDL events and returns how many samples were queued.
// Samples are dropped when the queue is full. Must be called from the SDL thread.
func (s *Source) Poll() int {
	if s.closing.Load() {
		s.release()
		return 0
	}

	queued := 0
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			for _, fn := range s.onQuit {
				fn()
			}
			continue
		case *sdl.ControllerDeviceEvent:
			s.handleDevice(e)
			continue
		}

		sample, ok := FromSDL(event)
		if !ok {
			continue
		}
		if s.queue(sample) {
			queued++
		}
	}
	return queued
}

func (s *Source) queue(sample input.Sample) bool {
	select {
	case s.samples <- sample:
		return true
	default:
		s.logger.Debug("input queue full, dropping sample", "sample", sample.String())
		return false
	}
}

// Close marks the source closed. Safe to call from any goroutine.
func (s *Source) Close() error {
	s.closing.Store(true)
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool {
	return s.closing.Load()
}

// release closes every opened controller and the sample channel once.
func (s *Source) release() {
	if s.released {
		return
	}
	s.released = true
	for id, c := range s.controllers {
		c.Close()
		delete(s.controllers, id)
	}
	close(s.samples)
	s.logger.Debug("input source released")
}

func (s *Source) handleDevice(e *sdl.ControllerDeviceEvent) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		// Which is the device index here.
		s.openController(int(e.Which))
	case sdl.CONTROLLERDEVICEREMOVED:
		if c, ok := s.controllers[e.Which]; ok {
			c.Close()
			delete(s.controllers, e.Which)
			s.logger.Debug("controller removed", "instance", e.Which)
		}
	}
}

func (s *Source) openController(index int) {
	if !sdl.IsGameController(index) {
		return
	}
	c := sdl.GameControllerOpen(index)
	if c == nil {
		s.logger.Warn("failed to open controller", "index", index, "error", sdl.GetError())
		return
	}
	id := c.Joystick().InstanceID()
	if _, ok := s.controllers[id]; ok {
		c.Close()
		return
	}
	s.controllers[id] = c
	s.logger.Debug("controller opened", "index", index, "name", c.Name())
}
