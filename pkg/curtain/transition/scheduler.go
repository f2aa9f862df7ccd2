// Package transition schedules per-element visibility animations.
//
// Every element owns at most one running animation, keyed by its kind and identity.
// Starting a new animation for a key cancels the one in flight without
// firing its completion callback. Animations are advanced by Tick, which
// the update loop calls once per frame; an animation is never sampled on the
// tick it was requested in.
package transition

import (
	"log/slog"
	"time"
)

// State is the animation state of a single key.
type State int

const (
	StateIdle      State = iota // No animation is running
	StateAnimating              // An animation is in flight
)

func (s State) String() string {
	if s == StateAnimating {
		return "animating"
	}
	return "idle"
}

// Request describes one run of an effect on a target.
type Request struct {
	On         bool          // Direction of the change, passed to Effect.To
	Duration   time.Duration // Non-positive durations complete within Start
	Effect     Effect        // nil means Linear
	OnComplete func()        // Called once when the run reaches its terminal state
}

type animation struct {
	id         uint64
	key        string
	target     Target
	effect     Effect
	from       float64
	to         float64
	duration   time.Duration
	elapsed    time.Duration
	startTick  uint64
	onComplete func()
}

// Scheduler advances animations one tick at a time.
// It is not safe for concurrent use; call it from the update loop only.
type Scheduler struct {
	tick    uint64
	nextID  uint64
	running map[string]*animation
	queue   []*animation
	logger  *slog.Logger
}

// NewScheduler creates an idle scheduler. A nil logger discards debug output.
func NewScheduler(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		running: make(map[string]*animation),
		queue:   make([]*animation, 0),
		logger:  logger,
	}
}

// Start cancels any animation running for key and begins a new one.
// If the request's duration is not positive, the terminal value is applied and
// OnComplete is called before Start returns.
func (s *Scheduler) Start(key string, target Target, req Request) *Handle {
	s.Cancel(key)

	effect := req.Effect
	if effect == nil {
		effect = Linear
	}

	s.nextID++
	a := &animation{
		id:         s.nextID,
		key:        key,
		target:     target,
		effect:     effect,
		from:       effect.From(target),
		to:         effect.To(target, req.On),
		duration:   req.Duration,
		startTick:  s.tick,
		onComplete: req.OnComplete,
	}

	if a.duration <= 0 {
		s.finish(a)
		return &Handle{key: key, id: a.id, s: s}
	}

	s.running[key] = a
	s.queue = append(s.queue, a)
	s.logger.Debug("transition started", "key", key, "duration", a.duration, "to", a.to)

	return &Handle{key: key, id: a.id, s: s}
}

// Tick advances every animation requested before the current tick by dt.
// Callbacks fired from Tick may start new animations; those begin sampling on
// the following tick.
func (s *Scheduler) Tick(dt time.Duration) {
	s.tick++

	pending := s.queue
	s.queue = make([]*animation, 0, len(pending))

	for _, a := range pending {
		if s.running[a.key] != a {
			continue
		}
		if a.startTick >= s.tick {
			s.queue = append(s.queue, a)
			continue
		}

		if dt > 0 {
			a.elapsed += dt
		}
		progress := float64(a.elapsed) / float64(a.duration)
		if progress >= 1.0 {
			delete(s.running, a.key)
			s.finish(a)
			continue
		}

		a.effect.Update(a.target, a.from, a.to, progress)
		s.queue = append(s.queue, a)
	}
}

// finish forces the terminal value and fires the completion callback.
func (s *Scheduler) finish(a *animation) {
	a.effect.Update(a.target, a.from, a.to, 1.0)
	if a.onComplete != nil {
		a.onComplete()
	}
}

// Cancel stops the animation running for key without completing it.
// Returns true if an animation was cancelled.
func (s *Scheduler) Cancel(key string) bool {
	a, ok := s.running[key]
	if !ok {
		return false
	}
	delete(s.running, key)
	s.logger.Debug("transition cancelled", "key", key, "elapsed", a.elapsed)
	return true
}

// State returns whether an animation is running for key.
func (s *Scheduler) State(key string) State {
	if _, ok := s.running[key]; ok {
		return StateAnimating
	}
	return StateIdle
}

// Active returns the number of running animations.
func (s *Scheduler) Active() int {
	return len(s.running)
}

// Ticks returns the number of ticks processed so far.
func (s *Scheduler) Ticks() uint64 {
	return s.tick
}

// Handle refers to one animation run.
type Handle struct {
	key string
	id  uint64
	s   *Scheduler
}

// Done reports whether the run completed or was cancelled.
func (h *Handle) Done() bool {
	if h == nil {
		return true
	}
	a, ok := h.s.running[h.key]
	return !ok || a.id != h.id
}

// Cancel stops the run if it is still in flight.
func (h *Handle) Cancel() {
	if h.Done() {
		return
	}
	h.s.Cancel(h.key)
}
