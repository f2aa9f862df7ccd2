package transition

import (
	"testing"
	"time"
)

type box struct {
	alpha float64
}

func (b *box) Opacity() float64         { return b.alpha }
func (b *box) SetOpacity(alpha float64) { b.alpha = alpha }

func TestZeroDurationCompletesWithinStart(t *testing.T) {
	s := NewScheduler(nil)
	b := &box{}
	completed := 0

	h := s.Start("hud", b, Request{On: true, OnComplete: func() { completed++ }})

	if b.alpha != 1 || completed != 1 {
		t.Errorf("alpha=%v completed=%d, want 1 and 1", b.alpha, completed)
	}
	if !h.Done() || s.State("hud") != StateIdle || s.Active() != 0 {
		t.Error("synchronous run left a running animation")
	}
}

func TestSamplingStartsOnNextTick(t *testing.T) {
	s := NewScheduler(nil)
	b := &box{}

	s.Start("hud", b, Request{On: true, Duration: 100 * time.Millisecond})
	if b.alpha != 0 {
		t.Fatalf("alpha sampled within Start: %v", b.alpha)
	}
	if s.State("hud") != StateAnimating {
		t.Fatalf("State() = %v, want animating", s.State("hud"))
	}

	s.Tick(25 * time.Millisecond)
	if b.alpha != 0.25 {
		t.Errorf("alpha after first tick = %v, want 0.25", b.alpha)
	}
}

func TestRequestFromCallbackWaitsOneTick(t *testing.T) {
	s := NewScheduler(nil)
	first, second := &box{}, &box{alpha: 1}

	s.Start("first", first, Request{On: true, Duration: 10 * time.Millisecond, OnComplete: func() {
		s.Start("second", second, Request{On: false, Duration: 10 * time.Millisecond})
	}})

	s.Tick(10 * time.Millisecond)
	if first.alpha != 1 {
		t.Fatalf("first alpha = %v, want 1", first.alpha)
	}
	if second.alpha != 1 {
		t.Errorf("second sampled on the tick it was requested in: %v", second.alpha)
	}

	s.Tick(10 * time.Millisecond)
	if second.alpha != 0 {
		t.Errorf("second alpha = %v, want 0", second.alpha)
	}
}

func TestRestartCancelsWithoutCompletion(t *testing.T) {
	s := NewScheduler(nil)
	b := &box{}
	var events []string

	h := s.Start("hud", b, Request{On: true, Duration: 100 * time.Millisecond, OnComplete: func() { events = append(events, "shown") }})
	s.Tick(50 * time.Millisecond)

	s.Start("hud", b, Request{On: false, Duration: 100 * time.Millisecond, OnComplete: func() { events = append(events, "hidden") }})
	if !h.Done() {
		t.Error("replaced handle not done")
	}

	for range 4 {
		s.Tick(50 * time.Millisecond)
	}

	if len(events) != 1 || events[0] != "hidden" {
		t.Errorf("events = %v, want [hidden]", events)
	}
	if b.alpha != 0 {
		t.Errorf("alpha = %v, want 0", b.alpha)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := NewScheduler(nil)
	a, b := &box{}, &box{}

	s.Start("a", a, Request{On: true, Duration: 100 * time.Millisecond})
	s.Start("b", b, Request{On: true, Duration: 200 * time.Millisecond})
	s.Tick(100 * time.Millisecond)

	if a.alpha != 1 || b.alpha != 0.5 {
		t.Errorf("a=%v b=%v, want 1 and 0.5", a.alpha, b.alpha)
	}
	if s.Active() != 1 || s.State("a") != StateIdle {
		t.Errorf("Active() = %d, want only b running", s.Active())
	}
}

func TestCancel(t *testing.T) {
	s := NewScheduler(nil)
	b := &box{}
	completed := false

	h := s.Start("hud", b, Request{On: true, Duration: time.Second, OnComplete: func() { completed = true }})
	h.Cancel()
	s.Tick(2 * time.Second)

	if completed || b.alpha != 0 {
		t.Errorf("cancelled run completed=%t alpha=%v", completed, b.alpha)
	}
	if s.Cancel("hud") {
		t.Error("Cancel on idle key = true")
	}
	if s.Ticks() != 1 {
		t.Errorf("Ticks() = %d, want 1", s.Ticks())
	}
}

func TestSpec(t *testing.T) {
	var nilSpec *Spec

	tests := []struct {
		name  string
		spec  *Spec
		in    time.Duration
		out   time.Duration
		sync  bool
		reset bool
		front bool
	}{
		{"nil", nilSpec, 0, 0, true, false, false},
		{"zero", &Spec{}, 0, 0, true, false, false},
		{"instant", Instant(), 0, 0, true, false, true},
		{"fade", Fade(time.Second), time.Second, time.Second, true, false, true},
		{"in out", FadeInOut(time.Second, 2*time.Second), time.Second, 2 * time.Second, false, false, true},
		{"reset", Reset(time.Second), time.Second, time.Second, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Duration(true); got != tt.in {
				t.Errorf("Duration(on) = %v, want %v", got, tt.in)
			}
			if got := tt.spec.Duration(false); got != tt.out {
				t.Errorf("Duration(off) = %v, want %v", got, tt.out)
			}
			if got := tt.spec.Synchronous(); got != tt.sync {
				t.Errorf("Synchronous() = %t, want %t", got, tt.sync)
			}
			if got := tt.spec.Resets(); got != tt.reset {
				t.Errorf("Resets() = %t, want %t", got, tt.reset)
			}
			if got := tt.spec.FrontOnShow(); got != tt.front {
				t.Errorf("FrontOnShow() = %t, want %t", got, tt.front)
			}
			if tt.spec.EffectOrDefault() == nil {
				t.Error("EffectOrDefault() = nil")
			}
		})
	}
}

func TestEaseInOut(t *testing.T) {
	b := &box{}
	spec := Fade(100 * time.Millisecond).WithEffect(EaseInOut)
	s := NewScheduler(nil)

	s.Start("hud", b, Request{On: true, Duration: spec.Duration(true), Effect: spec.EffectOrDefault()})
	s.Tick(25 * time.Millisecond)

	// smoothstep(0.25) = 0.15625
	if b.alpha != 0.15625 {
		t.Errorf("alpha = %v, want 0.15625", b.alpha)
	}

	s.Tick(75 * time.Millisecond)
	if b.alpha != 1 {
		t.Errorf("alpha = %v, want 1", b.alpha)
	}
}
