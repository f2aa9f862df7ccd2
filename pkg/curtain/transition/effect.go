package transition

// Target is the element state a transition animates.
type Target interface {
	Opacity() float64
	SetOpacity(alpha float64)
}

// Effect drives a property of a Target between a starting and an ending value.
type Effect interface {
	// From returns the value the transition starts from, typically the current one.
	From(t Target) float64
	// To returns the value the transition ends at for the given direction.
	To(t Target, on bool) float64
	// Update applies the value at progress p, between 0.0 and 1.0.
	Update(t Target, from, to, p float64)
}

// Easing maps linear progress to eased progress. Both ends must be fixed points.
type Easing func(p float64) float64

// Fader fades a Target's opacity in or out.
type Fader struct {
	Ease Easing // nil means linear
}

// Linear is the default fade effect.
var Linear Effect = Fader{}

// EaseInOut is a smoothstep fade.
var EaseInOut Effect = Fader{Ease: func(p float64) float64 { return p * p * (3 - 2*p) }}

func (f Fader) From(t Target) float64 { return t.Opacity() }

func (f Fader) To(_ Target, on bool) float64 {
	if on {
		return 1.0
	}
	return 0.0
}

func (f Fader) Update(t Target, from, to, p float64) {
	if f.Ease != nil && p < 1.0 {
		p = f.Ease(p)
	}
	t.SetOpacity(Lerp(from, to, p))
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, p float64) float64 {
	if p >= 1.0 {
		return b
	}
	return a + (b-a)*p
}
