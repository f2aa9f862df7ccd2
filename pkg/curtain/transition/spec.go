package transition

import (
	"time"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
)

// Spec describes how an element changes visibility.
//
// The zero Spec (or a nil *Spec) is instant and does not bring the element to
// the front. Use Fade, FadeInOut or Reset to build the common variants.
type Spec struct {
	In           time.Duration // Duration of the activating half (showing an element)
	Out          time.Duration // Duration of the deactivating half (hiding the previous element)
	ShouldReset  bool          // Replay the show cycle even if the widget is already on (widgets only)
	BringToFront bool          // Move the element to the front of its band when shown
	Effect       Effect        // Property driven by the transition; nil means a linear fade
}

// Instant returns a Spec that applies its terminal state within the call.
func Instant() *Spec {
	return &Spec{BringToFront: true}
}

// Fade returns a synchronous fade that lasts d in both directions.
// A non-positive d behaves like Instant.
func Fade(d time.Duration) *Spec {
	return &Spec{In: d, Out: d, BringToFront: true}
}

// DefaultFade returns a synchronous fade of constants.DefaultFadeDuration.
func DefaultFade() *Spec {
	return Fade(constants.DefaultFadeDuration)
}

// FadeInOut returns an asynchronous fade: the element being shown fades in over
// in, while the element being hidden fades out over out.
func FadeInOut(in, out time.Duration) *Spec {
	return &Spec{In: in, Out: out, BringToFront: true}
}

// Reset returns a synchronous fade of d that replays the show cycle of a widget
// that is already visible.
func Reset(d time.Duration) *Spec {
	return &Spec{In: d, Out: d, ShouldReset: true, BringToFront: true}
}

// Synchronous reports whether both halves of the transition last equally long.
func (s *Spec) Synchronous() bool {
	if s == nil {
		return true
	}
	return s.In == s.Out
}

// Duration returns the duration used for activating (on) or deactivating an element.
func (s *Spec) Duration(on bool) time.Duration {
	if s == nil {
		return 0
	}
	if on {
		return s.In
	}
	return s.Out
}

// Resets reports whether the spec forces a full show cycle.
func (s *Spec) Resets() bool {
	return s != nil && s.ShouldReset
}

// FrontOnShow reports whether a shown element should be brought to the front.
func (s *Spec) FrontOnShow() bool {
	return s != nil && s.BringToFront
}

// EffectOrDefault returns the configured effect, or a linear fade.
func (s *Spec) EffectOrDefault() Effect {
	if s == nil || s.Effect == nil {
		return Linear
	}
	return s.Effect
}

// WithEffect returns a copy of the spec that drives e instead of the default fade.
func (s *Spec) WithEffect(e Effect) *Spec {
	c := Spec{}
	if s != nil {
		c = *s
	}
	c.Effect = e
	return &c
}
