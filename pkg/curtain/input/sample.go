// Package input classifies raw input samples by modality and keeps the
// shared view type in step with the device the user is actually touching.
//
// Input sources (SDL, evdev, tests) produce Samples. The Adapter classifies
// each one, broadcasts a view change to the current page and the visible
// widgets whenever the modality changes, and then forwards the sample to them.
package input

import (
	"fmt"
	"math"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
)

// Kind is the device class a raw sample came from.
type Kind int

const (
	KindUnknown       Kind = iota // Unrecognized event, never changes the view type
	KindGamepadButton             // Face, shoulder, d-pad or menu button on a controller
	KindGamepadAxis               // Analog stick or trigger movement
	KindKey                       // Keyboard key
	KindMouse                     // Mouse button, motion or wheel
	KindTouch                     // Touch screen contact
)

func (k Kind) String() string {
	switch k {
	case KindGamepadButton:
		return "gamepad_button"
	case KindGamepadAxis:
		return "gamepad_axis"
	case KindKey:
		return "key"
	case KindMouse:
		return "mouse"
	case KindTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// Sample is one raw input event.
type Sample struct {
	Kind    Kind
	Code    int     // Device specific button, key or axis code
	Value   float64 // Axis position normalized to [-1, 1]; 1 or 0 for buttons
	Pressed bool    // Button or key state
	Device  string  // Optional source identifier, e.g. an evdev path
}

func (s Sample) String() string {
	return fmt.Sprintf("%s code=%d value=%.2f pressed=%t", s.Kind, s.Code, s.Value, s.Pressed)
}

// Classify maps a sample to the view type it implies.
// Analog movement below constants.AnalogThreshold and unknown kinds are not
// classified and report false.
func Classify(s Sample) (constants.ViewType, bool) {
	switch s.Kind {
	case KindGamepadButton:
		return constants.ViewTypeGamepad, true
	case KindGamepadAxis:
		if math.Abs(s.Value) >= constants.AnalogThreshold {
			return constants.ViewTypeGamepad, true
		}
		return constants.ViewTypeKeyboard, false
	case KindKey, KindMouse:
		return constants.ViewTypeKeyboard, true
	case KindTouch:
		return constants.ViewTypeMobile, true
	default:
		return constants.ViewTypeKeyboard, false
	}
}

// Source produces samples from a device. Samples are delivered on a channel so
// reader goroutines never touch engine state directly.
type Source interface {
	Samples() <-chan Sample
	Close() error
}

// Normalize maps a raw axis value in [min, max] onto [-1, 1].
func Normalize(value, min, max int32) float64 {
	if max <= min {
		return 0
	}
	mid := (float64(max) + float64(min)) / 2
	half := (float64(max) - float64(min)) / 2
	v := (float64(value) - mid) / half
	return math.Max(-1, math.Min(1, v))
}
