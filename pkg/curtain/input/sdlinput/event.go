// Package sdlinput turns SDL events into input samples.
package sdlinput

import (
	"fmt"
	"math"

	"github.com/BrandonKowalski/curtain/pkg/curtain/input"
	"github.com/veandco/go-sdl2/sdl"
)

// touchMouseID marks mouse events SDL synthesizes from touches.
const touchMouseID = math.MaxUint32

// FromSDL converts an SDL event to a sample. Events that carry no device
// usage (window, quit, device hotplug) report false.
func FromSDL(event sdl.Event) (input.Sample, bool) {
	switch e := event.(type) {
	case *sdl.ControllerButtonEvent:
		return input.Sample{
			Kind:    input.KindGamepadButton,
			Code:    int(e.Button),
			Value:   pressedValue(e.State),
			Pressed: e.State == sdl.PRESSED,
			Device:  device("controller", int(e.Which)),
		}, true
	case *sdl.ControllerAxisEvent:
		return input.Sample{
			Kind:   input.KindGamepadAxis,
			Code:   int(e.Axis),
			Value:  axisValue(e.Value),
			Device: device("controller", int(e.Which)),
		}, true
	case *sdl.JoyButtonEvent:
		return input.Sample{
			Kind:    input.KindGamepadButton,
			Code:    int(e.Button),
			Value:   pressedValue(e.State),
			Pressed: e.State == sdl.PRESSED,
			Device:  device("joystick", int(e.Which)),
		}, true
	case *sdl.JoyAxisEvent:
		return input.Sample{
			Kind:   input.KindGamepadAxis,
			Code:   int(e.Axis),
			Value:  axisValue(e.Value),
			Device: device("joystick", int(e.Which)),
		}, true
	case *sdl.JoyHatEvent:
		pressed := e.Value != sdl.HAT_CENTERED
		s := input.Sample{
			Kind:    input.KindGamepadButton,
			Code:    int(e.Value),
			Pressed: pressed,
			Device:  device("joystick", int(e.Which)),
		}
		if pressed {
			s.Value = 1
		}
		return s, true
	case *sdl.KeyboardEvent:
		return input.Sample{
			Kind:    input.KindKey,
			Code:    int(e.Keysym.Sym),
			Value:   pressedValue(e.State),
			Pressed: e.State == sdl.PRESSED,
			Device:  "keyboard",
		}, true
	case *sdl.MouseMotionEvent:
		return mouse(e.Which, 0, false), true
	case *sdl.MouseButtonEvent:
		return mouse(e.Which, int(e.Button), e.State == sdl.PRESSED), true
	case *sdl.MouseWheelEvent:
		return mouse(e.Which, 0, false), true
	case *sdl.TouchFingerEvent:
		return input.Sample{
			Kind:    input.KindTouch,
			Code:    int(e.FingerID),
			Value:   float64(e.Pressure),
			Pressed: e.Type != sdl.FINGERUP,
			Device:  fmt.Sprintf("touch:%d", e.TouchID),
		}, true
	default:
		return input.Sample{}, false
	}
}

func mouse(which uint32, button int, pressed bool) input.Sample {
	if which == touchMouseID {
		return input.Sample{Kind: input.KindTouch, Code: button, Pressed: pressed, Device: "touch"}
	}
	s := input.Sample{Kind: input.KindMouse, Code: button, Pressed: pressed, Device: "mouse"}
	if pressed {
		s.Value = 1
	}
	return s
}

func axisValue(v int16) float64 {
	return input.Normalize(int32(v), math.MinInt16, math.MaxInt16)
}

func pressedValue(state uint8) float64 {
	if state == sdl.PRESSED {
		return 1
	}
	return 0
}

func device(kind string, which int) string {
	return fmt.Sprintf("%s:%d", kind, which)
}
