//go:build linux

// Package evdevinput reads Linux input devices directly, for handhelds that
// run without a windowing system.
package evdevinput

import (
	"github.com/BrandonKowalski/curtain/pkg/curtain/input"
	"github.com/holoplot/go-evdev"
)

// Axes holds the ranges a device reports, keyed by ABS code.
type Axes map[evdev.EvCode]evdev.AbsInfo

// FromEvent converts an evdev event to a sample. Sync and misc events, and
// axes without range information, report false.
func FromEvent(e *evdev.InputEvent, axes Axes, device string) (input.Sample, bool) {
	switch e.Type {
	case evdev.EV_KEY:
		s := input.Sample{
			Kind:    keyKind(e.Code),
			Code:    int(e.Code),
			Pressed: e.Value != 0,
			Device:  device,
		}
		if s.Pressed {
			s.Value = 1
		}
		return s, true
	case evdev.EV_ABS:
		if isTouchAxis(e.Code) {
			return input.Sample{Kind: input.KindTouch, Code: int(e.Code), Device: device}, true
		}
		info, ok := axes[e.Code]
		if !ok {
			return input.Sample{}, false
		}
		return input.Sample{
			Kind:   input.KindGamepadAxis,
			Code:   int(e.Code),
			Value:  axisValue(e.Code, e.Value, info),
			Device: device,
		}, true
	case evdev.EV_REL:
		return input.Sample{Kind: input.KindMouse, Code: int(e.Code), Device: device}, true
	default:
		return input.Sample{}, false
	}
}

func keyKind(code evdev.EvCode) input.Kind {
	switch {
	case code == evdev.BTN_TOUCH || code == evdev.BTN_TOOL_FINGER:
		return input.KindTouch
	case code >= evdev.BTN_MOUSE && code < evdev.BTN_JOYSTICK:
		return input.KindMouse
	case code >= evdev.BTN_JOYSTICK && code < evdev.BTN_DIGI:
		return input.KindGamepadButton
	case code >= evdev.BTN_DPAD_UP && code <= evdev.BTN_DPAD_RIGHT:
		return input.KindGamepadButton
	case code >= evdev.BTN_TRIGGER_HAPPY && code <= evdev.BTN_TRIGGER_HAPPY40:
		return input.KindGamepadButton
	default:
		return input.KindKey
	}
}

func isTouchAxis(code evdev.EvCode) bool {
	return code >= evdev.ABS_MT_SLOT && code <= evdev.ABS_MT_TOOL_Y
}

// axisValue normalizes an axis. Hats are clamped to -1, 0 or 1 and
// one-sided axes such as triggers map onto [0, 1].
func axisValue(code evdev.EvCode, value int32, info evdev.AbsInfo) float64 {
	if code >= evdev.ABS_HAT0X && code <= evdev.ABS_HAT3Y {
		switch {
		case value < 0:
			return -1
		case value > 0:
			return 1
		default:
			return 0
		}
	}
	if info.Minimum >= 0 {
		if info.Maximum <= info.Minimum {
			return 0
		}
		return (input.Normalize(value, info.Minimum, info.Maximum) + 1) / 2
	}
	return input.Normalize(value, info.Minimum, info.Maximum)
}
