// Package constants defines shared constants, types, and configuration values
// used throughout the curtain UI navigation engine.
package constants

import (
	"os"
	"strings"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// LogLevelEnvVar is the environment variable name for overriding the log level.
const LogLevelEnvVar = "CURTAIN_LOG_LEVEL"

// ManifestPathEnvVar is the environment variable name for a custom manifest path.
const ManifestPathEnvVar = "CURTAIN_MANIFEST"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// ViewType identifies the input modality a view is built for.
// Every element may carry one view per ViewType.
type ViewType int

const (
	ViewTypeKeyboard ViewType = iota // Keyboard and mouse users
	ViewTypeGamepad                  // Gamepad users
	ViewTypeMobile                   // Touch users
)

// ViewTypeCount is the number of view slots an element carries.
const ViewTypeCount = 3

func (vt ViewType) GetName() string {
	switch vt {
	case ViewTypeKeyboard:
		return "Keyboard"
	case ViewTypeGamepad:
		return "Gamepad"
	case ViewTypeMobile:
		return "Mobile"
	default:
		return "Unknown"
	}
}

func (vt ViewType) String() string {
	return strings.ToLower(vt.GetName())
}

// Valid reports whether vt names one of the known view slots.
func (vt ViewType) Valid() bool {
	return vt >= ViewTypeKeyboard && vt <= ViewTypeMobile
}

// ParseViewType maps "keyboard", "gamepad" or "mobile" to a ViewType.
// Unknown names fall back to ViewTypeKeyboard and report false.
func ParseViewType(name string) (ViewType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "keyboard", "mouse", "":
		return ViewTypeKeyboard, true
	case "gamepad", "controller":
		return ViewTypeGamepad, true
	case "mobile", "touch":
		return ViewTypeMobile, true
	default:
		return ViewTypeKeyboard, false
	}
}

// Input and timing constants.
const (
	AnalogThreshold        = 0.24                   // Minimum analog stick magnitude that counts as gamepad use
	DefaultFadeDuration    = 1 * time.Second        // Duration used by transition.Fade when none is given
	DefaultTickInterval    = 16 * time.Millisecond  // Update loop interval (roughly 60 ticks per second)
	DefaultSampleQueueSize = 64                     // Buffered input samples per source
)
