// Package curtain arbitrates which full-screen page is current, which overlay
// widgets are visible, how their visibility changes animate, and which view
// every element presents for the input device in use.
//
// A Manager is the explicit context object: build one with New, register
// pages and widgets, call Awaken, then drive it with Run or with your own loop
// calling Tick. Init additionally configures process-wide logging and stores
// the Manager behind the package-level functions (OpenPage, ShowWidget, ...),
// which log a warning and do nothing when Init has not run.
package curtain

import (
	"log/slog"
	"os"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/internal"
	"github.com/BrandonKowalski/curtain/pkg/curtain/registry"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
)

// Options configures a Manager.
type Options struct {
	Pages              registry.Lookup                        // Page identity → location table for lazy instantiation
	Widgets            registry.Lookup                        // Widget identity → location table for lazy instantiation
	PageInstantiator   registry.Instantiator[*element.Page]   // Builds pages from Pages locations
	WidgetInstantiator registry.Instantiator[*element.Widget] // Builds widgets from Widgets locations
	StartingPage       element.ID                             // Page opened by Awaken
	ViewType           constants.ViewType                     // Initial shared view type
	Transition         *transition.Spec                       // Used when an operation is given a nil spec; nil means instant
	QueueSize          int                                    // Buffered posted closures and input samples
	Logger             *slog.Logger                           // Engine logger; nil uses the internal logger

	LogPath   string // Init only: full path for the log file including filename (creates parent directories)
	LogFormat string // Init only: "json" (default) or "text"
	LogLevel  string // Init only: engine log level; CURTAIN_LOG_LEVEL overrides it
}

// Init configures logging, creates the process Manager and makes it available
// to the package-level functions. Calling Init again replaces the Manager.
func Init(options Options) *Manager {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}
	if options.LogFormat != "" {
		internal.SetLogFormat(options.LogFormat)
	}

	switch {
	case os.Getenv(constants.LogLevelEnvVar) != "":
		internal.SetInternalLogLevel(internal.ParseLevel(os.Getenv(constants.LogLevelEnvVar)))
	case constants.IsDevMode():
		internal.SetInternalLogLevel(slog.LevelDebug)
	case options.LogLevel != "":
		internal.SetInternalLogLevel(internal.ParseLevel(options.LogLevel))
	default:
		internal.SetInternalLogLevel(slog.LevelWarn)
	}

	m := New(options)
	if prev := global.Swap(m); prev != nil {
		_ = prev.Close()
	}

	internal.GetInternalLogger().Debug("manager instantiated",
		"starting_page", options.StartingPage,
		"view_type", options.ViewType.String())

	return m
}

// Close closes the process Manager and the log file.
func Close() error {
	var err error
	if m := global.Swap(nil); m != nil {
		err = m.Close()
	}
	internal.CloseLogger()
	return err
}

// SetLogPath sets the full path for the log file, including filename.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
