//go:build linux

package evdevinput

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/input"
	"github.com/BrandonKowalski/curtain/pkg/curtain/internal"
	"github.com/holoplot/go-evdev"
)

// ErrNoDevices is returned by Open when no device could be opened.
var ErrNoDevices = errors.New("no input devices opened")

// Source reads every opened device on its own goroutine and delivers samples
// on a shared channel.
type Source struct {
	devices []*evdev.InputDevice
	samples chan input.Sample

	wg        sync.WaitGroup
	closeOnce sync.Once
	done      chan struct{}
	logger    *slog.Logger
}

// Options configures a Source.
type Options struct {
	Paths     []string // Device paths; empty opens every device matching NameMatch
	NameMatch string   // Case-insensitive substring of the device name; empty matches all
	QueueSize int
	Logger    *slog.Logger
}

// Open opens the requested devices and starts reading them.
func Open(opts Options) (*Source, error) {
	logger := opts.Logger
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	size := opts.QueueSize
	if size <= 0 {
		size = constants.DefaultSampleQueueSize
	}

	paths := opts.Paths
	if len(paths) == 0 {
		found, err := Discover(opts.NameMatch)
		if err != nil {
			return nil, err
		}
		paths = found
	}

	s := &Source{
		samples: make(chan input.Sample, size),
		done:    make(chan struct{}),
		logger:  logger,
	}

	for _, p := range paths {
		dev, err := evdev.Open(p)
		if err != nil {
			logger.Warn("failed to open input device", "path", p, "error", err)
			continue
		}

		axes, err := dev.AbsInfos()
		if err != nil {
			logger.Debug("device reports no axes", "path", p, "error", err)
		}

		s.devices = append(s.devices, dev)
		s.wg.Add(1)
		go s.read(dev, p, axes)
	}

	if len(s.devices) == 0 {
		return nil, ErrNoDevices
	}
	return s, nil
}

// Discover lists the device paths whose name contains match.
func Discover(match string) ([]string, error) {
	inputs, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("failed to list input devices: %w", err)
	}

	var paths []string
	for _, in := range inputs {
		if match == "" || strings.Contains(strings.ToLower(in.Name), strings.ToLower(match)) {
			paths = append(paths, in.Path)
		}
	}
	return paths, nil
}

// Samples returns the sample channel. It is closed once every reader has stopped.
func (s *Source) Samples() <-chan input.Sample {
	return s.samples
}

// Close closes every device, which unblocks the readers, and waits for them.
func (s *Source) Close() error {
	var errs []error
	s.closeOnce.Do(func() {
		close(s.done)
		for _, dev := range s.devices {
			if err := dev.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		s.wg.Wait()
		close(s.samples)
	})
	return errors.Join(errs...)
}

func (s *Source) read(dev *evdev.InputDevice, path string, axes Axes) {
	defer s.wg.Done()

	for {
		e, err := dev.ReadOne()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.logger.Warn("input device read failed", "path", path, "error", err)
			}
			return
		}

		sample, ok := FromEvent(e, axes, path)
		if !ok {
			continue
		}

		select {
		case s.samples <- sample:
		case <-s.done:
			return
		default:
			s.logger.Debug("input queue full, dropping sample", "path", path)
		}
	}
}
