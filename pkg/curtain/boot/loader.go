// Package boot enumerates content on startup, reports progress to a loading
// screen, and hands control to the manager's starting page when done.
package boot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/BrandonKowalski/curtain/pkg/curtain/internal"
	"github.com/BurntSushi/toml"
)

// DefaultRoot is where content is looked up when no roots are given.
const DefaultRoot = "content/game_data"

// DefaultPattern matches the item files a Loader reads.
var DefaultPattern = regexp.MustCompile(`\.toml$`)

// ErrNoContent is returned by Load when no roots exist in the file system.
var ErrNoContent = errors.New("no content roots found")

// Item is one piece of displayable content.
type Item struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	ExpansionID string `toml:"expansion_id"`
	Finished    bool   `toml:"finished"`
	Path        string `toml:"-"`
}

// ProgressFunc is called after each item loads. current counts from 1 to total.
type ProgressFunc func(item Item, current, total int)

// Loader reads items from a file system.
type Loader struct {
	fsys    fs.FS
	roots   []string
	pattern *regexp.Regexp
	logger  *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRoots sets the directories walked for items.
func WithRoots(roots ...string) LoaderOption {
	return func(l *Loader) { l.roots = roots }
}

// WithPattern sets the file name pattern items must match.
func WithPattern(re *regexp.Regexp) LoaderOption {
	return func(l *Loader) { l.pattern = re }
}

// WithLogger sets the logger used for skipped files.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader creates a loader over fsys.
func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	l := &Loader{
		fsys:    fsys,
		roots:   []string{DefaultRoot},
		pattern: DefaultPattern,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = internal.GetInternalLogger()
	}
	return l
}

// Discover lists the matching files under every root in lexical order.
// Missing roots are skipped; ErrNoContent is returned if none exist.
func (l *Loader) Discover() ([]string, error) {
	var paths []string
	found := 0

	for _, root := range l.roots {
		root = path.Clean(strings.TrimPrefix(root, "/"))
		if _, err := fs.Stat(l.fsys, root); err != nil {
			l.logger.Debug("content root missing", "root", root)
			continue
		}
		found++

		err := fs.WalkDir(l.fsys, root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && l.pattern.MatchString(d.Name()) {
				paths = append(paths, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	if found == 0 {
		return nil, ErrNoContent
	}
	return paths, nil
}

// Load reads every discovered item, calling progress after each one.
// Files that fail to decode are logged and skipped but still advance the count.
func (l *Loader) Load(ctx context.Context, progress ProgressFunc) ([]Item, error) {
	paths, err := l.Discover()
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(paths))
	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		item, err := l.read(p)
		if err != nil {
			l.logger.Warn("skipping content item", "path", p, "error", err)
			item = Item{ID: stem(p), Path: p}
		} else {
			items = append(items, item)
		}

		if progress != nil {
			progress(item, i+1, len(paths))
		}
	}

	l.logger.Debug("content loaded", "items", len(items), "files", len(paths))
	return items, nil
}

func (l *Loader) read(p string) (Item, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Item{}, err
	}

	var item Item
	if err := toml.Unmarshal(data, &item); err != nil {
		return Item{}, err
	}
	if item.ID == "" {
		item.ID = stem(p)
	}
	if item.Name == "" {
		item.Name = item.ID
	}
	item.Path = p
	return item, nil
}

func stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
