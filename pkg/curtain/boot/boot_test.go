package boot

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"regexp"
	"testing"
	"testing/fstest"

	"github.com/BrandonKowalski/curtain/pkg/curtain"
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
)

var quiet = slog.New(slog.DiscardHandler)

func content() fstest.MapFS {
	return fstest.MapFS{
		"content/game_data/a.toml":       {Data: []byte("id = \"sword\"\nname = \"Sword\"\nfinished = true\n")},
		"content/game_data/readme.md":    {Data: []byte("# not content")},
		"content/game_data/sub/b.toml":   {Data: []byte("description = \"unnamed\"\n")},
		"content/game_data/sub/bad.toml": {Data: []byte("name = \n")},
		"mods/extra/c.toml":              {Data: []byte("name = \"Shield\"\nexpansion_id = \"dlc\"\n")},
	}
}

func TestDiscover(t *testing.T) {
	l := NewLoader(content(), WithRoots("content/game_data", "/mods", "missing"), WithLogger(quiet))

	paths, err := l.Discover()
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []string{
		"content/game_data/a.toml",
		"content/game_data/sub/b.toml",
		"content/game_data/sub/bad.toml",
		"mods/extra/c.toml",
	}
	if len(paths) != len(want) {
		t.Fatalf("Discover() = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestDiscoverPattern(t *testing.T) {
	l := NewLoader(content(), WithPattern(regexp.MustCompile(`\.md$`)), WithLogger(quiet))

	paths, err := l.Discover()
	if err != nil || len(paths) != 1 || paths[0] != "content/game_data/readme.md" {
		t.Errorf("Discover() = %v, %v", paths, err)
	}
}

func TestDiscoverNoRoots(t *testing.T) {
	l := NewLoader(fstest.MapFS{}, WithLogger(quiet))
	if _, err := l.Discover(); !errors.Is(err, ErrNoContent) {
		t.Errorf("Discover() error = %v, want ErrNoContent", err)
	}
}

func TestLoadReportsProgress(t *testing.T) {
	l := NewLoader(content(), WithRoots("content/game_data", "mods"), WithLogger(quiet))

	type step struct {
		id             string
		current, total int
	}
	var steps []step
	items, err := l.Load(context.Background(), func(item Item, current, total int) {
		steps = append(steps, step{item.ID, current, total})
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Load() returned %d items, want 3 (bad file skipped)", len(items))
	}
	if items[0].ID != "sword" || items[0].Name != "Sword" || !items[0].Finished {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[1].ID != "b" || items[1].Name != "b" || items[1].Path != "content/game_data/sub/b.toml" {
		t.Errorf("items[1] = %+v, want id and name from the file name", items[1])
	}
	if items[2].ExpansionID != "dlc" {
		t.Errorf("items[2] = %+v", items[2])
	}

	want := []step{{"sword", 1, 4}, {"b", 2, 4}, {"bad", 3, 4}, {"c", 4, 4}}
	if len(steps) != len(want) {
		t.Fatalf("progress steps = %v, want %v", steps, want)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %v, want %v", i, steps[i], want[i])
		}
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLoader(content(), WithLogger(quiet))
	if _, err := l.Load(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestMessages(t *testing.T) {
	bundle, err := NewBundle()
	if err != nil {
		t.Fatalf("NewBundle() error = %v", err)
	}
	sword := Item{Name: "Sword"}

	tests := []struct {
		name      string
		langs     []string
		progress  string
		completed string
		one       string
	}{
		{"default", nil, "Loading Sword (1/3)", "Loaded 3 items", "Loaded 1 item"},
		{"french", []string{"fr"}, "Chargement de Sword (1/3)", "3 éléments chargés", "1 élément chargé"},
		{"regional french", []string{"fr-CA"}, "Chargement de Sword (1/3)", "3 éléments chargés", "1 élément chargé"},
		{"accept language", []string{"de, en;q=0.8"}, "Loading Sword (1/3)", "Loaded 3 items", "Loaded 1 item"},
		{"unsupported", []string{"ja"}, "Loading Sword (1/3)", "Loaded 3 items", "Loaded 1 item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMessages(bundle, tt.langs...)
			if got := m.Progress(sword, 1, 3); got != tt.progress {
				t.Errorf("Progress() = %q, want %q", got, tt.progress)
			}
			if got := m.Completed(3); got != tt.completed {
				t.Errorf("Completed(3) = %q, want %q", got, tt.completed)
			}
			if got := m.Completed(1); got != tt.one {
				t.Errorf("Completed(1) = %q, want %q", got, tt.one)
			}
		})
	}
}

func TestBundleOverrides(t *testing.T) {
	extra := fstest.MapFS{
		"en.toml": {Data: []byte("[LoadingEmpty]\nother = \"All done\"\n")},
		"es.toml": {Data: []byte("[LoadingEmpty]\nother = \"Nada que cargar\"\n")},
	}
	bundle, err := NewBundle(extra)
	if err != nil {
		t.Fatalf("NewBundle() error = %v", err)
	}

	if got := NewMessages(bundle, "en").Completed(0); got != "All done" {
		t.Errorf("en Completed(0) = %q", got)
	}
	if got := NewMessages(bundle, "es").Completed(0); got != "Nada que cargar" {
		t.Errorf("es Completed(0) = %q", got)
	}
	// Spanish has no progress message, so English fills in.
	if got := NewMessages(bundle, "es").Progress(Item{Name: "x"}, 1, 1); got != "Loading x (1/1)" {
		t.Errorf("es Progress() = %q", got)
	}
}

type deferredScreen struct {
	updates int
	done    func()
}

func (d *deferredScreen) UpdateProgress(Item, int, int)       { d.updates++ }
func (d *deferredScreen) LoadingCompleted(_ int, done func()) { d.done = done }

func TestSequenceWaitsForScreen(t *testing.T) {
	m := curtain.New(curtain.Options{StartingPage: "title", Logger: quiet})
	t.Cleanup(func() { _ = m.Close() })
	m.AddPage(element.NewPage(element.Config{ID: "title"}))

	screen := &deferredScreen{}
	seq := &Sequence{
		Loader:  NewLoader(content(), WithLogger(quiet)),
		Screen:  screen,
		Manager: m,
	}

	items, err := seq.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(items) != 2 || len(seq.Items()) != 2 || screen.updates != 3 {
		t.Errorf("items=%d updates=%d, want 2 and 3", len(items), screen.updates)
	}
	if m.CurrentPage() != nil {
		t.Fatal("starting page opened before the screen finished")
	}

	screen.done()
	if p := m.CurrentPage(); p == nil || p.ID() != "title" {
		t.Errorf("CurrentPage() = %v, want title", p)
	}
}

func TestSequenceWithoutScreen(t *testing.T) {
	m := curtain.New(curtain.Options{StartingPage: "title", Logger: quiet})
	t.Cleanup(func() { _ = m.Close() })
	m.AddPage(element.NewPage(element.Config{ID: "title"}))

	seq := &Sequence{Loader: NewLoader(content(), WithLogger(quiet)), Manager: m}
	if _, err := seq.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if p := m.CurrentPage(); p == nil || p.ID() != "title" {
		t.Errorf("CurrentPage() = %v, want title", p)
	}
}

func ExampleTextScreen() {
	fsys := fstest.MapFS{
		"content/game_data/a.toml":     {Data: []byte("name = \"Sword\"\n")},
		"content/game_data/sub/b.toml": {Data: []byte("name = \"Shield\"\n")},
	}

	bundle, _ := NewBundle()
	seq := &Sequence{
		Loader: NewLoader(fsys, WithLogger(quiet)),
		Screen: NewTextScreen(os.Stdout, NewMessages(bundle, "en")),
	}
	_, _ = seq.Run(context.Background())

	// Output:
	// [##########----------] Loading Sword (1/2)
	// [####################] Loading Shield (2/2)
	// Loaded 2 items
}
