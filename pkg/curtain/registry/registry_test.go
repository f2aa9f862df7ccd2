package registry_test

import (
	"errors"
	"testing"

	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/registry"
)

type inventory struct {
	Slots int
}

func pageFactory(calls *int) registry.InstantiatorFunc[*element.Page] {
	return func(id element.ID, loc registry.Location) (*element.Page, error) {
		*calls++
		if loc.Path == "broken" {
			return nil, errors.New("scene is corrupt")
		}
		if loc.Path == "empty" {
			return nil, nil
		}
		if loc.Path == "renamed" {
			return element.NewPage(element.Config{ID: "Settings"}), nil
		}
		return element.NewPage(element.Config{ID: id}), nil
	}
}

func TestGetInstantiatesOnce(t *testing.T) {
	calls := 0
	lookup := registry.Lookup{}.Add("menu", "pages/menu.toml")
	r := registry.New[*element.Page]("page", lookup, pageFactory(&calls), nil)

	first, ok := r.Get("menu")
	if !ok {
		t.Fatal("Get(menu) = false, want true")
	}
	second, _ := r.Get("menu")

	if first != second {
		t.Error("Get returned two instances for one identity")
	}
	if calls != 1 {
		t.Errorf("instantiator called %d times, want 1", calls)
	}
	if !r.Contains("menu") || r.Len() != 1 {
		t.Errorf("Contains = %t, Len = %d; want true, 1", r.Contains("menu"), r.Len())
	}
}

func TestResolveErrors(t *testing.T) {
	calls := 0
	lookup := registry.Lookup{}.Add("broken", "broken").Add("empty", "empty").Add("settings", "renamed")
	r := registry.New[*element.Page]("page", lookup, pageFactory(&calls), nil)

	tests := []struct {
		name string
		id   element.ID
		want error
	}{
		{"missing from lookup", "nowhere", registry.ErrNotFound},
		{"instantiator error", "broken", registry.ErrInstantiationFailed},
		{"instantiator returned nothing", "empty", registry.ErrInstantiationFailed},
		{"instantiator built another identity", "settings", registry.ErrInstantiationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.id)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Resolve(%q) error = %v, want %v", tt.id, err, tt.want)
			}
			var regErr *registry.Error
			if !errors.As(err, &regErr) || regErr.ID != tt.id {
				t.Errorf("Resolve(%q) error = %#v, want *registry.Error for the identity", tt.id, err)
			}
			if r.Contains(tt.id) {
				t.Errorf("Contains(%q) = true after failed resolve", tt.id)
			}
			if r.Len() != 0 {
				t.Errorf("Len() = %d after failed resolve, want 0", r.Len())
			}
		})
	}
}

func TestGetWithoutInstantiator(t *testing.T) {
	lookup := registry.Lookup{}.Add("menu", "pages/menu.toml")
	r := registry.New[*element.Page]("page", lookup, nil, nil)

	if _, ok := r.Get("menu"); ok {
		t.Error("Get without instantiator = true, want false")
	}
}

func TestRegisterDiscardsDuplicates(t *testing.T) {
	r := registry.New[*element.Page]("page", nil, nil, nil)

	hooked := 0
	r.OnRegister(func(*element.Page) { hooked++ })

	original := element.NewPage(element.Config{ID: "title"})
	duplicate := element.NewPage(element.Config{ID: "title"})

	if !r.Register(original) {
		t.Fatal("Register(original) = false, want true")
	}
	if r.Register(duplicate) {
		t.Error("Register(duplicate) = true, want false")
	}
	if r.Register(nil) {
		t.Error("Register(nil) = true, want false")
	}

	got, _ := r.Get("title")
	if got != original {
		t.Error("duplicate replaced the live instance")
	}
	if hooked != 1 {
		t.Errorf("OnRegister fired %d times, want 1", hooked)
	}
}

func TestAllKeepsRegistrationOrder(t *testing.T) {
	r := registry.New[*element.Widget]("widget", nil, nil, nil)
	for _, id := range []element.ID{"c", "a", "b"} {
		r.Register(element.NewWidget(element.Config{ID: id}))
	}

	var got []element.ID
	for _, w := range r.All() {
		got = append(got, w.ID())
	}

	want := []element.ID{"c", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All() = %v, want %v", got, want)
		}
	}
}

func TestData(t *testing.T) {
	calls := 0
	lookup := registry.Lookup{}.
		Add("bag", "pages/bag.toml").
		Link("inventory", "bag")
	r := registry.New[*element.Page]("page", lookup, registry.InstantiatorFunc[*element.Page](
		func(id element.ID, loc registry.Location) (*element.Page, error) {
			calls++
			return element.NewPage(element.Config{ID: id, Data: &inventory{Slots: 12}}), nil
		}), nil)

	r.Register(element.NewPage(element.Config{ID: "stats", DataID: "player", Data: "level 3"}))

	t.Run("linked identity instantiates its owner", func(t *testing.T) {
		data, ok := r.Data("inventory")
		if !ok {
			t.Fatal("Data(inventory) = false, want true")
		}
		if inv, _ := data.(*inventory); inv == nil || inv.Slots != 12 {
			t.Errorf("Data(inventory) = %#v, want inventory with 12 slots", data)
		}
		if calls != 1 {
			t.Errorf("instantiator called %d times, want 1", calls)
		}
	})

	t.Run("data identity of a registered element", func(t *testing.T) {
		data, ok := r.Data("player")
		if !ok || data != "level 3" {
			t.Errorf("Data(player) = %v, %t; want level 3, true", data, ok)
		}
	})

	t.Run("unknown data identity", func(t *testing.T) {
		if data, ok := r.Data("quests"); ok || data != nil {
			t.Errorf("Data(quests) = %v, %t; want nil, false", data, ok)
		}
	})
}

func TestLookupMerge(t *testing.T) {
	base := registry.Lookup{}.Add("a", "a.toml").Add("b", "b.toml")
	base.Merge(registry.Lookup{}.Add("b", "override.toml").Link("shared", "a"))

	if base["b"].Path != "override.toml" {
		t.Errorf("merged path = %q, want override.toml", base["b"].Path)
	}
	if base["shared"].LinkedTo != "a" {
		t.Errorf("merged link = %q, want a", base["shared"].LinkedTo)
	}
}
