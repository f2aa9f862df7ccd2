package router_test

import (
	"fmt"
	"time"

	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/registry"
	"github.com/BrandonKowalski/curtain/pkg/curtain/router"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
)

// Page identities - stable string keys resolved by the registry
const (
	PageTitle    element.ID = "title"
	PageLevels   element.ID = "levels"
	PageSettings element.ID = "settings"
)

// Example demonstrates opening pages and walking the history back and forward.
func Example() {
	pages := registry.New[*element.Page]("page", nil, nil, nil)
	for _, id := range []element.ID{PageTitle, PageLevels, PageSettings} {
		pages.Register(element.NewPage(element.Config{ID: id}))
	}

	r := router.New(pages, transition.NewScheduler(nil), nil, nil)

	r.Start(PageTitle)
	r.Open(PageLevels, nil)
	r.Open(PageSettings, nil)
	fmt.Printf("current=%s history=%v\n", r.Current().ID(), r.History())

	r.Back(nil)
	fmt.Printf("current=%s future=%v\n", r.Current().ID(), r.Future())

	r.Forward(nil)
	fmt.Printf("current=%s future=%v\n", r.Current().ID(), r.Future())

	// Output:
	// current=settings history=[title levels]
	// current=levels future=[settings]
	// current=settings future=[]
}

// Example_fade demonstrates a fade driven by the update loop's ticks.
func Example_fade() {
	pages := registry.New[*element.Page]("page", nil, nil, nil)
	pages.Register(element.NewPage(element.Config{ID: PageTitle}))

	sched := transition.NewScheduler(nil)
	r := router.New(pages, sched, nil, nil)

	title, _ := r.Open(PageTitle, transition.Fade(40*time.Millisecond))
	title.OnToggledOn(func(*element.Element) { fmt.Println("title shown") })

	for sched.Active() > 0 {
		sched.Tick(10 * time.Millisecond)
		fmt.Printf("opacity=%.2f\n", title.Opacity())
	}

	// Output:
	// opacity=0.25
	// opacity=0.50
	// opacity=0.75
	// title shown
	// opacity=1.00
}
