package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BrandonKowalski/curtain/pkg/curtain"
	"github.com/BrandonKowalski/curtain/pkg/curtain/config"
	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/trigger"
)

// maxSettleTicks bounds settle so a looping transition cannot hang the CLI.
const maxSettleTicks = 10000

type step struct {
	raw  string
	name string
	arg  string
	fire *trigger.Trigger
	tick time.Duration
	view constants.ViewType
}

func parseSteps(args []string) ([]step, error) {
	steps := make([]step, 0, len(args))
	for _, raw := range args {
		s, err := parseStep(raw)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func parseStep(raw string) (step, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(raw), ":")
	s := step{raw: raw, name: name, arg: arg}

	switch name {
	case "back", "forward", "settle":
		return s, nil
	case "tick":
		d, err := time.ParseDuration(arg)
		if err != nil {
			return s, fmt.Errorf("step %q: %w", raw, err)
		}
		s.tick = d
		return s, nil
	case "view":
		vt, ok := constants.ParseViewType(arg)
		if !ok {
			return s, fmt.Errorf("step %q: unknown view type", raw)
		}
		s.view = vt
		return s, nil
	}

	t, err := trigger.Parse(raw)
	if err != nil {
		return s, fmt.Errorf("step %q: %w", raw, err)
	}
	s.fire = &t
	return s, nil
}

func (r *Runner) play(m *curtain.Manager, steps []step, settleEach bool) {
	fmt.Fprintf(r.output, "%-24s %s\n", "awaken", describe(m))

	for _, s := range steps {
		switch {
		case s.fire != nil:
			s.fire.Fire(m)
		case s.name == "back":
			m.GoBack(nil)
		case s.name == "forward":
			m.GoForward(nil)
		case s.name == "tick":
			m.Tick(s.tick)
		case s.name == "view":
			m.SetViewType(s.view)
		case s.name == "settle":
			settle(m)
		}

		if settleEach && s.name != "tick" {
			settle(m)
		}
		fmt.Fprintf(r.output, "%-24s %s\n", s.raw, describe(m))
	}
}

func settle(m *curtain.Manager) {
	for i := 0; i < maxSettleTicks && m.Scheduler().Active() > 0; i++ {
		m.Tick(constants.DefaultTickInterval)
	}
}

func describe(m *curtain.Manager) string {
	var b strings.Builder

	current := "-"
	view := "-"
	if p := m.CurrentPage(); p != nil {
		current = p.ID().String()
		if v := p.CurrentView(); v != nil {
			view = fmt.Sprint(v)
		}
	}

	var widgets []string
	for _, w := range m.ShownWidgets() {
		widgets = append(widgets, fmt.Sprintf("%s@%.2f", w.ID(), w.Opacity()))
	}

	fmt.Fprintf(&b, "current=%s view=%s history=%v future=%v widgets=[%s]",
		current, view, m.Router().History(), m.Router().Future(), strings.Join(widgets, " "))
	return b.String()
}

func views(id element.ID) (keyboard, gamepad, mobile element.View) {
	return element.NewBasicView(id.String() + "/keyboard"),
		element.NewBasicView(id.String() + "/gamepad"),
		element.NewBasicView(id.String() + "/mobile")
}

func buildPage(e config.Entry, cfg element.Config) (*element.Page, error) {
	cfg.Keyboard, cfg.Gamepad, cfg.Mobile = views(e.ID)
	return element.NewPage(cfg), nil
}

func buildWidget(e config.Entry, cfg element.Config) (*element.Widget, error) {
	cfg.Keyboard, cfg.Gamepad, cfg.Mobile = views(e.ID)
	return element.NewWidget(cfg), nil
}
