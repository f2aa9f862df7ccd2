package element

import (
	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
)

// Page is a full-screen element. At most one page is current at a time.
type Page struct {
	*Element
}

// NewPage creates a hidden page.
func NewPage(cfg Config) *Page {
	return &Page{Element: newElement(KindPage, cfg)}
}

// Toggle turns the page on or off using spec.
//
// Turning a page to the state it is already in only switches its view when vt
// differs; no transition runs. Returns true if a transition was started.
func (p *Page) Toggle(anim Animator, vt constants.ViewType, on bool, spec *transition.Spec) bool {
	if p.on == on {
		if p.viewType != vt {
			p.ChangeView(vt)
		}
		return false
	}

	p.on = on
	if on && spec.FrontOnShow() {
		p.bringToFront()
	}
	p.animate(anim, spec)
	p.enter(vt)

	return true
}

// HideAway puts the page in its hidden resting state.
func (p *Page) HideAway() {
	p.hideAway()
}
