// Package router keeps track of the single current page and the navigation
// history around it.
//
// A Router is either without a current page or has exactly one. Opening a page
// hides the current one, pushes its identity onto the back stack and clears the
// forward stack. Back and Forward replay the stacks: they move the current page
// onto the opposite stack and open the popped identity without touching history
// themselves.
//
// # Basic Usage
//
//	pages := registry.New[*element.Page]("page", lookup, instantiator, logger)
//	sched := transition.NewScheduler(logger)
//	r := router.New(pages, sched, adapter, logger)
//
//	r.Start("title")
//	r.Open("settings", transition.DefaultFade())
//	r.Back(transition.DefaultFade()) // "title" is current again
//	r.Forward(nil)                   // "settings", instantly
//
// # History Invariant
//
// Only Open and Close that are not replays clear the forward stack. Back and
// Forward never clear it, so a Back followed by Forward always returns to the
// page that was current before the Back.
//
// Opening the page that is already current does not transition; it only switches
// the page to the shared view type if that changed.
package router
