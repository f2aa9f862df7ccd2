package curtain

import (
	"github.com/BrandonKowalski/curtain/pkg/curtain/constants"
	"github.com/BrandonKowalski/curtain/pkg/curtain/element"
	"github.com/BrandonKowalski/curtain/pkg/curtain/internal"
	"github.com/BrandonKowalski/curtain/pkg/curtain/transition"
	"go.uber.org/atomic"
)

// global is the Manager stored by Init. The functions below must be called
// from its update loop, like the Manager methods they forward to.
var global atomic.Pointer[Manager]

// Default returns the Manager stored by Init.
func Default() (*Manager, bool) {
	m := global.Load()
	return m, m != nil
}

func instance(op string) *Manager {
	m := global.Load()
	if m == nil {
		internal.GetInternalLogger().Warn(ErrNotInstantiated.Error(), "op", op)
	}
	return m
}

func OpenPage(id element.ID, spec *transition.Spec) *element.Page {
	if m := instance("open_page"); m != nil {
		return m.OpenPage(id, spec)
	}
	return nil
}

func ClosePage(spec *transition.Spec) *element.Page {
	if m := instance("close_page"); m != nil {
		return m.ClosePage(spec)
	}
	return nil
}

func GoBack(spec *transition.Spec) *element.Page {
	if m := instance("go_back"); m != nil {
		return m.GoBack(spec)
	}
	return nil
}

func GoForward(spec *transition.Spec) *element.Page {
	if m := instance("go_forward"); m != nil {
		return m.GoForward(spec)
	}
	return nil
}

func ShowWidget(id element.ID, spec *transition.Spec) *element.Widget {
	if m := instance("show_widget"); m != nil {
		return m.ShowWidget(id, spec)
	}
	return nil
}

func HideWidget(id element.ID, spec *transition.Spec) *element.Widget {
	if m := instance("hide_widget"); m != nil {
		return m.HideWidget(id, spec)
	}
	return nil
}

func ToggleWidget(id element.ID, spec *transition.Spec) *element.Widget {
	if m := instance("toggle_widget"); m != nil {
		return m.ToggleWidget(id, spec)
	}
	return nil
}

func HideAllWidgets(spec *transition.Spec) {
	if m := instance("hide_all_widgets"); m != nil {
		m.HideAllWidgets(spec)
	}
}

func CurrentPage() *element.Page {
	if m := instance("current_page"); m != nil {
		return m.CurrentPage()
	}
	return nil
}

func GetData(dataID element.ID) (any, bool) {
	if m := instance("get_data"); m != nil {
		return m.GetData(dataID)
	}
	return nil, false
}

// ViewType returns the shared view type, or keyboard before Init.
func ViewType() constants.ViewType {
	if m := instance("view_type"); m != nil {
		return m.ViewType()
	}
	return constants.ViewTypeKeyboard
}

// Post schedules fn on the update loop of the Manager stored by Init.
// Safe to call from any goroutine.
func Post(fn func(*Manager)) bool {
	if m := instance("post"); m != nil {
		return m.Post(fn)
	}
	return false
}
