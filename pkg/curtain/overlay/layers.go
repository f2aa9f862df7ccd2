package overlay

import "github.com/BrandonKowalski/curtain/pkg/curtain/element"

// Layers returns every layered widget identity in z-order, front last.
func (c *Controller) Layers() []element.ID {
	out := make([]element.ID, 0, len(c.layers))
	for _, w := range c.layers {
		out = append(out, w.ID())
	}
	return out
}

// BringToFront moves the widget for id to the end of its priority band.
func (c *Controller) BringToFront(id element.ID) {
	if i := c.index(id); i >= 0 {
		c.place(c.layers[i])
	}
}

// BringToBack moves the widget for id to the start of its priority band.
func (c *Controller) BringToBack(id element.ID) {
	i := c.index(id)
	if i < 0 {
		return
	}
	w := c.remove(i)
	at := len(c.layers)
	for j, o := range c.layers {
		if o.Priority() >= w.Priority() {
			at = j
			break
		}
	}
	c.insertAt(at, w)
}

// MoveForwardOne swaps the widget for id with the next widget of its band.
// Returns false if it already is the front of its band.
func (c *Controller) MoveForwardOne(id element.ID) bool {
	i := c.index(id)
	if i < 0 || i+1 >= len(c.layers) || c.layers[i+1].Priority() != c.layers[i].Priority() {
		return false
	}
	c.layers[i], c.layers[i+1] = c.layers[i+1], c.layers[i]
	return true
}

// MoveBackOne swaps the widget for id with the previous widget of its band.
// Returns false if it already is the back of its band.
func (c *Controller) MoveBackOne(id element.ID) bool {
	i := c.index(id)
	if i <= 0 || c.layers[i-1].Priority() != c.layers[i].Priority() {
		return false
	}
	c.layers[i], c.layers[i-1] = c.layers[i-1], c.layers[i]
	return true
}

// place moves w, layered or not, to the end of its priority band.
func (c *Controller) place(w *element.Widget) {
	if i := c.index(w.ID()); i >= 0 {
		c.remove(i)
	}
	c.insert(w)
}

// insert adds w after the last widget whose priority is not greater than its own.
func (c *Controller) insert(w *element.Widget) {
	at := len(c.layers)
	for j, o := range c.layers {
		if o.Priority() > w.Priority() {
			at = j
			break
		}
	}
	c.insertAt(at, w)
}

func (c *Controller) insertAt(i int, w *element.Widget) {
	c.layers = append(c.layers, nil)
	copy(c.layers[i+1:], c.layers[i:])
	c.layers[i] = w
}

func (c *Controller) remove(i int) *element.Widget {
	w := c.layers[i]
	c.layers = append(c.layers[:i], c.layers[i+1:]...)
	return w
}

func (c *Controller) index(id element.ID) int {
	for i, w := range c.layers {
		if w.ID() == id {
			return i
		}
	}
	return -1
}
