package app

// Mouse buttons reported by window backends.
const (
	MouseLeft = iota
	MouseMiddle
	MouseRight
)

// Handlers is the dispatch table for user input. Every slot is optional;
// an unset slot ignores the event.
type Handlers struct {
	KeyPressed    func(key int)
	KeyReleased   func(key int)
	MouseMoved    func(x, y int)
	MouseDragged  func(x, y, button int)
	MousePressed  func(x, y, button int)
	MouseReleased func(x, y, button int)
	WindowResized func(width, height int)
	DragEvent     func(files []string, x, y int)
	GotMessage    func(msg string)
}

func (h *Handlers) keyPressed(key int) {
	if h.KeyPressed != nil {
		h.KeyPressed(key)
	}
}

func (h *Handlers) keyReleased(key int) {
	if h.KeyReleased != nil {
		h.KeyReleased(key)
	}
}

func (h *Handlers) mouseMoved(x, y int) {
	if h.MouseMoved != nil {
		h.MouseMoved(x, y)
	}
}

func (h *Handlers) mouseDragged(x, y, button int) {
	if h.MouseDragged != nil {
		h.MouseDragged(x, y, button)
	}
}

func (h *Handlers) mousePressed(x, y, button int) {
	if h.MousePressed != nil {
		h.MousePressed(x, y, button)
	}
}

func (h *Handlers) mouseReleased(x, y, button int) {
	if h.MouseReleased != nil {
		h.MouseReleased(x, y, button)
	}
}

func (h *Handlers) windowResized(width, height int) {
	if h.WindowResized != nil {
		h.WindowResized(width, height)
	}
}

func (h *Handlers) dragEvent(files []string, x, y int) {
	if h.DragEvent != nil {
		h.DragEvent(files, x, y)
	}
}

func (h *Handlers) gotMessage(msg string) {
	if h.GotMessage != nil {
		h.GotMessage(msg)
	}
}
