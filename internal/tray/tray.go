// Package tray provides a system tray menu for toggling the scene layers.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Messages posted to the app when a menu item is clicked.
const (
	MessageToggleGrid = "toggle-grid"
	MessageToggleBox  = "toggle-box"
)

// Poster receives tray messages. app.App satisfies it.
type Poster interface {
	Post(msg string)
}

// Tray represents the system tray menu.
type Tray struct {
	poster Poster
	onQuit func()
	quit   func()
	grid   bool
	box    bool
	mu     sync.Mutex

	// Menu items stored for later updates
	menuGrid *systray.MenuItem
	menuBox  *systray.MenuItem
}

// New creates a tray posting to p. grid and box are the initial toggle states.
func New(p Poster, grid, box bool) *Tray {
	return &Tray{
		poster: p,
		quit:   systray.Quit,
		grid:   grid,
		box:    box,
	}
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray and blocks until Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Start registers the tray with an event loop run elsewhere, such as a
// window backend on the main goroutine.
func (t *Tray) Start() {
	systray.Register(t.onReady, t.onExit)
}

// Quit removes the tray icon.
func (t *Tray) Quit() {
	t.quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Lace")
	systray.SetTooltip("Lace hand tracking")

	t.mu.Lock()
	t.menuGrid = systray.AddMenuItemCheckbox("Grid", "Toggle the grid background", t.grid)
	t.menuBox = systray.AddMenuItemCheckbox("Box", "Toggle the box between the hands", t.box)
	t.mu.Unlock()
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Lace")

	go func() {
		for {
			select {
			case <-t.menuGrid.ClickedCh:
				t.handleToggleGrid()
			case <-t.menuBox.ClickedCh:
				t.handleToggleBox()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

func (t *Tray) handleToggleGrid() {
	t.mu.Lock()
	t.grid = !t.grid
	setChecked(t.menuGrid, t.grid)
	t.mu.Unlock()

	t.poster.Post(MessageToggleGrid)
}

func (t *Tray) handleToggleBox() {
	t.mu.Lock()
	t.box = !t.box
	setChecked(t.menuBox, t.box)
	t.mu.Unlock()

	t.poster.Post(MessageToggleBox)
}

func (t *Tray) handleQuit() {
	t.mu.Lock()
	callback := t.onQuit
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback()
	}

	t.quit()
}

// SetToggles updates the checkbox states after the toggles changed
// elsewhere, such as from the keyboard.
func (t *Tray) SetToggles(grid, box bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid, t.box = grid, box
	setChecked(t.menuGrid, grid)
	setChecked(t.menuBox, box)
}

// Toggles returns the checkbox states.
func (t *Tray) Toggles() (grid, box bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.grid, t.box
}

func setChecked(item *systray.MenuItem, checked bool) {
	if item == nil {
		return
	}
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}
