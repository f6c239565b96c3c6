// Package app provides the visualization core: the frame sampler, the scene
// renderer, the trail state they share, and the App that ties them to a
// tracker and a window.
package app

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ayusman/lace/internal/scene"
	"github.com/ayusman/lace/internal/tracking"
)

// MessageQueueSize is how many posted messages may wait for the next tick.
const MessageQueueSize = 16

// Config holds configuration options for the application.
type Config struct {
	Tracker          tracking.Tracker
	Bounds           tracking.SensorBounds
	Style            Style
	Toggles          Toggles
	TrailCapacity    int
	BackgroundFrames bool
}

// App samples the tracker and renders the scene once per tick.
// Tick and the input methods must be called from the same goroutine;
// Post may be called from anywhere.
type App struct {
	config    Config
	tracker   tracking.Tracker
	state     *State
	handlers  Handlers
	messages  chan string
	sessionID string
	closeOnce sync.Once
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	return &App{
		config:    config,
		tracker:   config.Tracker,
		state:     NewState(config.Toggles, config.TrailCapacity),
		messages:  make(chan string, MessageQueueSize),
		sessionID: uuid.NewString(),
	}
}

// Open connects the tracker. A tracker that fails to open leaves the app
// running without hands.
func (a *App) Open() error {
	if err := a.tracker.Open(); err != nil {
		return err
	}

	// keep receiving frames while the window is in the background
	a.tracker.SetReceiveBackgroundFrames(a.config.BackgroundFrames)

	log.Printf("Session %s started", a.sessionID)
	return nil
}

// Close releases the tracker. It is safe to call more than once.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		err = a.tracker.Close()
		log.Printf("Session %s closed after %d frames", a.sessionID, a.state.Frame)
	})
	return err
}

// Tick runs one display refresh: posted messages, then Sample, then Render.
func (a *App) Tick(c scene.Canvas) {
	a.drainMessages()

	width, height := c.Size()
	Sample(a.tracker, a.config.Bounds, width, height, a.state)
	Render(c, a.state, a.config.Style, Status{Connected: a.tracker.IsConnected()})

	a.state.Frame++
}

// Post queues a message for GotMessage on the next tick. It never blocks;
// messages are dropped while the queue is full.
func (a *App) Post(msg string) {
	select {
	case a.messages <- msg:
	default:
		log.Printf("Dropping message %q: queue full", msg)
	}
}

func (a *App) drainMessages() {
	for {
		select {
		case msg := <-a.messages:
			a.handlers.gotMessage(msg)
		default:
			return
		}
	}
}

// Handlers returns the input dispatch table for registration.
func (a *App) Handlers() *Handlers {
	return &a.handlers
}

// State returns the shared sampler/renderer state.
func (a *App) State() *State {
	return a.state
}

// SessionID returns the id logged for this run.
func (a *App) SessionID() string {
	return a.sessionID
}

// ToggleGrid flips the grid background.
func (a *App) ToggleGrid() {
	a.state.Toggles.Grid = !a.state.Toggles.Grid
	log.Printf("Grid background: %t", a.state.Toggles.Grid)
}

// ToggleBox flips the box between the hands.
func (a *App) ToggleBox() {
	a.state.Toggles.Box = !a.state.Toggles.Box
	log.Printf("Hand box: %t", a.state.Toggles.Box)
}

// Input entry points for window backends.

func (a *App) KeyPressed(key int)                 { a.handlers.keyPressed(key) }
func (a *App) KeyReleased(key int)                { a.handlers.keyReleased(key) }
func (a *App) MouseMoved(x, y int)                { a.handlers.mouseMoved(x, y) }
func (a *App) MouseDragged(x, y, button int)      { a.handlers.mouseDragged(x, y, button) }
func (a *App) MousePressed(x, y, button int)      { a.handlers.mousePressed(x, y, button) }
func (a *App) MouseReleased(x, y, button int)     { a.handlers.mouseReleased(x, y, button) }
func (a *App) WindowResized(width, height int)    { a.handlers.windowResized(width, height) }
func (a *App) DragEvent(files []string, x, y int) { a.handlers.dragEvent(files, x, y) }
