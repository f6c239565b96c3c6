package gocvview

import (
	"context"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/lace/internal/app"
	"github.com/ayusman/lace/internal/scene"
)

// keyEscape closes the window.
const keyEscape = 27

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

// Run opens a window and ticks a at the configured rate until ctx is done
// or the user presses Escape. It must run on the main goroutine.
func Run(ctx context.Context, a *app.App, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = app.DefaultFPS
	}

	window := gocv.NewWindow(opts.Title)
	defer window.Close()

	surface := NewMatSurface(opts.Width, opts.Height)
	defer surface.Close()
	canvas := scene.NewProjected(surface)

	a.WindowResized(opts.Width, opts.Height)
	log.Printf("Window %q opened at %dx%d", opts.Title, opts.Width, opts.Height)

	ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			a.Tick(canvas)
			window.IMShow(*surface.Mat())

			// WaitKey also pumps the HighGUI event loop.
			key := window.WaitKey(1)
			if key < 0 {
				continue
			}
			if key == keyEscape {
				log.Println("Window closed by user")
				return nil
			}
			a.KeyPressed(key)
			a.KeyReleased(key)
		}
	}
}
