package ebitenview

import (
	"context"
	"io/fs"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ayusman/lace/internal/app"
	"github.com/ayusman/lace/internal/scene"
)

// Key codes for keys without a printable character.
const (
	KeyEscape    = 27
	KeyEnter     = 13
	KeyBackspace = 8
	KeyTab       = 9
	KeyUp        = 357
	KeyDown      = 359
	KeyLeft      = 356
	KeyRight     = 358
)

var specialKeys = map[ebiten.Key]int{
	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeyBackspace:  KeyBackspace,
	ebiten.KeyTab:        KeyTab,
	ebiten.KeySpace:      ' ',
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
}

var mouseButtons = []struct {
	button ebiten.MouseButton
	code   int
}{
	{ebiten.MouseButtonLeft, app.MouseLeft},
	{ebiten.MouseButtonMiddle, app.MouseMiddle},
	{ebiten.MouseButtonRight, app.MouseRight},
}

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
	FPS    int
}

// Game adapts an App to ebiten's game loop. Input is dispatched in Update
// and the app ticks once per Draw.
type Game struct {
	ctx    context.Context
	app    *app.App
	width  int
	height int

	mouseX, mouseY int
	keys           []ebiten.Key

	surface *ImageSurface
}

// NewGame creates a game for a. It stops when ctx is done.
func NewGame(ctx context.Context, a *app.App) *Game {
	return &Game{ctx: ctx, app: a}
}

// Run opens a resizable window and blocks until it closes or ctx is done.
// It must run on the main goroutine.
func Run(ctx context.Context, a *app.App, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = app.DefaultFPS
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)

	log.Printf("Window %q opened at %dx%d", opts.Title, opts.Width, opts.Height)
	return ebiten.RunGame(NewGame(ctx, a))
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		if k == ebiten.KeyEscape {
			log.Println("Window closed by user")
			return ebiten.Termination
		}
		if code, ok := KeyCode(k); ok {
			g.app.KeyPressed(code)
		}
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		if code, ok := KeyCode(k); ok {
			g.app.KeyReleased(code)
		}
	}

	x, y := ebiten.CursorPosition()
	g.pointer(x, y)

	if dropped := ebiten.DroppedFiles(); dropped != nil {
		g.app.DragEvent(droppedNames(dropped), x, y)
	}
	return nil
}

// pointer dispatches mouse movement and button changes at (x, y).
func (g *Game) pointer(x, y int) {
	moved := x != g.mouseX || y != g.mouseY
	g.mouseX, g.mouseY = x, y

	dragging := false
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.button) {
			g.app.MousePressed(x, y, mb.code)
		}
		if inpututil.IsMouseButtonJustReleased(mb.button) {
			g.app.MouseReleased(x, y, mb.code)
		}
		if moved && ebiten.IsMouseButtonPressed(mb.button) {
			g.app.MouseDragged(x, y, mb.code)
			dragging = true
		}
	}
	if moved && !dragging {
		g.app.MouseMoved(x, y)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.surface == nil {
		g.surface = NewImageSurface(screen)
	} else {
		g.surface.SetImage(screen)
	}
	g.app.Tick(scene.NewProjected(g.surface))
}

// Layout uses the window size as the screen size and reports changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.app.WindowResized(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// KeyCode maps an ebiten key to the code passed to key handlers: the lower
// case character for letters and digits, or one of the Key constants.
func KeyCode(k ebiten.Key) (int, bool) {
	if code, ok := specialKeys[k]; ok {
		return code, true
	}

	name := k.String()
	switch {
	case len(name) == 1:
		return int(strings.ToLower(name)[0]), true
	case len(name) == 6 && strings.HasPrefix(name, "Digit"):
		return int(name[5]), true
	}
	return 0, false
}

func droppedNames(files fs.FS) []string {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		log.Printf("Failed to read dropped files: %v", err)
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
