package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/lace/internal/app"
	"github.com/ayusman/lace/internal/config"
	"github.com/ayusman/lace/internal/scene"
	"github.com/ayusman/lace/internal/tracking"
	"github.com/ayusman/lace/internal/tray"
	"github.com/ayusman/lace/internal/view/ebitenview"
	"github.com/ayusman/lace/internal/view/gocvview"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	backend := flag.String("backend", "", "window backend: gocv, ebiten or headless")
	source := flag.String("source", "", "tracker source: bridge, replay or mock")
	replay := flag.String("replay", "", "recorded session to play back")
	ticks := flag.Int("ticks", 0, "stop the headless backend after this many ticks")
	useTray := flag.Bool("tray", false, "show the system tray menu")
	flag.Parse()

	fmt.Println("Lace - Hand Tracking Visualizer")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	applyFlags(cfg, *backend, *source, *replay)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracker, err := newTracker(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create tracker: %v", err)
	}

	a := app.New(cfg.AppConfig(tracker))
	if err := a.Open(); err != nil {
		log.Printf("Warning: tracker unavailable, running without hands: %v", err)
	}
	defer a.Close()

	var tr *tray.Tray
	if *useTray {
		tr = tray.New(a, cfg.Scene.Grid, cfg.Scene.Box)
		tr.OnQuit(stop)
	}

	registerInput(a, tr)

	if err := run(ctx, a, cfg, tr, *ticks); err != nil {
		log.Printf("Stopped: %v", err)
	}
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(cfg *config.Config, backend, source, replay string) {
	if backend != "" {
		cfg.Backend = backend
	}
	if replay != "" {
		cfg.Tracker.ReplayFile = replay
		if source == "" {
			source = config.SourceReplay
		}
	}
	if source != "" {
		cfg.Tracker.Source = source
	}
}

// newTracker builds the tracker selected by cfg.
func newTracker(ctx context.Context, cfg *config.Config) (tracking.Tracker, error) {
	switch cfg.Tracker.Source {
	case config.SourceBridge:
		fmt.Printf("Starting tracking bridge: %v\n", cfg.Tracker.Command)
		return tracking.NewBridgeTracker(cfg.Tracker.Command)
	case config.SourceReplay:
		t, err := tracking.OpenReplayFile(cfg.Tracker.ReplayFile, cfg.Tracker.ReplayFPS, cfg.Tracker.Loop)
		if err != nil {
			return nil, err
		}
		fmt.Printf("Replaying %d messages from %s\n", t.Len(), cfg.Tracker.ReplayFile)
		return t, nil
	case config.SourceMock:
		m := tracking.NewMockTracker()
		go animate(ctx, m, cfg.Tracker.ReplayFPS)
		return m, nil
	}
	return nil, fmt.Errorf("unknown tracker source %q", cfg.Tracker.Source)
}

// animate feeds m two hands circling above the sensor until ctx is done.
func animate(ctx context.Context, m *tracking.MockTracker, fps int) {
	if fps <= 0 {
		fps = tracking.DefaultReplayRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			phase := now.Sub(start).Seconds()
			sin, cos := math.Sincos(phase)
			m.Push(
				tracking.OpenPalmHand(1, tracking.Left, r3.Vec{X: -100 + 40*cos, Y: 250 + 60*sin, Z: 40 * sin}),
				tracking.OpenPalmHand(2, tracking.Right, r3.Vec{X: 100 - 40*cos, Y: 250 - 60*sin, Z: -40 * sin}),
			)
		}
	}
}

// registerInput binds the g and b keys and the tray messages to the toggles.
// When tr is not nil its checkboxes follow every change.
func registerInput(a *app.App, tr *tray.Tray) {
	syncTray := func() {
		if tr != nil {
			tg := a.State().Toggles
			tr.SetToggles(tg.Grid, tg.Box)
		}
	}

	h := a.Handlers()
	h.KeyPressed = func(key int) {
		switch key {
		case 'g':
			a.ToggleGrid()
		case 'b':
			a.ToggleBox()
		default:
			return
		}
		syncTray()
	}
	h.GotMessage = func(msg string) {
		switch msg {
		case tray.MessageToggleGrid:
			a.ToggleGrid()
		case tray.MessageToggleBox:
			a.ToggleBox()
		default:
			log.Printf("Ignoring message %q", msg)
			return
		}
		syncTray()
	}
}

// run drives the selected backend until it stops.
func run(ctx context.Context, a *app.App, cfg *config.Config, tr *tray.Tray, ticks int) error {
	switch cfg.Backend {
	case config.BackendHeadless:
		rec := scene.NewRecorder(cfg.Window.Width, cfg.Window.Height)
		if tr == nil {
			return ignoreCanceled(a.RunHeadless(ctx, rec, cfg.Window.FPS, ticks))
		}

		// The tray owns the main goroutine.
		errCh := make(chan error, 1)
		go func() {
			errCh <- a.RunHeadless(ctx, rec, cfg.Window.FPS, ticks)
			tr.Quit()
		}()
		tr.Run()
		return ignoreCanceled(<-errCh)

	case config.BackendGocv, config.BackendEbiten:
		if tr != nil {
			tr.Start()
			defer tr.Quit()
		}
		w := cfg.Window
		if cfg.Backend == config.BackendGocv {
			return gocvview.Run(ctx, a, gocvview.Options{Title: w.Title, Width: w.Width, Height: w.Height, FPS: w.FPS})
		}
		return ebitenview.Run(ctx, a, ebitenview.Options{Title: w.Title, Width: w.Width, Height: w.Height, FPS: w.FPS})
	}
	return fmt.Errorf("unknown backend %q", cfg.Backend)
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
